package queries

import (
	"context"
	"errors"
	"sort"
	"time"

	"dispatchsim/internal/core/application/actors"
	"dispatchsim/internal/core/ports"
	"dispatchsim/internal/pkg/actor"
)

// GetAllCouriersQueryHandler asks every courier on shift for its status.
// Each ask is bounded by askTimeout, so one stuck courier cannot block the
// query for longer than that.
type GetAllCouriersQueryHandler struct {
	couriers   ports.CourierPool
	askTimeout time.Duration
}

// NewGetAllCouriersQueryHandler creates the handler.
//
// Parameters:
//   - couriers: the pool whose members are inspected
//   - askTimeout: bound for each InspectCourier ask
func NewGetAllCouriersQueryHandler(couriers ports.CourierPool, askTimeout time.Duration) GetAllCouriersQueryHandler {
	return GetAllCouriersQueryHandler{couriers: couriers, askTimeout: askTimeout}
}

// Handle returns the couriers sorted by name. Couriers that stop while being
// asked are left out.
func (h GetAllCouriersQueryHandler) Handle(ctx context.Context, query GetAllCouriersQuery) ([]actors.CourierStatus, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statuses := make([]actors.CourierStatus, 0)
	for _, pid := range h.couriers.Members() {
		s, err := actor.AskAs[actors.CourierStatus](ctx, pid, actors.InspectCourier{}, h.askTimeout)
		if errors.Is(err, actor.ErrChannelClosed) {
			continue
		}
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, s)
	}

	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Name < statuses[j].Name })
	return statuses, nil
}
