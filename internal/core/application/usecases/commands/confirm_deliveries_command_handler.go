package commands

import (
	"context"
	"errors"
	"time"

	"dispatchsim/internal/core/application/actors"
	"dispatchsim/internal/core/domain/model/kernel"
	"dispatchsim/internal/core/ports"
	"dispatchsim/internal/pkg/actor"
)

// ConfirmDeliveriesCommandHandler inspects every courier and confirms the
// delivery of those awaiting one with their dispatcher.
type ConfirmDeliveriesCommandHandler struct {
	couriers   ports.CourierPool
	rand       kernel.Intn
	askTimeout time.Duration
}

// NewConfirmDeliveriesCommandHandler creates the handler.
//
// Parameters:
//   - couriers: the courier pool to inspect
//   - rand: picks each delivery destination
//   - askTimeout: bound for every InspectCourier ask
func NewConfirmDeliveriesCommandHandler(
	couriers ports.CourierPool,
	rand kernel.Intn,
	askTimeout time.Duration,
) ConfirmDeliveriesCommandHandler {
	return ConfirmDeliveriesCommandHandler{couriers: couriers, rand: rand, askTimeout: askTimeout}
}

// Handle returns how many deliveries were confirmed. Couriers that stop while
// being inspected are skipped; other failures are joined into the error.
func (h ConfirmDeliveriesCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveriesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	var (
		confirmed int
		failures  []error
	)
	h.couriers.ForEachLive(func(pid *actor.PID) {
		status, err := actor.AskAs[actors.CourierStatus](ctx, pid, actors.InspectCourier{}, h.askTimeout)
		if errors.Is(err, actor.ErrChannelClosed) {
			return
		}
		if err != nil {
			failures = append(failures, err)
			return
		}
		if !status.IsAwaitingDelivery() {
			return
		}

		destination := kernel.NewRandomLocation(h.rand)
		if err := status.DispatcherPID.Tell(actors.ConfirmDelivery{Courier: pid, Destination: destination}); err != nil {
			failures = append(failures, err)
			return
		}
		confirmed++
	})

	return confirmed, errors.Join(failures...)
}
