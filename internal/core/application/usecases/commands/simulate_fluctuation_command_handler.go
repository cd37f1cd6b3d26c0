package commands

import (
	"context"

	"dispatchsim/internal/core/application/pool"
	"dispatchsim/internal/core/ports"
)

// SimulateFluctuationCommandHandler applies churn to the courier pool.
// A pool.ErrInvalidChurnCount from the pool is returned unchanged, and the
// pool is left as it was.
type SimulateFluctuationCommandHandler struct {
	couriers ports.CourierPool
}

// NewSimulateFluctuationCommandHandler creates a handler over the courier pool.
func NewSimulateFluctuationCommandHandler(couriers ports.CourierPool) SimulateFluctuationCommandHandler {
	return SimulateFluctuationCommandHandler{couriers: couriers}
}

// Handle surfaces pool.ErrInvalidChurnCount unchanged; the pool is left as it was.
func (h SimulateFluctuationCommandHandler) Handle(ctx context.Context, cmd SimulateFluctuationCommand) (pool.Fluctuation, error) {
	if err := cmd.Validate(); err != nil {
		return pool.Fluctuation{}, err
	}
	return h.couriers.SimulateFluctuation(ctx, cmd.JoinRate(), cmd.LeaveRate(), cmd.Ticks())
}
