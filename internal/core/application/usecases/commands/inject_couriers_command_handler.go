package commands

import (
	"context"

	"dispatchsim/internal/core/ports"
)

// InjectCouriersCommandHandler spawns couriers into the pool on request.
// Each new courier is invited to the router as part of its spawn.
//
// Example:
//
//	handler := NewInjectCouriersCommandHandler(couriers)
//	cmd, _ := NewInjectCouriersCommand(3)
//	names, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("inject failed: %w", err)
//	}
type InjectCouriersCommandHandler struct {
	couriers ports.CourierPool
}

// NewInjectCouriersCommandHandler creates a handler over the courier pool.
func NewInjectCouriersCommandHandler(couriers ports.CourierPool) InjectCouriersCommandHandler {
	return InjectCouriersCommandHandler{couriers: couriers}
}

// Handle returns the names of the new couriers.
func (h InjectCouriersCommandHandler) Handle(ctx context.Context, cmd InjectCouriersCommand) ([]string, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	pids, err := h.couriers.InjectDefaults(ctx, cmd.Count())
	if err != nil {
		return nil, err
	}

	names := make([]string, len(pids))
	for i, pid := range pids {
		names[i] = pid.Name()
	}
	return names, nil
}
