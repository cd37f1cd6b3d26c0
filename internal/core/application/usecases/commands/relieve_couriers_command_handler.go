package commands

import (
	"context"

	"dispatchsim/internal/core/ports"
)

// RelieveCouriersCommandHandler relieves random couriers. Couriers carrying
// cargo stay alive until they have delivered it.
type RelieveCouriersCommandHandler struct {
	couriers ports.CourierPool
}

// NewRelieveCouriersCommandHandler creates a handler over the courier pool.
func NewRelieveCouriersCommandHandler(couriers ports.CourierPool) RelieveCouriersCommandHandler {
	return RelieveCouriersCommandHandler{couriers: couriers}
}

// Handle returns the names of the relieved couriers. Couriers carrying cargo
// leave the pool at once but keep running until their delivery is done.
func (h RelieveCouriersCommandHandler) Handle(_ context.Context, cmd RelieveCouriersCommand) ([]string, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	pids, err := h.couriers.RelieveLeaving(cmd.Count())
	if err != nil {
		return nil, err
	}

	names := make([]string, len(pids))
	for i, pid := range pids {
		names[i] = pid.Name()
	}
	return names, nil
}
