package commands

import (
	"context"

	"dispatchsim/internal/core/application/actors"
	"dispatchsim/internal/core/ports"
	"dispatchsim/internal/pkg/actor"
)

// MoveCouriersCommandHandler tells Tick to the couriers on shift and to the
// relieved ones still finishing a delivery. Couriers that stopped in the
// meantime are skipped.
type MoveCouriersCommandHandler struct {
	couriers ports.CourierPool
}

// NewMoveCouriersCommandHandler creates a handler over the courier pool.
func NewMoveCouriersCommandHandler(couriers ports.CourierPool) MoveCouriersCommandHandler {
	return MoveCouriersCommandHandler{couriers: couriers}
}

// Handle returns how many couriers received the tick.
func (h MoveCouriersCommandHandler) Handle(_ context.Context, cmd MoveCouriersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	moved := 0
	h.couriers.ForEachLive(func(pid *actor.PID) {
		if err := pid.Tell(actors.Tick{Tick: cmd.Tick()}); err == nil {
			moved++
		}
	})
	return moved, nil
}
