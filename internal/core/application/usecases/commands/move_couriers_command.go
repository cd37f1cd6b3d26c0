package commands

import (
	"errors"

	"dispatchsim/internal/pkg/guard"
)

// ErrMoveCouriersCommandIsNotConstructed is returned by Validate on a zero value.
var ErrMoveCouriersCommandIsNotConstructed = errors.New(
	"MoveCouriersCommand must be created via NewMoveCouriersCommand constructor",
)

// MoveCouriersCommand advances every live courier by one tick.
//
// Example:
//
//	handler := NewMoveCouriersCommandHandler(couriers)
//	for {
//	    tick, err := clock.WaitForNextTick(ctx)
//	    if err != nil {
//	        return err
//	    }
//	    _, _ = handler.Handle(ctx, NewMoveCouriersCommand(tick))
//	}
type MoveCouriersCommand struct {
	tick uint64

	guard guard.ConstructorGuard
}

// NewMoveCouriersCommand creates the command for the given world tick.
func NewMoveCouriersCommand(tick uint64) MoveCouriersCommand {
	return MoveCouriersCommand{
		tick:  tick,
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c MoveCouriersCommand) Validate() error {
	return c.guard.Validate(ErrMoveCouriersCommandIsNotConstructed)
}

func (c MoveCouriersCommand) Tick() uint64 {
	return c.tick
}
