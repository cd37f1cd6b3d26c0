package commands

import (
	"errors"

	"dispatchsim/internal/pkg/errs"
	"dispatchsim/internal/pkg/guard"
)

// ErrRelieveCouriersCommandIsNotConstructed is returned by Validate on a zero value.
var ErrRelieveCouriersCommandIsNotConstructed = errors.New(
	"RelieveCouriersCommand must be created via NewRelieveCouriersCommand constructor",
)

// RelieveCouriersCommand sends random couriers off the shift by hand.
type RelieveCouriersCommand struct {
	count int

	guard guard.ConstructorGuard
}

// NewRelieveCouriersCommand accepts any positive count. Whether the pool has
// that many couriers is only known when the command is handled.
func NewRelieveCouriersCommand(count int) (RelieveCouriersCommand, error) {
	if count < 1 {
		return RelieveCouriersCommand{}, errs.NewValueIsOutOfRangeError("count", count, 1, "pool size")
	}
	return RelieveCouriersCommand{count: count, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c RelieveCouriersCommand) Validate() error {
	return c.guard.Validate(ErrRelieveCouriersCommandIsNotConstructed)
}

// Count is the number of couriers to relieve.
func (c RelieveCouriersCommand) Count() int {
	return c.count
}
