package commands

import (
	"errors"

	"dispatchsim/internal/core/application/pool"
	"dispatchsim/internal/pkg/errs"
	"dispatchsim/internal/pkg/guard"
)

// ErrInjectCouriersCommandIsNotConstructed is returned by Validate on a zero value.
var ErrInjectCouriersCommandIsNotConstructed = errors.New(
	"InjectCouriersCommand must be created via NewInjectCouriersCommand constructor",
)

// InjectCouriersCommand adds couriers to the shift by hand.
type InjectCouriersCommand struct {
	count int

	guard guard.ConstructorGuard
}

// NewInjectCouriersCommand accepts between 1 and pool.MaxBatch couriers.
//
// Example:
//
//	cmd, err := NewInjectCouriersCommand(3)
//	if err != nil {
//	    return fmt.Errorf("invalid courier count: %w", err)
//	}
func NewInjectCouriersCommand(count int) (InjectCouriersCommand, error) {
	if count < 1 || count > pool.MaxBatch {
		return InjectCouriersCommand{}, errs.NewValueIsOutOfRangeError("count", count, 1, pool.MaxBatch)
	}
	return InjectCouriersCommand{count: count, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c InjectCouriersCommand) Validate() error {
	return c.guard.Validate(ErrInjectCouriersCommandIsNotConstructed)
}

// Count is the number of couriers to spawn.
func (c InjectCouriersCommand) Count() int {
	return c.count
}
