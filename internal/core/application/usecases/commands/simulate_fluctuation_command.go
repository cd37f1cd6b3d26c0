package commands

import (
	"errors"

	"dispatchsim/internal/core/application/pool"
	"dispatchsim/internal/pkg/guard"
)

// ErrSimulateFluctuationCommandIsNotConstructed is returned by Validate on a zero value.
var ErrSimulateFluctuationCommandIsNotConstructed = errors.New(
	"SimulateFluctuationCommand must be created via NewSimulateFluctuationCommand constructor",
)

// SimulateFluctuationCommand applies courier churn for a number of elapsed ticks.
type SimulateFluctuationCommand struct {
	joinRate  float64
	leaveRate float64
	ticks     uint64

	guard guard.ConstructorGuard
}

// NewSimulateFluctuationCommand rejects negative or non-finite rates.
func NewSimulateFluctuationCommand(joinRate, leaveRate float64, ticks uint64) (SimulateFluctuationCommand, error) {
	if err := errors.Join(pool.ValidateRate("joinRate", joinRate), pool.ValidateRate("leaveRate", leaveRate)); err != nil {
		return SimulateFluctuationCommand{}, err
	}

	return SimulateFluctuationCommand{
		joinRate:  joinRate,
		leaveRate: leaveRate,
		ticks:     ticks,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SimulateFluctuationCommand) Validate() error {
	return c.guard.Validate(ErrSimulateFluctuationCommandIsNotConstructed)
}

// JoinRate is the expected number of joins per tick.
func (c SimulateFluctuationCommand) JoinRate() float64 {
	return c.joinRate
}

// LeaveRate is the expected number of leaves per tick.
func (c SimulateFluctuationCommand) LeaveRate() float64 {
	return c.leaveRate
}

// Ticks is the number of clock ticks the churn covers.
func (c SimulateFluctuationCommand) Ticks() uint64 {
	return c.ticks
}
