package commands

import (
	"errors"

	"dispatchsim/internal/pkg/guard"
)

// ErrConfirmDeliveriesCommandIsNotConstructed is returned by Validate on a zero value.
var ErrConfirmDeliveriesCommandIsNotConstructed = errors.New(
	"ConfirmDeliveriesCommand must be created via NewConfirmDeliveriesCommand constructor",
)

// ConfirmDeliveriesCommand plays the customer side: every courier waiting idle
// with picked-up cargo is sent out to a random destination.
type ConfirmDeliveriesCommand struct {
	guard guard.ConstructorGuard
}

// NewConfirmDeliveriesCommand creates the command. It carries no data.
func NewConfirmDeliveriesCommand() ConfirmDeliveriesCommand {
	return ConfirmDeliveriesCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c ConfirmDeliveriesCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveriesCommandIsNotConstructed)
}
