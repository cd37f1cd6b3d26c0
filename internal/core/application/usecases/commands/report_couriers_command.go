package commands

import (
	"errors"

	"dispatchsim/internal/pkg/guard"
)

// ErrReportCouriersCommandIsNotConstructed is returned by Validate on a zero value.
var ErrReportCouriersCommandIsNotConstructed = errors.New(
	"ReportCouriersCommand must be created via NewReportCouriersCommand constructor",
)

// ReportCouriersCommand makes every courier on shift check in with its dispatcher.
type ReportCouriersCommand struct {
	guard guard.ConstructorGuard
}

// NewReportCouriersCommand creates the command. It carries no data.
func NewReportCouriersCommand() ReportCouriersCommand {
	return ReportCouriersCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c ReportCouriersCommand) Validate() error {
	return c.guard.Validate(ErrReportCouriersCommandIsNotConstructed)
}
