package commands

import (
	"context"

	"dispatchsim/internal/core/application/actors"
	"dispatchsim/internal/core/ports"
)

// ReportCouriersCommandHandler tells Report to every courier on shift.
type ReportCouriersCommandHandler struct {
	couriers ports.CourierPool
}

func NewReportCouriersCommandHandler(couriers ports.CourierPool) ReportCouriersCommandHandler {
	return ReportCouriersCommandHandler{couriers: couriers}
}

// Handle returns how many couriers were asked to report.
func (h ReportCouriersCommandHandler) Handle(_ context.Context, cmd ReportCouriersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	reported := 0
	for _, pid := range h.couriers.Members() {
		if err := pid.Tell(actors.Report{}); err == nil {
			reported++
		}
	}
	return reported, nil
}
