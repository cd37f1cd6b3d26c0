package jobs

import (
	"context"

	"dispatchsim/internal/core/application/usecases/commands"

	"go.uber.org/zap"
)

// CourierReportJob makes every courier check in with its dispatcher, so idle
// couriers pick up orders that arrived after their last check-in.
type CourierReportJob struct {
	*cronJob
	handler commands.ReportCouriersCommandHandler
}

// NewCourierReportJob creates a cron job that asks every courier to check in.
func NewCourierReportJob(handler commands.ReportCouriersCommandHandler, schedule string, logger *zap.Logger) *CourierReportJob {
	j := &CourierReportJob{handler: handler}
	j.cronJob = newCronJob("courier_report_job", schedule, logger, j.Run)
	return j
}

// Run tells Report to every pooled courier. Failures are logged, never returned.
func (j *CourierReportJob) Run(ctx context.Context) {
	if _, err := j.handler.Handle(ctx, commands.NewReportCouriersCommand()); err != nil {
		j.logger.Error("courier report job failed", zap.Error(err))
	}
}
