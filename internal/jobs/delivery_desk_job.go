package jobs

import (
	"context"

	"dispatchsim/internal/core/application/usecases/commands"

	"go.uber.org/zap"
)

// DeliveryDeskJob stands in for the customers: couriers waiting with cargo
// are sent out to deliver it.
type DeliveryDeskJob struct {
	*cronJob
	handler commands.ConfirmDeliveriesCommandHandler
}

// NewDeliveryDeskJob creates a cron job that confirms deliveries for couriers
// waiting with cargo.
func NewDeliveryDeskJob(handler commands.ConfirmDeliveriesCommandHandler, schedule string, logger *zap.Logger) *DeliveryDeskJob {
	j := &DeliveryDeskJob{handler: handler}
	j.cronJob = newCronJob("delivery_desk_job", schedule, logger, j.Run)
	return j
}

func (j *DeliveryDeskJob) Run(ctx context.Context) {
	confirmed, err := j.handler.Handle(ctx, commands.NewConfirmDeliveriesCommand())
	if err != nil {
		j.logger.Warn("delivery desk run incomplete", zap.Int("confirmed", confirmed), zap.Error(err))
		return
	}
	if confirmed > 0 {
		j.logger.Debug("deliveries confirmed", zap.Int("confirmed", confirmed))
	}
}
