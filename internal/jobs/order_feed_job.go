package jobs

import (
	"context"

	"dispatchsim/internal/core/application/usecases/commands"
	"dispatchsim/internal/core/domain/model/kernel"
	"dispatchsim/internal/pkg/rng"

	"go.uber.org/zap"
)

// Complexity of generated orders is drawn from [minFeedComplexity, maxFeedComplexity).
const (
	minFeedComplexity = 1
	maxFeedComplexity = 6
)

// OrderFeedJob stands in for the restaurants: every run places one random
// order with a dispatcher.
type OrderFeedJob struct {
	*cronJob
	handler commands.CreateOrderCommandHandler
	rand    *rng.Source
}

// NewOrderFeedJob creates a cron job that places one random order per run.
//
// Parameters:
//   - handler: routes the order to a dispatcher
//   - rand: source for complexity and restaurant draws
//   - schedule: cron expression with a seconds field
//   - logger: parent logger
func NewOrderFeedJob(handler commands.CreateOrderCommandHandler, rand *rng.Source, schedule string, logger *zap.Logger) *OrderFeedJob {
	j := &OrderFeedJob{handler: handler, rand: rand}
	j.cronJob = newCronJob("order_feed_job", schedule, logger, j.Run)
	return j
}

// Run places a single order with complexity in [1, 6) at a random restaurant.
func (j *OrderFeedJob) Run(ctx context.Context) {
	complexity := uint32(j.rand.Range(minFeedComplexity, maxFeedComplexity)) //nolint:gosec // small positive range
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), complexity, kernel.NewRandomLocation(j.rand))
	if err != nil {
		j.logger.Error("invalid generated order", zap.Error(err))
		return
	}

	dispatcher, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.Warn("order feed failed", zap.Error(err))
		return
	}
	j.logger.Debug("order placed",
		zap.String("dispatcher", dispatcher),
		zap.Stringer("restaurant", cmd.Restaurant()),
		zap.Uint32("complexity", complexity))
}
