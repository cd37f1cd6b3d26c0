package jobs

import (
	"context"
	"errors"
	"sync"

	"dispatchsim/internal/core/application/pool"
	"dispatchsim/internal/core/application/usecases/commands"
	"dispatchsim/internal/core/ports"

	"go.uber.org/zap"
)

// ChurnJob fluctuates the courier population. Each run converts the ticks
// elapsed since the previous run into joins and leaves.
type ChurnJob struct {
	*cronJob
	handler   commands.SimulateFluctuationCommandHandler
	clock     ports.Clock
	joinRate  float64
	leaveRate float64

	mu       sync.Mutex
	lastTick uint64
}

// NewChurnJob creates a churn job that fluctuates the courier pool on schedule.
// The first run measures elapsed ticks from the clock's current tick, so a job
// created mid-simulation does not replay the ticks that came before it.
//
// Parameters:
//   - handler: applies the fluctuation to the courier pool
//   - clock: source of the current world tick
//   - joinRate, leaveRate: expected joins and leaves per tick
//   - schedule: cron expression with a seconds field, e.g. "@every 10s"
//   - logger: parent logger; the job logs under the churn_job component
func NewChurnJob(
	handler commands.SimulateFluctuationCommandHandler,
	clock ports.Clock,
	joinRate, leaveRate float64,
	schedule string,
	logger *zap.Logger,
) *ChurnJob {
	j := &ChurnJob{
		handler:   handler,
		clock:     clock,
		joinRate:  joinRate,
		leaveRate: leaveRate,
		lastTick:  clock.CurrentTick(),
	}
	j.cronJob = newCronJob("churn_job", schedule, logger, j.Run)
	return j
}

// Run applies churn for the elapsed ticks.
func (j *ChurnJob) Run(ctx context.Context) {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.clock.CurrentTick()
	elapsed := now - j.lastTick
	if elapsed == 0 {
		return
	}
	j.lastTick = now

	cmd, err := commands.NewSimulateFluctuationCommand(j.joinRate, j.leaveRate, elapsed)
	if err != nil {
		j.logger.Error("invalid churn rates", zap.Error(err))
		return
	}

	f, err := j.handler.Handle(ctx, cmd)
	switch {
	case errors.Is(err, pool.ErrInvalidChurnCount):
		j.logger.Warn("churn skipped", zap.Error(err))
	case err != nil:
		j.logger.Error("churn failed", zap.Error(err))
	default:
		j.logger.Debug("churn applied",
			zap.Uint64("ticks", elapsed),
			zap.Int("joined", len(f.Joined)),
			zap.Int("left", len(f.Left)),
			zap.Int("size", f.Size))
	}
}
