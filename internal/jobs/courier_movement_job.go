package jobs

import (
	"context"
	"sync"

	"dispatchsim/internal/core/application/usecases/commands"

	"go.uber.org/zap"
)

// TickWaiter blocks until the world clock advances.
type TickWaiter interface {
	WaitForNextTick(ctx context.Context) (uint64, error)
}

// CourierMovementJob moves couriers once per world clock tick.
type CourierMovementJob struct {
	handler commands.MoveCouriersCommandHandler
	clock   TickWaiter
	logger  *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewCourierMovementJob creates a job that moves every courier once per tick.
// It is driven by the world clock rather than cron, so it follows the
// configured tick interval exactly.
//
// Example:
//
//	job := NewCourierMovementJob(handler, clock, logger)
//	if err := job.Start(); err != nil {
//	    return err
//	}
//	defer job.Stop()
func NewCourierMovementJob(handler commands.MoveCouriersCommandHandler, clock TickWaiter, logger *zap.Logger) *CourierMovementJob {
	return &CourierMovementJob{
		handler: handler,
		clock:   clock,
		logger:  logger.With(zap.String("component", "courier_movement_job")),
	}
}

// Name implements Job.
func (j *CourierMovementJob) Name() string {
	return "courier_movement_job"
}

// Start begins waiting for ticks on a background goroutine.
func (j *CourierMovementJob) Start() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.cancel != nil {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	j.cancel = cancel
	j.done = make(chan struct{})

	go func() {
		defer close(j.done)
		for {
			tick, err := j.clock.WaitForNextTick(ctx)
			if err != nil {
				return
			}
			if _, err := j.handler.Handle(ctx, commands.NewMoveCouriersCommand(tick)); err != nil {
				j.logger.Error("courier movement job failed", zap.Uint64("tick", tick), zap.Error(err))
			}
		}
	}()

	j.logger.Info("job started (running every tick)")
	return nil
}

// Stop cancels the tick loop and waits for an in-progress move to finish.
// It is a no-op on a job that was never started.
func (j *CourierMovementJob) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.cancel == nil {
		return
	}
	j.cancel()
	<-j.done
	j.cancel = nil
	j.logger.Info("job stopped")
}
