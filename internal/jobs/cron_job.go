package jobs

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// cronLogger routes cron's own logs to zap. Scheduler chatter goes to Debug.
type cronLogger struct {
	logger *zap.SugaredLogger
}

// Info implements cron.Logger.
func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debugw(msg, keysAndValues...)
}

// Error implements cron.Logger.
func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Errorw(msg, append(keysAndValues, "error", err)...)
}

// cronJob runs fn on a cron schedule with seconds precision. A run that is
// still going when the next one is due makes that one skip.
type cronJob struct {
	name     string
	schedule string
	fn       func(ctx context.Context)
	cron     *cron.Cron
	logger   *zap.Logger
}

func newCronJob(name, schedule string, logger *zap.Logger, fn func(ctx context.Context)) *cronJob {
	logger = logger.With(zap.String("component", name))
	cl := cronLogger{logger: logger.Sugar()}
	return &cronJob{
		name:     name,
		schedule: schedule,
		fn:       fn,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger: logger,
	}
}

// Name implements Job.
func (j *cronJob) Name() string {
	return j.name
}

// Start registers the schedule and starts the scheduler. An unparsable
// schedule is returned as an error and nothing is started.
func (j *cronJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.fn(context.Background()) }); err != nil {
		return fmt.Errorf("schedule %q: %w", j.schedule, err)
	}
	j.cron.Start()
	j.logger.Info("job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop waits for a running invocation to finish.
func (j *cronJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("job stopped")
}
