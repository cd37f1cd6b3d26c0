package worldclock

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// ErrIntervalIsInvalid is returned when the tick interval is not positive.
var ErrIntervalIsInvalid = errors.New("tick interval must be positive")

// Clock advances a monotonic tick counter every interval and wakes every
// goroutine waiting for the next tick.
type Clock struct {
	interval time.Duration
	tick     *atomic.Uint64
	logger   *zap.Logger

	mu sync.Mutex
	// next is closed on every advance and replaced by a fresh channel
	next chan struct{}
}

// NewClock creates a stopped clock at tick 0. Call Run or Start to let it advance.
//
// Example:
//
//	clock, err := worldclock.NewClock(time.Second, logger)
//	if err != nil {
//	    return err
//	}
//	go clock.Run(ctx)
//	tick, err := clock.WaitForNextTick(ctx)
func NewClock(interval time.Duration, logger *zap.Logger) (*Clock, error) {
	if interval <= 0 {
		return nil, ErrIntervalIsInvalid
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Clock{
		interval: interval,
		tick:     atomic.NewUint64(0),
		logger:   logger.With(zap.String("component", "world_clock")),
		next:     make(chan struct{}),
	}, nil
}

// Interval returns the wall-clock duration of one tick.
func (c *Clock) Interval() time.Duration {
	return c.interval
}

// Run advances the clock every interval until ctx is done.
func (c *Clock) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.logger.Info("world clock started", zap.Duration("interval", c.interval))
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("world clock stopped", zap.Uint64("tick", c.CurrentTick()))
			return nil
		case <-ticker.C:
			c.Advance()
		}
	}
}

// Start runs the clock on a background goroutine. The returned channel is
// closed once the loop has exited after ctx is done.
func (c *Clock) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = c.Run(ctx)
	}()
	return done
}

// Advance moves the clock forward by one tick and wakes all waiters.
func (c *Clock) Advance() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.tick.Inc()
	close(c.next)
	c.next = make(chan struct{})
	return t
}

// CurrentTick returns the current tick.
func (c *Clock) CurrentTick() uint64 {
	return c.tick.Load()
}

// WaitForNextTick blocks until the clock has advanced past the tick observed
// on entry and returns the new tick. Wakeups are re-checked against the
// counter, so a returned value is always strictly greater than the entry one.
func (c *Clock) WaitForNextTick(ctx context.Context) (uint64, error) {
	before := c.CurrentTick()
	for {
		c.mu.Lock()
		wake := c.next
		c.mu.Unlock()

		if now := c.CurrentTick(); now > before {
			return now, nil
		}

		select {
		case <-wake:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
}
