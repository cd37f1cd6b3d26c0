package actor

import (
	"time"

	"go.uber.org/zap"
)

const (
	defaultStopTimeout = 5 * time.Second
	defaultMailboxHint = 16
)

// Option configures a spawned actor.
type Option func(*PID)

// WithLogger sets the logger handed to the actor through its Context.
func WithLogger(logger *zap.Logger) Option {
	return func(p *PID) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithStopTimeout bounds how long Stop waits for PostStop.
func WithStopTimeout(d time.Duration) Option {
	return func(p *PID) {
		if d > 0 {
			p.stopTimeout = d
		}
	}
}

// WithMailboxHint preallocates room for n messages. The mailbox is unbounded
// regardless.
func WithMailboxHint(n int64) Option {
	return func(p *PID) {
		if n > 0 {
			p.mailboxHint = n
		}
	}
}
