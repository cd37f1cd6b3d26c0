package actor

import (
	"context"

	"go.uber.org/zap"
)

// Context is handed to every Behavior hook. It is only valid for the duration
// of the hook call.
type Context struct {
	ctx       context.Context
	self      *PID
	message   any
	replyTo   chan<- reply
	responded bool
}

// Self returns the PID of the running actor.
func (c *Context) Self() *PID {
	return c.self
}

// Message returns the message being processed. It is nil in PreStart and PostStop.
func (c *Context) Message() any {
	return c.message
}

// Context returns the actor's lifetime context. It is cancelled once the actor
// has stopped.
func (c *Context) Context() context.Context {
	return c.ctx
}

// Logger returns the actor's logger.
func (c *Context) Logger() *zap.Logger {
	return c.self.logger
}

// Respond answers the current Ask. It is a no-op for messages that were told,
// and only the first call per message counts.
func (c *Context) Respond(v any) {
	if c.replyTo == nil || c.responded {
		return
	}
	c.responded = true
	c.replyTo <- reply{value: v}
}

// Stop makes the actor stop right after the current message. Use it instead of
// PID.Stop from inside Receive, which would wait on itself.
func (c *Context) Stop() {
	c.self.stopRequested = true
}

// Unhandled logs a message the behavior does not understand.
func (c *Context) Unhandled() {
	c.self.logger.Warn("unhandled message", zap.String("type", typeName(c.message)))
}

// PipeToSelf runs task on its own goroutine and delivers the result back to
// the actor's mailbox: the returned value on success, PipeFailure otherwise.
// The task's context is cancelled when the actor stops, and the actor does not
// finish stopping until the task has returned.
func (c *Context) PipeToSelf(task func(ctx context.Context) (any, error)) {
	p := c.self
	p.tasks.Add(1)
	go func() {
		defer p.tasks.Done()
		result, err := task(p.ctx)
		if err != nil {
			_ = p.Tell(PipeFailure{Err: err})
			return
		}
		if result != nil {
			_ = p.Tell(result)
		}
	}()
}
