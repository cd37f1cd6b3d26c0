package actor

// Behavior is implemented by every actor. The runtime calls the hooks on the
// actor's own goroutine, one at a time, so a Behavior may keep its state in
// plain fields.
type Behavior interface {
	// PreStart runs before the first message is processed. A non-nil error
	// aborts the spawn.
	PreStart(ctx *Context) error
	// Receive handles a single message.
	Receive(ctx *Context)
	// PostStop runs once after the last message was processed.
	PostStop(ctx *Context) error
}

// PoisonPill stops the receiving actor once every message queued before it
// has been processed.
type PoisonPill struct{}

// PipeFailure is delivered to an actor when a task started with
// Context.PipeToSelf returns an error.
type PipeFailure struct {
	Err error
}
