package actor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Workiva/go-datastructures/queue"
	"github.com/google/uuid"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

type reply struct {
	value any
	err   error
}

type envelope struct {
	message any
	replyTo chan reply
}

// PID is the address of a running actor. It is safe for concurrent use and
// is the only way to reach the actor's state.
type PID struct {
	id   string
	name string

	behavior Behavior
	mailbox  *queue.Queue
	running  *atomic.Bool

	ctx    context.Context
	cancel context.CancelFunc
	tasks  sync.WaitGroup

	logger      *zap.Logger
	stopTimeout time.Duration
	mailboxHint int64

	// owned by the actor goroutine
	stopRequested bool

	stopped chan struct{}
}

// Spawn starts behavior on its own goroutine. PreStart runs before Spawn
// returns; its error is returned and the actor is not started.
//
// The actor outlives ctx: it runs until stopped, and ctx only provides values.
func Spawn(ctx context.Context, name string, behavior Behavior, opts ...Option) (*PID, error) {
	p := &PID{
		id:          uuid.NewString(),
		name:        name,
		behavior:    behavior,
		running:     atomic.NewBool(false),
		logger:      zap.NewNop(),
		stopTimeout: defaultStopTimeout,
		mailboxHint: defaultMailboxHint,
		stopped:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With(zap.String("actor", name))
	p.mailbox = queue.New(p.mailboxHint)
	p.ctx, p.cancel = context.WithCancel(context.WithoutCancel(ctx))

	// messages told during PreStart wait in the mailbox
	p.running.Store(true)
	if err := behavior.PreStart(&Context{ctx: p.ctx, self: p}); err != nil {
		p.running.Store(false)
		p.cancel()
		p.tasks.Wait()
		p.mailbox.Dispose()
		close(p.stopped)
		return nil, fmt.Errorf("pre-start %s: %w", name, err)
	}

	go p.receiveLoop()
	return p, nil
}

// ID returns the unique identity of the actor.
func (p *PID) ID() string {
	return p.id
}

// Name returns the name given at spawn.
func (p *PID) Name() string {
	return p.name
}

// Equals reports whether both PIDs address the same actor.
func (p *PID) Equals(other *PID) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.id == other.id
}

// IsRunning reports whether the actor still accepts messages.
func (p *PID) IsRunning() bool {
	return p != nil && p.running.Load()
}

// String returns the actor name.
func (p *PID) String() string {
	return p.name
}

// Tell enqueues msg without waiting. It returns ErrChannelClosed when the
// actor has stopped.
func (p *PID) Tell(msg any) error {
	return p.enqueue(envelope{message: msg})
}

// Ask sends msg and waits for the actor to Respond. It fails with
// ErrRequestTimeout when no reply arrives within timeout, with ctx.Err() when
// ctx ends first, and with ErrChannelClosed when the actor stops without
// answering.
func (p *PID) Ask(ctx context.Context, msg any, timeout time.Duration) (any, error) {
	replyTo := make(chan reply, 1)
	if err := p.enqueue(envelope{message: msg, replyTo: replyTo}); err != nil {
		return nil, err
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case r := <-replyTo:
		return r.value, r.err
	case <-timer.C:
		return nil, ErrRequestTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// AskAs is Ask with the reply asserted to T.
func AskAs[T any](ctx context.Context, p *PID, msg any, timeout time.Duration) (T, error) {
	var zero T
	v, err := p.Ask(ctx, msg, timeout)
	if err != nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: got %s, want %s", ErrUnexpectedReply, typeName(v), typeName(zero))
	}
	return out, nil
}

// Stop sends a PoisonPill and waits until PostStop has run. Messages queued
// before the pill are still processed. Stopping a stopped actor is a no-op.
//
// Stop must not be called from the actor's own Receive; use Context.Stop.
func (p *PID) Stop(ctx context.Context) error {
	if err := p.enqueue(envelope{message: PoisonPill{}}); err != nil && !errors.Is(err, ErrChannelClosed) {
		return err
	}

	timer := time.NewTimer(p.stopTimeout)
	defer timer.Stop()

	select {
	case <-p.stopped:
		return nil
	case <-timer.C:
		return fmt.Errorf("stop %s: %w", p.name, ErrStopTimeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed once the actor has fully stopped.
func (p *PID) Done() <-chan struct{} {
	return p.stopped
}

func (p *PID) enqueue(env envelope) error {
	if p == nil || !p.running.Load() {
		return ErrChannelClosed
	}
	if err := p.mailbox.Put(env); err != nil {
		if errors.Is(err, queue.ErrDisposed) {
			return ErrChannelClosed
		}
		return err
	}
	return nil
}

func (p *PID) receiveLoop() {
	defer close(p.stopped)

	for {
		items, err := p.mailbox.Get(1)
		if err != nil || len(items) == 0 {
			break
		}
		env, ok := items[0].(envelope)
		if !ok {
			continue
		}
		if _, stop := env.message.(PoisonPill); stop {
			break
		}
		p.handle(env)
		if p.stopRequested {
			break
		}
	}

	p.running.Store(false)
	p.cancel()
	p.tasks.Wait()

	for _, item := range p.mailbox.Dispose() {
		if env, ok := item.(envelope); ok && env.replyTo != nil {
			env.replyTo <- reply{err: ErrChannelClosed}
		}
	}

	if err := p.behavior.PostStop(&Context{ctx: p.ctx, self: p}); err != nil {
		p.logger.Warn("post-stop failed", zap.Error(err))
	}
	p.logger.Debug("actor stopped")
}

func (p *PID) handle(env envelope) {
	rctx := &Context{ctx: p.ctx, self: p, message: env.message, replyTo: env.replyTo}

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("actor panicked", zap.Any("panic", r), zap.String("message", typeName(env.message)))
			if env.replyTo != nil && !rctx.responded {
				rctx.responded = true
				env.replyTo <- reply{err: fmt.Errorf("actor %s panicked: %v", p.name, r)}
			}
		}
	}()

	p.behavior.Receive(rctx)
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
