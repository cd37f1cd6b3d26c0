// Package actor is a small in-process actor runtime.
//
// Every actor owns an unbounded FIFO mailbox and processes one message at a
// time on its own goroutine, so its state needs no locks. Actors are reached
// only through a *PID:
//   - Tell is fire-and-forget
//   - Ask waits for a reply with a bounded timeout
//   - Stop delivers a PoisonPill and waits for PostStop
//
// Blocking work inside an actor belongs in Context.PipeToSelf, which runs on a
// separate goroutine and feeds its result back into the mailbox.
package actor
