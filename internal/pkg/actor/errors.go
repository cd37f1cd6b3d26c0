package actor

import "errors"

var (
	// ErrChannelClosed is returned when a message is sent to an actor that has stopped.
	ErrChannelClosed = errors.New("actor mailbox is closed")
	// ErrRequestTimeout is returned when an Ask is not answered within its timeout.
	ErrRequestTimeout = errors.New("request timed out")
	// ErrUnexpectedReply is returned by AskAs when the reply has the wrong type.
	ErrUnexpectedReply = errors.New("unexpected reply type")
	// ErrStopTimeout is returned by Stop when PostStop did not finish in time.
	ErrStopTimeout = errors.New("actor did not stop in time")
)
