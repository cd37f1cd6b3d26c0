package services

import (
	"fmt"
	"strings"

	"dispatchsim/internal/pkg/errs"
)

// BacklogPolicy decides which waiting order a dispatcher hands out next.
type BacklogPolicy int

const (
	// LIFO hands out the most recently enqueued order first. Fresh orders are
	// served quickly while old ones may starve under load.
	LIFO BacklogPolicy = iota
	// FIFO hands out the oldest order first.
	FIFO
)

func (p BacklogPolicy) String() string {
	if p == FIFO {
		return "fifo"
	}
	return "lifo"
}

// ParseBacklogPolicy accepts "lifo" or "fifo", case-insensitive.
func ParseBacklogPolicy(s string) (BacklogPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lifo":
		return LIFO, nil
	case "fifo":
		return FIFO, nil
	default:
		return LIFO, errs.NewValueIsInvalidErrorWithCause("backlogPolicy", fmt.Errorf("%q is neither lifo nor fifo", s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p BacklogPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *BacklogPolicy) UnmarshalText(text []byte) error {
	parsed, err := ParseBacklogPolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
