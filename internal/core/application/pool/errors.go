package pool

import (
	"errors"
	"fmt"

	"dispatchsim/internal/pkg/errs"
)

// ErrInvalidChurnCount is returned when a churn count is negative or larger
// than the pool.
var ErrInvalidChurnCount = errors.New("invalid churn count")

// InvalidChurnCountError carries the rejected count. It matches both
// ErrInvalidChurnCount and errs.ErrValueIsOutOfRange.
type InvalidChurnCountError struct {
	Op        string
	Requested int
	Available int
}

func newInvalidChurnCountError(op string, requested, available int) *InvalidChurnCountError {
	return &InvalidChurnCountError{Op: op, Requested: requested, Available: available}
}

func (e *InvalidChurnCountError) Error() string {
	return fmt.Sprintf("%s: %s requested %d, available %d", ErrInvalidChurnCount, e.Op, e.Requested, e.Available)
}

// Unwrap lets errors.Is match both sentinels.
func (e *InvalidChurnCountError) Unwrap() []error {
	return []error{ErrInvalidChurnCount, errs.ErrValueIsOutOfRange}
}
