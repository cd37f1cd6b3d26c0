package queries

import (
	"errors"

	"dispatchsim/internal/pkg/guard"
)

// ErrGetDispatchersQueryIsNotConstructed is returned by Validate on a zero value.
var ErrGetDispatchersQueryIsNotConstructed = errors.New(
	"GetDispatchersQuery must be created via NewGetDispatchersQuery constructor",
)

// GetDispatchersQuery retrieves a snapshot of every dispatcher.
type GetDispatchersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetDispatchersQuery creates the query.
func NewGetDispatchersQuery() GetDispatchersQuery {
	return GetDispatchersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetDispatchersQuery) Validate() error {
	return q.guard.Validate(ErrGetDispatchersQueryIsNotConstructed)
}
