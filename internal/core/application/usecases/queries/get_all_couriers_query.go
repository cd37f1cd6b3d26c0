// Package queries contains read operations over the running simulation.
// Queries ask actors for snapshots and never change their state.
package queries

import (
	"errors"

	"dispatchsim/internal/pkg/guard"
)

// ErrGetAllCouriersQueryIsNotConstructed is returned by Validate on a zero value.
var ErrGetAllCouriersQueryIsNotConstructed = errors.New(
	"GetAllCouriersQuery must be created via NewGetAllCouriersQuery constructor",
)

// GetAllCouriersQuery retrieves the status of every courier on shift.
//
// Example:
//
//	handler := NewGetAllCouriersQueryHandler(couriers, time.Second)
//	statuses, err := handler.Handle(ctx, NewGetAllCouriersQuery())
//	if err != nil {
//	    return fmt.Errorf("failed to inspect couriers: %w", err)
//	}
//	for _, s := range statuses {
//	    fmt.Printf("%s at %s carrying %d\n", s.Name, s.Location, s.Cargo)
//	}
type GetAllCouriersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllCouriersQuery creates the query. It carries no filters.
func NewGetAllCouriersQuery() GetAllCouriersQuery {
	return GetAllCouriersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllCouriersQueryIsNotConstructed)
}
