package order

import (
	"fmt"

	"dispatchsim/internal/pkg/errs"
)

// Status is the lifecycle state of an order inside a dispatcher.
//
// State transitions:
//
//	Created ──> Assigned ──> Completed
//	   ^           │
//	   └───────────┘
//	 (requeued when the courier declines or leaves)
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Created orders wait in the backlog.
	Created

	// Assigned orders were handed to a courier with GoToPickUp.
	Assigned

	// Completed orders were sent out for delivery. Final state.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Created:   "Created",
		Assigned:  "Assigned",
		Completed: "Completed",
	}
}

// Validate rejects values outside the Created..Completed range.
func (s Status) Validate() error {
	if s < Created || s > Completed {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Assign moves a backlog order to Assigned.
func (s Status) Assign() (Status, error) {
	if s != Created {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to assign", s),
		)
	}
	return Assigned, nil
}

// Requeue moves an assigned order back to Created.
func (s Status) Requeue() (Status, error) {
	if s != Assigned {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to requeue", s),
		)
	}
	return Created, nil
}

// Complete finishes an assigned order.
func (s Status) Complete() (Status, error) {
	if s != Assigned {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s),
		)
	}
	return Completed, nil
}
