package order

import (
	"errors"
	"fmt"

	"dispatchsim/internal/core/domain/model/kernel"
	"dispatchsim/internal/pkg/errs"
	"dispatchsim/internal/pkg/guard"
)

// ErrDeliveryOrderIsNotConstructed is returned when a DeliveryOrder was not
// created through NewDeliveryOrder.
var ErrDeliveryOrderIsNotConstructed = errors.New("DeliveryOrder must be created via NewDeliveryOrder constructor")

// MaxComplexity is the largest workload a single order may carry.
const MaxComplexity uint32 = 1000

// DeliveryOrder is a unit of work waiting in a dispatcher's backlog.
//
// DeliveryOrder follows these invariants:
//   - Must have a valid unique identifier
//   - Complexity (the workload size, in cargo units) must be in [1, MaxComplexity]
//   - Restaurant must be a real place, never kernel.Unknown
//   - It is immutable once created; ownership moves from the backlog to the
//     courier's in-flight assignment when it is popped
type DeliveryOrder struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// complexity is the amount of cargo the courier picks up
	complexity uint32

	// restaurant is where the cargo is picked up
	restaurant kernel.Location

	// creationTime is the world clock tick at enqueue
	creationTime uint64

	guard guard.ConstructorGuard
}

// NewDeliveryOrder validates and creates an order.
//
// Example:
//
//	o, err := order.NewDeliveryOrder(kernel.NewUUID(), 3, kernel.C, clock.CurrentTick())
//	if err != nil {
//	    // Handle validation error
//	}
func NewDeliveryOrder(id kernel.UUID, complexity uint32, restaurant kernel.Location, creationTime uint64) (DeliveryOrder, error) {
	o := DeliveryOrder{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setComplexity(complexity),
		o.setRestaurant(restaurant),
	); err != nil {
		return DeliveryOrder{}, err
	}
	o.creationTime = creationTime

	return o, nil
}

// Validate reports whether the order was built through NewDeliveryOrder.
func (o DeliveryOrder) Validate() error {
	return o.guard.Validate(ErrDeliveryOrderIsNotConstructed)
}

// ID returns the order's unique identifier.
func (o DeliveryOrder) ID() kernel.UUID {
	return o.id
}

// Complexity returns the cargo units picked up with this order.
func (o DeliveryOrder) Complexity() uint32 {
	return o.complexity
}

// Restaurant returns the pickup place.
func (o DeliveryOrder) Restaurant() kernel.Location {
	return o.restaurant
}

// CreationTime returns the world clock tick at which the order was enqueued.
func (o DeliveryOrder) CreationTime() uint64 {
	return o.creationTime
}

// IsEqual compares orders by identity.
func (o DeliveryOrder) IsEqual(other DeliveryOrder) bool {
	return o.id.IsEqual(other.id)
}

// String implements fmt.Stringer for log records.
func (o DeliveryOrder) String() string {
	return fmt.Sprintf("Order(%s, complexity=%d, restaurant=%s, t=%d)",
		o.id, o.complexity, o.restaurant, o.creationTime)
}

func (o *DeliveryOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *DeliveryOrder) setComplexity(complexity uint32) error {
	if complexity == 0 {
		return errs.NewValueIsInvalidErrorWithCause("complexity", fmt.Errorf("%d is not greater than 0", complexity))
	}
	if complexity > MaxComplexity {
		return errs.NewValueIsOutOfRangeError("complexity", complexity, 1, MaxComplexity)
	}
	o.complexity = complexity
	return nil
}

func (o *DeliveryOrder) setRestaurant(restaurant kernel.Location) error {
	if err := restaurant.Validate(); err != nil {
		return err
	}
	o.restaurant = restaurant
	return nil
}
