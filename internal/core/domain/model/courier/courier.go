package courier

import (
	"errors"
	"fmt"
	"math"

	"dispatchsim/internal/core/domain/model/kernel"
	"dispatchsim/internal/core/domain/model/order"
	"dispatchsim/internal/pkg/errs"
)

// Domain errors for courier operations.
var (
	// ErrCourierIsNotIdle is returned when a new leg is requested while the courier is en route.
	ErrCourierIsNotIdle = errors.New("courier is not idle")
	// ErrCourierHasNoCargo is returned when a delivery is requested from an unburdened courier.
	ErrCourierHasNoCargo = errors.New("courier has no cargo")
	// ErrCargoCapacityExceeded is returned when a pickup would overflow the cargo counters.
	ErrCargoCapacityExceeded = errors.New("courier cargo capacity exceeded")
	// ErrDistanceIsRequired is returned when a leg is started with a zero distance.
	ErrDistanceIsRequired = errs.NewValueIsRequiredError("distance")
)

// State is the movement state of a courier.
type State int

const (
	// Idle couriers have no destination and accept new legs.
	Idle State = iota
	// EnRoute couriers count their remaining distance down once per tick.
	EnRoute
)

func (s State) String() string {
	if s == EnRoute {
		return "EnRoute"
	}
	return "Idle"
}

// LegKind tells what happens on arrival.
type LegKind int

const (
	NoLeg LegKind = iota
	// PickupLeg adds the order's complexity to the cargo on arrival.
	PickupLeg
	// DeliveryLeg drops the delivered amount on arrival.
	DeliveryLeg
)

func (k LegKind) String() string {
	switch k {
	case PickupLeg:
		return "pickup"
	case DeliveryLeg:
		return "delivery"
	default:
		return "none"
	}
}

// Arrival describes a finished leg.
type Arrival struct {
	Kind     LegKind
	Amount   uint32
	OrderID  *kernel.UUID
	Location kernel.Location
}

// leg is the work the courier is currently travelling for.
type leg struct {
	kind    LegKind
	amount  uint32
	orderID *kernel.UUID
}

// Courier is the delivery state of one courier. It is owned by exactly one
// courier actor and is not safe for concurrent use.
//
// Business rules:
//   - Cargo never goes negative; CargoCounter never decreases
//   - A pickup is accepted only while Idle
//   - A delivery is accepted only while Idle and carrying cargo
//   - A courier may stop only while unburdened
type Courier struct {
	// cargo is the number of units carried right now
	cargo uint32
	// cargoCounter is the total number of units picked up this shift
	cargoCounter uint32
	// droppedOff is the total number of units delivered this shift
	droppedOff uint32
	// location is the last place the courier arrived at
	location kernel.Location
	// destination is set while EnRoute
	destination *kernel.Location
	// remainingDistance counts down to zero on the way to destination
	remainingDistance uint32
	// current is the leg in progress
	current leg
}

// NewCourier returns a courier in its default state: Idle, unburdened, at an
// Unknown location.
func NewCourier() *Courier {
	return &Courier{location: kernel.Unknown}
}

// State reports Idle or EnRoute.
func (c *Courier) State() State {
	if c.destination == nil {
		return Idle
	}
	return EnRoute
}

// Cargo returns the units carried right now.
func (c *Courier) Cargo() uint32 {
	return c.cargo
}

// CargoCounter returns the units picked up this shift. It never decreases.
func (c *Courier) CargoCounter() uint32 {
	return c.cargoCounter
}

// Location returns the last place reached, kernel.Unknown before the first leg.
func (c *Courier) Location() kernel.Location {
	return c.location
}

// Destination returns the current destination, or nil when Idle.
func (c *Courier) Destination() *kernel.Location {
	if c.destination == nil {
		return nil
	}
	d := *c.destination
	return &d
}

// RemainingDistance returns the ticks left on the current leg, 0 when Idle.
func (c *Courier) RemainingDistance() uint32 {
	return c.remainingDistance
}

// IsUnburdened reports whether the courier carries no cargo.
func (c *Courier) IsUnburdened() bool {
	return c.cargo == 0
}

// CanStop reports whether the courier may leave the shift. A courier holding
// cargo never stops.
func (c *Courier) CanStop() bool {
	return c.IsUnburdened()
}

// GoToPickUp starts a leg to the order's restaurant.
//
// Returns ErrCourierIsNotIdle while en route, and ErrCargoCapacityExceeded when
// the pickup would wrap Cargo or CargoCounter. In both cases the order is left
// untouched so the caller can hand it back to its dispatcher.
func (c *Courier) GoToPickUp(o order.DeliveryOrder, distance uint32) error {
	if c.State() != Idle {
		return ErrCourierIsNotIdle
	}
	if err := errors.Join(o.Validate(), validateDistance(distance)); err != nil {
		return err
	}

	if !fits(c.cargo, o.Complexity()) || !fits(c.cargoCounter, o.Complexity()) {
		return fmt.Errorf("%w: %w", ErrCargoCapacityExceeded,
			errs.NewValueIsOutOfRangeError("complexity", o.Complexity(), 1, math.MaxUint32-max(c.cargo, c.cargoCounter)))
	}

	id := o.ID()
	c.start(o.Restaurant(), distance, leg{kind: PickupLeg, amount: o.Complexity(), orderID: &id})
	return nil
}

// GoToDeliver starts a leg that drops amount units at location.
func (c *Courier) GoToDeliver(location kernel.Location, amount uint32, distance uint32) error {
	if c.State() != Idle {
		return ErrCourierIsNotIdle
	}
	if c.cargo == 0 {
		return ErrCourierHasNoCargo
	}
	if amount == 0 || amount > c.cargo {
		return errs.NewValueIsOutOfRangeError("amount", amount, 1, c.cargo)
	}
	if err := errors.Join(location.Validate(), validateDistance(distance)); err != nil {
		return err
	}

	c.start(location, distance, leg{kind: DeliveryLeg, amount: amount})
	return nil
}

// Advance moves the courier one tick along its leg. It returns the arrival
// and true when the leg finishes on this tick; Idle couriers do nothing.
func (c *Courier) Advance() (Arrival, bool) {
	if c.State() != EnRoute {
		return Arrival{}, false
	}

	c.remainingDistance--
	if c.remainingDistance > 0 {
		return Arrival{}, false
	}

	c.location = *c.destination
	c.destination = nil

	finished := c.current
	c.current = leg{}

	switch finished.kind {
	case PickupLeg:
		c.cargo += finished.amount
		c.cargoCounter += finished.amount
	case DeliveryLeg:
		c.cargo -= finished.amount
		c.droppedOff += finished.amount
	case NoLeg:
	}

	return Arrival{
		Kind:     finished.kind,
		Amount:   finished.amount,
		OrderID:  finished.orderID,
		Location: c.location,
	}, true
}

// Report snapshots the courier for its dispatcher.
func (c *Courier) Report() ReportDetails {
	r := ReportDetails{
		Cargo:             c.cargo,
		CargoCounter:      c.cargoCounter,
		DroppedOff:        c.droppedOff,
		Location:          c.location,
		Destination:       kernel.Unknown,
		RemainingDistance: c.remainingDistance,
		State:             c.State(),
		Leg:               c.current.kind,
	}
	if c.destination != nil {
		r.Destination = *c.destination
	}
	return r
}

func (c *Courier) start(destination kernel.Location, distance uint32, l leg) {
	c.destination = &destination
	c.remainingDistance = distance
	c.current = l
}

func validateDistance(distance uint32) error {
	if distance == 0 {
		return ErrDistanceIsRequired
	}
	return nil
}

func fits(total, amount uint32) bool {
	return amount <= math.MaxUint32-total
}
