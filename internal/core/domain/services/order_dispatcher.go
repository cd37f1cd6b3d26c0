package services

import (
	"errors"

	"dispatchsim/internal/core/domain/model/courier"
	"dispatchsim/internal/core/domain/model/kernel"
	"dispatchsim/internal/core/domain/model/order"

	mapset "github.com/deckarep/golang-set/v2"
)

// Dispatch outcomes that leave the dispatcher unchanged.
var (
	// ErrBacklogIsEmpty marks a check-in against an empty backlog. It is a
	// defined no-op, not a failure.
	ErrBacklogIsEmpty = errors.New("backlog is empty")
	// ErrCourierIsBurdened is returned when the reporting courier still carries cargo.
	ErrCourierIsBurdened = errors.New("courier is burdened")
	// ErrCourierHasAssignment is returned when the courier already has an order in flight.
	ErrCourierHasAssignment = errors.New("courier already has an assignment")
	// ErrAssignmentNotFound is returned when a courier has no order in flight.
	ErrAssignmentNotFound = errors.New("assignment not found")
)

// Assignment is an order in flight together with its lifecycle status.
type Assignment struct {
	Order  order.DeliveryOrder
	Status order.Status
}

// OrderDispatcher holds the state of one dispatcher: the couriers in its zone,
// the backlog of waiting orders and the orders currently in flight.
//
// Business rules:
//   - A courier is registered at most once
//   - Only an unburdened courier without an order in flight gets a new order
//   - Every order is either in the backlog or assigned to exactly one courier
//   - Orders of a courier that leaves or declines go back to the backlog
//
// OrderDispatcher is not safe for concurrent use; the dispatcher actor owns it.
type OrderDispatcher struct {
	policy      BacklogPolicy
	couriers    mapset.Set[string]
	backlog     []order.DeliveryOrder
	assignments map[string]*Assignment
	completed   uint64
}

// NewOrderDispatcher creates an empty dispatcher that pops its backlog per policy.
func NewOrderDispatcher(policy BacklogPolicy) *OrderDispatcher {
	return &OrderDispatcher{
		policy:      policy,
		couriers:    mapset.NewThreadUnsafeSet[string](),
		assignments: make(map[string]*Assignment),
	}
}

// Policy returns the backlog discipline.
func (d *OrderDispatcher) Policy() BacklogPolicy {
	return d.policy
}

// Register adds the courier to the zone. It reports whether the courier was new.
func (d *OrderDispatcher) Register(courierID string) bool {
	return d.couriers.Add(courierID)
}

// Unregister removes the courier from the zone. An order the courier had in
// flight goes back to the backlog and is returned.
func (d *OrderDispatcher) Unregister(courierID string) []order.DeliveryOrder {
	d.couriers.Remove(courierID)

	a, ok := d.assignments[courierID]
	if !ok {
		return nil
	}
	delete(d.assignments, courierID)
	d.backlog = append(d.backlog, a.Order)
	return []order.DeliveryOrder{a.Order}
}

// IsRegistered reports whether the courier is in the zone.
func (d *OrderDispatcher) IsRegistered(courierID string) bool {
	return d.couriers.Contains(courierID)
}

// Enqueue adds an order to the backlog.
func (d *OrderDispatcher) Enqueue(o order.DeliveryOrder) error {
	if err := o.Validate(); err != nil {
		return err
	}
	d.backlog = append(d.backlog, o)
	return nil
}

// Dispatch pops one order for the checking-in courier and records it as the
// courier's assignment.
//
// Returns ErrCourierIsBurdened, ErrCourierHasAssignment or ErrBacklogIsEmpty
// when nothing should be handed out; the dispatcher is unchanged in that case.
func (d *OrderDispatcher) Dispatch(courierID string, report courier.ReportDetails) (order.DeliveryOrder, error) {
	if !report.IsUnburdened() {
		return order.DeliveryOrder{}, ErrCourierIsBurdened
	}
	if _, busy := d.assignments[courierID]; busy {
		return order.DeliveryOrder{}, ErrCourierHasAssignment
	}
	if len(d.backlog) == 0 {
		return order.DeliveryOrder{}, ErrBacklogIsEmpty
	}

	o := d.pop()

	status, err := order.Created.Assign()
	if err != nil {
		return order.DeliveryOrder{}, err
	}
	d.assignments[courierID] = &Assignment{Order: o, Status: status}

	return o, nil
}

// Decline puts the courier's order back into the backlog after it refused the pickup.
func (d *OrderDispatcher) Decline(courierID string, orderID kernel.UUID) error {
	a, ok := d.assignments[courierID]
	if !ok || !a.Order.ID().IsEqual(orderID) {
		return ErrAssignmentNotFound
	}

	if _, err := a.Status.Requeue(); err != nil {
		return err
	}
	delete(d.assignments, courierID)
	d.backlog = append(d.backlog, a.Order)
	return nil
}

// Complete closes the courier's assignment once its cargo has been delivered.
func (d *OrderDispatcher) Complete(courierID string) (order.DeliveryOrder, error) {
	a, ok := d.assignments[courierID]
	if !ok {
		return order.DeliveryOrder{}, ErrAssignmentNotFound
	}

	if _, err := a.Status.Complete(); err != nil {
		return order.DeliveryOrder{}, err
	}
	delete(d.assignments, courierID)
	d.completed++
	return a.Order, nil
}

// InFlight returns the courier's current assignment.
func (d *OrderDispatcher) InFlight(courierID string) (Assignment, bool) {
	a, ok := d.assignments[courierID]
	if !ok {
		return Assignment{}, false
	}
	return *a, true
}

// Snapshot summarizes the dispatcher.
func (d *OrderDispatcher) Snapshot() Snapshot {
	return Snapshot{
		Policy:             d.policy,
		RegisteredCouriers: d.couriers.Cardinality(),
		Backlog:            len(d.backlog),
		InFlight:           len(d.assignments),
		Completed:          d.completed,
	}
}

func (d *OrderDispatcher) pop() order.DeliveryOrder {
	var o order.DeliveryOrder
	switch d.policy {
	case FIFO:
		o = d.backlog[0]
		d.backlog[0] = order.DeliveryOrder{}
		d.backlog = d.backlog[1:]
	default:
		last := len(d.backlog) - 1
		o = d.backlog[last]
		d.backlog = d.backlog[:last]
	}
	return o
}

// Snapshot is a point-in-time summary of an OrderDispatcher.
type Snapshot struct {
	Policy             BacklogPolicy `json:"policy"`
	RegisteredCouriers int           `json:"registeredCouriers"`
	Backlog            int           `json:"backlog"`
	InFlight           int           `json:"inFlight"`
	Completed          uint64        `json:"completed"`
}
