package actors

import (
	"dispatchsim/internal/core/domain/model/courier"
	"dispatchsim/internal/core/domain/model/kernel"
	"dispatchsim/internal/core/domain/model/order"
	"dispatchsim/internal/core/domain/services"
	"dispatchsim/internal/pkg/actor"
)

// Router messages.
type (
	// RequestAssignment asks the router for a dispatcher. Reply: *actor.PID.
	RequestAssignment struct{}
	// ListDispatchers asks for the fixed dispatcher set. Reply: []*actor.PID.
	ListDispatchers struct{}
)

// Dispatcher messages.
type (
	// EnteredZone registers a courier with the dispatcher.
	EnteredZone struct {
		Courier *actor.PID
	}
	// LeftZone unregisters a courier; its in-flight order goes back to the backlog.
	LeftZone struct {
		Courier *actor.PID
	}
	// CheckIn reports a courier's state; an unburdened courier may get a pickup.
	CheckIn struct {
		Courier *actor.PID
		Report  courier.ReportDetails
	}
	// EnqueueOrder adds an order to the backlog.
	EnqueueOrder struct {
		Order order.DeliveryOrder
	}
	// ConfirmDelivery sends the courier carrying the in-flight order to its destination.
	ConfirmDelivery struct {
		Courier     *actor.PID
		Destination kernel.Location
	}
	// PickUpDeclined hands an order back when the courier could not take it.
	PickUpDeclined struct {
		Courier *actor.PID
		Order   order.DeliveryOrder
	}
	// DeliveryStarted tells the dispatcher the courier accepted the delivery
	// leg for OrderID. The in-flight order is completed on receipt.
	DeliveryStarted struct {
		Courier *actor.PID
		OrderID kernel.UUID
	}
	// DeliveryDeclined tells the dispatcher the courier could not start the
	// delivery leg. The order stays in flight until a later confirmation
	// succeeds or the courier leaves the zone.
	DeliveryDeclined struct {
		Courier *actor.PID
		OrderID kernel.UUID
		Reason  string
	}
	// InspectDispatcher asks for a DispatcherSnapshot.
	InspectDispatcher struct{}
)

// DispatcherSnapshot is the reply to InspectDispatcher.
type DispatcherSnapshot struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	services.Snapshot
}

// Courier messages.
type (
	// Invitation hands the courier the router it should ask for a dispatcher.
	Invitation struct {
		Router *actor.PID
	}
	// GoToPickUp sends an idle courier to the order's restaurant.
	GoToPickUp struct {
		Order order.DeliveryOrder
	}
	// GoToDeliver sends an idle, burdened courier to drop Amount units of
	// order OrderID at Location. The courier answers its dispatcher with
	// DeliveryStarted or DeliveryDeclined.
	GoToDeliver struct {
		OrderID  kernel.UUID
		Location kernel.Location
		Amount   uint32
	}
	// Report makes the courier check in with its dispatcher.
	Report struct{}
	// Relieve asks the courier to leave the shift. It is declined while the
	// courier carries cargo.
	Relieve struct{}
	// Tick advances the courier by one unit of simulated time.
	Tick struct {
		Tick uint64
	}
	// InspectCourier asks for a CourierStatus.
	InspectCourier struct{}

	// assigned is piped back to the courier once the router has answered.
	assigned struct {
		dispatcher *actor.PID
	}
)

// CourierStatus is the reply to InspectCourier.
type CourierStatus struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Dispatcher string `json:"dispatcher,omitempty"`
	Relieving  bool   `json:"relieving"`
	State      string `json:"state"`
	courier.ReportDetails

	DispatcherPID *actor.PID `json:"-"`
}

// IsAwaitingDelivery reports whether the courier sits idle with cargo, ready
// to be sent to a customer.
func (s CourierStatus) IsAwaitingDelivery() bool {
	return s.DispatcherPID != nil && s.IsIdle() && !s.IsUnburdened()
}
