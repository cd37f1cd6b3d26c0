// Package actors implements the dispatch protocol on top of the actor runtime.
//
// A Router owns a fixed set of Dispatchers. A Courier that receives an
// Invitation asks the router for a dispatcher, enters that dispatcher's zone
// and checks in. A Dispatcher answers the check-in of an unburdened courier
// with a GoToPickUp for one backlog order. Couriers move on Tick messages and
// check in again after every finished leg.
//
// A ConfirmDelivery makes the dispatcher send GoToDeliver for the courier's
// in-flight order. The order is completed only when the courier answers
// DeliveryStarted. After a DeliveryDeclined it stays in flight.
package actors
