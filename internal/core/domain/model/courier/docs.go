// Package courier models the delivery state of a single courier.
//
// The Courier type is a plain state machine (Idle / EnRoute) with no
// concurrency of its own: the courier actor owns it and is the only writer.
// Travel is measured in ticks; every Advance call consumes one unit of
// remaining distance and, on arrival, applies the leg's effect on cargo:
//   - a pickup adds the order's complexity to Cargo and CargoCounter
//   - a delivery removes the delivered amount from Cargo
package courier
