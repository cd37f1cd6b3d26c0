// Package services provides domain services that coordinate couriers and
// orders.
//
// The package includes:
//   - OrderDispatcher: the zone registry, order backlog and in-flight
//     assignments of a single dispatcher
//   - BacklogPolicy: which waiting order is handed out next (LIFO or FIFO)
//
// Services here hold no locks. Each instance belongs to one actor, which
// serializes every call.
package services
