// Package order provides the delivery order value and its lifecycle status.
//
// The package includes:
//   - DeliveryOrder: an immutable unit of work (complexity, restaurant, creation tick)
//   - Status: the state machine a dispatcher applies to its in-flight orders
//
// Key business rules:
//   - Orders must have a valid identifier, a positive complexity and a real restaurant
//   - Status follows Created -> Assigned -> Completed, with Assigned -> Created
//     when a courier declines the pickup or leaves the shift
package order
