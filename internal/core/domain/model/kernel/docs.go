// Package kernel provides the core value objects shared by every part of the
// dispatch simulation.
//
// The package includes:
//   - UUID: identity of actors and delivery orders
//   - Location: a place from the closed symbolic set A..H (plus Unknown)
//
// Both are immutable values and safe to pass between actors.
package kernel
