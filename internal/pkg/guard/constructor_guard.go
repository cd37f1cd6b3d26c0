package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks values that were built through their constructor.
// Embed it in a struct and call Validate to reject zero values:
//
//	type Tick struct {
//	    guard guard.ConstructorGuard
//	}
//
//	func NewTick() Tick { return Tick{guard: guard.NewConstructorGuard()} }
//
//	func (t Tick) Validate() error { return t.guard.Validate(ErrTickNotConstructed) }
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that reports the object as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
