// Package guard provides a construction marker for commands, queries,
// and value objects. Embedding a ConstructorGuard lets a type detect whether it
// was created through its designated constructor or as a zero value, so that
// handlers can reject improperly built inputs before touching persistence.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the guarded object
// was not constructed and no specific error was supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as having been created through its
// constructor function. The zero value fails validation.
//
// Example usage:
//
//	type UpdateProgressCommand struct {
//	    orderID kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewUpdateProgressCommand(orderID kernel.UUID) (UpdateProgressCommand, error) {
//	    return UpdateProgressCommand{
//	        orderID: orderID,
//	        guard:   guard.NewConstructorGuard(),
//	    }, nil
//	}
//
//	func (c UpdateProgressCommand) Validate() error {
//	    return c.guard.Validate(ErrUpdateProgressCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks an object as properly
// constructed. Call it in the constructor of the guarded type.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded object was created through its
// constructor. Returns the provided validationError (or
// ErrDefaultConstructorGuard when nil) for zero-value instances.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
