// Package guard detects aggregates, value objects and commands that were
// created as zero values instead of through their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types whose zero value is not usable.
// Constructors set it with NewConstructorGuard; Validate methods check it.
//
// Example:
//
//	type ProviderStake struct {
//	    account kernel.AccountID
//	    guard   guard.ConstructorGuard
//	}
//
//	func (p *ProviderStake) Validate() error {
//	    return p.guard.Validate(ErrProviderStakeIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the owning value as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard was never set.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
