// Package errs provides the error taxonomy shared by the marketplace engine.
//
// Every failure surfaced by a command belongs to one category, represented by
// a sentinel error:
//   - ErrObjectNotFound: an order, request, provider or record is absent
//   - ErrUnauthorized: the caller lacks the identity the operation requires
//   - ErrInvalidState: a state guard failed (pending orders, cooldown, ...)
//   - ErrResourceExhausted: caller or escrow funds are insufficient
//   - ErrCollision: identifier generation exhausted its retries
//   - ErrValueIsInvalid, ErrValueIsRequired, ErrValueIsOutOfRange: bad input
//
// Each category has a struct type carrying details and an optional Cause,
// constructors with and without cause, and an Unwrap method returning the
// sentinel. Domain packages declare their named errors as instances of these
// types, so both the specific error and its category match errors.Is.
package errs
