package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every structured error below unwraps to exactly one of them,
// so callers classify failures with errors.Is.
var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")
	ErrUnauthorized      = errors.New("caller is not authorized")
	ErrInvalidState      = errors.New("invalid state")
	ErrResourceExhausted = errors.New("resource exhausted")
	ErrCollision         = errors.New("identifier collision")
)

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %s)", msg, cause.Error())
}

func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

// ObjectNotFoundError reports a missing order, request, provider or record.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause.Error())
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports malformed input.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	return withCause(msg, e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// UnauthorizedError reports a caller lacking the role an operation requires.
type UnauthorizedError struct {
	Action string
	Cause  error
}

func NewUnauthorizedError(action string) *UnauthorizedError {
	return &UnauthorizedError{Action: action}
}

func NewUnauthorizedErrorWithCause(action string, cause error) *UnauthorizedError {
	return &UnauthorizedError{Action: action, Cause: cause}
}

func (e *UnauthorizedError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrUnauthorized, e.Action), e.Cause)
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// InvalidStateError reports a failed state guard such as a pending-orders
// check or an unexpired cooldown.
type InvalidStateError struct {
	Reason string
	Cause  error
}

func NewInvalidStateError(reason string) *InvalidStateError {
	return &InvalidStateError{Reason: reason}
}

func NewInvalidStateErrorWithCause(reason string, cause error) *InvalidStateError {
	return &InvalidStateError{Reason: reason, Cause: cause}
}

func (e *InvalidStateError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrInvalidState, e.Reason), e.Cause)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// ResourceExhaustedError reports insufficient caller or escrow funds.
type ResourceExhaustedError struct {
	Resource string
	Cause    error
}

func NewResourceExhaustedError(resource string) *ResourceExhaustedError {
	return &ResourceExhaustedError{Resource: resource}
}

func NewResourceExhaustedErrorWithCause(resource string, cause error) *ResourceExhaustedError {
	return &ResourceExhaustedError{Resource: resource, Cause: cause}
}

func (e *ResourceExhaustedError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrResourceExhausted, e.Resource), e.Cause)
}

func (e *ResourceExhaustedError) Unwrap() error {
	return ErrResourceExhausted
}

// CollisionError reports that identifier generation gave up after Attempts tries.
type CollisionError struct {
	Resource string
	Attempts int
}

func NewCollisionError(resource string, attempts int) *CollisionError {
	return &CollisionError{Resource: resource, Attempts: attempts}
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("%s: %s after %d attempts", ErrCollision, e.Resource, e.Attempts)
}

func (e *CollisionError) Unwrap() error {
	return ErrCollision
}
