package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	Created ──┬──> Paid ──┬──> Fulfilled
//	          │           └──> Refunded
//	          └──> Cancelled
type Status int

const (
	// Unknown catches uninitialised values.
	Unknown Status = iota
	Created
	Paid
	Fulfilled
	Refunded
	Cancelled
)

var statusNames = map[Status]string{
	Created:   "Created",
	Paid:      "Paid",
	Fulfilled: "Fulfilled",
	Refunded:  "Refunded",
	Cancelled: "Cancelled",
}

// TerminalStatuses lists the statuses no transition leaves.
func TerminalStatuses() []Status {
	return []Status{Fulfilled, Refunded, Cancelled}
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// IsTerminal reports whether the order can no longer change.
func (s Status) IsTerminal() bool {
	return s == Fulfilled || s == Refunded || s == Cancelled
}

// Cancel transitions Created -> Cancelled.
func (s Status) Cancel() (Status, error) {
	return s.transition(Created, Cancelled, "cancel")
}

// Pay transitions Created -> Paid.
func (s Status) Pay() (Status, error) {
	return s.transition(Created, Paid, "pay")
}

// Fulfill transitions Paid -> Fulfilled.
func (s Status) Fulfill() (Status, error) {
	return s.transition(Paid, Fulfilled, "fulfill")
}

// Refund transitions Paid -> Refunded.
func (s Status) Refund() (Status, error) {
	return s.transition(Paid, Refunded, "refund")
}

func (s Status) transition(from, to Status, action string) (Status, error) {
	if s != from {
		return Unknown, errs.NewInvalidStateErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to %s", s, action),
		)
	}
	return to, nil
}

// Flow records how the order was initiated.
type Flow int

const (
	UnknownFlow Flow = iota
	// RequestTest is a customer ordering a listed service directly.
	RequestTest
	// StakingRequestService is an order that fulfills a staked service request.
	StakingRequestService
)

var flowNames = map[Flow]string{
	RequestTest:           "RequestTest",
	StakingRequestService: "StakingRequestService",
}

// FlowFromString parses a flow name; an empty string means RequestTest.
func FlowFromString(s string) (Flow, error) {
	if s == "" {
		return RequestTest, nil
	}
	for f, name := range flowNames {
		if name == s {
			return f, nil
		}
	}
	return UnknownFlow, errs.NewValueIsInvalidErrorWithCause("order flow", fmt.Errorf("%q is not an order flow", s))
}

func (f Flow) Validate() error {
	if _, ok := flowNames[f]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("order flow", fmt.Errorf("%d is not a valid order flow", f))
	}
	return nil
}

func (f Flow) String() string {
	if name, ok := flowNames[f]; ok {
		return name
	}
	return "Unknown"
}
