package servicerequest

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status is the state of a service request.
//
//	Open -> Claimed -> Processed -> Finalized
//	Open | Claimed | Processed -> WaitingForUnstaked -> Unstaked
type Status int

const (
	Unknown Status = iota
	Open
	Claimed
	Processed
	Finalized
	WaitingForUnstaked
	Unstaked
)

var statusNames = map[Status]string{
	Open:               "Open",
	Claimed:            "Claimed",
	Processed:          "Processed",
	Finalized:          "Finalized",
	WaitingForUnstaked: "WaitingForUnstaked",
	Unstaked:           "Unstaked",
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("request status", fmt.Errorf("%d is not a valid request status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// IsClosed reports whether the request left every requester index.
func (s Status) IsClosed() bool {
	return s == Finalized || s == Unstaked
}

func (s Status) isWithdrawable() bool {
	return s == Open || s == Claimed || s == Processed
}
