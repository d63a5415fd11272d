package sample

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status is the processing state of a sample.
//
//	Registered -> Arrived -> InProgress -> ResultReady
//	      any non-terminal state ------> Rejected
type Status int

const (
	Unknown Status = iota
	Registered
	Arrived
	InProgress
	Rejected
	ResultReady
)

var statusNames = map[Status]string{
	Registered:  "Registered",
	Arrived:     "Arrived",
	InProgress:  "InProgress",
	Rejected:    "Rejected",
	ResultReady: "ResultReady",
}

var progressRank = map[Status]int{
	Registered:  1,
	Arrived:     2,
	InProgress:  3,
	ResultReady: 4,
}

func StatusFromString(s string) (Status, error) {
	for st, name := range statusNames {
		if name == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("sample status", fmt.Errorf("%q is not a sample status", s))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("sample status", fmt.Errorf("%d is not a valid sample status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

func (s Status) IsTerminal() bool {
	return s == Rejected || s == ResultReady
}

// Advance returns next if it lies strictly ahead of s.
func (s Status) Advance(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return Unknown, err
	}
	if s.IsTerminal() {
		return Unknown, errs.NewInvalidStateErrorWithCause("sample status",
			fmt.Errorf("%s is terminal", s))
	}
	if next != Rejected && progressRank[next] <= progressRank[s] {
		return Unknown, errs.NewInvalidStateErrorWithCause("sample status",
			fmt.Errorf("cannot move from %s to %s", s, next))
	}
	return next, nil
}
