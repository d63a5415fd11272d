package stake

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status is the collateral state of a provider.
//
//	Unstaked -> Staked -> WaitingForUnstaked -> Unstaked
type Status int

const (
	UnknownStatus Status = iota
	Unstaked
	Staked
	WaitingForUnstaked
)

var statusNames = map[Status]string{
	Unstaked:           "Unstaked",
	Staked:             "Staked",
	WaitingForUnstaked: "WaitingForUnstaked",
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("stake status", fmt.Errorf("%d is not a valid stake status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// Verification is the admin's review outcome for a provider.
type Verification int

const (
	UnknownVerification Verification = iota
	Unverified
	Verified
	Rejected
	Revoked
)

var verificationNames = map[Verification]string{
	Unverified: "Unverified",
	Verified:   "Verified",
	Rejected:   "Rejected",
	Revoked:    "Revoked",
}

func VerificationFromString(s string) (Verification, error) {
	for v, name := range verificationNames {
		if name == s {
			return v, nil
		}
	}
	return UnknownVerification, errs.NewValueIsInvalidErrorWithCause("verification status",
		fmt.Errorf("%q is not a verification status", s))
}

func (v Verification) Validate() error {
	if _, ok := verificationNames[v]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("verification status", fmt.Errorf("%d is not a valid verification status", v))
	}
	return nil
}

func (v Verification) String() string {
	if name, ok := verificationNames[v]; ok {
		return name
	}
	return "Unknown"
}

// Availability tells customers whether the provider accepts new work.
type Availability int

const (
	UnknownAvailability Availability = iota
	Available
	Unavailable
)

func AvailabilityFromString(s string) (Availability, error) {
	switch s {
	case "Available":
		return Available, nil
	case "Unavailable":
		return Unavailable, nil
	default:
		return UnknownAvailability, errs.NewValueIsInvalidErrorWithCause("availability",
			fmt.Errorf("%q is not an availability", s))
	}
}

func (a Availability) Validate() error {
	if a != Available && a != Unavailable {
		return errs.NewValueIsInvalidErrorWithCause("availability", fmt.Errorf("%d is not a valid availability", a))
	}
	return nil
}

func (a Availability) String() string {
	switch a {
	case Available:
		return "Available"
	case Unavailable:
		return "Unavailable"
	default:
		return "Unknown"
	}
}
