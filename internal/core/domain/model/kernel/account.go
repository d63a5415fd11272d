package kernel

import (
	"strings"

	"marketplace/internal/pkg/errs"
)

const accountIDMaxLength = 128

// ErrAccountIDIsRequired is returned for an empty account identifier.
var ErrAccountIDIsRequired = errs.NewValueIsRequiredError("account id")

// AccountID is the authenticated identity of a customer, provider or authority.
// Identities are opaque; signature verification happens before the core is invoked.
type AccountID string

// NewAccountID trims and validates a raw identity.
func NewAccountID(raw string) (AccountID, error) {
	id := AccountID(strings.TrimSpace(raw))
	if err := id.Validate(); err != nil {
		return "", err
	}
	return id, nil
}

func (a AccountID) Validate() error {
	if a == "" {
		return ErrAccountIDIsRequired
	}
	if len(a) > accountIDMaxLength {
		return errs.NewValueIsOutOfRangeError("account id length", len(a), 1, accountIDMaxLength)
	}
	return nil
}

func (a AccountID) String() string {
	return string(a)
}

func (a AccountID) IsEqual(other AccountID) bool {
	return a == other
}
