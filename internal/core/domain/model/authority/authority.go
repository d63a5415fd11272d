package authority

import (
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	ErrAdminAlreadyBootstrapped = errs.NewInvalidStateError("admin key is already set")
	ErrAdminKeyIsNotSet         = errs.NewUnauthorizedError("admin key is not set")
	ErrEscrowKeyIsNotSet        = errs.NewUnauthorizedError("escrow key is not set")
)

// Authority holds the engine-wide privileged identities: the admin that
// tunes policies and verifies providers, and the escrow that settles
// payments. Either may be unset until configured.
type Authority struct {
	adminKey  *kernel.AccountID
	escrowKey *kernel.AccountID
}

func NewAuthority() *Authority {
	return &Authority{}
}

func RestoreAuthority(adminKey, escrowKey *kernel.AccountID) (*Authority, error) {
	a := &Authority{}
	if adminKey != nil {
		if err := adminKey.Validate(); err != nil {
			return nil, err
		}
		a.adminKey = copyKey(adminKey)
	}
	if escrowKey != nil {
		if err := escrowKey.Validate(); err != nil {
			return nil, err
		}
		a.escrowKey = copyKey(escrowKey)
	}
	return a, nil
}

func (a *Authority) AdminKey() *kernel.AccountID  { return copyKey(a.adminKey) }
func (a *Authority) EscrowKey() *kernel.AccountID { return copyKey(a.escrowKey) }

// BootstrapAdmin sets the first admin key. It works exactly once.
func (a *Authority) BootstrapAdmin(key kernel.AccountID) error {
	if a.adminKey != nil {
		return ErrAdminAlreadyBootstrapped
	}
	if err := key.Validate(); err != nil {
		return err
	}
	a.adminKey = &key
	return nil
}

// SeedEscrow sets the escrow key when none is configured yet. It reports
// whether the key was applied.
func (a *Authority) SeedEscrow(key kernel.AccountID) (bool, error) {
	if a.escrowKey != nil {
		return false, nil
	}
	if err := key.Validate(); err != nil {
		return false, err
	}
	a.escrowKey = &key
	return true, nil
}

func (a *Authority) RotateAdmin(caller, key kernel.AccountID) error {
	if err := a.AuthorizeAdmin(caller, "update admin key"); err != nil {
		return err
	}
	if err := key.Validate(); err != nil {
		return err
	}
	a.adminKey = &key
	return nil
}

func (a *Authority) UpdateEscrowKey(caller, key kernel.AccountID) error {
	if err := a.AuthorizeAdmin(caller, "update escrow key"); err != nil {
		return err
	}
	if err := key.Validate(); err != nil {
		return err
	}
	a.escrowKey = &key
	return nil
}

// AuthorizeAdmin fails unless caller holds the admin key.
func (a *Authority) AuthorizeAdmin(caller kernel.AccountID, action string) error {
	if a.adminKey == nil {
		return fmt.Errorf("%s: %w", action, ErrAdminKeyIsNotSet)
	}
	if !caller.IsEqual(*a.adminKey) {
		return errs.NewUnauthorizedErrorWithCause(action, fmt.Errorf("%s is not the admin", caller))
	}
	return nil
}

// AuthorizeEscrow fails unless caller holds the escrow key.
func (a *Authority) AuthorizeEscrow(caller kernel.AccountID, action string) error {
	if a.escrowKey == nil {
		return fmt.Errorf("%s: %w", action, ErrEscrowKeyIsNotSet)
	}
	if !caller.IsEqual(*a.escrowKey) {
		return errs.NewUnauthorizedErrorWithCause(action, fmt.Errorf("%s is not the escrow", caller))
	}
	return nil
}

func copyKey(k *kernel.AccountID) *kernel.AccountID {
	if k == nil {
		return nil
	}
	c := *k
	return &c
}
