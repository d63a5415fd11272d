package commands

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/authority"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// SudoUpdateAdminKeyCommandHandler sets the first admin key. Only the root
// identity configured at startup may call it, and only once.
type SudoUpdateAdminKeyCommandHandler struct {
	uowFactory AuthorityUoWFactory
	rootKey    kernel.AccountID
}

func NewSudoUpdateAdminKeyCommandHandler(uowFactory AuthorityUoWFactory, rootKey kernel.AccountID) SudoUpdateAdminKeyCommandHandler {
	return SudoUpdateAdminKeyCommandHandler{uowFactory: uowFactory, rootKey: rootKey}
}

func (h *SudoUpdateAdminKeyCommandHandler) Handle(ctx context.Context, cmd UpdateAuthorityKeyCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if h.rootKey == "" || !cmd.Caller().IsEqual(h.rootKey) {
		return errs.NewUnauthorizedErrorWithCause("sudo update admin key", fmt.Errorf("%s is not root", cmd.Caller()))
	}

	return updateAuthority(ctx, h.uowFactory, func(a *authority.Authority) error {
		return a.BootstrapAdmin(cmd.Key())
	})
}

// UpdateAdminKeyCommandHandler rotates the admin key. Admin only.
type UpdateAdminKeyCommandHandler struct {
	uowFactory AuthorityUoWFactory
}

func NewUpdateAdminKeyCommandHandler(uowFactory AuthorityUoWFactory) UpdateAdminKeyCommandHandler {
	return UpdateAdminKeyCommandHandler{uowFactory: uowFactory}
}

func (h *UpdateAdminKeyCommandHandler) Handle(ctx context.Context, cmd UpdateAuthorityKeyCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return updateAuthority(ctx, h.uowFactory, func(a *authority.Authority) error {
		return a.RotateAdmin(cmd.Caller(), cmd.Key())
	})
}

// UpdateEscrowKeyCommandHandler replaces the escrow key. Admin only.
type UpdateEscrowKeyCommandHandler struct {
	uowFactory AuthorityUoWFactory
}

func NewUpdateEscrowKeyCommandHandler(uowFactory AuthorityUoWFactory) UpdateEscrowKeyCommandHandler {
	return UpdateEscrowKeyCommandHandler{uowFactory: uowFactory}
}

func (h *UpdateEscrowKeyCommandHandler) Handle(ctx context.Context, cmd UpdateAuthorityKeyCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return updateAuthority(ctx, h.uowFactory, func(a *authority.Authority) error {
		return a.UpdateEscrowKey(cmd.Caller(), cmd.Key())
	})
}

func updateAuthority(ctx context.Context, uowFactory AuthorityUoWFactory, apply func(*authority.Authority) error) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	authorityRepo := uow.AuthorityRepository()
	auth, err := authorityRepo.Get(ctx)
	if err != nil {
		return err
	}

	if err = apply(auth); err != nil {
		return err
	}

	if err = authorityRepo.Save(ctx, auth); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
