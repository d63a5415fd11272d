package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/authority"
	"marketplace/internal/core/domain/model/stake"
)

// InitializeGenesisCommandHandler seeds missing policies and keys. Existing
// policies and keys are never overwritten. Balances are deposited only
// when the admin key is seeded by this run, so a restart does not mint twice.
type InitializeGenesisCommandHandler struct {
	uowFactory UoWFactory
}

func NewInitializeGenesisCommandHandler(uowFactory UoWFactory) InitializeGenesisCommandHandler {
	return InitializeGenesisCommandHandler{uowFactory: uowFactory}
}

func (h *InitializeGenesisCommandHandler) Handle(ctx context.Context, cmd InitializeGenesisCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	policyRepo := uow.StakePolicyRepository()
	for _, defaults := range cmd.Policies() {
		_, err := policyRepo.Get(ctx, defaults.Kind)
		if err == nil {
			continue
		}
		if !errors.Is(err, stake.ErrPolicyDoesNotExist) {
			return err
		}

		policy, err := stake.NewPolicy(defaults.Kind, defaults.MinimumStake, defaults.UnstakeCooldown)
		if err != nil {
			return err
		}
		if err = policyRepo.Save(ctx, policy); err != nil {
			return err
		}
	}

	authorityRepo := uow.AuthorityRepository()
	auth, err := authorityRepo.Get(ctx)
	if err != nil {
		return err
	}

	firstRun := false
	if key := cmd.AdminKey(); key != nil {
		err = auth.BootstrapAdmin(*key)
		switch {
		case err == nil:
			firstRun = true
		case errors.Is(err, authority.ErrAdminAlreadyBootstrapped):
		default:
			return err
		}
	}
	if key := cmd.EscrowKey(); key != nil {
		if _, err = auth.SeedEscrow(*key); err != nil {
			return err
		}
	}
	if err = authorityRepo.Save(ctx, auth); err != nil {
		return err
	}

	if firstRun {
		accounts := uow.AccountRepository()
		for _, b := range cmd.Balances() {
			if err = accounts.Deposit(ctx, b.Account, b.Amount); err != nil {
				return err
			}
		}
	}

	return uow.Commit(ctx)
}
