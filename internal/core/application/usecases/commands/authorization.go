package commands

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

func authorizeAdmin(ctx context.Context, uow AuthorityRepoFactory, caller kernel.AccountID, action string) error {
	auth, err := uow.AuthorityRepository().Get(ctx)
	if err != nil {
		return err
	}
	return auth.AuthorizeAdmin(caller, action)
}

func authorizeEscrow(ctx context.Context, uow AuthorityRepoFactory, caller kernel.AccountID, action string) error {
	auth, err := uow.AuthorityRepository().Get(ctx)
	if err != nil {
		return err
	}
	return auth.AuthorizeEscrow(caller, action)
}
