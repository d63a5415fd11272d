package queries

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/guard"
)

var ErrGetBalanceQueryIsNotConstructed = errors.New(
	"GetBalanceQuery must be created via NewGetBalanceQuery constructor",
)

type GetBalanceQuery struct {
	account kernel.AccountID
	guard   guard.ConstructorGuard
}

func NewGetBalanceQuery(account kernel.AccountID) (GetBalanceQuery, error) {
	if err := account.Validate(); err != nil {
		return GetBalanceQuery{}, err
	}
	return GetBalanceQuery{account: account, guard: guard.NewConstructorGuard()}, nil
}

func (q GetBalanceQuery) Validate() error {
	return q.guard.Validate(ErrGetBalanceQueryIsNotConstructed)
}

func (q GetBalanceQuery) Account() kernel.AccountID { return q.account }

type GetBalanceQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetBalanceQueryHandler(uowFactory ports.UnitOfWorkFactory) GetBalanceQueryHandler {
	return GetBalanceQueryHandler{uowFactory: uowFactory}
}

func (h GetBalanceQueryHandler) Handle(ctx context.Context, query GetBalanceQuery) (kernel.Balance, error) {
	if err := query.Validate(); err != nil {
		return kernel.ZeroBalance(), err
	}

	return read(ctx, h.uowFactory, func(uow ports.UnitOfWork) (kernel.Balance, error) {
		return uow.AccountRepository().Balance(ctx, query.Account())
	})
}
