package queries

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/guard"
)

var ErrListMaturedUnstakesQueryIsNotConstructed = errors.New(
	"ListMaturedUnstakesQuery must be created via NewListMaturedUnstakesQuery constructor",
)

// ListMaturedUnstakesQuery finds providers of one kind whose unstake
// cooldown has elapsed.
type ListMaturedUnstakesQuery struct {
	kind  kernel.ProviderKind
	guard guard.ConstructorGuard
}

func NewListMaturedUnstakesQuery(kind kernel.ProviderKind) (ListMaturedUnstakesQuery, error) {
	if err := kind.Validate(); err != nil {
		return ListMaturedUnstakesQuery{}, err
	}
	return ListMaturedUnstakesQuery{kind: kind, guard: guard.NewConstructorGuard()}, nil
}

func (q ListMaturedUnstakesQuery) Validate() error {
	return q.guard.Validate(ErrListMaturedUnstakesQueryIsNotConstructed)
}

func (q ListMaturedUnstakesQuery) Kind() kernel.ProviderKind { return q.kind }

type ListMaturedUnstakesQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	clock      ports.Clock
}

func NewListMaturedUnstakesQueryHandler(uowFactory ports.UnitOfWorkFactory, clock ports.Clock) ListMaturedUnstakesQueryHandler {
	return ListMaturedUnstakesQueryHandler{uowFactory: uowFactory, clock: clock}
}

func (h ListMaturedUnstakesQueryHandler) Handle(
	ctx context.Context,
	query ListMaturedUnstakesQuery,
) ([]kernel.AccountID, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return read(ctx, h.uowFactory, func(uow ports.UnitOfWork) ([]kernel.AccountID, error) {
		waiting, err := uow.ProviderStakeRepository().ListWaitingForUnstake(ctx, query.Kind())
		if err != nil {
			return nil, err
		}

		now := h.clock.Now()
		accounts := make([]kernel.AccountID, 0, len(waiting))
		for _, s := range waiting {
			if s.IsMatured(now) {
				accounts = append(accounts, s.Account())
			}
		}
		return accounts, nil
	})
}
