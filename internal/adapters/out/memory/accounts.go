package memory

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
)

type accountRepository struct {
	uow *UnitOfWork
}

func (r *accountRepository) Balance(_ context.Context, account kernel.AccountID) (kernel.Balance, error) {
	s, err := r.uow.current()
	if err != nil {
		return kernel.ZeroBalance(), err
	}
	if b, ok := s.balances[account]; ok {
		return b, nil
	}
	return kernel.ZeroBalance(), nil
}

func (r *accountRepository) Deposit(ctx context.Context, account kernel.AccountID, amount kernel.Balance) error {
	if err := account.Validate(); err != nil {
		return err
	}
	current, err := r.Balance(ctx, account)
	if err != nil {
		return err
	}
	s, err := r.uow.writable()
	if err != nil {
		return err
	}
	s.balances[account] = current.Add(amount)
	return nil
}

func (r *accountRepository) Transfer(ctx context.Context, from, to kernel.AccountID, amount kernel.Balance) error {
	if err := to.Validate(); err != nil {
		return err
	}
	fromBalance, err := r.Balance(ctx, from)
	if err != nil {
		return err
	}
	rest, err := fromBalance.Sub(amount)
	if err != nil {
		return fmt.Errorf("transfer from %s: %w", from, err)
	}
	if from.IsEqual(to) {
		return nil
	}

	toBalance, err := r.Balance(ctx, to)
	if err != nil {
		return err
	}
	s, err := r.uow.writable()
	if err != nil {
		return err
	}
	s.balances[from] = rest
	s.balances[to] = toBalance.Add(amount)
	return nil
}
