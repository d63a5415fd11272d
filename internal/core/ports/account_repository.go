package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// AccountRepository is the balance primitive. Unknown accounts hold zero.
type AccountRepository interface {
	Balance(ctx context.Context, account kernel.AccountID) (kernel.Balance, error)

	// Deposit credits an account out of thin air; used for genesis and tests.
	Deposit(ctx context.Context, account kernel.AccountID, amount kernel.Balance) error

	// Transfer moves amount between accounts. It fails with
	// kernel.ErrBalanceUnderflow when from holds less than amount.
	Transfer(ctx context.Context, from, to kernel.AccountID, amount kernel.Balance) error
}
