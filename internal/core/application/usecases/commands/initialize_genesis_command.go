package commands

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/stake"
	"marketplace/internal/pkg/guard"
)

var ErrInitializeGenesisCommandIsNotConstructed = errors.New(
	"InitializeGenesisCommand must be created via NewInitializeGenesisCommand constructor",
)

// PolicyDefaults is the stake policy a kind starts with.
type PolicyDefaults struct {
	Kind            kernel.ProviderKind
	MinimumStake    kernel.Balance
	UnstakeCooldown time.Duration
}

// GenesisBalance is an initial deposit.
type GenesisBalance struct {
	Account kernel.AccountID
	Amount  kernel.Balance
}

// InitializeGenesisCommand seeds storage on first start. Running it again
// leaves whatever is already configured untouched.
type InitializeGenesisCommand struct { //nolint:recvcheck //using for validation
	adminKey  *kernel.AccountID
	escrowKey *kernel.AccountID
	policies  []PolicyDefaults
	balances  []GenesisBalance

	guard guard.ConstructorGuard
}

func NewInitializeGenesisCommand(
	adminKey *kernel.AccountID,
	escrowKey *kernel.AccountID,
	policies []PolicyDefaults,
	balances []GenesisBalance,
) (InitializeGenesisCommand, error) {
	var errList []error
	if adminKey != nil {
		errList = append(errList, adminKey.Validate())
	}
	if escrowKey != nil {
		errList = append(errList, escrowKey.Validate())
	}
	for _, p := range policies {
		_, err := stake.NewPolicy(p.Kind, p.MinimumStake, p.UnstakeCooldown)
		errList = append(errList, err)
	}
	for _, b := range balances {
		errList = append(errList, b.Account.Validate())
	}
	if err := errors.Join(errList...); err != nil {
		return InitializeGenesisCommand{}, err
	}

	return InitializeGenesisCommand{
		adminKey:  adminKey,
		escrowKey: escrowKey,
		policies:  append([]PolicyDefaults(nil), policies...),
		balances:  append([]GenesisBalance(nil), balances...),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c InitializeGenesisCommand) Validate() error {
	return c.guard.Validate(ErrInitializeGenesisCommandIsNotConstructed)
}

func (c InitializeGenesisCommand) AdminKey() *kernel.AccountID  { return c.adminKey }
func (c InitializeGenesisCommand) EscrowKey() *kernel.AccountID { return c.escrowKey }
func (c InitializeGenesisCommand) Policies() []PolicyDefaults   { return c.policies }
func (c InitializeGenesisCommand) Balances() []GenesisBalance   { return c.balances }
