package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetProviderStakeQueryIsNotConstructed = errors.New(
	"GetProviderStakeQuery must be created via NewGetProviderStakeQuery constructor",
)

// GetProviderStakeQuery retrieves the stake record of one provider.
type GetProviderStakeQuery struct {
	kind    kernel.ProviderKind
	account kernel.AccountID
	guard   guard.ConstructorGuard
}

func NewGetProviderStakeQuery(kind kernel.ProviderKind, account kernel.AccountID) (GetProviderStakeQuery, error) {
	if err := errors.Join(kind.Validate(), account.Validate()); err != nil {
		return GetProviderStakeQuery{}, err
	}
	return GetProviderStakeQuery{kind: kind, account: account, guard: guard.NewConstructorGuard()}, nil
}

func (q GetProviderStakeQuery) Validate() error {
	return q.guard.Validate(ErrGetProviderStakeQueryIsNotConstructed)
}

func (q GetProviderStakeQuery) Kind() kernel.ProviderKind { return q.kind }
func (q GetProviderStakeQuery) Account() kernel.AccountID { return q.account }

type GetProviderStakeQueryResponse struct {
	Kind              string
	Account           kernel.AccountID
	StakeAmount       kernel.Balance
	UnstakeAmount     kernel.Balance
	Status            string
	UnstakeAt         *time.Time
	RetrieveUnstakeAt *time.Time
	Verification      string
	Availability      string
}
