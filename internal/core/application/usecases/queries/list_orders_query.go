package queries

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// Party selects which side of the order ledger to list.
type Party int

const (
	Customer Party = iota + 1
	Seller
)

// ListOrdersQuery returns the ids of an account's orders in creation order.
type ListOrdersQuery struct {
	account kernel.AccountID
	party   Party
	guard   guard.ConstructorGuard
}

func NewListOrdersQuery(account kernel.AccountID, party Party) (ListOrdersQuery, error) {
	var partyErr error
	if party != Customer && party != Seller {
		partyErr = errs.NewValueIsInvalidErrorWithCause("party", fmt.Errorf("%d is not a party", party))
	}
	if err := errors.Join(account.Validate(), partyErr); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{account: account, party: party, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Account() kernel.AccountID { return q.account }
func (q ListOrdersQuery) Party() Party              { return q.party }
