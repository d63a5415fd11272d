package services

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// PendingOrderCounter counts a seller's orders that are not yet terminal.
type PendingOrderCounter interface {
	CountPendingBySeller(ctx context.Context, seller kernel.AccountID) (int64, error)
}

// PendingObligations answers whether a provider still has orders in
// Created or Paid. Stake withdrawal, rejection and revocation are refused
// while it does.
//
// The answer is computed from the order rows themselves, so it cannot drift
// from the order ledger.
type PendingObligations struct {
	orders PendingOrderCounter
}

func NewPendingObligations(orders PendingOrderCounter) PendingObligations {
	return PendingObligations{orders: orders}
}

func (p PendingObligations) HasPending(ctx context.Context, provider kernel.AccountID) (bool, error) {
	n, err := p.orders.CountPendingBySeller(ctx, provider)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
