package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository is the order ledger. Orders are never deleted; the
// customer and seller indexes are append-only.
type OrderRepository interface {
	// Add persists a new order and appends it to both party indexes.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists a status change of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns the order or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListIDsByCustomer returns the customer's order ids in creation order.
	ListIDsByCustomer(ctx context.Context, customer kernel.AccountID) ([]kernel.UUID, error)

	// ListIDsBySeller returns the seller's order ids in creation order.
	ListIDsBySeller(ctx context.Context, seller kernel.AccountID) ([]kernel.UUID, error)

	// CountPendingBySeller counts the seller's orders whose status is not terminal.
	CountPendingBySeller(ctx context.Context, seller kernel.AccountID) (int64, error)
}
