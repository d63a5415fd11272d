package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(key string, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewInvalidStateErrorWithCause("add order", err)
		}
		return err
	}

	r.tracker.TrackAggregate("order:"+aggregate.ID().String(), aggregate)
	return nil
}

// Update rewrites the mutable columns. Parties, price and tracking id are
// fixed at creation and never change.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"status":     dto.Status,
		"updated_at": dto.UpdatedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate("order:"+aggregate.ID().String(), aggregate)
	return nil
}

// Get locks the row until the unit of work ends, so two commands moving the
// same order run one after the other and the second sees the first's status.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) ListIDsByCustomer(ctx context.Context, customer kernel.AccountID) ([]kernel.UUID, error) {
	return r.listIDs(ctx, "customer_id", customer)
}

func (r *GormOrderRepository) ListIDsBySeller(ctx context.Context, seller kernel.AccountID) ([]kernel.UUID, error) {
	return r.listIDs(ctx, "seller_id", seller)
}

func (r *GormOrderRepository) listIDs(ctx context.Context, column string, account kernel.AccountID) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where(fmt.Sprintf("%s = ?", column), account.String()).
		Order("created_at, id").
		Pluck("id", &raw).Error
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, id := range raw {
		converted, convErr := kernel.UUIDFromBytes(id[:])
		if convErr != nil {
			return nil, convErr
		}
		ids = append(ids, converted)
	}
	return ids, nil
}

// CountPendingBySeller counts the seller's orders not yet in a terminal status.
func (r *GormOrderRepository) CountPendingBySeller(ctx context.Context, seller kernel.AccountID) (int64, error) {
	terminal := make([]int, 0, len(order.TerminalStatuses()))
	for _, s := range order.TerminalStatuses() {
		terminal = append(terminal, int(s))
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("seller_id = ? AND status NOT IN ?", seller.String(), terminal).
		Count(&count).Error
	return count, err
}
