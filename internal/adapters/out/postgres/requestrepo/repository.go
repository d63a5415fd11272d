package requestrepo

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/servicerequest"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type aggregateTracker interface {
	TrackAggregate(key string, aggregate any)
}

// GormServiceRequestRepository implements ServiceRequestRepository using GORM.
type GormServiceRequestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormServiceRequestRepository(db *gorm.DB, tracker aggregateTracker) *GormServiceRequestRepository {
	return &GormServiceRequestRepository{db: db, tracker: tracker}
}

func (r *GormServiceRequestRepository) Add(ctx context.Context, aggregate *servicerequest.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewInvalidStateErrorWithCause("add request", err)
		}
		return err
	}

	r.tracker.TrackAggregate("request:"+aggregate.ID().String(), aggregate)
	return nil
}

func (r *GormServiceRequestRepository) Update(ctx context.Context, aggregate *servicerequest.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ServiceRequestDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: order %s", servicerequest.ErrOrderAlreadyLinked, aggregate.OrderID())
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", servicerequest.ErrRequestNotFound, aggregate.ID())
	}

	r.tracker.TrackAggregate("request:"+aggregate.ID().String(), aggregate)
	return nil
}

// Get locks the row until the unit of work ends.
func (r *GormServiceRequestRepository) Get(ctx context.Context, id kernel.UUID) (*servicerequest.Request, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ServiceRequestDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", servicerequest.ErrRequestNotFound, id)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormServiceRequestRepository) ListActiveIDsByRequester(
	ctx context.Context,
	requester kernel.AccountID,
) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&ServiceRequestDTO{}).
		Where("requester = ? AND active", requester.String()).
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

func (r *GormServiceRequestRepository) IncrementOpenCount(ctx context.Context, key servicerequest.CountKey) error {
	dto := countRow(key)
	dto.OpenCount = 1
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "country"}, {Name: "region"}, {Name: "city"}, {Name: "category"}},
			DoUpdates: clause.Assignments(map[string]any{
				"open_count": gorm.Expr("service_request_counts.open_count + 1"),
			}),
		}).
		Create(&dto).Error
}

// DecrementOpenCount stops at zero.
func (r *GormServiceRequestRepository) DecrementOpenCount(ctx context.Context, key servicerequest.CountKey) error {
	return r.db.WithContext(ctx).
		Model(&OpenCountDTO{}).
		Where(countWhere(key)).
		Where("open_count > 0").
		Update("open_count", gorm.Expr("open_count - 1")).Error
}

func (r *GormServiceRequestRepository) OpenCount(ctx context.Context, key servicerequest.CountKey) (uint64, error) {
	var dto OpenCountDTO
	err := r.db.WithContext(ctx).Where(countWhere(key)).First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return uint64(dto.OpenCount), nil //nolint:gosec // column is checked non-negative
}

func countRow(key servicerequest.CountKey) OpenCountDTO {
	return OpenCountDTO{
		Country:  key.Country,
		Region:   key.Region,
		City:     key.City,
		Category: key.Category,
	}
}

func countWhere(key servicerequest.CountKey) map[string]any {
	return map[string]any{
		"country":  key.Country,
		"region":   key.Region,
		"city":     key.City,
		"category": key.Category,
	}
}
