// Package samplerepo persists the sample records linked to orders by tracking id.
package samplerepo

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/sample"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SampleDTO struct {
	TrackingID string    `gorm:"type:char(21);primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	OwnerID    string    `gorm:"not null;index"`
	SellerID   string    `gorm:"not null;index"`
	Status     int       `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

func (SampleDTO) TableName() string {
	return "samples"
}

type aggregateTracker interface {
	TrackAggregate(key string, aggregate any)
}

type GormSampleRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormSampleRepository(db *gorm.DB, tracker aggregateTracker) *GormSampleRepository {
	return &GormSampleRepository{db: db, tracker: tracker}
}

// Add fails with a collision error when the tracking id is already taken.
func (r *GormSampleRepository) Add(ctx context.Context, record *sample.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewCollisionError("tracking id "+dto.TrackingID, 1)
		}
		return err
	}

	r.tracker.TrackAggregate("sample:"+dto.TrackingID, record)
	return nil
}

func (r *GormSampleRepository) Update(ctx context.Context, record *sample.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	result := r.db.WithContext(ctx).Model(&SampleDTO{}).Where("tracking_id = ?", dto.TrackingID).Updates(map[string]any{
		"status":     dto.Status,
		"updated_at": dto.UpdatedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("sample", dto.TrackingID)
	}

	r.tracker.TrackAggregate("sample:"+dto.TrackingID, record)
	return nil
}

func (r *GormSampleRepository) Get(ctx context.Context, id kernel.TrackingID) (*sample.Record, error) {
	var dto SampleDTO
	if err := r.db.WithContext(ctx).First(&dto, "tracking_id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("sample", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormSampleRepository) Exists(ctx context.Context, id kernel.TrackingID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&SampleDTO{}).Where("tracking_id = ?", id.String()).Count(&count).Error
	return count > 0, err
}

func fromDomain(record *sample.Record) SampleDTO {
	s := record.Snapshot()
	return SampleDTO{
		TrackingID: s.TrackingID.String(),
		OrderID:    s.OrderID.Bytes(),
		OwnerID:    s.OwnerID.String(),
		SellerID:   s.SellerID.String(),
		Status:     int(s.Status),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func toDomain(dto SampleDTO) (*sample.Record, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return sample.RestoreRecord(sample.Snapshot{
		TrackingID: kernel.TrackingID(dto.TrackingID),
		OrderID:    orderID,
		OwnerID:    kernel.AccountID(dto.OwnerID),
		SellerID:   kernel.AccountID(dto.SellerID),
		Status:     sample.Status(dto.Status),
		CreatedAt:  dto.CreatedAt.UTC(),
		UpdatedAt:  dto.UpdatedAt.UTC(),
	})
}
