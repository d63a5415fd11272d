// Package authorityrepo persists the engine-wide admin and escrow keys in a
// single row table.
package authorityrepo

import (
	"context"

	"marketplace/internal/core/domain/model/authority"
	"marketplace/internal/core/domain/model/kernel"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const singletonID = 1

type AuthorityDTO struct {
	ID        int `gorm:"primaryKey;autoIncrement:false"`
	AdminKey  *string
	EscrowKey *string
}

func (AuthorityDTO) TableName() string {
	return "authorities"
}

type GormAuthorityRepository struct {
	db *gorm.DB
}

func NewGormAuthorityRepository(db *gorm.DB) *GormAuthorityRepository {
	return &GormAuthorityRepository{db: db}
}

// Get creates the row on first use and locks it until the unit of work
// ends, so concurrent bootstraps see each other's keys.
func (r *GormAuthorityRepository) Get(ctx context.Context) (*authority.Authority, error) {
	db := r.db.WithContext(ctx)
	err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&AuthorityDTO{ID: singletonID}).Error
	if err != nil {
		return nil, err
	}

	var dto AuthorityDTO
	err = db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).First(&dto, "id = ?", singletonID).Error
	if err != nil {
		return nil, err
	}

	return authority.RestoreAuthority(toKey(dto.AdminKey), toKey(dto.EscrowKey))
}

func (r *GormAuthorityRepository) Save(ctx context.Context, aggregate *authority.Authority) error {
	dto := AuthorityDTO{
		ID:        singletonID,
		AdminKey:  fromKey(aggregate.AdminKey()),
		EscrowKey: fromKey(aggregate.EscrowKey()),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"admin_key", "escrow_key"}),
		}).
		Create(&dto).Error
}

func fromKey(key *kernel.AccountID) *string {
	if key == nil {
		return nil
	}
	s := key.String()
	return &s
}

func toKey(s *string) *kernel.AccountID {
	if s == nil {
		return nil
	}
	key := kernel.AccountID(*s)
	return &key
}
