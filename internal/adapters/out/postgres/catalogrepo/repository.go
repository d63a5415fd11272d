// Package catalogrepo stores the service catalog the order engine prices
// orders from. Price lists are kept as JSON documents.
package catalogrepo

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ServiceDTO struct {
	ID     uuid.UUID                                     `gorm:"type:uuid;primaryKey"`
	Owner  string                                        `gorm:"not null;index"`
	Kind   int                                           `gorm:"not null"`
	Prices datatypes.JSONType[[]catalog.PriceByCurrency] `gorm:"type:jsonb;not null"`
}

func (ServiceDTO) TableName() string {
	return "services"
}

// GormServiceCatalog reads outside any unit of work; services are owned by
// the catalog and never written by order commands.
type GormServiceCatalog struct {
	db *gorm.DB
}

func NewGormServiceCatalog(db *gorm.DB) *GormServiceCatalog {
	return &GormServiceCatalog{db: db}
}

// Add inserts or replaces a service listing.
func (c *GormServiceCatalog) Add(ctx context.Context, service *catalog.Service) error {
	if err := service.Validate(); err != nil {
		return err
	}

	dto := ServiceDTO{
		ID:     service.ID().Bytes(),
		Owner:  service.Owner().String(),
		Kind:   int(service.Kind()),
		Prices: datatypes.NewJSONType(service.Prices()),
	}
	return c.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dto).Error
}

func (c *GormServiceCatalog) Get(ctx context.Context, id kernel.UUID) (*catalog.Service, error) {
	var dto ServiceDTO
	if err := c.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", catalog.ErrServiceDoesNotExist, id)
		}
		return nil, err
	}

	serviceID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return catalog.NewService(serviceID, kernel.AccountID(dto.Owner), kernel.ProviderKind(dto.Kind), dto.Prices.Data())
}
