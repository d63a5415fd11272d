// Package orderrepo persists order aggregates. Price lists are frozen into
// JSON columns when the order is placed; amounts are stored as numeric so
// 18 decimal token values keep full precision.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderDTO is the orders table row. Party and status columns are indexed
// for the per-account listings and the pending order count.
type OrderDTO struct {
	ID                   uuid.UUID                          `gorm:"type:uuid;primaryKey"`
	ServiceID            uuid.UUID                          `gorm:"type:uuid;not null"`
	CustomerID           string                             `gorm:"not null;index"`
	SellerID             string                             `gorm:"not null;index:idx_orders_seller_status"`
	CustomerBoxPublicKey string                             `gorm:"not null"`
	Currency             string                             `gorm:"not null"`
	PriceComponents      datatypes.JSONType[[]kernel.Price] `gorm:"type:jsonb;not null"`
	AdditionalPrices     datatypes.JSONType[[]kernel.Price] `gorm:"type:jsonb;not null"`
	TotalPrice           decimal.Decimal                    `gorm:"type:numeric(78,0);not null"`
	Status               int                                `gorm:"not null;index:idx_orders_seller_status"`
	Flow                 int                                `gorm:"not null"`
	TrackingID           string                             `gorm:"type:char(21);not null;uniqueIndex"`
	CreatedAt            time.Time                          `gorm:"not null;index"`
	UpdatedAt            time.Time                          `gorm:"not null"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	s := aggregate.Snapshot()
	return OrderDTO{
		ID:                   s.ID.Bytes(),
		ServiceID:            s.ServiceID.Bytes(),
		CustomerID:           s.CustomerID.String(),
		SellerID:             s.SellerID.String(),
		CustomerBoxPublicKey: s.CustomerBoxPublicKey,
		Currency:             s.Currency.String(),
		PriceComponents:      datatypes.NewJSONType(s.PriceComponents),
		AdditionalPrices:     datatypes.NewJSONType(s.AdditionalPrices),
		TotalPrice:           s.TotalPrice.Decimal(),
		Status:               int(s.Status),
		Flow:                 int(s.Flow),
		TrackingID:           s.TrackingID.String(),
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	serviceID, err := kernel.UUIDFromBytes(dto.ServiceID[:])
	if err != nil {
		return nil, err
	}
	total, err := kernel.BalanceFromDecimal(dto.TotalPrice)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                   id,
		ServiceID:            serviceID,
		CustomerID:           kernel.AccountID(dto.CustomerID),
		SellerID:             kernel.AccountID(dto.SellerID),
		CustomerBoxPublicKey: dto.CustomerBoxPublicKey,
		Currency:             kernel.Currency(dto.Currency),
		PriceComponents:      dto.PriceComponents.Data(),
		AdditionalPrices:     dto.AdditionalPrices.Data(),
		TotalPrice:           total,
		Status:               order.Status(dto.Status),
		Flow:                 order.Flow(dto.Flow),
		TrackingID:           kernel.TrackingID(dto.TrackingID),
		CreatedAt:            dto.CreatedAt.UTC(),
		UpdatedAt:            dto.UpdatedAt.UTC(),
	})
}
