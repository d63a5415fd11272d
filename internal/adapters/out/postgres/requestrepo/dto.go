// Package requestrepo persists service requests and the open request counts
// kept per location and category.
package requestrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/servicerequest"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ServiceRequestDTO keeps an Active flag alongside the status so the
// requester listing is a single indexed lookup.
type ServiceRequestDTO struct {
	ID                uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Requester         string           `gorm:"not null;index:idx_requests_requester_active"`
	Active            bool             `gorm:"not null;index:idx_requests_requester_active"`
	Lab               *string          `gorm:"index"`
	ServiceID         *uuid.UUID       `gorm:"type:uuid"`
	OrderID           *uuid.UUID       `gorm:"type:uuid;uniqueIndex"`
	Country           string           `gorm:"not null"`
	Region            string           `gorm:"not null"`
	City              string           `gorm:"not null"`
	Category          string           `gorm:"not null"`
	StakingAmount     decimal.Decimal  `gorm:"type:numeric(78,0);not null"`
	Status            int              `gorm:"not null"`
	CreatedAt         time.Time        `gorm:"not null"`
	UpdatedAt         *time.Time
	UnstakedAt        *time.Time
	RetrieveUnstakeAt *time.Time
}

func (ServiceRequestDTO) TableName() string {
	return "service_requests"
}

type OpenCountDTO struct {
	Country   string `gorm:"primaryKey"`
	Region    string `gorm:"primaryKey"`
	City      string `gorm:"primaryKey"`
	Category  string `gorm:"primaryKey"`
	OpenCount int64  `gorm:"not null;default:0;check:open_count >= 0"`
}

func (OpenCountDTO) TableName() string {
	return "service_request_counts"
}

func fromDomain(r *servicerequest.Request) ServiceRequestDTO {
	s := r.Snapshot()
	dto := ServiceRequestDTO{
		ID:                s.ID.Bytes(),
		Requester:         s.Requester.String(),
		Active:            r.IsActive(),
		Country:           s.Location.Country(),
		Region:            s.Location.Region(),
		City:              s.Location.City(),
		Category:          s.Category,
		StakingAmount:     s.StakingAmount.Decimal(),
		Status:            int(s.Status),
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
		UnstakedAt:        s.UnstakedAt,
		RetrieveUnstakeAt: s.RetrieveUnstakeAt,
	}
	if s.Lab != nil {
		lab := s.Lab.String()
		dto.Lab = &lab
	}
	if s.ServiceID != nil {
		id := s.ServiceID.Bytes()
		dto.ServiceID = &id
	}
	if s.OrderID != nil {
		id := s.OrderID.Bytes()
		dto.OrderID = &id
	}
	return dto
}

func toDomain(dto ServiceRequestDTO) (*servicerequest.Request, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	location, err := kernel.NewLocation(dto.Country, dto.Region, dto.City)
	if err != nil {
		return nil, err
	}
	amount, err := kernel.BalanceFromDecimal(dto.StakingAmount)
	if err != nil {
		return nil, err
	}
	serviceID, err := optionalUUID(dto.ServiceID)
	if err != nil {
		return nil, err
	}
	orderID, err := optionalUUID(dto.OrderID)
	if err != nil {
		return nil, err
	}

	var lab *kernel.AccountID
	if dto.Lab != nil {
		l := kernel.AccountID(*dto.Lab)
		lab = &l
	}

	return servicerequest.RestoreRequest(servicerequest.Snapshot{
		ID:                id,
		Requester:         kernel.AccountID(dto.Requester),
		Lab:               lab,
		ServiceID:         serviceID,
		OrderID:           orderID,
		Location:          location,
		Category:          dto.Category,
		StakingAmount:     amount,
		Status:            servicerequest.Status(dto.Status),
		CreatedAt:         dto.CreatedAt.UTC(),
		UpdatedAt:         utc(dto.UpdatedAt),
		UnstakedAt:        utc(dto.UnstakedAt),
		RetrieveUnstakeAt: utc(dto.RetrieveUnstakeAt),
	})
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
