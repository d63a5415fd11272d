package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetServiceRequestQueryIsNotConstructed = errors.New(
	"GetServiceRequestQuery must be created via NewGetServiceRequestQuery constructor",
)

type GetServiceRequestQuery struct {
	requestID kernel.UUID
	guard     guard.ConstructorGuard
}

func NewGetServiceRequestQuery(requestID kernel.UUID) (GetServiceRequestQuery, error) {
	if err := requestID.Validate(); err != nil {
		return GetServiceRequestQuery{}, err
	}
	return GetServiceRequestQuery{requestID: requestID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetServiceRequestQuery) Validate() error {
	return q.guard.Validate(ErrGetServiceRequestQueryIsNotConstructed)
}

func (q GetServiceRequestQuery) RequestID() kernel.UUID { return q.requestID }

type GetServiceRequestQueryResponse struct {
	ID                kernel.UUID
	Requester         kernel.AccountID
	Lab               *kernel.AccountID
	ServiceID         *kernel.UUID
	OrderID           *kernel.UUID
	Country           string
	Region            string
	City              string
	Category          string
	StakingAmount     kernel.Balance
	Status            string
	CreatedAt         time.Time
	UpdatedAt         *time.Time
	UnstakedAt        *time.Time
	RetrieveUnstakeAt *time.Time
}
