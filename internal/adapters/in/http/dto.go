package http

import (
	"time"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
)

type CreateOrderRequest struct {
	ServiceID            string `json:"service_id"`
	PriceIndex           int    `json:"price_index"`
	CustomerBoxPublicKey string `json:"customer_box_public_key"`
	Flow                 string `json:"flow"`
}

type CreatedResponse struct {
	ID string `json:"id"`
}

type IDsResponse struct {
	IDs []string `json:"ids"`
}

type Order struct {
	ID                   string         `json:"id"`
	ServiceID            string         `json:"service_id"`
	CustomerID           string         `json:"customer_id"`
	SellerID             string         `json:"seller_id"`
	CustomerBoxPublicKey string         `json:"customer_box_public_key"`
	Currency             string         `json:"currency"`
	PriceComponents      []kernel.Price `json:"price_components"`
	AdditionalPrices     []kernel.Price `json:"additional_prices"`
	TotalPrice           kernel.Balance `json:"total_price"`
	Status               string         `json:"status"`
	Flow                 string         `json:"flow"`
	TrackingID           string         `json:"tracking_id"`
	SampleStatus         string         `json:"sample_status,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type AvailabilityRequest struct {
	Availability string `json:"availability"`
}

type ProviderStake struct {
	Kind              string         `json:"kind"`
	Account           string         `json:"account"`
	StakeAmount       kernel.Balance `json:"stake_amount"`
	UnstakeAmount     kernel.Balance `json:"unstake_amount"`
	Status            string         `json:"status"`
	UnstakeAt         *time.Time     `json:"unstake_at,omitempty"`
	RetrieveUnstakeAt *time.Time     `json:"retrieve_unstake_at,omitempty"`
	Verification      string         `json:"verification"`
	Availability      string         `json:"availability"`
}

type AmountRequest struct {
	Amount kernel.Balance `json:"amount"`
}

// CooldownRequest takes a Go duration string such as "48h".
type CooldownRequest struct {
	Cooldown string `json:"cooldown"`
}

type KeyRequest struct {
	Key string `json:"key"`
}

type CreateServiceRequestRequest struct {
	Country  string         `json:"country"`
	Region   string         `json:"region"`
	City     string         `json:"city"`
	Category string         `json:"category"`
	Amount   kernel.Balance `json:"amount"`
}

type ClaimRequestRequest struct {
	ServiceID string `json:"service_id"`
}

type ProcessRequestRequest struct {
	OrderID string `json:"order_id"`
}

type ServiceRequest struct {
	ID                string         `json:"id"`
	Requester         string         `json:"requester"`
	Lab               *string        `json:"lab,omitempty"`
	ServiceID         *string        `json:"service_id,omitempty"`
	OrderID           *string        `json:"order_id,omitempty"`
	Country           string         `json:"country"`
	Region            string         `json:"region"`
	City              string         `json:"city"`
	Category          string         `json:"category"`
	StakingAmount     kernel.Balance `json:"staking_amount"`
	Status            string         `json:"status"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         *time.Time     `json:"updated_at,omitempty"`
	UnstakedAt        *time.Time     `json:"unstaked_at,omitempty"`
	RetrieveUnstakeAt *time.Time     `json:"retrieve_unstake_at,omitempty"`
}

type CountResponse struct {
	Count uint64 `json:"count"`
}

type BalanceResponse struct {
	Account string         `json:"account"`
	Balance kernel.Balance `json:"balance"`
}

func toOrder(r queries.GetOrderQueryResponse) Order {
	return Order{
		ID:                   r.ID.String(),
		ServiceID:            r.ServiceID.String(),
		CustomerID:           r.CustomerID.String(),
		SellerID:             r.SellerID.String(),
		CustomerBoxPublicKey: r.CustomerBoxPublicKey,
		Currency:             r.Currency.String(),
		PriceComponents:      r.PriceComponents,
		AdditionalPrices:     r.AdditionalPrices,
		TotalPrice:           r.TotalPrice,
		Status:               r.Status,
		Flow:                 r.Flow,
		TrackingID:           r.TrackingID.String(),
		SampleStatus:         r.SampleStatus,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}

func toProviderStake(r queries.GetProviderStakeQueryResponse) ProviderStake {
	return ProviderStake{
		Kind:              r.Kind,
		Account:           r.Account.String(),
		StakeAmount:       r.StakeAmount,
		UnstakeAmount:     r.UnstakeAmount,
		Status:            r.Status,
		UnstakeAt:         r.UnstakeAt,
		RetrieveUnstakeAt: r.RetrieveUnstakeAt,
		Verification:      r.Verification,
		Availability:      r.Availability,
	}
}

func toServiceRequest(r queries.GetServiceRequestQueryResponse) ServiceRequest {
	out := ServiceRequest{
		ID:                r.ID.String(),
		Requester:         r.Requester.String(),
		Country:           r.Country,
		Region:            r.Region,
		City:              r.City,
		Category:          r.Category,
		StakingAmount:     r.StakingAmount,
		Status:            r.Status,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
		UnstakedAt:        r.UnstakedAt,
		RetrieveUnstakeAt: r.RetrieveUnstakeAt,
	}
	if r.Lab != nil {
		lab := r.Lab.String()
		out.Lab = &lab
	}
	if r.ServiceID != nil {
		id := r.ServiceID.String()
		out.ServiceID = &id
	}
	if r.OrderID != nil {
		id := r.OrderID.String()
		out.OrderID = &id
	}
	return out
}

func toIDs(ids []kernel.UUID) IDsResponse {
	out := IDsResponse{IDs: make([]string, 0, len(ids))}
	for _, id := range ids {
		out.IDs = append(out.IDs, id.String())
	}
	return out
}
