// Package http exposes the marketplace engine over a JSON API.
//
// The caller identity of every mutating request is taken from the
// X-Caller-ID header; signature checks happen upstream.
package http

import (
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const CallerHeader = "X-Caller-ID"

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder      commands.CreateOrderCommandHandler
	CancelOrder      commands.CancelOrderCommandHandler
	SetOrderPaid     commands.SetOrderPaidCommandHandler
	FulfillOrder     commands.FulfillOrderCommandHandler
	SetOrderRefunded commands.SetOrderRefundedCommandHandler
	UpdateSample     commands.UpdateSampleStatusCommandHandler

	RegisterProvider   commands.RegisterProviderCommandHandler
	Stake              commands.StakeCommandHandler
	Unstake            commands.UnstakeCommandHandler
	RetrieveUnstake    commands.RetrieveUnstakeAmountCommandHandler
	UpdateVerification commands.UpdateVerificationStatusCommandHandler
	UpdateAvailability commands.UpdateAvailabilityCommandHandler

	UpdateMinimumStake commands.UpdateMinimumStakeAmountCommandHandler
	UpdateUnstakeTime  commands.UpdateUnstakeTimeCommandHandler
	SudoUpdateAdminKey commands.SudoUpdateAdminKeyCommandHandler
	UpdateAdminKey     commands.UpdateAdminKeyCommandHandler
	UpdateEscrowKey    commands.UpdateEscrowKeyCommandHandler

	CreateRequest   commands.CreateRequestCommandHandler
	ClaimRequest    commands.ClaimRequestCommandHandler
	ProcessRequest  commands.ProcessRequestCommandHandler
	FinalizeRequest commands.FinalizeRequestCommandHandler
	UnstakeRequest  commands.UnstakeRequestCommandHandler
	RetrieveRequest commands.RetrieveUnstakedRequestAmountCommandHandler

	GetOrder         queries.GetOrderQueryHandler
	ListOrders       queries.ListOrdersQueryHandler
	GetProviderStake queries.GetProviderStakeQueryHandler
	GetRequest       queries.GetServiceRequestQueryHandler
	ListRequests     queries.ListServiceRequestsQueryHandler
	OpenRequestCount queries.GetOpenRequestCountQueryHandler
	GetBalance       queries.GetBalanceQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	h      Handlers
	logger *zap.Logger
}

func NewServer(handlers Handlers, logger *zap.Logger) *Server {
	return &Server{h: handlers, logger: logger}
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.HTTPErrorHandler = s.errorHandler
	e.Use(instrument)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/paid", s.SetOrderPaid)
	api.POST("/orders/:id/fulfill", s.FulfillOrder)
	api.POST("/orders/:id/refund", s.SetOrderRefunded)
	api.GET("/customers/:account/orders", s.ListCustomerOrders)
	api.GET("/sellers/:account/orders", s.ListSellerOrders)
	api.PUT("/samples/:trackingId/status", s.UpdateSampleStatus)

	api.POST("/providers/:kind", s.RegisterProvider)
	api.POST("/providers/:kind/stake", s.Stake)
	api.POST("/providers/:kind/unstake", s.Unstake)
	api.PUT("/providers/:kind/availability", s.UpdateAvailability)
	api.GET("/providers/:kind/:account", s.GetProviderStake)
	api.POST("/providers/:kind/:account/retrieve-unstake", s.RetrieveUnstake)
	api.PUT("/providers/:kind/:account/verification", s.UpdateVerification)

	api.PUT("/stake-policies/:kind/minimum-stake", s.UpdateMinimumStake)
	api.PUT("/stake-policies/:kind/unstake-time", s.UpdateUnstakeTime)
	api.POST("/authority/admin/bootstrap", s.SudoUpdateAdminKey)
	api.PUT("/authority/admin", s.UpdateAdminKey)
	api.PUT("/authority/escrow", s.UpdateEscrowKey)

	api.POST("/requests", s.CreateRequest)
	api.GET("/requests/count", s.OpenRequestCount)
	api.GET("/requests/:id", s.GetRequest)
	api.POST("/requests/:id/claim", s.ClaimRequest)
	api.POST("/requests/:id/process", s.ProcessRequest)
	api.POST("/requests/:id/finalize", s.FinalizeRequest)
	api.POST("/requests/:id/unstake", s.UnstakeRequest)
	api.POST("/requests/:id/retrieve", s.RetrieveRequest)
	api.GET("/requesters/:account/requests", s.ListRequests)

	api.GET("/accounts/:account/balance", s.GetBalance)
}
