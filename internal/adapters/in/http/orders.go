package http

import (
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/sample"

	"github.com/labstack/echo/v4"
)

func (s *Server) CreateOrder(c echo.Context) error {
	account, err := caller(c)
	if err != nil {
		return err
	}
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(err)
	}
	serviceID, err := kernel.UUIDFromString(req.ServiceID)
	if err != nil {
		return err
	}
	flow, err := order.FlowFromString(req.Flow)
	if err != nil {
		return err
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, account, serviceID, req.PriceIndex, req.CustomerBoxPublicKey, flow)
	if err != nil {
		return err
	}
	if err := s.run("create_order", func() error {
		return s.h.CreateOrder.Handle(c.Request().Context(), cmd)
	}); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, CreatedResponse{ID: orderID.String()})
}

func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return err
	}
	resp, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrder(resp))
}

func (s *Server) CancelOrder(c echo.Context) error {
	orderID, account, err := orderTarget(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewCancelOrderCommand(orderID, account)
	if err != nil {
		return err
	}
	return s.noContent(c, "cancel_order", func() error {
		return s.h.CancelOrder.Handle(c.Request().Context(), cmd)
	})
}

func (s *Server) SetOrderPaid(c echo.Context) error {
	orderID, account, err := orderTarget(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewSetOrderPaidCommand(orderID, account)
	if err != nil {
		return err
	}
	return s.noContent(c, "set_order_paid", func() error {
		return s.h.SetOrderPaid.Handle(c.Request().Context(), cmd)
	})
}

func (s *Server) FulfillOrder(c echo.Context) error {
	orderID, account, err := orderTarget(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewFulfillOrderCommand(orderID, account)
	if err != nil {
		return err
	}
	return s.noContent(c, "fulfill_order", func() error {
		return s.h.FulfillOrder.Handle(c.Request().Context(), cmd)
	})
}

func (s *Server) SetOrderRefunded(c echo.Context) error {
	orderID, account, err := orderTarget(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewSetOrderRefundedCommand(orderID, account)
	if err != nil {
		return err
	}
	return s.noContent(c, "set_order_refunded", func() error {
		return s.h.SetOrderRefunded.Handle(c.Request().Context(), cmd)
	})
}

func (s *Server) ListCustomerOrders(c echo.Context) error {
	return s.listOrders(c, queries.Customer)
}

func (s *Server) ListSellerOrders(c echo.Context) error {
	return s.listOrders(c, queries.Seller)
}

func (s *Server) listOrders(c echo.Context, party queries.Party) error {
	account, err := kernel.NewAccountID(c.Param("account"))
	if err != nil {
		return err
	}
	query, err := queries.NewListOrdersQuery(account, party)
	if err != nil {
		return err
	}
	ids, err := s.h.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toIDs(ids))
}

func (s *Server) UpdateSampleStatus(c echo.Context) error {
	account, err := caller(c)
	if err != nil {
		return err
	}
	trackingID, err := kernel.TrackingIDFromString(c.Param("trackingId"))
	if err != nil {
		return err
	}
	var req StatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(err)
	}
	status, err := sample.StatusFromString(req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateSampleStatusCommand(trackingID, account, status)
	if err != nil {
		return err
	}
	return s.noContent(c, "update_sample_status", func() error {
		return s.h.UpdateSample.Handle(c.Request().Context(), cmd)
	})
}

func orderTarget(c echo.Context) (kernel.UUID, kernel.AccountID, error) {
	account, err := caller(c)
	if err != nil {
		return kernel.UUID{}, "", err
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return kernel.UUID{}, "", err
	}
	return orderID, account, nil
}
