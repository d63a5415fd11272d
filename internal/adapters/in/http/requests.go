package http

import (
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

func (s *Server) CreateRequest(c echo.Context) error {
	account, err := caller(c)
	if err != nil {
		return err
	}
	var req CreateServiceRequestRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(err)
	}

	requestID := kernel.NewUUID()
	cmd, err := commands.NewCreateRequestCommand(requestID, account,
		req.Country, req.Region, req.City, req.Category, req.Amount)
	if err != nil {
		return err
	}
	if err := s.run("create_request", func() error {
		return s.h.CreateRequest.Handle(c.Request().Context(), cmd)
	}); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, CreatedResponse{ID: requestID.String()})
}

func (s *Server) GetRequest(c echo.Context) error {
	requestID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetServiceRequestQuery(requestID)
	if err != nil {
		return err
	}
	resp, err := s.h.GetRequest.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toServiceRequest(resp))
}

func (s *Server) ClaimRequest(c echo.Context) error {
	requestID, account, err := requestTarget(c)
	if err != nil {
		return err
	}
	var req ClaimRequestRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(err)
	}
	serviceID, err := kernel.UUIDFromString(req.ServiceID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewClaimRequestCommand(requestID, account, serviceID)
	if err != nil {
		return err
	}
	return s.noContent(c, "claim_request", func() error {
		return s.h.ClaimRequest.Handle(c.Request().Context(), cmd)
	})
}

func (s *Server) ProcessRequest(c echo.Context) error {
	requestID, account, err := requestTarget(c)
	if err != nil {
		return err
	}
	var req ProcessRequestRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(err)
	}
	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewProcessRequestCommand(requestID, account, orderID)
	if err != nil {
		return err
	}
	return s.noContent(c, "process_request", func() error {
		return s.h.ProcessRequest.Handle(c.Request().Context(), cmd)
	})
}

func (s *Server) FinalizeRequest(c echo.Context) error {
	cmd, err := requestCommand(c)
	if err != nil {
		return err
	}
	return s.noContent(c, "finalize_request", func() error {
		return s.h.FinalizeRequest.Handle(c.Request().Context(), cmd)
	})
}

func (s *Server) UnstakeRequest(c echo.Context) error {
	cmd, err := requestCommand(c)
	if err != nil {
		return err
	}
	return s.noContent(c, "unstake_request", func() error {
		return s.h.UnstakeRequest.Handle(c.Request().Context(), cmd)
	})
}

func (s *Server) RetrieveRequest(c echo.Context) error {
	cmd, err := requestCommand(c)
	if err != nil {
		return err
	}
	return s.noContent(c, "retrieve_unstaked_request_amount", func() error {
		return s.h.RetrieveRequest.Handle(c.Request().Context(), cmd)
	})
}

func (s *Server) ListRequests(c echo.Context) error {
	requester, err := kernel.NewAccountID(c.Param("account"))
	if err != nil {
		return err
	}
	query, err := queries.NewListServiceRequestsQuery(requester)
	if err != nil {
		return err
	}
	ids, err := s.h.ListRequests.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toIDs(ids))
}

// OpenRequestCount reports the demand index for a location and category
// given as query parameters.
func (s *Server) OpenRequestCount(c echo.Context) error {
	query, err := queries.NewGetOpenRequestCountQuery(
		c.QueryParam("country"), c.QueryParam("region"), c.QueryParam("city"), c.QueryParam("category"))
	if err != nil {
		return err
	}
	count, err := s.h.OpenRequestCount.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, CountResponse{Count: count})
}

func (s *Server) GetBalance(c echo.Context) error {
	account, err := kernel.NewAccountID(c.Param("account"))
	if err != nil {
		return err
	}
	query, err := queries.NewGetBalanceQuery(account)
	if err != nil {
		return err
	}
	balance, err := s.h.GetBalance.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, BalanceResponse{Account: account.String(), Balance: balance})
}

func requestTarget(c echo.Context) (kernel.UUID, kernel.AccountID, error) {
	account, err := caller(c)
	if err != nil {
		return kernel.UUID{}, "", err
	}
	requestID, err := pathUUID(c, "id")
	if err != nil {
		return kernel.UUID{}, "", err
	}
	return requestID, account, nil
}

func requestCommand(c echo.Context) (commands.RequestCommand, error) {
	requestID, account, err := requestTarget(c)
	if err != nil {
		return commands.RequestCommand{}, err
	}
	return commands.NewRequestCommand(requestID, account)
}
