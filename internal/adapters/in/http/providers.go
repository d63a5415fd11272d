package http

import (
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/stake"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterProvider(c echo.Context) error {
	kind, account, err := providerTarget(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewRegisterProviderCommand(kind, account)
	if err != nil {
		return err
	}
	if err := s.run("register_provider", func() error {
		return s.h.RegisterProvider.Handle(c.Request().Context(), cmd)
	}); err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

func (s *Server) Stake(c echo.Context) error {
	kind, account, err := providerTarget(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewStakeCommand(kind, account)
	if err != nil {
		return err
	}
	return s.noContent(c, "stake", func() error {
		return s.h.Stake.Handle(c.Request().Context(), cmd)
	})
}

func (s *Server) Unstake(c echo.Context) error {
	kind, account, err := providerTarget(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewUnstakeCommand(kind, account)
	if err != nil {
		return err
	}
	return s.noContent(c, "unstake", func() error {
		return s.h.Unstake.Handle(c.Request().Context(), cmd)
	})
}

func (s *Server) UpdateAvailability(c echo.Context) error {
	kind, account, err := providerTarget(c)
	if err != nil {
		return err
	}
	var req AvailabilityRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(err)
	}
	availability, err := stake.AvailabilityFromString(req.Availability)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateAvailabilityCommand(kind, account, availability)
	if err != nil {
		return err
	}
	return s.noContent(c, "update_availability", func() error {
		return s.h.UpdateAvailability.Handle(c.Request().Context(), cmd)
	})
}

func (s *Server) GetProviderStake(c echo.Context) error {
	kind, err := pathKind(c)
	if err != nil {
		return err
	}
	account, err := kernel.NewAccountID(c.Param("account"))
	if err != nil {
		return err
	}
	query, err := queries.NewGetProviderStakeQuery(kind, account)
	if err != nil {
		return err
	}
	resp, err := s.h.GetProviderStake.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProviderStake(resp))
}

// RetrieveUnstake releases a matured unstake on behalf of the provider in
// the path. Only the admin may call it.
func (s *Server) RetrieveUnstake(c echo.Context) error {
	kind, admin, err := providerTarget(c)
	if err != nil {
		return err
	}
	provider, err := kernel.NewAccountID(c.Param("account"))
	if err != nil {
		return err
	}
	cmd, err := commands.NewRetrieveUnstakeAmountCommand(admin, kind, provider)
	if err != nil {
		return err
	}
	return s.noContent(c, "retrieve_unstake_amount", func() error {
		return s.h.RetrieveUnstake.Handle(c.Request().Context(), cmd)
	})
}

func (s *Server) UpdateVerification(c echo.Context) error {
	kind, admin, err := providerTarget(c)
	if err != nil {
		return err
	}
	provider, err := kernel.NewAccountID(c.Param("account"))
	if err != nil {
		return err
	}
	var req StatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(err)
	}
	verification, err := stake.VerificationFromString(req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateVerificationStatusCommand(admin, kind, provider, verification)
	if err != nil {
		return err
	}
	return s.noContent(c, "update_verification_status", func() error {
		return s.h.UpdateVerification.Handle(c.Request().Context(), cmd)
	})
}

func providerTarget(c echo.Context) (kernel.ProviderKind, kernel.AccountID, error) {
	account, err := caller(c)
	if err != nil {
		return kernel.UnknownProvider, "", err
	}
	kind, err := pathKind(c)
	if err != nil {
		return kernel.UnknownProvider, "", err
	}
	return kind, account, nil
}
