package http

import (
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

func (s *Server) UpdateMinimumStake(c echo.Context) error {
	kind, admin, err := providerTarget(c)
	if err != nil {
		return err
	}
	var req AmountRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(err)
	}

	cmd, err := commands.NewUpdateMinimumStakeAmountCommand(admin, kind, req.Amount)
	if err != nil {
		return err
	}
	return s.noContent(c, "update_minimum_stake_amount", func() error {
		return s.h.UpdateMinimumStake.Handle(c.Request().Context(), cmd)
	})
}

func (s *Server) UpdateUnstakeTime(c echo.Context) error {
	kind, admin, err := providerTarget(c)
	if err != nil {
		return err
	}
	var req CooldownRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(err)
	}
	cooldown, err := time.ParseDuration(req.Cooldown)
	if err != nil {
		return badRequest(err)
	}

	cmd, err := commands.NewUpdateUnstakeTimeCommand(admin, kind, cooldown)
	if err != nil {
		return err
	}
	return s.noContent(c, "update_unstake_time", func() error {
		return s.h.UpdateUnstakeTime.Handle(c.Request().Context(), cmd)
	})
}

func (s *Server) SudoUpdateAdminKey(c echo.Context) error {
	cmd, err := keyCommand(c)
	if err != nil {
		return err
	}
	return s.noContent(c, "sudo_update_admin_key", func() error {
		return s.h.SudoUpdateAdminKey.Handle(c.Request().Context(), cmd)
	})
}

func (s *Server) UpdateAdminKey(c echo.Context) error {
	cmd, err := keyCommand(c)
	if err != nil {
		return err
	}
	return s.noContent(c, "update_admin_key", func() error {
		return s.h.UpdateAdminKey.Handle(c.Request().Context(), cmd)
	})
}

func (s *Server) UpdateEscrowKey(c echo.Context) error {
	cmd, err := keyCommand(c)
	if err != nil {
		return err
	}
	return s.noContent(c, "update_escrow_key", func() error {
		return s.h.UpdateEscrowKey.Handle(c.Request().Context(), cmd)
	})
}

func keyCommand(c echo.Context) (commands.UpdateAuthorityKeyCommand, error) {
	account, err := caller(c)
	if err != nil {
		return commands.UpdateAuthorityKeyCommand{}, err
	}
	var req KeyRequest
	if err := c.Bind(&req); err != nil {
		return commands.UpdateAuthorityKeyCommand{}, badRequest(err)
	}
	key, err := kernel.NewAccountID(req.Key)
	if err != nil {
		return commands.UpdateAuthorityKeyCommand{}, err
	}
	return commands.NewUpdateAuthorityKeyCommand(account, key)
}
