package http

import (
	"errors"
	"net/http"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Error is the body of every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// StatusOf maps an error category to its HTTP status.
func StatusOf(err error) int {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrCollision),
		errors.Is(err, errs.ErrResourceExhausted):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := StatusOf(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err))
		message = http.StatusText(code)
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
	}

	if writeErr := c.JSON(code, Error{Code: code, Message: message}); writeErr != nil {
		s.logger.Warn("write error response", zap.Error(writeErr))
	}
}

// run executes one command and records its outcome.
func (s *Server) run(command string, fn func() error) error {
	err := fn()
	metrics.ObserveCommand(command, err)
	if err != nil && StatusOf(err) != http.StatusInternalServerError {
		s.logger.Debug("command rejected", zap.String("command", command), zap.Error(err))
	}
	return err
}

func badRequest(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, "invalid request body: "+err.Error())
}

func (s *Server) noContent(c echo.Context, command string, fn func() error) error {
	if err := s.run(command, fn); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
