package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// instrument records request counts and durations per route template.
func instrument(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		status := c.Response().Status
		if err != nil {
			status = StatusOf(err)
		}
		route := c.Path()
		method := c.Request().Method
		metrics.HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
		return err
	}
}

var errCallerIsRequired = errors.New("missing " + CallerHeader + " header")

func caller(c echo.Context) (kernel.AccountID, error) {
	raw := c.Request().Header.Get(CallerHeader)
	if raw == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, errCallerIsRequired.Error())
	}
	return kernel.NewAccountID(raw)
}

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(c.Param(name))
}

func pathKind(c echo.Context) (kernel.ProviderKind, error) {
	return kernel.ProviderKindFromString(c.Param("kind"))
}
