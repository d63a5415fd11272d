// Package queries contains read operations for retrieving system state.
// Every query runs in its own unit of work that is never committed, so a
// read observes one consistent state and cannot write.
package queries

import (
	"context"

	"marketplace/internal/core/ports"
)

func read[T any](ctx context.Context, uowFactory ports.UnitOfWorkFactory, fn func(ports.UnitOfWork) (T, error)) (T, error) {
	var zero T

	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return zero, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return fn(uow)
}
