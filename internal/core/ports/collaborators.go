package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
)

// Clock supplies the logical time used for expiry and cooldown checks.
type Clock interface {
	Now() time.Time
}

// ServiceCatalog is the read side of the provider service catalog.
type ServiceCatalog interface {
	// Get returns catalog.ErrServiceDoesNotExist for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*catalog.Service, error)
}
