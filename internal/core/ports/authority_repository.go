package ports

import (
	"context"

	"marketplace/internal/core/domain/model/authority"
)

// AuthorityRepository persists the single engine-wide authority configuration.
type AuthorityRepository interface {
	// Get never fails with not found: an unconfigured engine yields an
	// authority with both keys unset.
	Get(ctx context.Context) (*authority.Authority, error)

	Save(ctx context.Context, aggregate *authority.Authority) error
}
