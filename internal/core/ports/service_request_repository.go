package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/servicerequest"
)

// ServiceRequestRepository persists service requests together with the
// requester index and the per-location open counts.
type ServiceRequestRepository interface {
	Add(ctx context.Context, aggregate *servicerequest.Request) error

	// Update persists the request. Closed requests drop out of the
	// requester index. An order links to at most one request; linking it
	// again fails with servicerequest.ErrOrderAlreadyLinked.
	Update(ctx context.Context, aggregate *servicerequest.Request) error

	Get(ctx context.Context, id kernel.UUID) (*servicerequest.Request, error)

	// ListActiveIDsByRequester returns ids of requests not yet finalized or unstaked.
	ListActiveIDsByRequester(ctx context.Context, requester kernel.AccountID) ([]kernel.UUID, error)

	IncrementOpenCount(ctx context.Context, key servicerequest.CountKey) error

	// DecrementOpenCount saturates at zero.
	DecrementOpenCount(ctx context.Context, key servicerequest.CountKey) error

	OpenCount(ctx context.Context, key servicerequest.CountKey) (uint64, error)
}
