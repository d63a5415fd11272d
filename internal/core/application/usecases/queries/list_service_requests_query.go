package queries

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/guard"
)

var ErrListServiceRequestsQueryIsNotConstructed = errors.New(
	"ListServiceRequestsQuery must be created via NewListServiceRequestsQuery constructor",
)

// ListServiceRequestsQuery returns the requester's requests that are neither
// finalized nor unstaked.
type ListServiceRequestsQuery struct {
	requester kernel.AccountID
	guard     guard.ConstructorGuard
}

func NewListServiceRequestsQuery(requester kernel.AccountID) (ListServiceRequestsQuery, error) {
	if err := requester.Validate(); err != nil {
		return ListServiceRequestsQuery{}, err
	}
	return ListServiceRequestsQuery{requester: requester, guard: guard.NewConstructorGuard()}, nil
}

func (q ListServiceRequestsQuery) Validate() error {
	return q.guard.Validate(ErrListServiceRequestsQueryIsNotConstructed)
}

func (q ListServiceRequestsQuery) Requester() kernel.AccountID { return q.requester }

type ListServiceRequestsQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewListServiceRequestsQueryHandler(uowFactory ports.UnitOfWorkFactory) ListServiceRequestsQueryHandler {
	return ListServiceRequestsQueryHandler{uowFactory: uowFactory}
}

func (h ListServiceRequestsQueryHandler) Handle(ctx context.Context, query ListServiceRequestsQuery) ([]kernel.UUID, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return read(ctx, h.uowFactory, func(uow ports.UnitOfWork) ([]kernel.UUID, error) {
		return uow.ServiceRequestRepository().ListActiveIDsByRequester(ctx, query.Requester())
	})
}
