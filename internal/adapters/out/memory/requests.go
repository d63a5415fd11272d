package memory

import (
	"context"
	"fmt"
	"slices"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/servicerequest"
	"marketplace/internal/pkg/errs"
)

type serviceRequestRepository struct {
	uow *UnitOfWork
}

func (r *serviceRequestRepository) Add(_ context.Context, aggregate *servicerequest.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	s, err := r.uow.writable()
	if err != nil {
		return err
	}
	if _, ok := s.requests[aggregate.ID()]; ok {
		return errs.NewInvalidStateErrorWithCause("add request", fmt.Errorf("request %s already exists", aggregate.ID()))
	}
	if err = s.checkOrderLink(aggregate); err != nil {
		return err
	}

	s.requests[aggregate.ID()] = aggregate.Snapshot()
	if aggregate.IsActive() {
		s.byRequester[aggregate.Requester()] = append(s.byRequester[aggregate.Requester()], aggregate.ID())
	}
	return nil
}

func (r *serviceRequestRepository) Update(_ context.Context, aggregate *servicerequest.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	s, err := r.uow.writable()
	if err != nil {
		return err
	}
	if _, ok := s.requests[aggregate.ID()]; !ok {
		return fmt.Errorf("%w: %s", servicerequest.ErrRequestNotFound, aggregate.ID())
	}
	if err = s.checkOrderLink(aggregate); err != nil {
		return err
	}

	s.requests[aggregate.ID()] = aggregate.Snapshot()
	if !aggregate.IsActive() {
		ids := s.byRequester[aggregate.Requester()]
		s.byRequester[aggregate.Requester()] = slices.DeleteFunc(ids, aggregate.ID().IsEqual)
	}
	return nil
}

func (s *state) checkOrderLink(aggregate *servicerequest.Request) error {
	linked := aggregate.OrderID()
	if linked == nil {
		return nil
	}
	for id, other := range s.requests {
		if other.OrderID != nil && other.OrderID.IsEqual(*linked) && !id.IsEqual(aggregate.ID()) {
			return fmt.Errorf("%w: order %s is linked to %s", servicerequest.ErrOrderAlreadyLinked, *linked, id)
		}
	}
	return nil
}

func (r *serviceRequestRepository) Get(_ context.Context, id kernel.UUID) (*servicerequest.Request, error) {
	s, err := r.uow.current()
	if err != nil {
		return nil, err
	}
	snapshot, ok := s.requests[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", servicerequest.ErrRequestNotFound, id)
	}
	return servicerequest.RestoreRequest(snapshot)
}

func (r *serviceRequestRepository) ListActiveIDsByRequester(
	_ context.Context,
	requester kernel.AccountID,
) ([]kernel.UUID, error) {
	s, err := r.uow.current()
	if err != nil {
		return nil, err
	}
	return append([]kernel.UUID{}, s.byRequester[requester]...), nil
}

func (r *serviceRequestRepository) IncrementOpenCount(_ context.Context, key servicerequest.CountKey) error {
	s, err := r.uow.writable()
	if err != nil {
		return err
	}
	s.openCounts[key]++
	return nil
}

func (r *serviceRequestRepository) DecrementOpenCount(_ context.Context, key servicerequest.CountKey) error {
	s, err := r.uow.writable()
	if err != nil {
		return err
	}
	if s.openCounts[key] > 0 {
		s.openCounts[key]--
	}
	return nil
}

func (r *serviceRequestRepository) OpenCount(_ context.Context, key servicerequest.CountKey) (uint64, error) {
	s, err := r.uow.current()
	if err != nil {
		return 0, err
	}
	return s.openCounts[key], nil
}
