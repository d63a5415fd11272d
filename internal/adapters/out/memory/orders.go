package memory

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/sample"
	"marketplace/internal/pkg/errs"
)

type orderRepository struct {
	uow *UnitOfWork
}

func (r *orderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	s, err := r.uow.writable()
	if err != nil {
		return err
	}
	if _, ok := s.orders[aggregate.ID()]; ok {
		return errs.NewInvalidStateErrorWithCause("add order", fmt.Errorf("order %s already exists", aggregate.ID()))
	}

	s.orders[aggregate.ID()] = aggregate.Snapshot()
	s.byCustomer[aggregate.CustomerID()] = append(s.byCustomer[aggregate.CustomerID()], aggregate.ID())
	s.bySeller[aggregate.SellerID()] = append(s.bySeller[aggregate.SellerID()], aggregate.ID())
	return nil
}

func (r *orderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	s, err := r.uow.writable()
	if err != nil {
		return err
	}
	if _, ok := s.orders[aggregate.ID()]; !ok {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	s.orders[aggregate.ID()] = aggregate.Snapshot()
	return nil
}

func (r *orderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	s, err := r.uow.current()
	if err != nil {
		return nil, err
	}
	snapshot, ok := s.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return order.RestoreOrder(snapshot)
}

func (r *orderRepository) ListIDsByCustomer(_ context.Context, customer kernel.AccountID) ([]kernel.UUID, error) {
	s, err := r.uow.current()
	if err != nil {
		return nil, err
	}
	return append([]kernel.UUID{}, s.byCustomer[customer]...), nil
}

func (r *orderRepository) ListIDsBySeller(_ context.Context, seller kernel.AccountID) ([]kernel.UUID, error) {
	s, err := r.uow.current()
	if err != nil {
		return nil, err
	}
	return append([]kernel.UUID{}, s.bySeller[seller]...), nil
}

func (r *orderRepository) CountPendingBySeller(_ context.Context, seller kernel.AccountID) (int64, error) {
	s, err := r.uow.current()
	if err != nil {
		return 0, err
	}

	var pending int64
	for _, id := range s.bySeller[seller] {
		if !s.orders[id].Status.IsTerminal() {
			pending++
		}
	}
	return pending, nil
}

type sampleRepository struct {
	uow *UnitOfWork
}

func (r *sampleRepository) Add(_ context.Context, record *sample.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}
	s, err := r.uow.writable()
	if err != nil {
		return err
	}
	if _, ok := s.samples[record.TrackingID()]; ok {
		return errs.NewCollisionError("tracking id "+record.TrackingID().String(), 1)
	}

	s.samples[record.TrackingID()] = record.Snapshot()
	return nil
}

func (r *sampleRepository) Update(_ context.Context, record *sample.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}
	s, err := r.uow.writable()
	if err != nil {
		return err
	}
	if _, ok := s.samples[record.TrackingID()]; !ok {
		return errs.NewObjectNotFoundError("sample", record.TrackingID().String())
	}

	s.samples[record.TrackingID()] = record.Snapshot()
	return nil
}

func (r *sampleRepository) Get(_ context.Context, id kernel.TrackingID) (*sample.Record, error) {
	s, err := r.uow.current()
	if err != nil {
		return nil, err
	}
	snapshot, ok := s.samples[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("sample", id.String())
	}
	return sample.RestoreRecord(snapshot)
}

func (r *sampleRepository) Exists(_ context.Context, id kernel.TrackingID) (bool, error) {
	s, err := r.uow.current()
	if err != nil {
		return false, err
	}
	_, ok := s.samples[id]
	return ok, nil
}
