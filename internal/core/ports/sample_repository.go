package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/sample"
)

// SampleRepository stores the records linked to orders, keyed by tracking id.
type SampleRepository interface {
	Add(ctx context.Context, record *sample.Record) error
	Update(ctx context.Context, record *sample.Record) error
	Get(ctx context.Context, id kernel.TrackingID) (*sample.Record, error)

	// Exists reports whether the tracking id is taken.
	Exists(ctx context.Context, id kernel.TrackingID) (bool, error)
}
