package services

import (
	"context"
	"encoding/binary"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// DefaultTrackingIDAttempts bounds the collision retry loop.
const DefaultTrackingIDAttempts = 10

// SeedSource turns a subject into unpredictable bytes.
type SeedSource interface {
	Seed(ctx context.Context, subject []byte) ([]byte, error)
}

// TrackingIDLookup reports whether a tracking id is already taken.
type TrackingIDLookup interface {
	Exists(ctx context.Context, id kernel.TrackingID) (bool, error)
}

// TrackingIDIssuer issues tracking ids for new linked records.
//
// Each attempt seeds the generator with
//
//	creator ∥ nonce ∥ owner ∥ nonce
//
// where nonce is the attempt number, so retries draw fresh seeds. After
// maxAttempts taken ids the issuer gives up with errs.ErrCollision instead
// of looping.
//
// Example:
//
//	issuer, _ := services.NewTrackingIDIssuer(seeds, services.DefaultTrackingIDAttempts)
//	id, err := issuer.Issue(ctx, customer, seller, uow.SampleRepository())
//	if errors.Is(err, errs.ErrCollision) {
//	    // every attempt hit an existing id
//	}
type TrackingIDIssuer struct {
	seeds       SeedSource
	maxAttempts int
}

func NewTrackingIDIssuer(seeds SeedSource, maxAttempts int) (*TrackingIDIssuer, error) {
	if seeds == nil {
		return nil, errs.NewValueIsRequiredError("seeds")
	}
	if maxAttempts <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("maxAttempts", maxAttempts, 1, "unbounded")
	}
	return &TrackingIDIssuer{seeds: seeds, maxAttempts: maxAttempts}, nil
}

func (i *TrackingIDIssuer) Issue(
	ctx context.Context,
	creator, owner kernel.AccountID,
	lookup TrackingIDLookup,
) (kernel.TrackingID, error) {
	for attempt := 0; attempt < i.maxAttempts; attempt++ {
		seed, err := i.seeds.Seed(ctx, subject(creator, owner, uint64(attempt)))
		if err != nil {
			return "", fmt.Errorf("seed tracking id: %w", err)
		}

		id, err := kernel.GenerateTrackingID(seed)
		if err != nil {
			return "", err
		}

		taken, err := lookup.Exists(ctx, id)
		if err != nil {
			return "", err
		}
		if !taken {
			return id, nil
		}
	}

	return "", errs.NewCollisionError("tracking id", i.maxAttempts)
}

func subject(creator, owner kernel.AccountID, nonce uint64) []byte {
	buf := make([]byte, 0, len(creator)+len(owner)+16)
	buf = append(buf, creator...)
	buf = binary.BigEndian.AppendUint64(buf, nonce)
	buf = append(buf, owner...)
	buf = binary.BigEndian.AppendUint64(buf, nonce)
	return buf
}
