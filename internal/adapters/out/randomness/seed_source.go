// Package randomness provides the entropy behind tracking ids.
package randomness

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sync/atomic"

	"golang.org/x/crypto/blake2b"
)

// KeySize is the length of the MAC key held by a SeedSource.
const KeySize = 32

// SeedSource derives seeds as a keyed BLAKE2b-512 MAC over the subject and a
// process-wide counter. Identical subjects never yield the same seed.
type SeedSource struct {
	key     []byte
	counter atomic.Uint64
}

// NewSeedSource draws a fresh key from crypto/rand.
func NewSeedSource() (*SeedSource, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("read seed key: %w", err)
	}
	return NewSeedSourceWithKey(key)
}

// NewSeedSourceWithKey makes the output reproducible for a given key.
func NewSeedSourceWithKey(key []byte) (*SeedSource, error) {
	if len(key) == 0 || len(key) > blake2b.Size {
		return nil, fmt.Errorf("seed key must be 1..%d bytes, got %d", blake2b.Size, len(key))
	}
	return &SeedSource{key: append([]byte(nil), key...)}, nil
}

func (s *SeedSource) Seed(ctx context.Context, subject []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h, err := blake2b.New512(s.key)
	if err != nil {
		return nil, err
	}

	var n [8]byte
	binary.BigEndian.PutUint64(n[:], s.counter.Add(1))
	h.Write(subject)
	h.Write(n[:])
	return h.Sum(nil), nil
}
