package randomness_test

import (
	"context"
	"testing"

	"marketplace/internal/adapters/out/randomness"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedSource_Seed(t *testing.T) {
	seeds, err := randomness.NewSeedSource()
	require.NoError(t, err)

	first, err := seeds.Seed(t.Context(), []byte("subject"))
	require.NoError(t, err)
	second, err := seeds.Seed(t.Context(), []byte("subject"))
	require.NoError(t, err)

	assert.Len(t, first, 64)
	assert.NotEqual(t, first, second)

	id, err := kernel.GenerateTrackingID(first)
	require.NoError(t, err)
	require.NoError(t, id.Validate())
}

func TestSeedSource_Reproducible(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")
	a, err := randomness.NewSeedSourceWithKey(key)
	require.NoError(t, err)
	b, err := randomness.NewSeedSourceWithKey(key)
	require.NoError(t, err)

	seedA, err := a.Seed(t.Context(), []byte("subject"))
	require.NoError(t, err)
	seedB, err := b.Seed(t.Context(), []byte("subject"))
	require.NoError(t, err)

	assert.Equal(t, seedA, seedB)
}

func TestSeedSource_RejectsBadKeys(t *testing.T) {
	_, err := randomness.NewSeedSourceWithKey(nil)
	require.Error(t, err)

	_, err = randomness.NewSeedSourceWithKey(make([]byte, 65))
	require.Error(t, err)
}

func TestSeedSource_CancelledContext(t *testing.T) {
	seeds, err := randomness.NewSeedSource()
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err = seeds.Seed(ctx, []byte("subject"))

	require.ErrorIs(t, err, context.Canceled)
}
