package stake_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/stake"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPolicy(t *testing.T) {
	t.Run("should accept positive parameters", func(t *testing.T) {
		p, err := stake.NewPolicy(kernel.Lab, minimum, time.Hour)

		require.NoError(t, err)
		assert.Equal(t, kernel.Lab, p.Kind())
		assert.True(t, p.MinimumStake().IsEqual(minimum))
		assert.Equal(t, time.Hour, p.UnstakeCooldown())
	})

	t.Run("should reject zero values", func(t *testing.T) {
		_, err := stake.NewPolicy(kernel.Lab, kernel.ZeroBalance(), 0)

		require.ErrorIs(t, err, stake.ErrMinimumStakeIsNotPositive)
		assert.ErrorIs(t, err, stake.ErrUnstakeCooldownIsNotPositive)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestPolicy_Setters(t *testing.T) {
	p, err := stake.NewPolicy(kernel.GeneticAnalyst, minimum, time.Hour)
	require.NoError(t, err)

	require.ErrorIs(t, p.SetUnstakeCooldown(-time.Second), stake.ErrUnstakeCooldownIsNotPositive)
	assert.Equal(t, time.Hour, p.UnstakeCooldown())

	require.NoError(t, p.SetMinimumStake(kernel.NewBalance(1)))
	assert.Equal(t, "1", p.MinimumStake().String())
}
