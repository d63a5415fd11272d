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

const cooldown = 7 * 24 * time.Hour

var (
	now     = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	minimum = kernel.NewBalance(50_000)
)

func registered(t *testing.T) *stake.ProviderStake {
	t.Helper()
	p, err := stake.NewProviderStake(kernel.Lab, "lab-1")
	require.NoError(t, err)
	return p
}

func staked(t *testing.T) *stake.ProviderStake {
	t.Helper()
	p := registered(t)
	require.NoError(t, p.Stake(minimum, kernel.NewBalance(100_000)))
	return p
}

func TestNewProviderStake(t *testing.T) {
	t.Run("should register unstaked and unverified", func(t *testing.T) {
		p := registered(t)

		require.NoError(t, p.Validate())
		assert.Equal(t, stake.Unstaked, p.Status())
		assert.Equal(t, stake.Unverified, p.Verification())
		assert.Equal(t, stake.Unavailable, p.Availability())
		assert.True(t, p.StakeAmount().IsZero())
		assert.Nil(t, p.RetrieveUnstakeAt())
	})

	t.Run("should reject an unknown kind", func(t *testing.T) {
		_, err := stake.NewProviderStake(kernel.UnknownProvider, "lab-1")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestProviderStake_Stake(t *testing.T) {
	t.Run("should lock the minimum", func(t *testing.T) {
		p := staked(t)

		assert.Equal(t, stake.Staked, p.Status())
		assert.True(t, p.StakeAmount().IsEqual(minimum))
	})

	t.Run("should refuse when funds are short", func(t *testing.T) {
		p := registered(t)

		err := p.Stake(minimum, kernel.NewBalance(49_999))

		require.ErrorIs(t, err, stake.ErrInsufficientFunds)
		assert.ErrorIs(t, err, errs.ErrResourceExhausted)
		assert.Equal(t, stake.Unstaked, p.Status())
	})

	t.Run("should refuse staking twice", func(t *testing.T) {
		p := staked(t)

		err := p.Stake(minimum, kernel.NewBalance(100_000))

		require.ErrorIs(t, err, stake.ErrAlreadyStaked)
	})

	t.Run("should refuse while waiting for unstake", func(t *testing.T) {
		p := staked(t)
		require.NoError(t, p.Unstake(false, now, cooldown))

		err := p.Stake(minimum, kernel.NewBalance(100_000))

		require.ErrorIs(t, err, stake.ErrAlreadyStaked)
	})
}

func TestProviderStake_Unstake(t *testing.T) {
	t.Run("should start the cooldown and move the stake aside", func(t *testing.T) {
		p := staked(t)

		require.NoError(t, p.Unstake(false, now, cooldown))

		assert.Equal(t, stake.WaitingForUnstaked, p.Status())
		assert.Equal(t, now, *p.UnstakeAt())
		assert.Equal(t, now.Add(cooldown), *p.RetrieveUnstakeAt())
		assert.True(t, p.StakeAmount().IsZero())
		assert.True(t, p.UnstakeAmount().IsEqual(minimum))
		assert.Equal(t, stake.Unavailable, p.Availability())
	})

	t.Run("should refuse with pending orders", func(t *testing.T) {
		p := staked(t)

		err := p.Unstake(true, now, cooldown)

		require.ErrorIs(t, err, stake.ErrHasPendingOrders)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, stake.Staked, p.Status())
	})

	t.Run("should refuse when not staked", func(t *testing.T) {
		p := registered(t)

		err := p.Unstake(false, now, cooldown)

		require.ErrorIs(t, err, stake.ErrIsNotStaked)
	})
}

func TestProviderStake_RetrieveUnstake(t *testing.T) {
	waiting := func(t *testing.T) *stake.ProviderStake {
		p := staked(t)
		require.NoError(t, p.Unstake(false, now, cooldown))
		return p
	}

	t.Run("should refuse one second early", func(t *testing.T) {
		p := waiting(t)

		_, err := p.RetrieveUnstake(now.Add(cooldown-time.Second), minimum)

		require.ErrorIs(t, err, stake.ErrCannotUnstakeBeforeUnstakeTime)
		assert.False(t, p.IsMatured(now.Add(cooldown-time.Second)))
	})

	t.Run("should release the stake at the boundary", func(t *testing.T) {
		p := waiting(t)
		at := now.Add(cooldown)
		require.True(t, p.IsMatured(at))

		amount, err := p.RetrieveUnstake(at, minimum)

		require.NoError(t, err)
		assert.True(t, amount.IsEqual(minimum))
		assert.Equal(t, stake.Unstaked, p.Status())
		assert.True(t, p.UnstakeAmount().IsZero())
	})

	t.Run("should refuse when escrow is short", func(t *testing.T) {
		p := waiting(t)

		_, err := p.RetrieveUnstake(now.Add(cooldown), kernel.NewBalance(10))

		require.ErrorIs(t, err, stake.ErrInsufficientPalletFunds)
		assert.Equal(t, stake.WaitingForUnstaked, p.Status())
	})

	t.Run("should refuse when not waiting", func(t *testing.T) {
		p := staked(t)

		_, err := p.RetrieveUnstake(now, minimum)

		require.ErrorIs(t, err, stake.ErrNotWaitingForUnstake)
	})

	t.Run("should allow staking again afterwards", func(t *testing.T) {
		p := waiting(t)
		_, err := p.RetrieveUnstake(now.Add(cooldown), minimum)
		require.NoError(t, err)

		require.NoError(t, p.Stake(minimum, minimum))
	})
}

func TestProviderStake_UpdateVerification(t *testing.T) {
	t.Run("should verify a staked provider", func(t *testing.T) {
		p := staked(t)

		refund, err := p.UpdateVerification(stake.Verified, false)

		require.NoError(t, err)
		assert.True(t, refund.IsZero())
		assert.Equal(t, stake.Verified, p.Verification())
	})

	t.Run("should not verify an unstaked provider", func(t *testing.T) {
		p := registered(t)

		_, err := p.UpdateVerification(stake.Verified, false)

		require.ErrorIs(t, err, stake.ErrIsNotStaked)
		assert.Equal(t, stake.Unverified, p.Verification())
	})

	t.Run("should refund the stake on rejection", func(t *testing.T) {
		p := staked(t)

		refund, err := p.UpdateVerification(stake.Rejected, false)

		require.NoError(t, err)
		assert.True(t, refund.IsEqual(minimum))
		assert.Equal(t, stake.Unstaked, p.Status())
		assert.True(t, p.StakeAmount().IsZero())
	})

	t.Run("should not reject or revoke with pending orders", func(t *testing.T) {
		for _, v := range []stake.Verification{stake.Rejected, stake.Revoked} {
			p := staked(t)

			_, err := p.UpdateVerification(v, true)

			require.ErrorIs(t, err, stake.ErrHasPendingOrders)
			assert.Equal(t, stake.Staked, p.Status())
		}
	})

	t.Run("should make a revoked provider unavailable", func(t *testing.T) {
		p := staked(t)
		_, err := p.UpdateVerification(stake.Verified, false)
		require.NoError(t, err)
		require.NoError(t, p.SetAvailability(stake.Available))

		_, err = p.UpdateVerification(stake.Revoked, false)

		require.NoError(t, err)
		assert.Equal(t, stake.Unavailable, p.Availability())
		assert.Equal(t, stake.Staked, p.Status())
	})
}

func TestProviderStake_SetAvailability(t *testing.T) {
	t.Run("should require verification", func(t *testing.T) {
		p := staked(t)

		err := p.SetAvailability(stake.Available)

		require.ErrorIs(t, err, stake.ErrNotReadyToServe)
	})

	t.Run("should always allow going unavailable", func(t *testing.T) {
		p := registered(t)

		require.NoError(t, p.SetAvailability(stake.Unavailable))
	})
}

func TestRestoreProviderStake(t *testing.T) {
	p := staked(t)
	require.NoError(t, p.Unstake(false, now, cooldown))

	restored, err := stake.RestoreProviderStake(p.Snapshot())

	require.NoError(t, err)
	assert.Equal(t, p.Snapshot(), restored.Snapshot())
}

func TestEscrowAccount(t *testing.T) {
	assert.Equal(t, kernel.AccountID("pallet:stake:lab"), stake.EscrowAccount(kernel.Lab))
	assert.NotEqual(t, stake.EscrowAccount(kernel.Lab), stake.EscrowAccount(kernel.GeneticAnalyst))
}
