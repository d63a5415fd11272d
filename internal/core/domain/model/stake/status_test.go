package stake_test

import (
	"testing"

	"marketplace/internal/core/domain/model/stake"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificationFromString(t *testing.T) {
	v, err := stake.VerificationFromString("Revoked")
	require.NoError(t, err)
	assert.Equal(t, stake.Revoked, v)

	_, err = stake.VerificationFromString("revoked")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestAvailabilityFromString(t *testing.T) {
	for _, a := range []stake.Availability{stake.Available, stake.Unavailable} {
		parsed, err := stake.AvailabilityFromString(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, parsed)
	}

	_, err := stake.AvailabilityFromString("Unknown")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
