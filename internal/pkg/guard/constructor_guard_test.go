package guard_test

import (
	"errors"
	"testing"

	"marketplace/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStakeNotConstructed = errors.New("stake must be created via its constructor")

type stakeRecord struct {
	amount uint64
	guard  guard.ConstructorGuard
}

func newStakeRecord(amount uint64) stakeRecord {
	return stakeRecord{amount: amount, guard: guard.NewConstructorGuard()}
}

func (s stakeRecord) Validate() error {
	return s.guard.Validate(errStakeNotConstructed)
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("entity not constructed")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_Embedded(t *testing.T) {
	t.Run("value_built_by_constructor_is_valid", func(t *testing.T) {
		record := newStakeRecord(50)

		require.NoError(t, record.Validate())
		assert.Equal(t, uint64(50), record.amount)
	})

	t.Run("zero_value_struct_is_rejected", func(t *testing.T) {
		var record stakeRecord

		require.ErrorIs(t, record.Validate(), errStakeNotConstructed)
	})

	t.Run("copies_keep_the_guard", func(t *testing.T) {
		record := newStakeRecord(10)
		copied := record

		require.NoError(t, copied.Validate())
	})
}
