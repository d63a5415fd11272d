package cmd_test

import (
	"testing"
	"time"

	"marketplace/cmd"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookup(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestParseConfig(t *testing.T) {
	t.Run("should apply defaults", func(t *testing.T) {
		cfg, err := cmd.ParseConfig(lookup(nil))

		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.HTTPPort)
		assert.Equal(t, cmd.StoragePostgres, cfg.Storage)
		assert.Equal(t, 168*time.Hour, cfg.OrderExpiry)
		assert.Nil(t, cfg.GenesisAdminKey)
		assert.Len(t, cfg.GenesisPolicies, len(kernel.ProviderKinds()))
		assert.Empty(t, cfg.GenesisBalances)
	})

	t.Run("should read genesis settings", func(t *testing.T) {
		cfg, err := cmd.ParseConfig(lookup(map[string]string{
			"STORAGE":                  "memory",
			"GENESIS_ADMIN_KEY":        "admin",
			"GENESIS_ESCROW_KEY":       "escrow",
			"LAB_MINIMUM_STAKE":        "100",
			"LAB_UNSTAKE_COOLDOWN":     "48h",
			"GENESIS_BALANCES":         "customer-1=1000, lab-1=500",
			"REQUEST_UNSTAKE_COOLDOWN": "1h",
		}))

		require.NoError(t, err)
		assert.Equal(t, kernel.AccountID("admin"), *cfg.GenesisAdminKey)
		assert.Equal(t, kernel.AccountID("escrow"), *cfg.GenesisEscrowKey)
		assert.Equal(t, time.Hour, cfg.RequestUnstakeCooldown)

		lab := cfg.GenesisPolicies[0]
		assert.Equal(t, kernel.Lab, lab.Kind)
		assert.Equal(t, "100", lab.MinimumStake.String())
		assert.Equal(t, 48*time.Hour, lab.UnstakeCooldown)

		require.Len(t, cfg.GenesisBalances, 2)
		assert.Equal(t, kernel.AccountID("lab-1"), cfg.GenesisBalances[1].Account)
		assert.Equal(t, "500", cfg.GenesisBalances[1].Amount.String())
	})

	t.Run("should report every bad value", func(t *testing.T) {
		_, err := cmd.ParseConfig(lookup(map[string]string{
			"STORAGE":          "redis",
			"ORDER_EXPIRY":     "soon",
			"GENESIS_BALANCES": "customer-1",
		}))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "STORAGE")
		assert.Contains(t, err.Error(), "ORDER_EXPIRY")
		assert.Contains(t, err.Error(), "GENESIS_BALANCES")
	})
}

func TestConfig_DSN(t *testing.T) {
	cfg, err := cmd.ParseConfig(lookup(map[string]string{"DB_PASSWORD": "secret"}))
	require.NoError(t, err)

	assert.Equal(t, "host=localhost port=5432 user=postgres password=secret dbname=marketplace sslmode=disable", cfg.DSN())
}
