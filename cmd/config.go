package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	HTTPPort string
	LogLevel string
	Storage  string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	OrderExpiry            time.Duration
	RequestUnstakeCooldown time.Duration
	StakeRetrievalSchedule string

	// SudoKey may bootstrap the admin key once. Empty disables the bootstrap.
	SudoKey kernel.AccountID

	GenesisAdminKey  *kernel.AccountID
	GenesisEscrowKey *kernel.AccountID
	GenesisPolicies  []commands.PolicyDefaults
	GenesisBalances  []commands.GenesisBalance

	// TrackingIDKey keys the tracking id seed source. Empty draws a random key.
	TrackingIDKey []byte
}

// DSN is the postgres connection string built from the DB_* settings.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads the environment, after loading .env when one exists.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return ParseConfig(os.Getenv)
}

// ParseConfig builds a Config from a variable lookup.
func ParseConfig(getenv func(string) string) (Config, error) {
	env := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		HTTPPort:               env("HTTP_PORT", "8080"),
		LogLevel:               env("LOG_LEVEL", "info"),
		Storage:                env("STORAGE", StoragePostgres),
		DBHost:                 env("DB_HOST", "localhost"),
		DBPort:                 env("DB_PORT", "5432"),
		DBUser:                 env("DB_USER", "postgres"),
		DBPassword:             env("DB_PASSWORD", ""),
		DBName:                 env("DB_NAME", "marketplace"),
		DBSslMode:              env("DB_SSLMODE", "disable"),
		StakeRetrievalSchedule: env("STAKE_RETRIEVAL_SCHEDULE", ""),
		SudoKey:                kernel.AccountID(env("SUDO_KEY", "")),
		TrackingIDKey:          []byte(env("TRACKING_ID_KEY", "")),
	}

	var errList []error
	if cfg.Storage != StoragePostgres && cfg.Storage != StorageMemory {
		errList = append(errList, fmt.Errorf("STORAGE: unknown storage %q", cfg.Storage))
	}

	var err error
	cfg.OrderExpiry, err = duration(env("ORDER_EXPIRY", "168h"), "ORDER_EXPIRY")
	errList = append(errList, err)
	cfg.RequestUnstakeCooldown, err = duration(env("REQUEST_UNSTAKE_COOLDOWN", "168h"), "REQUEST_UNSTAKE_COOLDOWN")
	errList = append(errList, err)

	cfg.GenesisAdminKey = optionalKey(env("GENESIS_ADMIN_KEY", ""))
	cfg.GenesisEscrowKey = optionalKey(env("GENESIS_ESCROW_KEY", ""))

	for _, kind := range kernel.ProviderKinds() {
		prefix := strings.ToUpper(strings.ReplaceAll(kind.String(), "-", "_"))
		policy, err := policyDefaults(kind,
			env(prefix+"_MINIMUM_STAKE", "50000"),
			env(prefix+"_UNSTAKE_COOLDOWN", "144h"),
			prefix)
		errList = append(errList, err)
		cfg.GenesisPolicies = append(cfg.GenesisPolicies, policy)
	}

	cfg.GenesisBalances, err = balances(env("GENESIS_BALANCES", ""))
	errList = append(errList, err)

	if err := errors.Join(errList...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func duration(raw, key string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func optionalKey(raw string) *kernel.AccountID {
	if raw == "" {
		return nil
	}
	key := kernel.AccountID(raw)
	return &key
}

func policyDefaults(kind kernel.ProviderKind, minimum, cooldown, prefix string) (commands.PolicyDefaults, error) {
	amount, err := kernel.BalanceFromString(minimum)
	if err != nil {
		return commands.PolicyDefaults{}, fmt.Errorf("%s_MINIMUM_STAKE: %w", prefix, err)
	}
	d, err := duration(cooldown, prefix+"_UNSTAKE_COOLDOWN")
	if err != nil {
		return commands.PolicyDefaults{}, err
	}
	return commands.PolicyDefaults{Kind: kind, MinimumStake: amount, UnstakeCooldown: d}, nil
}

// balances parses "account=amount,account=amount".
func balances(raw string) ([]commands.GenesisBalance, error) {
	if raw == "" {
		return nil, nil
	}

	var out []commands.GenesisBalance
	for _, pair := range strings.Split(raw, ",") {
		account, amount, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return nil, fmt.Errorf("GENESIS_BALANCES: %q is not account=amount", pair)
		}
		id, err := kernel.NewAccountID(account)
		if err != nil {
			return nil, fmt.Errorf("GENESIS_BALANCES: %w", err)
		}
		b, err := kernel.BalanceFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("GENESIS_BALANCES: %w", err)
		}
		out = append(out, commands.GenesisBalance{Account: id, Amount: b})
	}
	return out, nil
}
