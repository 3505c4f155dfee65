package config

import (
	"os"
	"testing"
)

var configEnvVars = []string{
	"PORT", "LOG_LEVEL", "LOG_FORMAT", "ENVIRONMENT", "LOG_DIR", "TRUSTED_PROXIES",
	"STORE_DRIVER", "DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME", "DB_URL",
	"DB_MAX_CONNS", "DB_MAX_CONN_IDLE", "DB_MAX_CONN_LIFETIME",
	"TX_TIMEOUT", "TX_MAX_ATTEMPTS", "RECONCILE_CONCURRENCY", "SHUTDOWN_TIMEOUT",
	"CATALOG_CACHE_SIZE", "CATALOG_CACHE_TTL", "CATALOG_PATH",
	"INITIAL_GOLD", "INITIAL_GEMS", "INITIAL_SLOTS", "MAX_SLOTS",
	"MARKET_MULTIPLIER", "QUALITY_MULTIPLIER", "ENV_SCHEMA_VERSION",
}

// clearEnvVars unsets every variable the loader reads. t.Setenv restores them after the test.
func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range configEnvVars {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

// validConfig returns a Config that passes Validate
func validConfig() *Config {
	return &Config{
		Port:                 DefaultPort,
		StoreDriver:          StoreDriverMemory,
		TxTimeout:            DefaultTxTimeout,
		TxMaxAttempts:        DefaultTxMaxAttempts,
		ReconcileConcurrency: DefaultReconcileConcurrency,
		ShutdownTimeout:      DefaultShutdownTimeout,
		CatalogCacheSize:     DefaultCatalogCacheSize,
		CatalogCacheTTL:      DefaultCatalogCacheTTL,
		InitialGold:          DefaultInitialGold,
		InitialSlots:         DefaultInitialSlots,
		MaxSlots:             DefaultMaxSlots,
		MarketMultiplier:     DefaultMultiplier,
		QualityMultiplier:    DefaultMultiplier,
	}
}
