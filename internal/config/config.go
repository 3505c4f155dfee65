package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	LogDir      string

	TrustedProxies []string

	StoreDriver       string
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBURL             string
	DBMaxConns        int
	DBMaxConnIdle     time.Duration
	DBMaxConnLifetime time.Duration

	TxTimeout            time.Duration
	TxMaxAttempts        int
	ReconcileConcurrency int
	ShutdownTimeout      time.Duration

	CatalogCacheSize int
	CatalogCacheTTL  time.Duration
	CatalogPath      string

	InitialGold       int64
	InitialGems       int64
	InitialSlots      int
	MaxSlots          int
	MarketMultiplier  float64
	QualityMultiplier float64
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", strconv.Itoa(DefaultPort)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidPort, err)
	}

	cfg := &Config{
		Port:        port,
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", DefaultLogLevel)),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", DefaultLogFormat)),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		LogDir:      getEnv("LOG_DIR", DefaultLogDir),

		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),

		StoreDriver:       strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "homestead"),
		DBURL:             getEnv("DB_URL", ""),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdle:     getEnvAsDuration("DB_MAX_CONN_IDLE", DefaultDBMaxConnIdle),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		TxTimeout:            getEnvAsDuration("TX_TIMEOUT", DefaultTxTimeout),
		TxMaxAttempts:        getEnvAsInt("TX_MAX_ATTEMPTS", DefaultTxMaxAttempts),
		ReconcileConcurrency: getEnvAsInt("RECONCILE_CONCURRENCY", DefaultReconcileConcurrency),
		ShutdownTimeout:      getEnvAsDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),

		CatalogCacheSize: getEnvAsInt("CATALOG_CACHE_SIZE", DefaultCatalogCacheSize),
		CatalogCacheTTL:  getEnvAsDuration("CATALOG_CACHE_TTL", DefaultCatalogCacheTTL),
		CatalogPath:      getEnv("CATALOG_PATH", ConfigPathCrops),

		InitialGold:       int64(getEnvAsInt("INITIAL_GOLD", DefaultInitialGold)),
		InitialGems:       int64(getEnvAsInt("INITIAL_GEMS", DefaultInitialGems)),
		InitialSlots:      getEnvAsInt("INITIAL_SLOTS", DefaultInitialSlots),
		MaxSlots:          getEnvAsInt("MAX_SLOTS", DefaultMaxSlots),
		MarketMultiplier:  getEnvAsFloat("MARKET_MULTIPLIER", DefaultMultiplier),
		QualityMultiplier: getEnvAsFloat("QUALITY_MULTIPLIER", DefaultMultiplier),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot run with. Every problem is reported.
func (c *Config) Validate() error {
	var errs []error

	if c.StoreDriver != StoreDriverPostgres && c.StoreDriver != StoreDriverMemory {
		errs = append(errs, fmt.Errorf(ErrMsgInvalidStoreDriver, StoreDriverPostgres, StoreDriverMemory, c.StoreDriver))
	}

	for name, d := range map[string]time.Duration{
		"TX_TIMEOUT":        c.TxTimeout,
		"CATALOG_CACHE_TTL": c.CatalogCacheTTL,
		"SHUTDOWN_TIMEOUT":  c.ShutdownTimeout,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf(ErrMsgNonPositiveDuration, name, d))
		}
	}

	for name, v := range map[string]int{
		"TX_MAX_ATTEMPTS":       c.TxMaxAttempts,
		"RECONCILE_CONCURRENCY": c.ReconcileConcurrency,
		"CATALOG_CACHE_SIZE":    c.CatalogCacheSize,
		"MAX_SLOTS":             c.MaxSlots,
	} {
		if v <= 0 {
			errs = append(errs, fmt.Errorf(ErrMsgNonPositiveInt, name, v))
		}
	}

	if c.InitialSlots < 1 || c.InitialSlots > c.MaxSlots {
		errs = append(errs, fmt.Errorf(ErrMsgSlotsOutOfRange, c.MaxSlots, c.InitialSlots))
	}
	if c.InitialGold < 0 {
		errs = append(errs, fmt.Errorf(ErrMsgNegativeBalance, "INITIAL_GOLD", c.InitialGold))
	}
	if c.InitialGems < 0 {
		errs = append(errs, fmt.Errorf(ErrMsgNegativeBalance, "INITIAL_GEMS", c.InitialGems))
	}
	if c.MarketMultiplier <= 0 {
		errs = append(errs, fmt.Errorf(ErrMsgNonPositiveFloat, "MARKET_MULTIPLIER", c.MarketMultiplier))
	}
	if c.QualityMultiplier <= 0 {
		errs = append(errs, fmt.Errorf(ErrMsgNonPositiveFloat, "QUALITY_MULTIPLIER", c.QualityMultiplier))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s: %w", ErrMsgInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// GetDBConnString returns the PostgreSQL connection string. DB_URL wins when set.
func (c *Config) GetDBConnString() string {
	if c.DBURL != "" {
		return c.DBURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsList(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
