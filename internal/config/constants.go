package config

import "time"

// Store drivers
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Configuration file paths
const (
	ConfigPathCrops       = "configs/crops.json"
	ConfigPathCropsSchema = "configs/schemas/crops.schema.json"
)

// Defaults
const (
	DefaultPort                 = 8080
	DefaultLogLevel             = "info"
	DefaultLogFormat            = "text"
	DefaultEnvironment          = "dev"
	DefaultLogDir               = "logs"
	DefaultDBMaxConns           = 20
	DefaultDBMaxConnIdle        = 5 * time.Minute
	DefaultDBMaxConnLifetime    = time.Hour
	DefaultTxTimeout            = 5 * time.Second
	DefaultTxMaxAttempts        = 3
	DefaultReconcileConcurrency = 4
	DefaultCatalogCacheSize     = 64
	DefaultCatalogCacheTTL      = 5 * time.Minute
	DefaultInitialGold          = 100
	DefaultInitialGems          = 0
	DefaultInitialSlots         = 6
	DefaultMaxSlots             = 24
	DefaultMultiplier           = 1.0
	DefaultShutdownTimeout      = 10 * time.Second
)

// Validation error messages
const (
	ErrMsgInvalidPort         = "invalid PORT value"
	ErrMsgInvalidStoreDriver  = "STORE_DRIVER must be %q or %q, got %q"
	ErrMsgNonPositiveDuration = "%s must be positive, got %s"
	ErrMsgNonPositiveInt      = "%s must be positive, got %d"
	ErrMsgSlotsOutOfRange     = "INITIAL_SLOTS must be between 1 and MAX_SLOTS (%d), got %d"
	ErrMsgNegativeBalance     = "%s cannot be negative, got %d"
	ErrMsgNonPositiveFloat    = "%s must be positive, got %g"
	ErrMsgInvalidConfig       = "invalid configuration"
)
