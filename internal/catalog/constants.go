package catalog

import "time"

// CropsSchemaPath is resolved relative to the module root
const CropsSchemaPath = "configs/schemas/crops.schema.json"

// MaxGrowthSeconds keeps growth and wither durations inside an INTEGER column
// and a time.Duration
const MaxGrowthSeconds = 715827882

// Cache defaults
const (
	DefaultCacheSize = 64
	DefaultCacheTTL  = 5 * time.Minute

	listCacheKey       = "list"
	cropCacheKeyPrefix = "crop:"
)

// Error messages
const (
	ErrMsgReadConfigFileFailed = "failed to read crop config: %w"
	ErrMsgParseConfigFailed    = "failed to parse crop config: %w"
	ErrMsgConfigNil            = "config is nil"
	ErrMsgNoCropsDefined       = "no crops defined"
	ErrFmtCropEmptyName        = "%w: crop at index %d has an empty name"
	ErrFmtCropNonPositiveTime  = "%w: crop '%s' must have a positive growth time"
	ErrFmtCropGrowthTooLong    = "%w: crop '%s' growth time exceeds %d seconds"
	ErrFmtCropNegativePrice    = "%w: crop '%s' has a negative price"
	ErrFmtCropMissingDisplay   = "%w: crop '%s' has no display token"
	ErrMsgListCropsFailed      = "failed to list crops: %w"
	ErrMsgGetCropFailed        = "failed to get crop %s: %w"
	ErrMsgInsertCropsFailed    = "failed to insert crops: %w"
)

// Log messages
const (
	LogMsgSyncCompleted = "Crop catalog sync completed"
	LogMsgCacheHit      = "Crop catalog cache hit"
	LogMsgCacheMiss     = "Crop catalog cache miss"
)
