package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/osse101/Homestead_Go/internal/domain"
	"github.com/osse101/Homestead_Go/internal/logger"
	"github.com/osse101/Homestead_Go/internal/repository"
	"github.com/osse101/Homestead_Go/internal/validation"
)

// Sentinel errors for the crop loader
var (
	ErrDuplicateCropID   = errors.New("duplicate crop id")
	ErrDuplicateCropName = errors.New("duplicate crop name")

	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config is the JSON layout of configs/crops.json
type Config struct {
	Version     string `json:"version"`
	Description string `json:"description"`

	Crops []Def `json:"crops"`
}

// Def is one crop definition in the JSON
type Def struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	GrowthSeconds int    `json:"growthSeconds"`
	BuyPrice      int64  `json:"buyPrice"`
	SellPrice     int64  `json:"sellPrice"`
	Experience    int    `json:"experience"`
	DisplayToken  string `json:"displayToken"`
}

// CropMaster converts the definition to its domain form
func (d Def) CropMaster() domain.CropMaster {
	return domain.CropMaster{
		ID:            d.ID,
		Name:          d.Name,
		Description:   d.Description,
		GrowthSeconds: d.GrowthSeconds,
		BuyPrice:      d.BuyPrice,
		SellPrice:     d.SellPrice,
		Experience:    d.Experience,
		DisplayToken:  d.DisplayToken,
	}
}

// Loader reads, validates and seeds the crop catalog
type Loader interface {
	Load(path string) (*Config, error)
	Validate(config *Config) error
	SyncToDatabase(ctx context.Context, config *Config, repo repository.Catalog) (*SyncResult, error)
}

// SyncResult reports what a catalog sync did
type SyncResult struct {
	CropsInserted int
	CropsSkipped  int
}

type cropLoader struct {
	schemaValidator validation.SchemaValidator
}

// NewLoader creates a new Loader instance
func NewLoader() Loader {
	return &cropLoader{
		schemaValidator: validation.NewSchemaValidator(),
	}
}

// Load reads a crops JSON file and checks it against the schema
func (l *cropLoader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadConfigFileFailed, err)
	}

	if err := l.schemaValidator.ValidateBytes(data, CropsSchemaPath); err != nil {
		return nil, fmt.Errorf("schema validation failed for %s: %w", path, err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(ErrMsgParseConfigFailed, err)
	}

	return &config, nil
}

// Validate checks rules the schema cannot express, such as uniqueness
func (l *cropLoader) Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgConfigNil)
	}
	if len(config.Crops) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgNoCropsDefined)
	}

	ids := make(map[string]bool, len(config.Crops))
	names := make(map[string]bool, len(config.Crops))

	for i := range config.Crops {
		crop := &config.Crops[i]

		if crop.Name == "" {
			return fmt.Errorf(ErrFmtCropEmptyName, ErrInvalidConfig, i)
		}
		if names[crop.Name] {
			return fmt.Errorf("%w: '%s'", ErrDuplicateCropName, crop.Name)
		}
		names[crop.Name] = true

		if crop.ID != "" {
			if ids[crop.ID] {
				return fmt.Errorf("%w: '%s'", ErrDuplicateCropID, crop.ID)
			}
			ids[crop.ID] = true
		}

		if crop.GrowthSeconds <= 0 {
			return fmt.Errorf(ErrFmtCropNonPositiveTime, ErrInvalidConfig, crop.Name)
		}
		if crop.GrowthSeconds > MaxGrowthSeconds {
			return fmt.Errorf(ErrFmtCropGrowthTooLong, ErrInvalidConfig, crop.Name, MaxGrowthSeconds)
		}
		if crop.BuyPrice < 0 || crop.SellPrice < 0 {
			return fmt.Errorf(ErrFmtCropNegativePrice, ErrInvalidConfig, crop.Name)
		}
		if crop.DisplayToken == "" {
			return fmt.Errorf(ErrFmtCropMissingDisplay, ErrInvalidConfig, crop.Name)
		}
	}

	return nil
}

// SyncToDatabase inserts crops that are not in the store yet.
// Existing crop masters are left alone so planted instances keep their terms.
func (l *cropLoader) SyncToDatabase(ctx context.Context, config *Config, repo repository.Catalog) (*SyncResult, error) {
	log := logger.FromContext(ctx)

	crops := make([]domain.CropMaster, 0, len(config.Crops))
	for _, def := range config.Crops {
		crops = append(crops, def.CropMaster())
	}

	inserted, err := repo.InsertCropMasters(ctx, crops)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgInsertCropsFailed, err)
	}

	result := &SyncResult{
		CropsInserted: inserted,
		CropsSkipped:  len(crops) - inserted,
	}
	log.Info(LogMsgSyncCompleted, "inserted", result.CropsInserted, "skipped", result.CropsSkipped)

	return result, nil
}
