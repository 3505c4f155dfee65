package bootstrap

import (
	"context"
	"fmt"

	"github.com/osse101/Homestead_Go/internal/catalog"
	"github.com/osse101/Homestead_Go/internal/logger"
	"github.com/osse101/Homestead_Go/internal/repository"
)

// SyncCatalog loads, validates and inserts missing crop masters from the JSON
// config. Existing crop masters are left untouched.
func SyncCatalog(ctx context.Context, repo repository.Catalog, path string) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSyncingCatalog, "path", path)

	loader := catalog.NewLoader()

	cfg, err := loader.Load(path)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}

	if err := loader.Validate(cfg); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgInvalidCatalog, err)
	}

	result, err := loader.SyncToDatabase(ctx, cfg, repo)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSyncCatalog, err)
	}

	if result.CropsInserted > 0 {
		log.Info(LogMsgCatalogSynced,
			"inserted", result.CropsInserted,
			"skipped", result.CropsSkipped)
	} else {
		log.Info(LogMsgCatalogUnchanged, "crops", result.CropsSkipped)
	}
	return nil
}
