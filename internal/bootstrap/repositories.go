package bootstrap

import (
	"context"
	"fmt"

	"github.com/osse101/Homestead_Go/internal/config"
	"github.com/osse101/Homestead_Go/internal/database"
	"github.com/osse101/Homestead_Go/internal/database/memory"
	"github.com/osse101/Homestead_Go/internal/database/postgres"
	"github.com/osse101/Homestead_Go/internal/logger"
	"github.com/osse101/Homestead_Go/internal/repository"
)

// Repositories holds the store implementations selected by STORE_DRIVER
type Repositories struct {
	Farm    repository.Farm
	Ledger  repository.Ledger
	Catalog repository.Catalog

	// Pool backs the readiness probe and is closed on shutdown
	Pool database.Pool
}

// InitializeRepositories opens the configured store. For postgres it connects,
// applies pending migrations and builds the pgx repositories.
func InitializeRepositories(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		logger.Warn(LogMsgUsingMemoryStore)
		store := memory.NewStore()
		return &Repositories{
			Farm:    store,
			Ledger:  store,
			Catalog: store,
			Pool:    store,
		}, nil

	case config.StoreDriverPostgres:
		logger.Info(LogMsgUsingPostgresStore, "host", cfg.DBHost, "database", cfg.DBName)
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdle, cfg.DBMaxConnLifetime)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
		}
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
		}
		return &Repositories{
			Farm:    postgres.NewFarmRepository(pool),
			Ledger:  postgres.NewLedgerRepository(pool),
			Catalog: postgres.NewCatalogRepository(pool),
			Pool:    pool,
		}, nil

	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownStoreDriver, cfg.StoreDriver)
	}
}
