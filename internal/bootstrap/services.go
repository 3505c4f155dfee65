package bootstrap

import (
	"github.com/osse101/Homestead_Go/internal/catalog"
	"github.com/osse101/Homestead_Go/internal/clock"
	"github.com/osse101/Homestead_Go/internal/config"
	"github.com/osse101/Homestead_Go/internal/event"
	"github.com/osse101/Homestead_Go/internal/farm"
)

// Services holds the application services
type Services struct {
	Catalog catalog.Service
	Farm    farm.Service
}

// FarmConfig maps the environment configuration onto the executor settings
func FarmConfig(cfg *config.Config) farm.Config {
	return farm.Config{
		TxTimeout:            cfg.TxTimeout,
		MaxAttempts:          cfg.TxMaxAttempts,
		ReconcileConcurrency: cfg.ReconcileConcurrency,
		InitialGold:          cfg.InitialGold,
		InitialGems:          cfg.InitialGems,
		InitialSlots:         cfg.InitialSlots,
		Pricing: farm.Pricing{
			Quality: cfg.QualityMultiplier,
			Market:  cfg.MarketMultiplier,
		},
	}
}

// InitializeServices wires the catalog cache and the farm executor
func InitializeServices(cfg *config.Config, repos *Repositories, bus event.Bus, clk clock.Clock) *Services {
	catalogSvc := catalog.NewService(repos.Catalog, cfg.CatalogCacheSize, cfg.CatalogCacheTTL)
	return &Services{
		Catalog: catalogSvc,
		Farm:    farm.NewService(repos.Farm, repos.Ledger, catalogSvc, bus, clk, FarmConfig(cfg)),
	}
}
