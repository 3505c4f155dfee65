package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/osse101/Homestead_Go/internal/config"
	"github.com/osse101/Homestead_Go/internal/database"
)

const usage = "usage: migrate <up|down|status>"

func main() {
	if len(os.Args) < 2 {
		log.Fatal(usage)
	}
	if err := run(os.Args[1]); err != nil {
		log.Fatalf("Migration %s failed: %v", os.Args[1], err)
	}
}

func run(subcmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdle, cfg.DBMaxConnLifetime)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	switch subcmd {
	case "up":
		return database.Migrate(ctx, pool)
	case "down":
		return database.MigrateDown(ctx, pool)
	case "status":
		statuses, err := database.MigrationStatuses(ctx, pool)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			state := "pending"
			if s.Applied {
				state = "applied"
			}
			fmt.Printf("%05d  %-8s  %s\n", s.Version, state, s.Path)
		}
		return nil
	default:
		return fmt.Errorf("unknown subcommand %q (%s)", subcmd, usage)
	}
}
