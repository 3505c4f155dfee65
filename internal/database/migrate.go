package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/osse101/Homestead_Go/internal/logger"
	"github.com/osse101/Homestead_Go/migrations"
)

// MigrationStatus describes one embedded migration
type MigrationStatus struct {
	Version int64
	Path    string
	Applied bool
}

func withProvider(pool *pgxpool.Pool, fn func(p *goose.Provider) error) error {
	db := stdlib.OpenDBFromPool(pool)
	defer func(db *sql.DB) { _ = db.Close() }(db)

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCreateProvider, err)
	}
	return fn(provider)
}

// Migrate applies every pending embedded migration
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	log := logger.FromContext(ctx)

	return withProvider(pool, func(p *goose.Provider) error {
		results, err := p.Up(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
		}
		if len(results) == 0 {
			log.Info(LogMsgSchemaUpToDate)
		}
		for _, r := range results {
			log.Info(LogMsgMigrationApplied,
				"version", r.Source.Version,
				"path", r.Source.Path,
				"duration", r.Duration)
		}
		return nil
	})
}

// MigrateDown rolls back the most recent migration
func MigrateDown(ctx context.Context, pool *pgxpool.Pool) error {
	return withProvider(pool, func(p *goose.Provider) error {
		r, err := p.Down(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToRollback, err)
		}
		logger.FromContext(ctx).Info(LogMsgMigrationRolledBack,
			"version", r.Source.Version,
			"path", r.Source.Path)
		return nil
	})
}

// MigrationStatuses lists every embedded migration and whether it is applied
func MigrationStatuses(ctx context.Context, pool *pgxpool.Pool) ([]MigrationStatus, error) {
	var out []MigrationStatus
	err := withProvider(pool, func(p *goose.Provider) error {
		statuses, err := p.Status(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToReadStatus, err)
		}
		for _, s := range statuses {
			out = append(out, MigrationStatus{
				Version: s.Source.Version,
				Path:    s.Source.Path,
				Applied: s.State == goose.StateApplied,
			})
		}
		return nil
	})
	return out, err
}
