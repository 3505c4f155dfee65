package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/Homestead_Go/internal/domain"
	"github.com/osse101/Homestead_Go/internal/logger"
	"github.com/osse101/Homestead_Go/internal/repository"
)

var _ repository.Catalog = (*CatalogRepository)(nil)

// CatalogRepository implements repository.Catalog for PostgreSQL
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) ListCropMasters(ctx context.Context) ([]domain.CropMaster, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+cropMasterColumns+`
		FROM crop_masters
		ORDER BY buy_price, name`)
	if err != nil {
		return nil, mapError(err, ErrMsgFailedToQueryCropMasters)
	}
	defer rows.Close()

	out := make([]domain.CropMaster, 0)
	for rows.Next() {
		m, err := scanCropMaster(rows)
		if err != nil {
			return nil, mapError(err, ErrMsgFailedToScanCropMaster)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, ErrMsgFailedToQueryCropMasters)
	}
	return out, nil
}

func (r *CatalogRepository) GetCropMaster(ctx context.Context, id string) (*domain.CropMaster, error) {
	mid, err := parseID(id, domain.ErrCropMasterNotFound)
	if err != nil {
		return nil, err
	}

	m, err := scanCropMaster(r.db.QueryRow(ctx, `
		SELECT `+cropMasterColumns+`
		FROM crop_masters
		WHERE crop_master_id = $1`, mid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCropMasterNotFound
		}
		return nil, mapError(err, ErrMsgFailedToGetCropMaster)
	}
	return &m, nil
}

// InsertCropMasters inserts each crop unless its id or name already exists
func (r *CatalogRepository) InsertCropMasters(ctx context.Context, crops []domain.CropMaster) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, mapError(err, ErrMsgFailedToBeginTransaction)
	}
	defer SafeRollback(ctx, tx)

	inserted := 0
	for _, c := range crops {
		id := uuid.New()
		if c.ID != "" {
			if id, err = uuid.Parse(c.ID); err != nil {
				return 0, mapError(err, ErrMsgFailedToInsertCropMasters)
			}
		}

		tag, err := tx.Exec(ctx, `
			INSERT INTO crop_masters (`+cropMasterInsertColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT DO NOTHING`,
			id, c.Name, c.Description, c.GrowthSeconds, c.BuyPrice, c.SellPrice, c.Experience, c.DisplayToken)
		if err != nil {
			return 0, mapError(err, ErrMsgFailedToInsertCropMasters)
		}
		inserted += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, mapError(err, ErrMsgFailedToCommitTransaction)
	}

	if inserted > 0 {
		logger.FromContext(ctx).Info(LogMsgCropMastersSeeded, "inserted", inserted, "total", len(crops))
	}
	return inserted, nil
}

const cropMasterInsertColumns = `crop_master_id, name, description, growth_seconds,
	buy_price, sell_price, experience, display_token`
