package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/Homestead_Go/internal/domain"
	"github.com/osse101/Homestead_Go/internal/repository"
)

var _ repository.Ledger = (*LedgerRepository)(nil)

// LedgerRepository implements repository.Ledger for PostgreSQL
type LedgerRepository struct {
	db *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// ListEntries returns the newest entries first, ordered by insertion sequence
func (r *LedgerRepository) ListEntries(ctx context.Context, walletID string, limit int) ([]domain.LedgerEntry, error) {
	out := make([]domain.LedgerEntry, 0)

	wid, err := uuid.Parse(walletID)
	if err != nil {
		return out, nil
	}

	const base = `
		SELECT ledger_entry_id::text, wallet_id::text, kind, amount, metadata, created_at
		FROM ledger_entries
		WHERE wallet_id = $1
		ORDER BY sequence DESC`

	var rows pgx.Rows
	if limit > 0 {
		rows, err = r.db.Query(ctx, base+` LIMIT $2`, wid, limit)
	} else {
		rows, err = r.db.Query(ctx, base, wid)
	}
	if err != nil {
		return nil, mapError(err, ErrMsgFailedToQueryLedger)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			e    domain.LedgerEntry
			kind string
			meta []byte
		)
		if err := rows.Scan(&e.ID, &e.WalletID, &kind, &e.Amount, &meta, &e.CreatedAt); err != nil {
			return nil, mapError(err, ErrMsgFailedToScanLedgerEntry)
		}
		e.Kind = domain.LedgerKind(kind)
		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &e.Metadata); err != nil {
				return nil, fmt.Errorf("%w: %s: %w", domain.ErrDatabaseError, ErrMsgFailedToUnmarshalMetadata, err)
			}
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, ErrMsgFailedToQueryLedger)
	}
	return out, nil
}
