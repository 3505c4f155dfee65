package repository

import (
	"context"

	"github.com/osse101/Homestead_Go/internal/domain"
)

// Ledger reads the append-only currency log. Writes only happen through FarmTx.
type Ledger interface {
	// ListEntries returns the newest entries first. limit <= 0 returns all.
	ListEntries(ctx context.Context, walletID string, limit int) ([]domain.LedgerEntry, error)
}
