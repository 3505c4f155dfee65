package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/osse101/Homestead_Go/internal/domain"
)

// BalancePoint is the running balance right after an entry was applied
type BalancePoint struct {
	EntryID string            `json:"entryId"`
	Kind    domain.LedgerKind `json:"kind"`
	Amount  int64             `json:"amount"`
	Balance int64             `json:"balance"`
	At      time.Time         `json:"at"`
}

// Replay applies entries oldest-first and returns the balance history.
// The input order does not matter; entries are sorted by CreatedAt (stable).
func Replay(entries []domain.LedgerEntry) []BalancePoint {
	ordered := make([]domain.LedgerEntry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	points := make([]BalancePoint, 0, len(ordered))
	var balance int64
	for _, e := range ordered {
		balance += e.Amount
		points = append(points, BalancePoint{
			EntryID: e.ID,
			Kind:    e.Kind,
			Amount:  e.Amount,
			Balance: balance,
			At:      e.CreatedAt,
		})
	}
	return points
}

// Balance sums every entry
func Balance(entries []domain.LedgerEntry) int64 {
	var total int64
	for _, e := range entries {
		total += e.Amount
	}
	return total
}

// Verify checks that the full ledger of a wallet replays to its balance and
// that the running balance never went negative.
func Verify(entries []domain.LedgerEntry, gold int64) error {
	for _, p := range Replay(entries) {
		if p.Balance < 0 {
			return fmt.Errorf("%w: balance %d after entry %s", domain.ErrLedgerInconsistent, p.Balance, p.EntryID)
		}
	}
	if total := Balance(entries); total != gold {
		return fmt.Errorf("%w: ledger sums to %d, wallet holds %d", domain.ErrLedgerInconsistent, total, gold)
	}
	return nil
}
