package memory

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/Homestead_Go/internal/domain"
)

// farmTx buffers every write on a private copy of one player's record
type farmTx struct {
	store   *Store
	release func()
	work    *playerRecord
	planted []string
	cleared []string
	entries []domain.LedgerEntry
	done    bool
}

var errNoPlayerLocked = errors.New("GetPlayerForUpdate must be called first")

func (t *farmTx) GetPlayerForUpdate(ctx context.Context, username string) (*domain.Player, *domain.Wallet, error) {
	if t.done {
		return nil, nil, errors.New(domain.ErrMsgTxClosed)
	}
	if t.work != nil {
		return nil, nil, fmt.Errorf("%w: transaction already holds player %s", domain.ErrDatabaseError, t.work.player.Username)
	}

	t.store.mu.RLock()
	rec, ok := t.store.players[username]
	var playerID string
	if ok {
		playerID = rec.player.ID
	}
	t.store.mu.RUnlock()
	if !ok {
		return nil, nil, domain.ErrPlayerNotFound
	}

	release, err := t.store.locks.Acquire(ctx, playerID)
	if err != nil {
		return nil, nil, err
	}
	t.release = release

	t.store.mu.RLock()
	t.work = t.store.players[username].clone()
	t.store.mu.RUnlock()

	p, w := t.work.player, t.work.wallet
	return &p, &w, nil
}

func (t *farmTx) GetSlotForUpdate(ctx context.Context, playerID, slotID string) (*domain.FarmSlot, error) {
	slot, err := t.slot(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot.PlayerID != playerID {
		return nil, domain.ErrSlotNotFound
	}
	cp := *slot
	cp.Crop = slot.Crop.Clone()
	return &cp, nil
}

func (t *farmTx) UpdateWalletGold(ctx context.Context, walletID string, gold int64) error {
	if err := t.check(ctx); err != nil {
		return err
	}
	if t.work.wallet.ID != walletID {
		return fmt.Errorf("%w: wallet %s not locked by this transaction", domain.ErrDatabaseError, walletID)
	}
	if gold < 0 {
		return fmt.Errorf("%w: wallet gold cannot be negative", domain.ErrDatabaseError)
	}
	t.work.wallet.Gold = gold
	return nil
}

func (t *farmTx) PlantCrop(ctx context.Context, crop *domain.CropInstance) error {
	slot, err := t.slot(ctx, crop.SlotID)
	if err != nil {
		return err
	}
	if slot.Crop != nil {
		return fmt.Errorf("%w: slot %s already holds a crop", domain.ErrDatabaseError, slot.ID)
	}
	slot.Crop = crop.Clone()
	slot.Status = domain.SlotStatusPlanted
	t.planted = append(t.planted, crop.ID)
	return nil
}

func (t *farmTx) ClearSlot(ctx context.Context, slotID, cropID string) error {
	slot, err := t.slot(ctx, slotID)
	if err != nil {
		return err
	}
	if slot.Crop == nil || slot.Crop.ID != cropID {
		return fmt.Errorf("%w: crop %s is not in slot %s", domain.ErrDatabaseError, cropID, slotID)
	}
	slot.Crop = nil
	slot.Status = domain.SlotStatusEmpty
	t.cleared = append(t.cleared, cropID)
	return nil
}

func (t *farmTx) AppendLedgerEntry(ctx context.Context, entry domain.LedgerEntry) error {
	if err := t.check(ctx); err != nil {
		return err
	}
	if entry.WalletID != t.work.wallet.ID {
		return fmt.Errorf("%w: ledger entry for foreign wallet %s", domain.ErrDatabaseError, entry.WalletID)
	}
	t.entries = append(t.entries, entry)
	return nil
}

func (t *farmTx) LoadFarm(ctx context.Context, playerID string) (*domain.Farm, error) {
	if err := t.check(ctx); err != nil {
		return nil, err
	}
	if t.work.player.ID != playerID {
		return nil, domain.ErrPlayerNotFound
	}
	return t.work.farm(), nil
}

// Commit publishes the working copy. It fails if the context is already done,
// in which case nothing is published.
func (t *farmTx) Commit(ctx context.Context) error {
	if t.done {
		return errors.New(domain.ErrMsgTxClosed)
	}
	if err := ctx.Err(); err != nil {
		t.finish()
		return err
	}
	if t.work == nil {
		t.finish()
		return nil
	}

	s := t.store
	s.mu.Lock()
	username := t.work.player.Username
	s.players[username] = t.work
	for _, id := range t.cleared {
		delete(s.crops, id)
	}
	for _, id := range t.planted {
		s.crops[id] = username
	}
	walletID := t.work.wallet.ID
	s.entries[walletID] = append(s.entries[walletID], t.entries...)
	s.mu.Unlock()

	t.finish()
	return nil
}

func (t *farmTx) Rollback(ctx context.Context) error {
	if t.done {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.finish()
	return nil
}

func (t *farmTx) finish() {
	t.done = true
	if t.release != nil {
		t.release()
	}
}

func (t *farmTx) check(ctx context.Context) error {
	if t.done {
		return errors.New(domain.ErrMsgTxClosed)
	}
	if t.work == nil {
		return errNoPlayerLocked
	}
	return ctx.Err()
}

func (t *farmTx) slot(ctx context.Context, slotID string) (*domain.FarmSlot, error) {
	if err := t.check(ctx); err != nil {
		return nil, err
	}
	for i := range t.work.slots {
		if t.work.slots[i].ID == slotID {
			return &t.work.slots[i], nil
		}
	}
	return nil, domain.ErrSlotNotFound
}
