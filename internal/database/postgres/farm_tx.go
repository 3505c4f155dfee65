package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/osse101/Homestead_Go/internal/domain"
	"github.com/osse101/Homestead_Go/internal/repository"
)

var _ repository.FarmTx = (*farmTx)(nil)

// farmTx runs a single player action inside one pgx transaction
type farmTx struct {
	tx     pgx.Tx
	player *domain.Player
	wallet string
}

func (t *farmTx) GetPlayerForUpdate(ctx context.Context, username string) (*domain.Player, *domain.Wallet, error) {
	if t.player != nil {
		return nil, nil, fmt.Errorf("%w: %s: %s", domain.ErrDatabaseError, ErrMsgPlayerAlreadyLocked, t.player.Username)
	}

	player, wallet, err := scanPlayer(t.tx.QueryRow(ctx, `
		SELECT `+playerColumns+`
		FROM players p
		JOIN wallets w ON w.player_id = p.player_id
		WHERE p.username = $1
		FOR UPDATE OF w`, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, domain.ErrPlayerNotFound
		}
		return nil, nil, mapError(err, ErrMsgFailedToLockPlayer)
	}

	t.player = player
	t.wallet = wallet.ID
	return player, wallet, nil
}

func (t *farmTx) GetSlotForUpdate(ctx context.Context, playerID, slotID string) (*domain.FarmSlot, error) {
	if t.player == nil {
		return nil, errNoPlayerLocked()
	}
	sid, err := parseID(slotID, domain.ErrSlotNotFound)
	if err != nil {
		return nil, err
	}
	pid, err := parseID(playerID, domain.ErrSlotNotFound)
	if err != nil {
		return nil, err
	}

	slot, err := scanSlot(t.tx.QueryRow(ctx, slotSelect+`
		WHERE s.slot_id = $1 AND s.player_id = $2
		FOR UPDATE OF s`, sid, pid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSlotNotFound
		}
		return nil, mapError(err, ErrMsgFailedToGetSlot)
	}
	return &slot, nil
}

func (t *farmTx) UpdateWalletGold(ctx context.Context, walletID string, gold int64) error {
	if err := t.ownsWallet(walletID); err != nil {
		return err
	}
	if gold < 0 {
		return fmt.Errorf("%w: %s: gold cannot be negative", domain.ErrDatabaseError, ErrMsgFailedToUpdateWallet)
	}

	_, err := t.tx.Exec(ctx, `UPDATE wallets SET gold = $2 WHERE wallet_id = $1`, uuid.MustParse(walletID), gold)
	return mapError(err, ErrMsgFailedToUpdateWallet)
}

func (t *farmTx) PlantCrop(ctx context.Context, crop *domain.CropInstance) error {
	if t.player == nil {
		return errNoPlayerLocked()
	}
	cropID, err := uuid.Parse(crop.ID)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrDatabaseError, ErrMsgFailedToInsertCrop, err)
	}
	slotID, err := parseID(crop.SlotID, domain.ErrSlotNotFound)
	if err != nil {
		return err
	}
	masterID, err := parseID(crop.Master.ID, domain.ErrCropMasterNotFound)
	if err != nil {
		return err
	}

	_, err = t.tx.Exec(ctx, `
		INSERT INTO crop_instances (crop_instance_id, slot_id, crop_master_id, planted_at, harvestable_at, is_withered)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		cropID, slotID, masterID, crop.PlantedAt, crop.HarvestableAt(), crop.IsWithered())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s: %s", domain.ErrDatabaseError, ErrMsgSlotAlreadyPlanted, crop.SlotID)
		}
		return mapError(err, ErrMsgFailedToInsertCrop)
	}

	tag, err := t.tx.Exec(ctx, `
		UPDATE farm_slots SET status = 'PLANTED'
		WHERE slot_id = $1 AND status = 'EMPTY'`, slotID)
	if err != nil {
		return mapError(err, ErrMsgFailedToUpdateSlot)
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("%w: %s: %s", domain.ErrDatabaseError, ErrMsgSlotAlreadyPlanted, crop.SlotID)
	}
	return nil
}

func (t *farmTx) ClearSlot(ctx context.Context, slotID, cropID string) error {
	if t.player == nil {
		return errNoPlayerLocked()
	}
	sid, err := parseID(slotID, domain.ErrSlotNotFound)
	if err != nil {
		return err
	}
	cid, err := uuid.Parse(cropID)
	if err != nil {
		return fmt.Errorf("%w: %s: %s", domain.ErrDatabaseError, ErrMsgCropNotInSlot, cropID)
	}

	tag, err := t.tx.Exec(ctx, `
		DELETE FROM crop_instances
		WHERE crop_instance_id = $1 AND slot_id = $2`, cid, sid)
	if err != nil {
		return mapError(err, ErrMsgFailedToDeleteCrop)
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("%w: %s: %s", domain.ErrDatabaseError, ErrMsgCropNotInSlot, cropID)
	}

	_, err = t.tx.Exec(ctx, `UPDATE farm_slots SET status = 'EMPTY' WHERE slot_id = $1`, sid)
	return mapError(err, ErrMsgFailedToUpdateSlot)
}

func (t *farmTx) AppendLedgerEntry(ctx context.Context, entry domain.LedgerEntry) error {
	if err := t.ownsWallet(entry.WalletID); err != nil {
		return err
	}
	return insertLedgerEntry(ctx, t.tx, entry)
}

func (t *farmTx) LoadFarm(ctx context.Context, playerID string) (*domain.Farm, error) {
	if t.player == nil {
		return nil, errNoPlayerLocked()
	}
	return loadFarm(ctx, t.tx, playerID)
}

func (t *farmTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return mapError(err, ErrMsgFailedToCommitTransaction)
	}
	return nil
}

func (t *farmTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func (t *farmTx) ownsWallet(walletID string) error {
	if t.player == nil {
		return errNoPlayerLocked()
	}
	if walletID != t.wallet {
		return fmt.Errorf("%w: %s: %s", domain.ErrDatabaseError, ErrMsgForeignWallet, walletID)
	}
	return nil
}
