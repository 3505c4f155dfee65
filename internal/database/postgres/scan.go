package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/osse101/Homestead_Go/internal/domain"
)

const playerColumns = `p.player_id::text, p.username, p.created_at,
	w.wallet_id::text, w.player_id::text, w.gold, w.gems`

const slotSelect = `SELECT s.slot_id::text, s.player_id::text, s.grid_index, s.status,
	ci.crop_instance_id::text, ci.planted_at, ci.is_withered,
	cm.crop_master_id::text, cm.name, cm.description, cm.growth_seconds,
	cm.buy_price, cm.sell_price, cm.experience, cm.display_token
FROM farm_slots s
LEFT JOIN crop_instances ci ON ci.slot_id = s.slot_id
LEFT JOIN crop_masters cm ON cm.crop_master_id = ci.crop_master_id`

const cropMasterColumns = `crop_master_id::text, name, description, growth_seconds,
	buy_price, sell_price, experience, display_token`

func scanPlayer(row pgx.Row) (*domain.Player, *domain.Wallet, error) {
	var p domain.Player
	var w domain.Wallet
	if err := row.Scan(&p.ID, &p.Username, &p.CreatedAt, &w.ID, &w.PlayerID, &w.Gold, &w.Gems); err != nil {
		return nil, nil, err
	}
	return &p, &w, nil
}

// scanSlot reads one row of slotSelect. The crop columns are NULL for an empty slot.
func scanSlot(row pgx.Row) (domain.FarmSlot, error) {
	var (
		slot       domain.FarmSlot
		status     string
		cropID     *string
		plantedAt  *time.Time
		withered   *bool
		masterID   *string
		name       *string
		desc       *string
		growth     *int
		buyPrice   *int64
		sellPrice  *int64
		experience *int
		token      *string
	)
	err := row.Scan(&slot.ID, &slot.PlayerID, &slot.Index, &status,
		&cropID, &plantedAt, &withered,
		&masterID, &name, &desc, &growth, &buyPrice, &sellPrice, &experience, &token)
	if err != nil {
		return domain.FarmSlot{}, err
	}

	slot.Status = domain.SlotStatus(status)
	if cropID == nil {
		return slot, nil
	}

	master := domain.CropMaster{
		ID:            *masterID,
		Name:          *name,
		Description:   *desc,
		GrowthSeconds: *growth,
		BuyPrice:      *buyPrice,
		SellPrice:     *sellPrice,
		Experience:    *experience,
		DisplayToken:  *token,
	}
	slot.Crop = domain.RestoreCropInstance(*cropID, slot.ID, master, *plantedAt, *withered)
	return slot, nil
}

func scanCropMaster(row pgx.Row) (domain.CropMaster, error) {
	var m domain.CropMaster
	err := row.Scan(&m.ID, &m.Name, &m.Description, &m.GrowthSeconds,
		&m.BuyPrice, &m.SellPrice, &m.Experience, &m.DisplayToken)
	return m, err
}

// loadFarm reads a player's wallet and slots through q, which may be a pool or a transaction
func loadFarm(ctx context.Context, q querier, playerID string) (*domain.Farm, error) {
	pid, err := parseID(playerID, domain.ErrPlayerNotFound)
	if err != nil {
		return nil, err
	}

	player, wallet, err := scanPlayer(q.QueryRow(ctx, `
		SELECT `+playerColumns+`
		FROM players p
		JOIN wallets w ON w.player_id = p.player_id
		WHERE p.player_id = $1`, pid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, mapError(err, ErrMsgFailedToLoadFarm)
	}

	rows, err := q.Query(ctx, slotSelect+`
		WHERE s.player_id = $1
		ORDER BY s.grid_index`, pid)
	if err != nil {
		return nil, mapError(err, ErrMsgFailedToQuerySlots)
	}
	defer rows.Close()

	slots := make([]domain.FarmSlot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, mapError(err, ErrMsgFailedToScanSlot)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, ErrMsgFailedToQuerySlots)
	}

	return &domain.Farm{Player: *player, Wallet: *wallet, Slots: slots}, nil
}

func insertLedgerEntry(ctx context.Context, q querier, entry domain.LedgerEntry) error {
	id, err := uuid.Parse(entry.ID)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrDatabaseError, ErrMsgFailedToInsertLedgerEntry, err)
	}
	walletID, err := uuid.Parse(entry.WalletID)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrDatabaseError, ErrMsgFailedToInsertLedgerEntry, err)
	}
	meta, err := json.Marshal(entry.Metadata)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrDatabaseError, ErrMsgFailedToMarshalMetadata, err)
	}

	_, err = q.Exec(ctx, `
		INSERT INTO ledger_entries (ledger_entry_id, wallet_id, kind, amount, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		id, walletID, string(entry.Kind), entry.Amount, meta, entry.CreatedAt)
	return mapError(err, ErrMsgFailedToInsertLedgerEntry)
}
