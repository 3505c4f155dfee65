package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/Homestead_Go/internal/domain"
	"github.com/osse101/Homestead_Go/internal/ledger"
	"github.com/osse101/Homestead_Go/internal/logger"
	"github.com/osse101/Homestead_Go/internal/repository"
)

var _ repository.Farm = (*FarmRepository)(nil)

// FarmRepository implements repository.Farm for PostgreSQL
type FarmRepository struct {
	db *pgxpool.Pool
}

// NewFarmRepository creates a new FarmRepository
func NewFarmRepository(db *pgxpool.Pool) *FarmRepository {
	return &FarmRepository{db: db}
}

// GetPlayerByUsername looks a player up without locking anything
func (r *FarmRepository) GetPlayerByUsername(ctx context.Context, username string) (*domain.Player, error) {
	var p domain.Player
	err := r.db.QueryRow(ctx, `
		SELECT player_id::text, username, created_at
		FROM players
		WHERE username = $1`, username).Scan(&p.ID, &p.Username, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, mapError(err, ErrMsgFailedToGetPlayer)
	}
	return &p, nil
}

// ProvisionPlayer inserts the player, wallet, slots and initial grant in one
// transaction. A concurrent insert of the same username blocks on the unique
// index until the winner commits, then sees the conflict and reads the winner.
func (r *FarmRepository) ProvisionPlayer(ctx context.Context, username string, p domain.Provisioning) (*domain.Player, bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, false, mapError(err, ErrMsgFailedToBeginTransaction)
	}
	defer SafeRollback(ctx, tx)

	var (
		player   domain.Player
		playerID uuid.UUID
	)
	err = tx.QueryRow(ctx, `
		INSERT INTO players (username, created_at)
		VALUES ($1, $2)
		ON CONFLICT (username) DO NOTHING
		RETURNING player_id, username, created_at`, username, p.At).
		Scan(&playerID, &player.Username, &player.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		SafeRollback(ctx, tx)
		existing, err := r.GetPlayerByUsername(ctx, username)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, mapError(err, ErrMsgFailedToInsertPlayer)
	}
	player.ID = playerID.String()

	var walletID uuid.UUID
	err = tx.QueryRow(ctx, `
		INSERT INTO wallets (player_id, gold, gems)
		VALUES ($1, $2, $3)
		RETURNING wallet_id`, playerID, p.Gold, p.Gems).Scan(&walletID)
	if err != nil {
		return nil, false, mapError(err, ErrMsgFailedToInsertWallet)
	}

	if p.Slots > 0 {
		_, err = tx.Exec(ctx, `
			INSERT INTO farm_slots (player_id, grid_index, status)
			SELECT $1, g, 'EMPTY'
			FROM generate_series(0, $2::int - 1) AS g`, playerID, p.Slots)
		if err != nil {
			return nil, false, mapError(err, ErrMsgFailedToInsertSlots)
		}
	}

	if err := insertLedgerEntry(ctx, tx, ledger.NewInitialGrant(walletID.String(), p.Gold, p.At)); err != nil {
		return nil, false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, mapError(err, ErrMsgFailedToCommitTransaction)
	}

	logger.FromContext(ctx).Debug(LogMsgPlayerProvisioned,
		"username", username,
		"player_id", player.ID,
		"slots", p.Slots)
	return &player, true, nil
}

// LoadFarm reads the committed state of a player
func (r *FarmRepository) LoadFarm(ctx context.Context, playerID string) (*domain.Farm, error) {
	return loadFarm(ctx, r.db, playerID)
}

// MarkCropWithered flips the sticky flag in a single idempotent statement
func (r *FarmRepository) MarkCropWithered(ctx context.Context, cropID string) (bool, error) {
	id, err := uuid.Parse(cropID)
	if err != nil {
		return false, nil
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE crop_instances
		SET is_withered = TRUE
		WHERE crop_instance_id = $1 AND is_withered = FALSE`, id)
	if err != nil {
		return false, mapError(err, ErrMsgFailedToMarkWithered)
	}
	return tag.RowsAffected() == 1, nil
}

// BeginTx starts a READ COMMITTED transaction. Isolation between actions on
// the same player comes from the wallet row lock taken by GetPlayerForUpdate.
func (r *FarmRepository) BeginTx(ctx context.Context) (repository.FarmTx, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, mapError(err, ErrMsgFailedToBeginTransaction)
	}
	return &farmTx{tx: tx}, nil
}

func errNoPlayerLocked() error {
	return fmt.Errorf("%w: %s", domain.ErrDatabaseError, ErrMsgNoPlayerLocked)
}
