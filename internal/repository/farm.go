package repository

import (
	"context"

	"github.com/osse101/Homestead_Go/internal/domain"
)

// Farm persists players, wallets, slots and crop instances
type Farm interface {
	// GetPlayerByUsername returns domain.ErrPlayerNotFound for unknown names
	GetPlayerByUsername(ctx context.Context, username string) (*domain.Player, error)

	// ProvisionPlayer creates the player with a wallet, p.Slots EMPTY slots and
	// an INITIAL_GRANT ledger entry, atomically. If the username already exists
	// nothing is written and the existing player is returned with created=false.
	ProvisionPlayer(ctx context.Context, username string, p domain.Provisioning) (player *domain.Player, created bool, err error)

	// LoadFarm returns the wallet and slots (ordered by index) of a player
	LoadFarm(ctx context.Context, playerID string) (*domain.Farm, error)

	// MarkCropWithered sets the sticky flag if it is not set yet. It reports
	// whether this call flipped it. A crop that no longer exists is not an error.
	MarkCropWithered(ctx context.Context, cropID string) (bool, error)

	// BeginTx starts a transaction for a single player action
	BeginTx(ctx context.Context) (FarmTx, error)
}

// FarmTx is a read-validate-mutate unit of work over one player's state.
// GetPlayerForUpdate must be called first; it locks the player's wallet and
// serialises every other transaction touching the same player.
type FarmTx interface {
	Tx

	// GetPlayerForUpdate locks and returns the player and wallet
	GetPlayerForUpdate(ctx context.Context, username string) (*domain.Player, *domain.Wallet, error)

	// GetSlotForUpdate returns the slot with its crop, scoped to the player.
	// A slot owned by someone else is domain.ErrSlotNotFound.
	GetSlotForUpdate(ctx context.Context, playerID, slotID string) (*domain.FarmSlot, error)

	// UpdateWalletGold sets the gold balance
	UpdateWalletGold(ctx context.Context, walletID string, gold int64) error

	// PlantCrop stores crop and marks its slot PLANTED
	PlantCrop(ctx context.Context, crop *domain.CropInstance) error

	// ClearSlot destroys the crop and marks the slot EMPTY
	ClearSlot(ctx context.Context, slotID, cropID string) error

	// AppendLedgerEntry records a currency movement
	AppendLedgerEntry(ctx context.Context, entry domain.LedgerEntry) error

	// LoadFarm reads the player's state as this transaction sees it
	LoadFarm(ctx context.Context, playerID string) (*domain.Farm, error)
}
