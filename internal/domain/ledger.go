package domain

import "time"

// LedgerKind is the cause of a currency movement
type LedgerKind string

const (
	LedgerKindInitialGrant LedgerKind = "INITIAL_GRANT"
	LedgerKindSeedPurchase LedgerKind = "SEED_PURCHASE"
	LedgerKindCropSale     LedgerKind = "CROP_SALE"
)

// LedgerMetadata records what caused an entry
type LedgerMetadata struct {
	CropName     string `json:"cropName,omitempty"`
	CropMasterID string `json:"cropMasterId,omitempty"`
	SlotIndex    *int   `json:"slotIndex,omitempty"`
}

// LedgerEntry is an append-only record of a signed gold movement.
// Entries are never read to derive current state; Wallet.Gold is canonical.
type LedgerEntry struct {
	ID        string         `json:"id"`
	WalletID  string         `json:"walletId"`
	Kind      LedgerKind     `json:"kind"`
	Amount    int64          `json:"amount"`
	Metadata  LedgerMetadata `json:"metadata"`
	CreatedAt time.Time      `json:"createdAt"`
}
