// Package ledger builds and audits the append-only record of gold movements.
//
// Entries are only ever appended by the farm executor inside the transaction
// that moves the gold. Nothing reads them to compute current state; the wallet
// balance is canonical and the ledger must replay to it.
package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/osse101/Homestead_Go/internal/domain"
)

// NewInitialGrant records the gold a player receives on first contact
func NewInitialGrant(walletID string, gold int64, at time.Time) domain.LedgerEntry {
	return newEntry(walletID, domain.LedgerKindInitialGrant, gold, domain.LedgerMetadata{}, at)
}

// NewSeedPurchase records the debit for planting master in the slot at slotIndex
func NewSeedPurchase(walletID string, master domain.CropMaster, slotIndex int, at time.Time) domain.LedgerEntry {
	return newEntry(walletID, domain.LedgerKindSeedPurchase, -master.BuyPrice, cropMetadata(master, slotIndex), at)
}

// NewCropSale records the credit for harvesting master from the slot at slotIndex
func NewCropSale(walletID string, master domain.CropMaster, slotIndex int, payout int64, at time.Time) domain.LedgerEntry {
	return newEntry(walletID, domain.LedgerKindCropSale, payout, cropMetadata(master, slotIndex), at)
}

func newEntry(walletID string, kind domain.LedgerKind, amount int64, meta domain.LedgerMetadata, at time.Time) domain.LedgerEntry {
	return domain.LedgerEntry{
		ID:        uuid.NewString(),
		WalletID:  walletID,
		Kind:      kind,
		Amount:    amount,
		Metadata:  meta,
		CreatedAt: at,
	}
}

func cropMetadata(master domain.CropMaster, slotIndex int) domain.LedgerMetadata {
	idx := slotIndex
	return domain.LedgerMetadata{
		CropName:     master.Name,
		CropMasterID: master.ID,
		SlotIndex:    &idx,
	}
}
