package farm

import "time"

// Defaults applied by NewService when a Config field is left zero
const (
	DefaultTxTimeout            = 5 * time.Second
	DefaultMaxAttempts          = 3
	DefaultReconcileConcurrency = 4

	DefaultInitialGold  int64 = 100
	DefaultInitialGems  int64 = 0
	DefaultInitialSlots       = 6

	DefaultMultiplier = 1.0
)

// Ledger history paging
const (
	DefaultLedgerLimit = 20
	MaxLedgerLimit     = 100
)

// Operation names used in logs and retry events
const (
	OperationSync    = "sync"
	OperationPlant   = "plant"
	OperationHarvest = "harvest"
)

// Error messages
const (
	ErrMsgLookupPlayerFailed   = "failed to look up player: %w"
	ErrMsgProvisionFailed      = "failed to provision player: %w"
	ErrMsgLoadFarmFailed       = "failed to load farm: %w"
	ErrMsgReconcileFailed      = "failed to reconcile crop %s: %w"
	ErrMsgBeginTxFailed        = "failed to begin transaction: %w"
	ErrMsgLockPlayerFailed     = "failed to lock player: %w"
	ErrMsgGetSlotFailed        = "failed to get slot: %w"
	ErrMsgGetCropFailed        = "failed to get crop type: %w"
	ErrMsgUpdateWalletFailed   = "failed to update wallet: %w"
	ErrMsgAppendLedgerFailed   = "failed to append ledger entry: %w"
	ErrMsgPlantFailed          = "failed to plant crop: %w"
	ErrMsgClearSlotFailed      = "failed to clear slot: %w"
	ErrMsgCommitFailed         = "failed to commit transaction: %w"
	ErrMsgListLedgerFailed     = "failed to list ledger entries: %w"
	ErrMsgRetriesExhausted     = "%s gave up after %d attempts: %w"
	ErrFmtSlotOccupied         = "%w: slot %d"
	ErrFmtSlotEmpty            = "%w: slot %d"
	ErrFmtInsufficientFunds    = "%w: have %d, need %d"
	ErrFmtCropNotReady         = "%w: %ds remaining"
	ErrFmtTransactionTimeout   = "%w: %s exceeded %s: %v"
	ErrFmtUnknownActionVariant = "%w: %T"
)

// Log messages
const (
	LogMsgSyncCalled        = "Sync called"
	LogMsgSyncCompleted     = "Sync completed"
	LogMsgPlayerProvisioned = "Player provisioned"
	LogMsgCropWithered      = "Crop withered while player was away"
	LogMsgExecuteCalled     = "Action called"
	LogMsgActionApplied     = "Action applied"
	LogMsgActionRejected    = "Action rejected"
	LogMsgActionFailed      = "Action failed"
	LogMsgTxConflictRetry   = "Transaction conflict, retrying"
	LogMsgPublishFailed     = "Failed to publish event"
	LogMsgLedgerVerified    = "Ledger verified"
	LogMsgShutdownWaiting   = "Waiting for pending farm events"
	LogMsgShutdownComplete  = "Farm service shutdown complete"
)
