package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is raised when a unique constraint is violated
	PgErrorCodeUniqueViolation = "23505"
	// PgErrorCodeCheckViolation is raised when a CHECK constraint fails, e.g. negative gold
	PgErrorCodeCheckViolation = "23514"
	// PgErrorCodeSerializationFailure and PgErrorCodeDeadlockDetected abort the
	// transaction but are safe to retry from scratch
	PgErrorCodeSerializationFailure = "40001"
	PgErrorCodeDeadlockDetected     = "40P01"
	// PgErrorCodeQueryCanceled is raised when statement_timeout or a cancel hits
	PgErrorCodeQueryCanceled = "57014"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
	ErrMsgNoPlayerLocked            = "GetPlayerForUpdate must be called first"
	ErrMsgPlayerAlreadyLocked       = "transaction already holds a player"
	ErrMsgForeignWallet             = "wallet not locked by this transaction"
)

// Error Messages - Player Operations
const (
	ErrMsgFailedToGetPlayer       = "failed to get player"
	ErrMsgFailedToInsertPlayer    = "failed to insert player"
	ErrMsgFailedToInsertWallet    = "failed to insert wallet"
	ErrMsgFailedToInsertSlots     = "failed to insert farm slots"
	ErrMsgFailedToLockPlayer      = "failed to lock player"
	ErrMsgFailedToUpdateWallet    = "failed to update wallet"
	ErrMsgFailedToLoadFarm        = "failed to load farm"
	ErrMsgFailedToQuerySlots      = "failed to query farm slots"
	ErrMsgFailedToScanSlot        = "failed to scan farm slot"
	ErrMsgFailedToGetSlot         = "failed to get farm slot"
	ErrMsgFailedToInsertCrop      = "failed to insert crop instance"
	ErrMsgFailedToUpdateSlot      = "failed to update farm slot"
	ErrMsgFailedToDeleteCrop      = "failed to delete crop instance"
	ErrMsgFailedToMarkWithered    = "failed to mark crop withered"
	ErrMsgSlotAlreadyPlanted      = "slot already holds a crop"
	ErrMsgCropNotInSlot           = "crop is not in slot"
	ErrMsgFailedToProvisionPlayer = "failed to provision player"
)

// Error Messages - Catalog Operations
const (
	ErrMsgFailedToQueryCropMasters  = "failed to query crop masters"
	ErrMsgFailedToScanCropMaster    = "failed to scan crop master"
	ErrMsgFailedToGetCropMaster     = "failed to get crop master"
	ErrMsgFailedToInsertCropMasters = "failed to insert crop masters"
)

// Error Messages - Ledger Operations
const (
	ErrMsgFailedToInsertLedgerEntry = "failed to insert ledger entry"
	ErrMsgFailedToQueryLedger       = "failed to query ledger entries"
	ErrMsgFailedToScanLedgerEntry   = "failed to scan ledger entry"
	ErrMsgFailedToMarshalMetadata   = "failed to marshal ledger metadata"
	ErrMsgFailedToUnmarshalMetadata = "failed to unmarshal ledger metadata"
)

// Log Messages
const (
	LogMsgFailedToRollback  = "Failed to rollback transaction"
	LogMsgPlayerProvisioned = "Provisioned player"
	LogMsgCropMastersSeeded = "Inserted crop masters"
)
