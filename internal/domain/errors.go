package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Player errors
	ErrMsgPlayerNotFound = "player not found"

	// Slot errors
	ErrMsgSlotNotFound = "slot not found"
	ErrMsgSlotOccupied = "slot is not empty"
	ErrMsgSlotEmpty    = "nothing to harvest"

	// Catalog errors
	ErrMsgCropMasterNotFound = "crop type not found"

	// Economy errors
	ErrMsgInsufficientFunds = "insufficient gold"
	ErrMsgCropNotReady      = "crop not ready yet"

	// Action errors
	ErrMsgUnknownAction = "unknown action"

	// Database/System errors
	ErrMsgDatabaseError       = "database error"
	ErrMsgTransactionTimeout  = "transaction timed out"
	ErrMsgTransactionConflict = "transaction conflict"
	ErrMsgLedgerInconsistent  = "ledger does not match wallet balance"
	ErrMsgTxClosed            = "tx is closed"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrPlayerNotFound     = errors.New(ErrMsgPlayerNotFound)
	ErrSlotNotFound       = errors.New(ErrMsgSlotNotFound)
	ErrSlotOccupied       = errors.New(ErrMsgSlotOccupied)
	ErrSlotEmpty          = errors.New(ErrMsgSlotEmpty)
	ErrCropMasterNotFound = errors.New(ErrMsgCropMasterNotFound)

	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrCropNotReady      = errors.New(ErrMsgCropNotReady)

	ErrUnknownAction = errors.New(ErrMsgUnknownAction)

	// Storage failures. All of them classify as KindInternal.
	ErrDatabaseError       = errors.New(ErrMsgDatabaseError)
	ErrTransactionTimeout  = errors.New(ErrMsgTransactionTimeout)
	ErrTransactionConflict = errors.New(ErrMsgTransactionConflict)
	ErrLedgerInconsistent  = errors.New(ErrMsgLedgerInconsistent)
)
