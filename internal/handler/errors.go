package handler

// Generic HTTP error messages for client responses.
// Internal failures never expose their cause to the client.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgInvalidLimit          = "Invalid limit parameter"
	ErrMsgGenericServerError    = "Something went wrong. Please try again."
	ErrMsgUnavailable           = "database connection failed"
)

// User-facing messages per domain failure
const (
	ErrMsgPlayerNotFoundError     = "Player not found"
	ErrMsgSlotNotFoundError       = "Slot not found"
	ErrMsgCropNotFoundError       = "Crop type not found"
	ErrMsgSlotOccupiedError       = "That slot already has a crop in it"
	ErrMsgSlotEmptyError          = "There is nothing to harvest in that slot"
	ErrMsgInsufficientFundsError  = "Not enough gold"
	ErrMsgCropNotReadyError       = "That crop is not ready yet"
	ErrMsgUnknownActionError      = "Unknown action. Use PLANT or HARVEST"
	ErrMsgLedgerInconsistentError = "Ledger does not match wallet balance"
)

// Log messages
const (
	LogMsgDecodeFailed     = "Failed to decode request"
	LogMsgValidationFailed = "Request validation failed"
	LogMsgSyncRequest      = "Sync request received"
	LogMsgActionRequest    = "Action request received"
	LogMsgActionFailed     = "Action failed"
	LogMsgSyncFailed       = "Sync failed"
	LogMsgLedgerFailed     = "Ledger request failed"
	LogMsgCatalogFailed    = "Catalog request failed"
	LogMsgReadinessFailed  = "Readiness check failed"
	LogMsgEncodeFailed     = "Failed to encode JSON response"
	LogMsgWriteFailed      = "Failed to write response buffer"
)
