package domain

// Event types published by the farm engine
const (
	EventTypeCropPlanted         = "crop.planted"
	EventTypeCropHarvested       = "crop.harvested"
	EventTypeCropWitheredRemoved = "crop.withered_removed"
	EventTypeCropWithered        = "crop.withered"
	EventTypePlayerProvisioned   = "player.provisioned"
	EventTypeActionFailed        = "action.failed"
	EventTypeTransactionRetried  = "transaction.retried"
)

// Sync event types surfaced to the client
const (
	SyncEventCropWithered = "CROP_WITHERED"
)

// CropPayload is carried by crop lifecycle events
type CropPayload struct {
	PlayerID  string `json:"playerId"`
	Username  string `json:"username"`
	SlotIndex int    `json:"slotIndex"`
	CropName  string `json:"cropName"`
	GoldDelta int64  `json:"goldDelta"`
	Timestamp int64  `json:"timestamp"`
}

// ActionFailedPayload is carried by action.failed events
type ActionFailedPayload struct {
	Username string     `json:"username"`
	Action   ActionKind `json:"action"`
	Kind     ErrorKind  `json:"kind"`
}

// TransactionRetriedPayload is carried by transaction.retried events
type TransactionRetriedPayload struct {
	Operation string `json:"operation"`
	Attempt   int    `json:"attempt"`
}

// PlayerProvisionedPayload is carried by player.provisioned events
type PlayerProvisionedPayload struct {
	PlayerID string `json:"playerId"`
	Username string `json:"username"`
	Gold     int64  `json:"gold"`
	Slots    int    `json:"slots"`
}
