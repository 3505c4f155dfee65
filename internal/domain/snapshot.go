package domain

import "time"

// GrowthView is the growth clock evaluated at the snapshot's server time
type GrowthView struct {
	Progress         float64 `json:"progress"`
	Stage            int     `json:"stage"`
	IsReady          bool    `json:"isReady"`
	IsWithered       bool    `json:"isWithered"`
	SecondsRemaining int64   `json:"secondsRemaining"`
}

// CropView is a planted crop as presented to the client
type CropView struct {
	ID            string     `json:"id"`
	CropMasterID  string     `json:"cropMasterId"`
	Name          string     `json:"name"`
	DisplayToken  string     `json:"displayToken"`
	GrowthSeconds int        `json:"growthSeconds"`
	PlantedAt     time.Time  `json:"plantedAt"`
	HarvestableAt time.Time  `json:"harvestableAt"`
	Withered      bool       `json:"withered"`
	Growth        GrowthView `json:"growth"`
}

// SlotView is one slot in a snapshot
type SlotView struct {
	ID     string     `json:"id"`
	Index  int        `json:"index"`
	Status SlotStatus `json:"status"`
	Crop   *CropView  `json:"crop,omitempty"`
}

// Snapshot is the authoritative state of one player at ServerTime.
// It is always built from the state a transaction committed.
type Snapshot struct {
	Player     Player     `json:"player"`
	Wallet     Wallet     `json:"wallet"`
	Slots      []SlotView `json:"slots"`
	ServerTime time.Time  `json:"serverTime"`
}

// ActionOutcome describes what an applied action did
type ActionOutcome string

const (
	OutcomePlanted         ActionOutcome = "PLANTED"
	OutcomeHarvested       ActionOutcome = "HARVESTED"
	OutcomeWitheredRemoved ActionOutcome = "WITHERED_REMOVED"
)

// ActionResult is returned by a successful action
type ActionResult struct {
	Outcome     ActionOutcome `json:"outcome"`
	GoldDelta   int64         `json:"goldDelta"`
	LedgerEntry *LedgerEntry  `json:"ledgerEntry,omitempty"`
	Snapshot    Snapshot      `json:"user"`
}

// SyncEvent reports something reconciliation changed while the player was away
type SyncEvent struct {
	Type      string    `json:"type"`
	SlotID    string    `json:"slotId"`
	SlotIndex int       `json:"slotIndex"`
	CropName  string    `json:"cropName"`
	At        time.Time `json:"at"`
}

// SyncResult is returned by a session resume
type SyncResult struct {
	Snapshot    Snapshot    `json:"user"`
	Provisioned bool        `json:"provisioned"`
	Events      []SyncEvent `json:"events"`
}
