package domain

import "time"

// SlotStatus is the occupancy state of a farm slot
type SlotStatus string

const (
	SlotStatusEmpty   SlotStatus = "EMPTY"
	SlotStatusPlanted SlotStatus = "PLANTED"
)

// Player is an already-authenticated identity that owns one wallet and a slot grid
type Player struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// Wallet holds a player's balances. Both balances are never negative.
type Wallet struct {
	ID       string `json:"id"`
	PlayerID string `json:"playerId"`
	Gold     int64  `json:"gold"`
	Gems     int64  `json:"gems"`
}

// CropMaster is a read-only catalog entry describing a plantable crop
type CropMaster struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	GrowthSeconds int    `json:"growthSeconds"`
	BuyPrice      int64  `json:"buyPrice"`
	SellPrice     int64  `json:"sellPrice"`
	Experience    int    `json:"experience"`
	DisplayToken  string `json:"displayToken"`
}

// GrowthDuration returns the catalog growth time as a duration
func (m CropMaster) GrowthDuration() time.Duration {
	return time.Duration(m.GrowthSeconds) * time.Second
}

// CropInstance is a single planting living in a slot
type CropInstance struct {
	ID        string     `json:"id"`
	SlotID    string     `json:"slotId"`
	Master    CropMaster `json:"master"`
	PlantedAt time.Time  `json:"plantedAt"`

	withered bool
}

// NewCropInstance creates a freshly planted, non-withered crop
func NewCropInstance(id, slotID string, master CropMaster, plantedAt time.Time) *CropInstance {
	return &CropInstance{
		ID:        id,
		SlotID:    slotID,
		Master:    master,
		PlantedAt: plantedAt,
	}
}

// RestoreCropInstance rebuilds a crop read back from storage
func RestoreCropInstance(id, slotID string, master CropMaster, plantedAt time.Time, withered bool) *CropInstance {
	c := NewCropInstance(id, slotID, master, plantedAt)
	c.withered = withered
	return c
}

// MarkWithered sets the sticky wither flag. There is no way to clear it.
func (c *CropInstance) MarkWithered() {
	c.withered = true
}

// IsWithered reports the persisted wither flag
func (c *CropInstance) IsWithered() bool {
	return c.withered
}

// HarvestableAt is the instant the crop first becomes ready
func (c *CropInstance) HarvestableAt() time.Time {
	return c.PlantedAt.Add(c.Master.GrowthDuration())
}

// Clone returns an independent copy
func (c *CropInstance) Clone() *CropInstance {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// FarmSlot is one cell of a player's grid. Status is PLANTED iff Crop is set.
type FarmSlot struct {
	ID       string        `json:"id"`
	PlayerID string        `json:"playerId"`
	Index    int           `json:"index"`
	Status   SlotStatus    `json:"status"`
	Crop     *CropInstance `json:"crop,omitempty"`
}

// Farm is the full mutable state of one player: wallet plus slots ordered by index
type Farm struct {
	Player Player     `json:"player"`
	Wallet Wallet     `json:"wallet"`
	Slots  []FarmSlot `json:"slots"`
}

// Provisioning describes what a first-contact player receives
type Provisioning struct {
	Gold  int64
	Gems  int64
	Slots int
	At    time.Time
}
