package farm

import (
	"sort"
	"time"

	"github.com/osse101/Homestead_Go/internal/domain"
	"github.com/osse101/Homestead_Go/internal/growth"
)

// BuildSnapshot renders committed farm state at now. Slots are ordered by index.
func BuildSnapshot(f *domain.Farm, now time.Time) domain.Snapshot {
	slots := make([]domain.SlotView, 0, len(f.Slots))
	for _, s := range f.Slots {
		view := domain.SlotView{
			ID:     s.ID,
			Index:  s.Index,
			Status: s.Status,
		}
		if s.Crop != nil {
			view.Crop = cropView(s.Crop, now)
		}
		slots = append(slots, view)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Index < slots[j].Index })

	return domain.Snapshot{
		Player:     f.Player,
		Wallet:     f.Wallet,
		Slots:      slots,
		ServerTime: now,
	}
}

func cropView(c *domain.CropInstance, now time.Time) *domain.CropView {
	return &domain.CropView{
		ID:            c.ID,
		CropMasterID:  c.Master.ID,
		Name:          c.Master.Name,
		DisplayToken:  c.Master.DisplayToken,
		GrowthSeconds: c.Master.GrowthSeconds,
		PlantedAt:     c.PlantedAt,
		HarvestableAt: c.HarvestableAt(),
		Withered:      c.IsWithered(),
		Growth:        growth.ForCrop(c, now).View(),
	}
}
