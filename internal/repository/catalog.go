package repository

import (
	"context"

	"github.com/osse101/Homestead_Go/internal/domain"
)

// Catalog provides read access to crop masters plus the seeding entry point
type Catalog interface {
	// ListCropMasters returns every crop ordered by buy price, then name
	ListCropMasters(ctx context.Context) ([]domain.CropMaster, error)

	// GetCropMaster returns domain.ErrCropMasterNotFound for unknown ids
	GetCropMaster(ctx context.Context, id string) (*domain.CropMaster, error)

	// InsertCropMasters adds crops that are not present yet (by id or name)
	// and reports how many were inserted. Existing rows are never modified.
	InsertCropMasters(ctx context.Context, crops []domain.CropMaster) (int, error)
}
