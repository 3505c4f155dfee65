package catalog

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/Homestead_Go/internal/domain"
)

// MockCatalogRepo implements repository.Catalog for testing
type MockCatalogRepo struct {
	mock.Mock
}

func (m *MockCatalogRepo) ListCropMasters(ctx context.Context) ([]domain.CropMaster, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CropMaster), args.Error(1)
}

func (m *MockCatalogRepo) GetCropMaster(ctx context.Context, id string) (*domain.CropMaster, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CropMaster), args.Error(1)
}

func (m *MockCatalogRepo) InsertCropMasters(ctx context.Context, crops []domain.CropMaster) (int, error) {
	args := m.Called(ctx, crops)
	return args.Int(0), args.Error(1)
}
