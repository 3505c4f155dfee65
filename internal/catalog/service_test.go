package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Homestead_Go/internal/domain"
)

var (
	turnip = domain.CropMaster{ID: "t", Name: "Turnip", GrowthSeconds: 10, BuyPrice: 10, SellPrice: 20, DisplayToken: "🥔"}
	carrot = domain.CropMaster{ID: "c", Name: "Carrot", GrowthSeconds: 30, BuyPrice: 25, SellPrice: 60, DisplayToken: "🥕"}
)

func TestService_ListIsCached(t *testing.T) {
	repo := &MockCatalogRepo{}
	repo.On("ListCropMasters", mock.Anything).Return([]domain.CropMaster{turnip, carrot}, nil).Once()

	svc := NewService(repo, 8, time.Minute)
	ctx := context.Background()

	first, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.CropMaster{turnip, carrot}, first)

	// mutating the returned slice must not leak into the cache
	first[0].Name = "changed"

	second, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Turnip", second[0].Name)

	repo.AssertNumberOfCalls(t, "ListCropMasters", 1)
}

func TestService_InvalidateReloads(t *testing.T) {
	repo := &MockCatalogRepo{}
	repo.On("ListCropMasters", mock.Anything).Return([]domain.CropMaster{turnip}, nil)

	svc := NewService(repo, 0, 0)
	ctx := context.Background()

	_, err := svc.List(ctx)
	require.NoError(t, err)
	svc.Invalidate()
	_, err = svc.List(ctx)
	require.NoError(t, err)

	repo.AssertNumberOfCalls(t, "ListCropMasters", 2)
}

func TestService_Get(t *testing.T) {
	repo := &MockCatalogRepo{}
	repo.On("GetCropMaster", mock.Anything, "t").Return(&turnip, nil).Once()
	repo.On("GetCropMaster", mock.Anything, "missing").Return(nil, domain.ErrCropMasterNotFound)

	svc := NewService(repo, 8, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := svc.Get(ctx, "t")
		require.NoError(t, err)
		assert.Equal(t, "Turnip", got.Name)
	}
	repo.AssertNumberOfCalls(t, "GetCropMaster", 1)

	_, err := svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrCropMasterNotFound)

	_, err = svc.Get(ctx, "")
	assert.ErrorIs(t, err, domain.ErrCropMasterNotFound)
	repo.AssertNotCalled(t, "GetCropMaster", mock.Anything, "")
}

func TestService_ListError(t *testing.T) {
	repo := &MockCatalogRepo{}
	repo.On("ListCropMasters", mock.Anything).Return(nil, domain.ErrDatabaseError)

	svc := NewService(repo, 8, time.Minute)
	_, err := svc.List(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDatabaseError))
}

func TestService_GetDoesNotReturnListEntry(t *testing.T) {
	repo := &MockCatalogRepo{}
	repo.On("ListCropMasters", mock.Anything).Return([]domain.CropMaster{turnip}, nil).Once()
	repo.On("GetCropMaster", mock.Anything, listCacheKey).Return(nil, domain.ErrCropMasterNotFound)
	repo.On("GetCropMaster", mock.Anything, cropCacheKey("t")).Return(nil, domain.ErrCropMasterNotFound)

	svc := NewService(repo, 8, time.Minute)
	ctx := context.Background()

	crops, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, crops, 1)

	for _, id := range []string{listCacheKey, cropCacheKey("t")} {
		_, err = svc.Get(ctx, id)
		assert.ErrorIs(t, err, domain.ErrCropMasterNotFound, id)
	}
	repo.AssertNumberOfCalls(t, "GetCropMaster", 2)
}
