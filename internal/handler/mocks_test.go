package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/Homestead_Go/internal/domain"
	"github.com/osse101/Homestead_Go/internal/farm"
)

type MockFarmService struct {
	mock.Mock
}

func (m *MockFarmService) Sync(ctx context.Context, username string) (*domain.SyncResult, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncResult), args.Error(1)
}

func (m *MockFarmService) Execute(ctx context.Context, username string, action domain.Action) (*domain.ActionResult, error) {
	args := m.Called(ctx, username, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActionResult), args.Error(1)
}

func (m *MockFarmService) LedgerHistory(ctx context.Context, username string, limit int) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, username, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockFarmService) VerifyLedger(ctx context.Context, username string) (*farm.LedgerReport, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*farm.LedgerReport), args.Error(1)
}

func (m *MockFarmService) Shutdown(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) List(ctx context.Context) ([]domain.CropMaster, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CropMaster), args.Error(1)
}

func (m *MockCatalogService) Get(ctx context.Context, id string) (*domain.CropMaster, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CropMaster), args.Error(1)
}

func (m *MockCatalogService) Invalidate() {
	m.Called()
}

// MockDBPool mocks the database.Pool interface
type MockDBPool struct {
	mock.Mock
}

func (m *MockDBPool) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockDBPool) Close() {
	m.Called()
}
