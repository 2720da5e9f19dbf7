package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"lodebook/models"
)

// MockBetStore is a mock implementation of BetStore
type MockBetStore struct {
	mock.Mock
}

func (m *MockBetStore) LoadAll(ctx context.Context) ([]models.Bet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Bet), args.Error(1)
}

func (m *MockBetStore) ReplaceAll(ctx context.Context, bets []models.Bet) error {
	args := m.Called(ctx, bets)
	return args.Error(0)
}

// MockRateStore is a mock implementation of RateStore
type MockRateStore struct {
	mock.Mock
}

func (m *MockRateStore) GetRateTable(ctx context.Context) (*models.RateTable, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RateTable), args.Error(1)
}

func (m *MockRateStore) SaveRateTable(ctx context.Context, table *models.RateTable) error {
	args := m.Called(ctx, table)
	return args.Error(0)
}

// MockDrawStore is a mock implementation of DrawStore
type MockDrawStore struct {
	mock.Mock
}

func (m *MockDrawStore) GetByDate(ctx context.Context, date string) (*models.DrawResult, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DrawResult), args.Error(1)
}

func (m *MockDrawStore) Upsert(ctx context.Context, draw *models.DrawResult) error {
	args := m.Called(ctx, draw)
	return args.Error(0)
}

func (m *MockDrawStore) ListRecent(ctx context.Context, limit int) ([]*models.DrawResult, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DrawResult), args.Error(1)
}

// MockDrawProvider is a mock implementation of DrawProvider
type MockDrawProvider struct {
	mock.Mock
}

func (m *MockDrawProvider) FetchResult(ctx context.Context, date string) (*models.DrawResult, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DrawResult), args.Error(1)
}

func (m *MockDrawProvider) FetchLatest(ctx context.Context) (*models.DrawResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DrawResult), args.Error(1)
}
