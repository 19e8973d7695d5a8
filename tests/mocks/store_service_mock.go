package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/raceday/pro-upgrade/internal/domain/entity"
)

// MockStoreService is a mock implementation of store.Service
type MockStoreService struct {
	mock.Mock
}

// NewMockStoreService creates a new mock store service
func NewMockStoreService() *MockStoreService {
	return &MockStoreService{}
}

func (m *MockStoreService) IsProUser() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockStoreService) Products() []entity.Product {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]entity.Product)
}

func (m *MockStoreService) IsLoading() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockStoreService) TransactionState() *entity.TransactionState {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*entity.TransactionState)
}

func (m *MockStoreService) LoadProducts(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStoreService) Purchase(ctx context.Context, product entity.Product) (entity.PurchaseResult, error) {
	args := m.Called(ctx, product)
	return args.Get(0).(entity.PurchaseResult), args.Error(1)
}

func (m *MockStoreService) RestorePurchases(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
