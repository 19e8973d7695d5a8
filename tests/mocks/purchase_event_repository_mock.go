package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/raceday/pro-upgrade/internal/domain/entity"
)

// MockPurchaseEventRepository is a mock implementation of PurchaseEventRepository
type MockPurchaseEventRepository struct {
	mock.Mock
}

// NewMockPurchaseEventRepository creates a new mock purchase event repository
func NewMockPurchaseEventRepository() *MockPurchaseEventRepository {
	return &MockPurchaseEventRepository{}
}

func (m *MockPurchaseEventRepository) Record(ctx context.Context, event *entity.PurchaseEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPurchaseEventRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.PurchaseEvent, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.PurchaseEvent), args.Error(1)
}

func (m *MockPurchaseEventRepository) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
