package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/raceday/pro-upgrade/internal/application/session"
	"github.com/raceday/pro-upgrade/internal/domain/entity"
	"github.com/raceday/pro-upgrade/internal/domain/store"
	"github.com/raceday/pro-upgrade/tests/mocks"
)

func newFactory(t *testing.T) (session.Factory, *int) {
	t.Helper()
	created := 0
	factory := func(userID string) store.Service {
		created++
		svc := mocks.NewMockStoreService()
		svc.On("LoadProducts", mock.Anything).Return(nil)
		svc.On("IsProUser").Return(false)
		svc.On("Products").Return([]entity.Product{{ID: "p1"}})
		svc.On("IsLoading").Return(false)
		svc.On("TransactionState").Return(nil)
		return svc
	}
	return factory, &created
}

func TestManager(t *testing.T) {
	ctx := context.Background()

	t.Run("reuses the live screen per user", func(t *testing.T) {
		factory, created := newFactory(t)
		m := session.NewManager(factory, nil, zap.NewNop())

		first := m.Get(ctx, "u1")
		second := m.Get(ctx, "u1")
		assert.Same(t, first, second)
		assert.Equal(t, 1, *created)
		assert.Equal(t, 1, m.Active())

		m.Get(ctx, "u2")
		assert.Equal(t, 2, *created)
		assert.Equal(t, 2, m.Active())
	})

	t.Run("a closed screen is replaced on the next access", func(t *testing.T) {
		factory, created := newFactory(t)
		m := session.NewManager(factory, nil, zap.NewNop())

		first := m.Get(ctx, "u1")
		first.DismissSuccessAlert()
		require.True(t, first.State().Closed)

		second := m.Get(ctx, "u1")
		assert.NotSame(t, first, second)
		assert.False(t, second.State().Closed)
		assert.Equal(t, 2, *created)
	})

	t.Run("Close drops the session", func(t *testing.T) {
		factory, _ := newFactory(t)
		m := session.NewManager(factory, nil, zap.NewNop())

		m.Get(ctx, "u1")
		m.Close("u1")
		assert.Equal(t, 0, m.Active())
	})
}
