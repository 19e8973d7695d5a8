package tasks_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/raceday/pro-upgrade/internal/domain/entity"
	"github.com/raceday/pro-upgrade/internal/worker/tasks"
	"github.com/raceday/pro-upgrade/tests/mocks"
)

type fakeCatalogSource struct {
	products []entity.Product
	err      error
}

func (f *fakeCatalogSource) FetchCatalog(context.Context) ([]entity.Product, error) {
	return f.products, f.err
}

type fakeCatalogStore struct {
	got []entity.Product
	err error
}

func (f *fakeCatalogStore) Set(_ context.Context, products []entity.Product) error {
	f.got = products
	return f.err
}

func TestHandleRefreshCatalog(t *testing.T) {
	ctx := context.Background()
	task := asynq.NewTask(tasks.TypeRefreshCatalog, nil)

	t.Run("writes the fetched catalog to the cache", func(t *testing.T) {
		source := &fakeCatalogSource{products: []entity.Product{{ID: "p1"}}}
		store := &fakeCatalogStore{}
		h := tasks.NewTaskHandlers(source, store, nil, time.Hour, zap.NewNop())

		require.NoError(t, h.HandleRefreshCatalog(ctx, task))
		assert.Equal(t, source.products, store.got)
	})

	t.Run("propagates gateway failures for retry", func(t *testing.T) {
		source := &fakeCatalogSource{err: errors.New("gateway down")}
		h := tasks.NewTaskHandlers(source, &fakeCatalogStore{}, nil, time.Hour, zap.NewNop())

		assert.Error(t, h.HandleRefreshCatalog(ctx, task))
	})
}

func TestHandlePruneEvents(t *testing.T) {
	ctx := context.Background()
	task := asynq.NewTask(tasks.TypePruneEvents, nil)

	t.Run("prunes with the configured retention", func(t *testing.T) {
		events := mocks.NewMockPurchaseEventRepository()
		events.On("PruneOlderThan", ctx, mock.MatchedBy(func(cutoff time.Time) bool {
			expected := time.Now().Add(-90 * 24 * time.Hour)
			return cutoff.Sub(expected).Abs() < time.Minute
		})).Return(int64(12), nil)

		h := tasks.NewTaskHandlers(nil, nil, events, 90*24*time.Hour, zap.NewNop())
		require.NoError(t, h.HandlePruneEvents(ctx, task))
		events.AssertExpectations(t)
	})

	t.Run("propagates repository failures", func(t *testing.T) {
		events := mocks.NewMockPurchaseEventRepository()
		events.On("PruneOlderThan", ctx, mock.Anything).Return(int64(0), errors.New("db down"))

		h := tasks.NewTaskHandlers(nil, nil, events, time.Hour, zap.NewNop())
		assert.Error(t, h.HandlePruneEvents(ctx, task))
	})
}
