package tasks

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/raceday/pro-upgrade/internal/domain/entity"
)

// Task names
const (
	TypeRefreshCatalog = "catalog:refresh"
	TypePruneEvents    = "events:prune"
)

// CatalogSource fetches the product catalog from the store gateway.
type CatalogSource interface {
	FetchCatalog(ctx context.Context) ([]entity.Product, error)
}

// CatalogStore holds the shared catalog snapshot.
type CatalogStore interface {
	Set(ctx context.Context, products []entity.Product) error
}

// EventPruner deletes old telemetry events.
type EventPruner interface {
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// TaskHandlers holds dependencies for all task handlers.
type TaskHandlers struct {
	source    CatalogSource
	catalog   CatalogStore
	events    EventPruner
	retention time.Duration
	logger    *zap.Logger
}

// NewTaskHandlers creates task handlers.
func NewTaskHandlers(source CatalogSource, catalog CatalogStore, events EventPruner, retention time.Duration, logger *zap.Logger) *TaskHandlers {
	return &TaskHandlers{
		source:    source,
		catalog:   catalog,
		events:    events,
		retention: retention,
		logger:    logger,
	}
}

// RegisterHandlers registers all task handlers with the server mux.
func RegisterHandlers(mux *asynq.ServeMux, h *TaskHandlers) {
	mux.HandleFunc(TypeRefreshCatalog, h.HandleRefreshCatalog)
	mux.HandleFunc(TypePruneEvents, h.HandlePruneEvents)
}

// RegisterScheduledTasks registers all scheduled (cron) tasks
func RegisterScheduledTasks(scheduler *asynq.Scheduler, logger *zap.Logger) {
	// Refresh the catalog snapshot every hour
	if _, err := scheduler.Register("0 * * * *", asynq.NewTask(TypeRefreshCatalog, nil)); err != nil {
		logger.Error("Failed to schedule catalog refresh", zap.Error(err))
	}

	// Prune old purchase events nightly
	if _, err := scheduler.Register("0 4 * * *", asynq.NewTask(TypePruneEvents, nil)); err != nil {
		logger.Error("Failed to schedule event pruning", zap.Error(err))
	}
}

// HandleRefreshCatalog repopulates the shared catalog cache from the gateway.
func (h *TaskHandlers) HandleRefreshCatalog(ctx context.Context, t *asynq.Task) error {
	products, err := h.source.FetchCatalog(ctx)
	if err != nil {
		h.logger.Error("catalog refresh failed", zap.Error(err))
		return err
	}

	if err := h.catalog.Set(ctx, products); err != nil {
		h.logger.Error("catalog cache update failed", zap.Error(err))
		return err
	}

	h.logger.Info("catalog refreshed", zap.Int("products", len(products)))
	return nil
}

// HandlePruneEvents deletes purchase events past the retention window.
func (h *TaskHandlers) HandlePruneEvents(ctx context.Context, t *asynq.Task) error {
	cutoff := time.Now().Add(-h.retention)
	pruned, err := h.events.PruneOlderThan(ctx, cutoff)
	if err != nil {
		h.logger.Error("event pruning failed", zap.Error(err))
		return err
	}

	h.logger.Info("purchase events pruned",
		zap.Int64("deleted", pruned),
		zap.Time("cutoff", cutoff),
	)
	return nil
}
