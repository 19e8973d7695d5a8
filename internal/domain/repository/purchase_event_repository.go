package repository

import (
	"context"
	"time"

	"github.com/raceday/pro-upgrade/internal/domain/entity"
)

// PurchaseEventRepository stores upgrade-screen telemetry events.
type PurchaseEventRepository interface {
	Record(ctx context.Context, event *entity.PurchaseEvent) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*entity.PurchaseEvent, error)
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
