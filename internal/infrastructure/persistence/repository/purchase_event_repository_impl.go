package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/raceday/pro-upgrade/internal/domain/entity"
	"github.com/raceday/pro-upgrade/internal/domain/repository"
)

// PurchaseEventRepositoryImpl persists upgrade-screen telemetry in Postgres.
type PurchaseEventRepositoryImpl struct {
	pool *pgxpool.Pool
}

// NewPurchaseEventRepository creates a new purchase event repository
func NewPurchaseEventRepository(pool *pgxpool.Pool) repository.PurchaseEventRepository {
	return &PurchaseEventRepositoryImpl{pool: pool}
}

func (r *PurchaseEventRepositoryImpl) Record(ctx context.Context, event *entity.PurchaseEvent) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO purchase_events (id, user_id, action, product_id, outcome, error_text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		event.ID, event.UserID, event.Action, event.ProductID, event.Outcome, event.ErrorText, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record purchase event: %w", err)
	}
	return nil
}

func (r *PurchaseEventRepositoryImpl) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.PurchaseEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, action, product_id, outcome, error_text, created_at
		FROM purchase_events
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchase events: %w", err)
	}
	defer rows.Close()

	var events []*entity.PurchaseEvent
	for rows.Next() {
		var ev entity.PurchaseEvent
		if err := rows.Scan(&ev.ID, &ev.UserID, &ev.Action, &ev.ProductID, &ev.Outcome, &ev.ErrorText, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan purchase event: %w", err)
		}
		events = append(events, &ev)
	}
	return events, rows.Err()
}

func (r *PurchaseEventRepositoryImpl) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM purchase_events WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune purchase events: %w", err)
	}
	return tag.RowsAffected(), nil
}

var _ repository.PurchaseEventRepository = (*PurchaseEventRepositoryImpl)(nil)
