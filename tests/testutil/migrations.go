package testutil

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RunMigrations applies the schema required by the integration tests.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS purchase_events (
			id         UUID PRIMARY KEY,
			user_id    TEXT        NOT NULL,
			action     TEXT        NOT NULL,
			product_id TEXT        NOT NULL DEFAULT '',
			outcome    TEXT        NOT NULL,
			error_text TEXT        NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_purchase_events_user_created
			ON purchase_events (user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_purchase_events_created
			ON purchase_events (created_at)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}
