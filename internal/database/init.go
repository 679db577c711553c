package database

import (
	"context"
	"fmt"

	"github.com/yourusername/pool-portal/internal/config"
)

// The portal stores three flat lists; the schema is small enough to ensure
// in-process instead of carrying a migration tool.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS outcomes (
		id UUID PRIMARY KEY,
		drawn_at TIMESTAMPTZ NOT NULL,
		result TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_outcomes_drawn_at ON outcomes (drawn_at)`,
	`CREATE TABLE IF NOT EXISTS updates (
		id UUID PRIMARY KEY,
		date TIMESTAMPTZ NOT NULL,
		body TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_updates_date ON updates (date)`,
	`CREATE TABLE IF NOT EXISTS admin_comment (
		singleton BOOLEAN PRIMARY KEY DEFAULT TRUE CHECK (singleton),
		body TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Initialize creates a database connection pool and ensures the portal
// schema exists.
func Initialize(ctx context.Context, cfg *config.DatabaseConfig) (*DB, error) {
	db, err := NewDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	for _, stmt := range schema {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to ensure schema: %w", err)
		}
	}

	return db, nil
}
