package repository

import (
	"context"
	"fmt"

	"github.com/yourusername/pool-portal/internal/database"
	"github.com/yourusername/pool-portal/internal/models"
)

// PostgresUpdateRepository implements UpdateRepository for PostgreSQL
type PostgresUpdateRepository struct {
	db *database.DB
}

// NewPostgresUpdateRepository creates a new update repository
func NewPostgresUpdateRepository(db *database.DB) UpdateRepository {
	return &PostgresUpdateRepository{db: db}
}

// List retrieves the changelog ordered oldest first
func (r *PostgresUpdateRepository) List(ctx context.Context) ([]*models.UpdateEntry, error) {
	query := `
		SELECT id, date, body, created_at
		FROM updates
		ORDER BY date ASC, created_at ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query updates: %w", err)
	}
	defer rows.Close()

	var entries []*models.UpdateEntry
	for rows.Next() {
		entry := &models.UpdateEntry{}
		if err := rows.Scan(&entry.ID, &entry.Date, &entry.Body, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan update: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Append inserts a new changelog entry
func (r *PostgresUpdateRepository) Append(ctx context.Context, entry *models.UpdateEntry) error {
	query := `
		INSERT INTO updates (id, date, body, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		entry.ID, entry.Date, entry.Body, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append update: %w", err)
	}

	return nil
}

// ReplaceAll swaps the entire changelog for the given list inside one
// transaction.
func (r *PostgresUpdateRepository) ReplaceAll(ctx context.Context, entries []*models.UpdateEntry) error {
	tx, err := r.db.GetPool().Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin replace: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM updates`); err != nil {
		return fmt.Errorf("failed to clear updates: %w", err)
	}

	for _, entry := range entries {
		_, err := tx.Exec(ctx,
			`INSERT INTO updates (id, date, body, created_at) VALUES ($1, $2, $3, $4)`,
			entry.ID, entry.Date, entry.Body, entry.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert update: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit replace: %w", err)
	}

	return nil
}
