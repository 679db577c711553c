package repository

import (
	"context"
	"fmt"

	"github.com/yourusername/pool-portal/internal/database"
	"github.com/yourusername/pool-portal/internal/models"
)

// PostgresOutcomeRepository implements OutcomeRepository for PostgreSQL
type PostgresOutcomeRepository struct {
	db *database.DB
}

// NewPostgresOutcomeRepository creates a new outcome repository
func NewPostgresOutcomeRepository(db *database.DB) OutcomeRepository {
	return &PostgresOutcomeRepository{db: db}
}

// List retrieves the full draw history ordered oldest first
func (r *PostgresOutcomeRepository) List(ctx context.Context) ([]*models.OutcomeRecord, error) {
	query := `
		SELECT id, drawn_at, result, created_at
		FROM outcomes
		ORDER BY drawn_at ASC, created_at ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query outcomes: %w", err)
	}
	defer rows.Close()

	var records []*models.OutcomeRecord
	for rows.Next() {
		record := &models.OutcomeRecord{}
		if err := rows.Scan(&record.ID, &record.DrawnAt, &record.Result, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan outcome: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// Count returns the total number of recorded draws
func (r *PostgresOutcomeRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetPool().QueryRow(ctx, `SELECT COUNT(*) FROM outcomes`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count outcomes: %w", err)
	}
	return count, nil
}

// Append inserts a new outcome record
func (r *PostgresOutcomeRepository) Append(ctx context.Context, record *models.OutcomeRecord) error {
	query := `
		INSERT INTO outcomes (id, drawn_at, result, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		record.ID, record.DrawnAt, record.Result, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append outcome: %w", err)
	}

	return nil
}

// ReplaceAll swaps the entire history for the given list inside one
// transaction, the bulk-edit semantics the admin screen relies on.
func (r *PostgresOutcomeRepository) ReplaceAll(ctx context.Context, records []*models.OutcomeRecord) error {
	tx, err := r.db.GetPool().Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin replace: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM outcomes`); err != nil {
		return fmt.Errorf("failed to clear outcomes: %w", err)
	}

	for _, record := range records {
		_, err := tx.Exec(ctx,
			`INSERT INTO outcomes (id, drawn_at, result, created_at) VALUES ($1, $2, $3, $4)`,
			record.ID, record.DrawnAt, record.Result, record.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert outcome: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit replace: %w", err)
	}

	return nil
}
