package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/pool-portal/internal/database"
)

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *database.DB
}

// NewPostgresCommentRepository creates a new comment repository
func NewPostgresCommentRepository(db *database.DB) CommentRepository {
	return &PostgresCommentRepository{db: db}
}

// Get returns the admin comment, or the empty string before one is saved
func (r *PostgresCommentRepository) Get(ctx context.Context) (string, error) {
	var body string
	err := r.db.GetPool().QueryRow(ctx, `SELECT body FROM admin_comment WHERE singleton`).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get comment: %w", err)
	}
	return body, nil
}

// Set overwrites the admin comment
func (r *PostgresCommentRepository) Set(ctx context.Context, body string) error {
	query := `
		INSERT INTO admin_comment (singleton, body, updated_at)
		VALUES (TRUE, $1, NOW())
		ON CONFLICT (singleton) DO UPDATE SET body = EXCLUDED.body, updated_at = NOW()
	`

	if _, err := r.db.GetPool().Exec(ctx, query, body); err != nil {
		return fmt.Errorf("failed to set comment: %w", err)
	}
	return nil
}
