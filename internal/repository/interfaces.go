// Package repository provides the record-store abstraction behind the
// portal: flat tabular lists of outcomes and updates plus one admin comment.
// The engine never touches storage; everything goes through these interfaces
// so the flat-file and postgres drivers are interchangeable.
package repository

import (
	"context"

	"github.com/yourusername/pool-portal/internal/models"
)

// OutcomeRepository defines access to the draw history. Records are
// append-only except for the bulk replace the admin edit screen performs.
type OutcomeRepository interface {
	List(ctx context.Context) ([]*models.OutcomeRecord, error)
	Count(ctx context.Context) (int, error)
	Append(ctx context.Context, record *models.OutcomeRecord) error
	ReplaceAll(ctx context.Context, records []*models.OutcomeRecord) error
}

// UpdateRepository defines access to the portal changelog.
type UpdateRepository interface {
	List(ctx context.Context) ([]*models.UpdateEntry, error)
	Append(ctx context.Context, entry *models.UpdateEntry) error
	ReplaceAll(ctx context.Context, entries []*models.UpdateEntry) error
}

// CommentRepository holds the single admin comment shown on the front page.
type CommentRepository interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, body string) error
}

// Pinger lets the health server check the store without knowing its driver.
type Pinger interface {
	Ping(ctx context.Context) error
}
