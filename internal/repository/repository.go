package repository

import (
	"context"
	"fmt"

	"github.com/yourusername/pool-portal/internal/config"
	"github.com/yourusername/pool-portal/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Outcomes OutcomeRepository
	Updates  UpdateRepository
	Comment  CommentRepository
	Store    Pinger
}

// NewPostgresRepositories creates the postgres-backed store
func NewPostgresRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Outcomes: NewPostgresOutcomeRepository(db),
		Updates:  NewPostgresUpdateRepository(db),
		Comment:  NewPostgresCommentRepository(db),
		Store:    db,
	}, nil
}

// NewFlatFileRepositories creates the flat-file store rooted at dataDir
func NewFlatFileRepositories(cfg *config.StorageConfig) (*Repositories, error) {
	store, err := NewFlatFileStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	return &Repositories{
		Outcomes: store.Outcomes(),
		Updates:  store.Updates(),
		Comment:  store.Comment(),
		Store:    store,
	}, nil
}

// New selects the store driver from configuration.
func New(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		db, err := database.Initialize(ctx, &cfg.Storage.Database)
		if err != nil {
			return nil, err
		}
		return NewPostgresRepositories(db)
	case "flatfile":
		return NewFlatFileRepositories(&cfg.Storage)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
