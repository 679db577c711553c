package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/yourusername/pool-portal/internal/models"
)

// MockOutcomeRepository mocks the outcome repository
type MockOutcomeRepository struct {
	mock.Mock
}

func (m *MockOutcomeRepository) List(ctx context.Context) ([]*models.OutcomeRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.OutcomeRecord), args.Error(1)
}

func (m *MockOutcomeRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockOutcomeRepository) Append(ctx context.Context, record *models.OutcomeRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockOutcomeRepository) ReplaceAll(ctx context.Context, records []*models.OutcomeRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

// MockUpdateRepository mocks the update repository
type MockUpdateRepository struct {
	mock.Mock
}

func (m *MockUpdateRepository) List(ctx context.Context) ([]*models.UpdateEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.UpdateEntry), args.Error(1)
}

func (m *MockUpdateRepository) Append(ctx context.Context, entry *models.UpdateEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockUpdateRepository) ReplaceAll(ctx context.Context, entries []*models.UpdateEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

// MockCommentRepository mocks the comment repository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Get(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockCommentRepository) Set(ctx context.Context, body string) error {
	args := m.Called(ctx, body)
	return args.Error(0)
}
