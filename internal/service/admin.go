package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/yourusername/pool-portal/internal/logger"
	"github.com/yourusername/pool-portal/internal/metrics"
	"github.com/yourusername/pool-portal/internal/models"
	"github.com/yourusername/pool-portal/internal/repository"
)

// Notifier pushes a freshly computed prediction to connected clients after an
// admin mutation changes the history. The websocket hub implements it; a nil
// notifier disables live push.
type Notifier interface {
	NotifyPrediction(prediction *Prediction)
}

// AdminService applies the mutations behind the admin screens: appending and
// bulk-replacing outcome records and changelog entries, and saving the front
// page comment. Every write is audit-logged and invalidates the distribution
// cache.
type AdminService struct {
	outcomes   repository.OutcomeRepository
	updates    repository.UpdateRepository
	comment    repository.CommentRepository
	portal     *PortalService
	categories []models.Category
	cache      *DistributionCache
	audit      *logger.AuditLogger
	validate   *validator.Validate
	notifier   Notifier
}

// NewAdminService creates the admin mutation service.
func NewAdminService(
	repos *repository.Repositories,
	portal *PortalService,
	categories []models.Category,
	cache *DistributionCache,
	audit *logger.AuditLogger,
) *AdminService {
	return &AdminService{
		outcomes:   repos.Outcomes,
		updates:    repos.Updates,
		comment:    repos.Comment,
		portal:     portal,
		categories: categories,
		cache:      cache,
		audit:      audit,
		validate:   validator.New(),
	}
}

// SetNotifier attaches the live-push notifier. Called once at startup when
// live push is enabled.
func (s *AdminService) SetNotifier(n Notifier) {
	s.notifier = n
}

// OutcomeInput is one draw result as submitted by the admin screen.
type OutcomeInput struct {
	DrawnAt time.Time `json:"drawn_at"`
	Result  string    `json:"result"`
}

func (s *AdminService) toRecord(input OutcomeInput) (*models.OutcomeRecord, error) {
	if input.DrawnAt.IsZero() {
		return nil, fmt.Errorf("drawn_at is required")
	}
	result := models.Category(input.Result)
	if !models.ContainsCategory(s.categories, result) {
		return nil, fmt.Errorf("result %q: %w", input.Result, models.ErrUnknownCategory)
	}
	record := models.NewOutcomeRecord(input.DrawnAt, result)
	if err := s.validate.Struct(record); err != nil {
		return nil, fmt.Errorf("invalid outcome record: %w", err)
	}
	return record, nil
}

// AppendOutcome adds one draw result to the history.
func (s *AdminService) AppendOutcome(ctx context.Context, input OutcomeInput) (*models.OutcomeRecord, error) {
	record, err := s.toRecord(input)
	if err != nil {
		return nil, err
	}
	if err := s.outcomes.Append(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to append outcome: %w", err)
	}

	s.audit.LogOutcomeAppended(record.ID.String(), record.DrawnAt, string(record.Result))
	metrics.RecordAdminWrite("outcomes")
	s.afterHistoryChange(ctx)
	return record, nil
}

// ReplaceOutcomes swaps the entire draw history for the submitted rows. This
// backs the admin bulk edit screen, so an empty slice is a valid (if drastic)
// submission.
func (s *AdminService) ReplaceOutcomes(ctx context.Context, inputs []OutcomeInput) (int, error) {
	records := make([]*models.OutcomeRecord, 0, len(inputs))
	for i, input := range inputs {
		record, err := s.toRecord(input)
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
		records = append(records, record)
	}
	models.SortOutcomesByDrawTime(records)

	oldCount, err := s.outcomes.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count existing outcomes: %w", err)
	}
	if err := s.outcomes.ReplaceAll(ctx, records); err != nil {
		return 0, fmt.Errorf("failed to replace outcome history: %w", err)
	}

	s.audit.LogHistoryReplaced(oldCount, len(records))
	metrics.RecordAdminWrite("outcomes")
	s.afterHistoryChange(ctx)
	return len(records), nil
}

// UpdateInput is one changelog entry as submitted by the admin screen.
type UpdateInput struct {
	Date time.Time `json:"date"`
	Body string    `json:"body"`
}

func (s *AdminService) toEntry(input UpdateInput) (*models.UpdateEntry, error) {
	if input.Date.IsZero() {
		return nil, fmt.Errorf("date is required")
	}
	body := strings.TrimSpace(input.Body)
	if body == "" {
		return nil, models.ErrUpdateBodyEmpty
	}
	entry := models.NewUpdateEntry(input.Date, body)
	if err := s.validate.Struct(entry); err != nil {
		return nil, fmt.Errorf("invalid update entry: %w", err)
	}
	return entry, nil
}

// AppendUpdate adds one changelog entry.
func (s *AdminService) AppendUpdate(ctx context.Context, input UpdateInput) (*models.UpdateEntry, error) {
	entry, err := s.toEntry(input)
	if err != nil {
		return nil, err
	}
	if err := s.updates.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to append update: %w", err)
	}

	s.audit.LogUpdateAppended(entry.ID.String(), entry.Date)
	metrics.RecordAdminWrite("updates")
	return entry, nil
}

// ReplaceUpdates swaps the entire changelog for the submitted entries.
func (s *AdminService) ReplaceUpdates(ctx context.Context, inputs []UpdateInput) (int, error) {
	entries := make([]*models.UpdateEntry, 0, len(inputs))
	for i, input := range inputs {
		entry, err := s.toEntry(input)
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
		entries = append(entries, entry)
	}

	existing, err := s.updates.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list existing updates: %w", err)
	}
	if err := s.updates.ReplaceAll(ctx, entries); err != nil {
		return 0, fmt.Errorf("failed to replace updates: %w", err)
	}

	s.audit.LogUpdatesReplaced(len(existing), len(entries))
	metrics.RecordAdminWrite("updates")
	return len(entries), nil
}

// SaveComment overwrites the front page admin comment. An empty body clears
// it.
func (s *AdminService) SaveComment(ctx context.Context, body string) error {
	if err := s.comment.Set(ctx, body); err != nil {
		return fmt.Errorf("failed to save comment: %w", err)
	}

	s.audit.LogCommentSaved(len(body))
	metrics.RecordAdminWrite("comment")
	return nil
}

// afterHistoryChange drops the cached distribution and, when live push is
// enabled, recomputes the prediction and broadcasts it. Broadcast failures
// only cost the push; the write already succeeded.
func (s *AdminService) afterHistoryChange(ctx context.Context) {
	s.cache.Invalidate()

	if s.notifier == nil {
		return
	}
	prediction, err := s.portal.Prediction(ctx)
	if err != nil {
		s.audit.WithError(err).Warn("Failed to recompute prediction for live push")
		return
	}
	s.notifier.NotifyPrediction(prediction)
}
