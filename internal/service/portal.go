package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/pool-portal/internal/engine"
	"github.com/yourusername/pool-portal/internal/metrics"
	"github.com/yourusername/pool-portal/internal/models"
	"github.com/yourusername/pool-portal/internal/repository"
)

// PortalService serves every read-only view on the dashboard: summary
// figures, the probability prediction, payout projections, history pages,
// trend series, the changelog and the admin comment.
type PortalService struct {
	outcomes   repository.OutcomeRepository
	updates    repository.UpdateRepository
	comment    repository.CommentRepository
	categories []models.Category
	cache      *DistributionCache
	logger     *logrus.Logger
}

// NewPortalService creates the portal read service
func NewPortalService(
	repos *repository.Repositories,
	categories []models.Category,
	cache *DistributionCache,
	logger *logrus.Logger,
) *PortalService {
	return &PortalService{
		outcomes:   repos.Outcomes,
		updates:    repos.Updates,
		comment:    repos.Comment,
		categories: categories,
		cache:      cache,
		logger:     logger,
	}
}

// Summary is the headline block of the front page.
type Summary struct {
	TotalDraws int        `json:"total_draws"`
	AsOf       time.Time  `json:"as_of"`
	LatestDraw *time.Time `json:"latest_draw,omitempty"`
}

// Prediction is the distribution panel: the full mapping plus the most
// likely category called out, the way the original headline did it.
type Prediction struct {
	Probabilities   models.ProbabilityMapping `json:"probabilities"`
	Best            models.Category           `json:"best"`
	BestProbability float64                   `json:"best_probability"`
	SampleSize      int                       `json:"sample_size"`
}

// HistoryPage is one slice of the draw history, newest first.
type HistoryPage struct {
	Records []*models.OutcomeRecord `json:"records"`
	Total   int                     `json:"total"`
	Limit   int                     `json:"limit"`
	Offset  int                     `json:"offset"`
}

// Summary returns the front-page headline figures
func (s *PortalService) Summary(ctx context.Context) (*Summary, error) {
	records, err := s.outcomes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	summary := &Summary{
		TotalDraws: len(records),
		AsOf:       time.Now().UTC(),
	}
	if len(records) > 0 {
		latest := records[len(records)-1].DrawnAt
		summary.LatestDraw = &latest
	}
	return summary, nil
}

// Prediction returns the current probability distribution, computing and
// caching it when no fresh copy exists.
func (s *PortalService) Prediction(ctx context.Context) (*Prediction, error) {
	metrics.RecordPredictionRequest()

	if probs, sampleSize, ok := s.cache.Get(); ok {
		return s.buildPrediction(probs, sampleSize), nil
	}

	records, err := s.outcomes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	probs, err := engine.Estimate(records, s.categories)
	if err != nil {
		return nil, fmt.Errorf("failed to estimate probabilities: %w", err)
	}

	s.cache.Set(probs, len(records))
	return s.buildPrediction(probs, len(records)), nil
}

func (s *PortalService) buildPrediction(probs models.ProbabilityMapping, sampleSize int) *Prediction {
	best, p := probs.Best(s.categories)
	return &Prediction{
		Probabilities:   probs,
		Best:            best,
		BestProbability: p,
		SampleSize:      sampleSize,
	}
}

// Projection computes the expected-value panel for a hypothetical bet using
// the current distribution.
func (s *PortalService) Projection(ctx context.Context, bet models.BetRequest) (models.ExpectedValueResult, error) {
	metrics.RecordProjectionRequest()

	prediction, err := s.Prediction(ctx)
	if err != nil {
		return nil, err
	}

	result, err := engine.Project(bet, prediction.Probabilities, s.categories)
	if err != nil {
		return nil, fmt.Errorf("failed to project payout: %w", err)
	}
	return result, nil
}

// History returns one page of draw records, newest first.
func (s *PortalService) History(ctx context.Context, limit, offset int) (*HistoryPage, error) {
	if limit <= 0 {
		limit = 5
	}
	if offset < 0 {
		offset = 0
	}

	records, err := s.outcomes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	// Newest first for display
	desc := make([]*models.OutcomeRecord, len(records))
	for i, r := range records {
		desc[len(records)-1-i] = r
	}

	page := &HistoryPage{
		Total:  len(desc),
		Limit:  limit,
		Offset: offset,
	}
	if offset < len(desc) {
		end := offset + limit
		if end > len(desc) {
			end = len(desc)
		}
		page.Records = desc[offset:end]
	}
	return page, nil
}

// Trends returns the cumulative per-category count and share series.
func (s *PortalService) Trends(ctx context.Context) (*TrendSeries, error) {
	records, err := s.outcomes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return ComputeTrends(records, s.categories), nil
}

// Updates returns the most recent changelog entries, newest first.
func (s *PortalService) Updates(ctx context.Context, limit int) ([]*models.UpdateEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	entries, err := s.updates.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load updates: %w", err)
	}

	desc := make([]*models.UpdateEntry, len(entries))
	copy(desc, entries)
	for i, j := 0, len(desc)-1; i < j; i, j = i+1, j-1 {
		desc[i], desc[j] = desc[j], desc[i]
	}

	if len(desc) > limit {
		desc = desc[:limit]
	}
	return desc, nil
}

// Comment returns the admin comment for the front page.
func (s *PortalService) Comment(ctx context.Context) (string, error) {
	body, err := s.comment.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load comment: %w", err)
	}
	return body, nil
}

// RefreshMetrics recomputes the distribution gauges. The scheduler calls
// this periodically so Prometheus sees the current state even on a quiet
// portal.
func (s *PortalService) RefreshMetrics(ctx context.Context) error {
	records, err := s.outcomes.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	probs, err := engine.Estimate(records, s.categories)
	if err != nil {
		return fmt.Errorf("failed to estimate probabilities: %w", err)
	}

	metrics.UpdateRecordedDraws(float64(len(records)))
	for _, c := range s.categories {
		metrics.UpdateCategoryProbability(string(c), probs[c])
	}

	s.logger.WithFields(logrus.Fields{
		"records": len(records),
	}).Debug("Distribution metrics refreshed")
	return nil
}
