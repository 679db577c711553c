package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/pool-portal/internal/datasource"
	"github.com/yourusername/pool-portal/internal/logger"
	"github.com/yourusername/pool-portal/internal/metrics"
	"github.com/yourusername/pool-portal/internal/models"
	"github.com/yourusername/pool-portal/internal/repository"
)

// ImportService merges draw results from a remote feed into the local
// history. Records are deduplicated by draw time and result, so re-running an
// import against an unchanged feed is a no-op.
type ImportService struct {
	feed     datasource.ResultsFeed
	outcomes repository.OutcomeRepository
	cache    *DistributionCache
	audit    *logger.AuditLogger
	logger   *logrus.Logger
}

// NewImportService creates the feed import service.
func NewImportService(
	feed datasource.ResultsFeed,
	repos *repository.Repositories,
	cache *DistributionCache,
	audit *logger.AuditLogger,
	log *logrus.Logger,
) *ImportService {
	return &ImportService{
		feed:     feed,
		outcomes: repos.Outcomes,
		cache:    cache,
		audit:    audit,
		logger:   log,
	}
}

type drawKey struct {
	drawnAt int64
	result  models.Category
}

// Run fetches the feed once and appends any records not already in the
// history. It returns how many records were merged.
func (s *ImportService) Run(ctx context.Context) (int, error) {
	fetched, err := s.feed.FetchOutcomes(ctx)
	if err != nil {
		s.audit.LogFeedImport(0, 0, err)
		return 0, fmt.Errorf("failed to fetch results feed %s: %w", s.feed.Name(), err)
	}

	existing, err := s.outcomes.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list outcomes: %w", err)
	}
	seen := make(map[drawKey]struct{}, len(existing))
	for _, record := range existing {
		seen[drawKey{record.DrawnAt.Unix(), record.Result}] = struct{}{}
	}

	merged := 0
	for _, record := range fetched {
		key := drawKey{record.DrawnAt.Unix(), record.Result}
		if _, ok := seen[key]; ok {
			continue
		}
		if err := s.outcomes.Append(ctx, record); err != nil {
			s.audit.LogFeedImport(len(fetched), merged, err)
			return merged, fmt.Errorf("failed to append imported outcome: %w", err)
		}
		seen[key] = struct{}{}
		merged++
	}

	if merged > 0 {
		s.cache.Invalidate()
	}
	s.audit.LogFeedImport(len(fetched), merged, nil)
	metrics.RecordFeedImport()

	s.logger.WithFields(logrus.Fields{
		"feed":    s.feed.Name(),
		"fetched": len(fetched),
		"merged":  merged,
	}).Info("Results feed import finished")
	return merged, nil
}
