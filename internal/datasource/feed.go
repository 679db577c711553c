package datasource

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/yourusername/pool-portal/internal/models"
)

// ResultsFeed fetches outcome records from an external provider.
type ResultsFeed interface {
	FetchOutcomes(ctx context.Context) ([]*models.OutcomeRecord, error)
	Name() string
}

// HTTPResultsFeed reads a remote CSV of draw results. The feed format is the
// same two columns the portal's own history file uses: drawn_at (RFC 3339)
// and result.
type HTTPResultsFeed struct {
	httpClient *RateLimitedHTTPClient
	url        string
	apiKey     string
	categories []models.Category
}

// NewHTTPResultsFeed creates a results feed client
func NewHTTPResultsFeed(httpClient *RateLimitedHTTPClient, url, apiKey string, categories []models.Category) *HTTPResultsFeed {
	return &HTTPResultsFeed{
		httpClient: httpClient,
		url:        url,
		apiKey:     apiKey,
		categories: categories,
	}
}

// Name returns the name of the feed
func (f *HTTPResultsFeed) Name() string {
	return "http_results_feed"
}

// FetchOutcomes downloads and parses the remote results CSV. Rows with a
// result outside the configured category set are rejected rather than
// silently dropped, so a misconfigured feed surfaces immediately.
func (f *HTTPResultsFeed) FetchOutcomes(ctx context.Context) ([]*models.OutcomeRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create feed request: %w", err)
	}
	if f.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.apiKey)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := f.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	rows, err := csv.NewReader(resp.Body).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	// Skip the header row
	records := make([]*models.OutcomeRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < 2 {
			return nil, fmt.Errorf("malformed feed row %v", row)
		}
		drawnAt, err := time.Parse(time.RFC3339, row[0])
		if err != nil {
			return nil, fmt.Errorf("malformed feed timestamp %q: %w", row[0], err)
		}
		result := models.Category(row[1])
		if !models.ContainsCategory(f.categories, result) {
			return nil, fmt.Errorf("feed result %q: %w", row[1], models.ErrUnknownCategory)
		}
		records = append(records, models.NewOutcomeRecord(drawnAt, result))
	}

	return records, nil
}
