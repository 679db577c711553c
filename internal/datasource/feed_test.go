package datasource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pool-portal/internal/models"
)

func newFeedServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer feed-key", r.Header.Get("Authorization"))
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestFeed(url string) *HTTPResultsFeed {
	client := NewRateLimitedHTTPClient(DefaultHTTPClientConfig(), nil)
	return NewHTTPResultsFeed(client, url, "feed-key", models.DefaultCategories())
}

func TestFetchOutcomesParsesCSV(t *testing.T) {
	body := "drawn_at,result\n2025-05-01T19:00:00Z,win\n2025-05-02T19:00:00Z,goal_loss\n"
	srv := newFeedServer(t, http.StatusOK, body)

	records, err := newTestFeed(srv.URL).FetchOutcomes(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, models.CategoryWin, records[0].Result)
	assert.Equal(t, models.CategoryGoalLoss, records[1].Result)
	assert.Equal(t, 2025, records[0].DrawnAt.Year())
}

func TestFetchOutcomesRejectsUnknownCategory(t *testing.T) {
	body := "drawn_at,result\n2025-05-01T19:00:00Z,draw\n"
	srv := newFeedServer(t, http.StatusOK, body)

	_, err := newTestFeed(srv.URL).FetchOutcomes(context.Background())
	assert.ErrorIs(t, err, models.ErrUnknownCategory)
}

func TestFetchOutcomesRejectsBadTimestamp(t *testing.T) {
	body := "drawn_at,result\nyesterday,win\n"
	srv := newFeedServer(t, http.StatusOK, body)

	_, err := newTestFeed(srv.URL).FetchOutcomes(context.Background())
	assert.Error(t, err)
}

func TestFetchOutcomesNonOKStatus(t *testing.T) {
	srv := newFeedServer(t, http.StatusForbidden, "")

	_, err := newTestFeed(srv.URL).FetchOutcomes(context.Background())
	assert.Error(t, err)
}

func TestFetchOutcomesEmptyBody(t *testing.T) {
	srv := newFeedServer(t, http.StatusOK, "")

	records, err := newTestFeed(srv.URL).FetchOutcomes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}
