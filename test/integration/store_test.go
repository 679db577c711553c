package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pool-portal/internal/models"
	"github.com/yourusername/pool-portal/test/helpers"
)

func TestPostgresOutcomeRoundTrip(t *testing.T) {
	db, repos := helpers.SetupTestStore(t)
	defer helpers.TeardownTestStore(t, db)

	seeded := helpers.SeedOutcomes(t, repos,
		models.CategoryWin, models.CategoryLoss, models.CategoryGoalLoss,
	)

	records, err := repos.Outcomes.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Listed in draw order.
	for i, record := range records {
		assert.Equal(t, seeded[i].ID, record.ID)
		assert.Equal(t, seeded[i].Result, record.Result)
		assert.True(t, seeded[i].DrawnAt.Equal(record.DrawnAt))
	}

	count, err := repos.Outcomes.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestPostgresOutcomeReplaceAll(t *testing.T) {
	db, repos := helpers.SetupTestStore(t)
	defer helpers.TeardownTestStore(t, db)

	helpers.SeedOutcomes(t, repos, models.CategoryWin, models.CategoryWin)

	replacement := []*models.OutcomeRecord{
		models.NewOutcomeRecord(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), models.CategoryLoss),
	}
	require.NoError(t, repos.Outcomes.ReplaceAll(context.Background(), replacement))

	records, err := repos.Outcomes.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.CategoryLoss, records[0].Result)
}

func TestPostgresUpdatesRoundTrip(t *testing.T) {
	db, repos := helpers.SetupTestStore(t)
	defer helpers.TeardownTestStore(t, db)

	entry := models.NewUpdateEntry(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "odds table added")
	require.NoError(t, repos.Updates.Append(context.Background(), entry))

	entries, err := repos.Updates.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry.ID, entries[0].ID)
	assert.Equal(t, "odds table added", entries[0].Body)
}

func TestPostgresCommentSingleton(t *testing.T) {
	db, repos := helpers.SetupTestStore(t)
	defer helpers.TeardownTestStore(t, db)

	body, err := repos.Comment.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, body)

	require.NoError(t, repos.Comment.Set(context.Background(), "first"))
	require.NoError(t, repos.Comment.Set(context.Background(), "second"))

	body, err = repos.Comment.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "second", body)
}

func TestPostgresPing(t *testing.T) {
	db, repos := helpers.SetupTestStore(t)
	defer helpers.TeardownTestStore(t, db)

	assert.NoError(t, repos.Store.Ping(context.Background()))
}
