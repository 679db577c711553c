package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pool-portal/internal/models"
	"github.com/yourusername/pool-portal/internal/repository"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testRepos(outcomes *MockOutcomeRepository, updates *MockUpdateRepository, comment *MockCommentRepository) *repository.Repositories {
	return &repository.Repositories{
		Outcomes: outcomes,
		Updates:  updates,
		Comment:  comment,
	}
}

func drawRecords(results ...models.Category) []*models.OutcomeRecord {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	records := make([]*models.OutcomeRecord, len(results))
	for i, result := range results {
		records[i] = models.NewOutcomeRecord(base.Add(time.Duration(i)*24*time.Hour), result)
	}
	return records
}

func TestPortalSummary(t *testing.T) {
	outcomes := new(MockOutcomeRepository)
	records := drawRecords(models.CategoryWin, models.CategoryLoss, models.CategoryWin)
	outcomes.On("List", mock.Anything).Return(records, nil)

	svc := NewPortalService(testRepos(outcomes, nil, nil), models.DefaultCategories(), NewDistributionCache(time.Minute), testLogger())

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalDraws)
	require.NotNil(t, summary.LatestDraw)
	assert.Equal(t, records[2].DrawnAt, *summary.LatestDraw)
}

func TestPortalSummaryEmptyHistory(t *testing.T) {
	outcomes := new(MockOutcomeRepository)
	outcomes.On("List", mock.Anything).Return([]*models.OutcomeRecord{}, nil)

	svc := NewPortalService(testRepos(outcomes, nil, nil), models.DefaultCategories(), NewDistributionCache(time.Minute), testLogger())

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalDraws)
	assert.Nil(t, summary.LatestDraw)
}

func TestPortalPredictionComputesAndCaches(t *testing.T) {
	outcomes := new(MockOutcomeRepository)
	records := drawRecords(
		models.CategoryWin, models.CategoryWin, models.CategoryWin,
		models.CategoryLoss, models.CategoryGoalLoss,
	)
	outcomes.On("List", mock.Anything).Return(records, nil).Once()

	svc := NewPortalService(testRepos(outcomes, nil, nil), models.DefaultCategories(), NewDistributionCache(time.Minute), testLogger())

	prediction, err := svc.Prediction(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.CategoryWin, prediction.Best)
	assert.InDelta(t, 0.6, prediction.BestProbability, 1e-9)
	assert.Equal(t, 5, prediction.SampleSize)

	// Second call must come from the cache: List was limited to one call.
	again, err := svc.Prediction(context.Background())
	require.NoError(t, err)
	assert.Equal(t, prediction.Probabilities, again.Probabilities)
	outcomes.AssertExpectations(t)
}

func TestPortalPredictionEmptyHistoryIsUniform(t *testing.T) {
	outcomes := new(MockOutcomeRepository)
	outcomes.On("List", mock.Anything).Return([]*models.OutcomeRecord{}, nil)

	svc := NewPortalService(testRepos(outcomes, nil, nil), models.DefaultCategories(), NewDistributionCache(time.Minute), testLogger())

	prediction, err := svc.Prediction(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, prediction.SampleSize)
	for _, c := range models.DefaultCategories() {
		assert.InDelta(t, 1.0/3.0, prediction.Probabilities[c], 1e-9)
	}
	// Uniform ties resolve to the first category in display order.
	assert.Equal(t, models.CategoryWin, prediction.Best)
}

func TestPortalProjection(t *testing.T) {
	outcomes := new(MockOutcomeRepository)
	outcomes.On("List", mock.Anything).Return(drawRecords(models.CategoryWin, models.CategoryLoss), nil)

	svc := NewPortalService(testRepos(outcomes, nil, nil), models.DefaultCategories(), NewDistributionCache(time.Minute), testLogger())

	bet := models.BetRequest{
		Amount: decimal.NewFromInt(10),
		Pool: models.PoolMapping{
			models.CategoryWin:      decimal.NewFromInt(100),
			models.CategoryLoss:     decimal.NewFromInt(100),
			models.CategoryGoalLoss: decimal.Zero,
		},
	}

	result, err := svc.Projection(context.Background(), bet)
	require.NoError(t, err)
	require.Len(t, result, 3)

	// 210 total after bet, 110 in the win pool: payout 210/110*10.
	payout := result[models.CategoryWin].PayoutIfWin
	expected := decimal.NewFromInt(210).Div(decimal.NewFromInt(110)).Mul(decimal.NewFromInt(10))
	assert.True(t, payout.Sub(expected).Abs().LessThan(decimal.NewFromFloat(1e-9)))
}

func TestPortalProjectionRejectsNegativeBet(t *testing.T) {
	outcomes := new(MockOutcomeRepository)
	outcomes.On("List", mock.Anything).Return([]*models.OutcomeRecord{}, nil)

	svc := NewPortalService(testRepos(outcomes, nil, nil), models.DefaultCategories(), NewDistributionCache(time.Minute), testLogger())

	bet := models.BetRequest{Amount: decimal.NewFromInt(-5), Pool: models.PoolMapping{}}
	_, err := svc.Projection(context.Background(), bet)
	assert.ErrorIs(t, err, models.ErrNegativeAmount)
}

func TestPortalHistoryPaging(t *testing.T) {
	outcomes := new(MockOutcomeRepository)
	records := drawRecords(
		models.CategoryWin, models.CategoryLoss, models.CategoryGoalLoss,
		models.CategoryWin, models.CategoryWin, models.CategoryLoss,
		models.CategoryWin,
	)
	outcomes.On("List", mock.Anything).Return(records, nil)

	svc := NewPortalService(testRepos(outcomes, nil, nil), models.DefaultCategories(), NewDistributionCache(time.Minute), testLogger())

	// Default page size is five, newest first.
	page, err := svc.History(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 7, page.Total)
	require.Len(t, page.Records, 5)
	assert.Equal(t, records[6].ID, page.Records[0].ID)
	assert.Equal(t, records[2].ID, page.Records[4].ID)

	// Second page holds the remainder.
	page, err = svc.History(context.Background(), 5, 5)
	require.NoError(t, err)
	require.Len(t, page.Records, 2)
	assert.Equal(t, records[1].ID, page.Records[0].ID)
	assert.Equal(t, records[0].ID, page.Records[1].ID)

	// Offset past the end returns an empty page, not an error.
	page, err = svc.History(context.Background(), 5, 50)
	require.NoError(t, err)
	assert.Empty(t, page.Records)
	assert.Equal(t, 7, page.Total)
}

func TestPortalUpdatesNewestFirst(t *testing.T) {
	updates := new(MockUpdateRepository)
	entries := []*models.UpdateEntry{
		models.NewUpdateEntry(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "launched"),
		models.NewUpdateEntry(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), "new odds table"),
		models.NewUpdateEntry(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "fixed chart"),
	}
	updates.On("List", mock.Anything).Return(entries, nil)

	svc := NewPortalService(testRepos(nil, updates, nil), models.DefaultCategories(), NewDistributionCache(time.Minute), testLogger())

	got, err := svc.Updates(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "fixed chart", got[0].Body)
	assert.Equal(t, "new odds table", got[1].Body)
}

func TestPortalComment(t *testing.T) {
	comment := new(MockCommentRepository)
	comment.On("Get", mock.Anything).Return("pool closes friday", nil)

	svc := NewPortalService(testRepos(nil, nil, comment), models.DefaultCategories(), NewDistributionCache(time.Minute), testLogger())

	body, err := svc.Comment(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pool closes friday", body)
}
