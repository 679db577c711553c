package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pool-portal/internal/logger"
	"github.com/yourusername/pool-portal/internal/models"
)

type recordingNotifier struct {
	predictions []*Prediction
}

func (n *recordingNotifier) NotifyPrediction(p *Prediction) {
	n.predictions = append(n.predictions, p)
}

func newAdminFixture(outcomes *MockOutcomeRepository, updates *MockUpdateRepository, comment *MockCommentRepository) (*AdminService, *DistributionCache) {
	repos := testRepos(outcomes, updates, comment)
	cache := NewDistributionCache(time.Minute)
	log := testLogger()
	portal := NewPortalService(repos, models.DefaultCategories(), cache, log)
	admin := NewAdminService(repos, portal, models.DefaultCategories(), cache, logger.NewAuditLogger(log))
	return admin, cache
}

func TestAppendOutcome(t *testing.T) {
	outcomes := new(MockOutcomeRepository)
	outcomes.On("Append", mock.Anything, mock.AnythingOfType("*models.OutcomeRecord")).Return(nil)

	admin, cache := newAdminFixture(outcomes, nil, nil)
	cache.Set(models.ProbabilityMapping{models.CategoryWin: 1}, 1)

	record, err := admin.AppendOutcome(context.Background(), OutcomeInput{
		DrawnAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Result:  "win",
	})
	require.NoError(t, err)
	assert.Equal(t, models.CategoryWin, record.Result)
	outcomes.AssertExpectations(t)

	// The stale distribution must be gone after the write.
	_, _, ok := cache.Get()
	assert.False(t, ok)
}

func TestAppendOutcomeRejectsUnknownCategory(t *testing.T) {
	outcomes := new(MockOutcomeRepository)
	admin, _ := newAdminFixture(outcomes, nil, nil)

	_, err := admin.AppendOutcome(context.Background(), OutcomeInput{
		DrawnAt: time.Now(),
		Result:  "draw",
	})
	assert.ErrorIs(t, err, models.ErrUnknownCategory)
	outcomes.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestAppendOutcomeRequiresDrawTime(t *testing.T) {
	admin, _ := newAdminFixture(new(MockOutcomeRepository), nil, nil)

	_, err := admin.AppendOutcome(context.Background(), OutcomeInput{Result: "win"})
	assert.Error(t, err)
}

func TestReplaceOutcomesSortsAndReplaces(t *testing.T) {
	outcomes := new(MockOutcomeRepository)
	outcomes.On("Count", mock.Anything).Return(7, nil)
	outcomes.On("ReplaceAll", mock.Anything, mock.MatchedBy(func(records []*models.OutcomeRecord) bool {
		return len(records) == 2 && !records[0].DrawnAt.After(records[1].DrawnAt)
	})).Return(nil)

	admin, _ := newAdminFixture(outcomes, nil, nil)

	count, err := admin.ReplaceOutcomes(context.Background(), []OutcomeInput{
		{DrawnAt: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), Result: "loss"},
		{DrawnAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Result: "win"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	outcomes.AssertExpectations(t)
}

func TestReplaceOutcomesRejectsBadRow(t *testing.T) {
	outcomes := new(MockOutcomeRepository)
	admin, _ := newAdminFixture(outcomes, nil, nil)

	_, err := admin.ReplaceOutcomes(context.Background(), []OutcomeInput{
		{DrawnAt: time.Now(), Result: "win"},
		{DrawnAt: time.Now(), Result: "banana"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
	outcomes.AssertNotCalled(t, "ReplaceAll", mock.Anything, mock.Anything)
}

func TestReplaceOutcomesEmptyClearsHistory(t *testing.T) {
	outcomes := new(MockOutcomeRepository)
	outcomes.On("Count", mock.Anything).Return(4, nil)
	outcomes.On("ReplaceAll", mock.Anything, mock.MatchedBy(func(records []*models.OutcomeRecord) bool {
		return len(records) == 0
	})).Return(nil)

	admin, _ := newAdminFixture(outcomes, nil, nil)

	count, err := admin.ReplaceOutcomes(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, count)
	outcomes.AssertExpectations(t)
}

func TestAppendUpdate(t *testing.T) {
	updates := new(MockUpdateRepository)
	updates.On("Append", mock.Anything, mock.AnythingOfType("*models.UpdateEntry")).Return(nil)

	admin, _ := newAdminFixture(nil, updates, nil)

	entry, err := admin.AppendUpdate(context.Background(), UpdateInput{
		Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Body: "  new chart  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "new chart", entry.Body)
	updates.AssertExpectations(t)
}

func TestAppendUpdateRejectsEmptyBody(t *testing.T) {
	admin, _ := newAdminFixture(nil, new(MockUpdateRepository), nil)

	_, err := admin.AppendUpdate(context.Background(), UpdateInput{
		Date: time.Now(),
		Body: "   ",
	})
	assert.ErrorIs(t, err, models.ErrUpdateBodyEmpty)
}

func TestReplaceUpdates(t *testing.T) {
	updates := new(MockUpdateRepository)
	updates.On("List", mock.Anything).Return([]*models.UpdateEntry{
		models.NewUpdateEntry(time.Now(), "old"),
	}, nil)
	updates.On("ReplaceAll", mock.Anything, mock.MatchedBy(func(entries []*models.UpdateEntry) bool {
		return len(entries) == 2
	})).Return(nil)

	admin, _ := newAdminFixture(nil, updates, nil)

	count, err := admin.ReplaceUpdates(context.Background(), []UpdateInput{
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Body: "launched"},
		{Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Body: "odds table"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	updates.AssertExpectations(t)
}

func TestSaveComment(t *testing.T) {
	comment := new(MockCommentRepository)
	comment.On("Set", mock.Anything, "pool closes friday").Return(nil)

	admin, _ := newAdminFixture(nil, nil, comment)

	require.NoError(t, admin.SaveComment(context.Background(), "pool closes friday"))
	comment.AssertExpectations(t)
}

func TestHistoryChangeBroadcastsPrediction(t *testing.T) {
	outcomes := new(MockOutcomeRepository)
	outcomes.On("Append", mock.Anything, mock.Anything).Return(nil)
	outcomes.On("List", mock.Anything).Return(drawRecords(models.CategoryWin, models.CategoryWin), nil)

	admin, _ := newAdminFixture(outcomes, nil, nil)
	notifier := &recordingNotifier{}
	admin.SetNotifier(notifier)

	_, err := admin.AppendOutcome(context.Background(), OutcomeInput{
		DrawnAt: time.Now(),
		Result:  "win",
	})
	require.NoError(t, err)
	require.Len(t, notifier.predictions, 1)
	assert.Equal(t, models.CategoryWin, notifier.predictions[0].Best)
}
