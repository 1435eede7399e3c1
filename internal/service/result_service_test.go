package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"psychopulse/internal/cache"
	"psychopulse/internal/model"
	"psychopulse/internal/repository"
)

type recordingBroadcaster struct {
	userIDs []string
	results []*model.SurveyResult
}

func (b *recordingBroadcaster) NotifyResultCreated(userID string, result *model.SurveyResult) {
	b.userIDs = append(b.userIDs, userID)
	b.results = append(b.results, result)
}

func likertSurvey() *model.Survey {
	return &model.Survey{
		ID:    "s1",
		Title: "Burnout",
		Questions: []model.Question{
			{ID: "b1", Text: "Agotado", Type: model.QuestionTypeLikert, Category: "Agotamiento"},
			{ID: "b2", Text: "Apoyado", Type: model.QuestionTypeLikert, Category: "Apoyo"},
			{ID: "b3", Text: "Comentarios", Type: model.QuestionTypeText},
		},
	}
}

func TestResultCompleteAppendsAndInvalidates(t *testing.T) {
	ctx := context.Background()
	resultRepo := repository.NewMemoryResultRepo()
	dashCache := cache.NewMemoryDashboardCache()
	svc := NewResultService(resultRepo, dashCache)

	// Pre-warm the cache so we can observe the invalidation.
	require.NoError(t, dashCache.Set(ctx, "u1", &model.DashboardMetrics{BurnoutRisk: 50}))

	result, err := svc.Complete(ctx, likertSurvey(), "u1", model.AnswerSet{
		"b1": model.NumberAnswer(4),
		"b2": model.NumberAnswer(2),
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", result.UserID)
	assert.Equal(t, 3.0, result.TotalScore)

	history, err := resultRepo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, result.ID, history[0].ID)

	cached, err := dashCache.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestResultCompleteMissingRequired(t *testing.T) {
	svc := NewResultService(repository.NewMemoryResultRepo(), cache.NewMemoryDashboardCache())

	_, err := svc.Complete(context.Background(), likertSurvey(), "u1", model.AnswerSet{
		"b1": model.NumberAnswer(4),
		"b3": model.TextAnswer("todo bien"),
	})

	var incomplete *IncompleteSurveyError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, []string{"b2"}, incomplete.Missing)
}

func TestResultCompleteBroadcasts(t *testing.T) {
	svc := NewResultService(repository.NewMemoryResultRepo(), cache.NewMemoryDashboardCache())
	broadcaster := &recordingBroadcaster{}
	svc.SetBroadcaster(broadcaster)

	result, err := svc.Complete(context.Background(), likertSurvey(), "u1", model.AnswerSet{
		"b1": model.NumberAnswer(4),
		"b2": model.NumberAnswer(2),
	})
	require.NoError(t, err)

	require.Len(t, broadcaster.results, 1)
	assert.Equal(t, []string{"u1"}, broadcaster.userIDs)
	assert.Equal(t, result.ID, broadcaster.results[0].ID)
}

func TestResultHistoryOrdered(t *testing.T) {
	ctx := context.Background()
	resultRepo := repository.NewMemoryResultRepo()
	svc := NewResultService(resultRepo, cache.NewMemoryDashboardCache())

	first, err := svc.Complete(ctx, likertSurvey(), "u1", model.AnswerSet{
		"b1": model.NumberAnswer(2),
		"b2": model.NumberAnswer(4),
	})
	require.NoError(t, err)
	second, err := svc.Complete(ctx, likertSurvey(), "u1", model.AnswerSet{
		"b1": model.NumberAnswer(5),
		"b2": model.NumberAnswer(1),
	})
	require.NoError(t, err)

	history, err := svc.History(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, first.ID, history[0].ID)
	assert.Equal(t, second.ID, history[1].ID)
}
