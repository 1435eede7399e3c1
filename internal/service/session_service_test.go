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

func newSessionFixture(t *testing.T) (*SessionService, *repository.MemoryResultRepo) {
	t.Helper()

	surveyRepo := repository.NewMemorySurveyRepo()
	_, err := surveyRepo.Create(context.Background(), &model.Survey{
		ID:    "s1",
		Title: "Clima Laboral",
		Questions: []model.Question{
			{ID: "q1", Text: "Carga", Type: model.QuestionTypeLikert, Category: "Carga de Trabajo"},
			{ID: "q2", Text: "Apoyo", Type: model.QuestionTypeLikert, Category: "Apoyo"},
			{ID: "q3", Text: "Síntomas", Type: model.QuestionTypeMultipleChoice, Options: []string{"Nunca", "A veces"}},
			{ID: "q4", Text: "Comentarios", Type: model.QuestionTypeText},
		},
	})
	require.NoError(t, err)

	resultRepo := repository.NewMemoryResultRepo()
	resultSvc := NewResultService(resultRepo, cache.NewMemoryDashboardCache())
	return NewSessionService(surveyRepo, cache.NewMemorySessionCache(), resultSvc), resultRepo
}

func TestSessionStart(t *testing.T) {
	svc, _ := newSessionFixture(t)
	ctx := context.Background()

	session, err := svc.Start(ctx, "s1", "u1", nil)
	require.NoError(t, err)

	assert.NotEmpty(t, session.ID)
	assert.Equal(t, model.SessionInProgress, session.State)
	assert.Equal(t, 0, session.Step)
	assert.Empty(t, session.Answers)
}

func TestSessionStartUnknownSurvey(t *testing.T) {
	svc, _ := newSessionFixture(t)

	_, err := svc.Start(context.Background(), "nope", "u1", nil)
	assert.ErrorIs(t, err, ErrSurveyNotFound)
}

func TestSessionStartDropsInvalidInitialAnswers(t *testing.T) {
	svc, _ := newSessionFixture(t)

	session, err := svc.Start(context.Background(), "s1", "u1", model.AnswerSet{
		"q1":   model.NumberAnswer(4),          // valid
		"q2":   model.NumberAnswer(9),          // out of range, dropped
		"q3":   model.TextAnswer("Jamás"),      // not an option, dropped
		"qx":   model.NumberAnswer(3),          // unknown question, dropped
		"q4":   model.TextAnswer("pre-filled"), // valid
	})
	require.NoError(t, err)

	assert.Len(t, session.Answers, 2)
	assert.Contains(t, session.Answers, "q1")
	assert.Contains(t, session.Answers, "q4")
	// First unanswered question after the prefill.
	assert.Equal(t, 1, session.Step)
}

func TestSessionAnswerAdvancesStep(t *testing.T) {
	svc, _ := newSessionFixture(t)
	ctx := context.Background()

	session, err := svc.Start(ctx, "s1", "u1", nil)
	require.NoError(t, err)

	session, err = svc.Answer(ctx, "u1", session.ID, "q1", model.NumberAnswer(4))
	require.NoError(t, err)
	assert.Equal(t, 1, session.Step)

	// Answering out of order: step moves to the first gap, not past it.
	session, err = svc.Answer(ctx, "u1", session.ID, "q3", model.TextAnswer("Nunca"))
	require.NoError(t, err)
	assert.Equal(t, 1, session.Step)

	session, err = svc.Answer(ctx, "u1", session.ID, "q2", model.NumberAnswer(3))
	require.NoError(t, err)
	assert.Equal(t, 3, session.Step)

	// Fully answered survey parks on the last question.
	session, err = svc.Answer(ctx, "u1", session.ID, "q4", model.TextAnswer("ok"))
	require.NoError(t, err)
	assert.Equal(t, 3, session.Step)
}

func TestSessionAnswerValidation(t *testing.T) {
	svc, _ := newSessionFixture(t)
	ctx := context.Background()

	session, err := svc.Start(ctx, "s1", "u1", nil)
	require.NoError(t, err)

	cases := []struct {
		name       string
		questionID string
		value      model.AnswerValue
	}{
		{"likert string", "q1", model.TextAnswer("4")},
		{"likert out of range", "q1", model.NumberAnswer(6)},
		{"likert fractional", "q1", model.NumberAnswer(3.5)},
		{"likert zero", "q1", model.NumberAnswer(0)},
		{"choice not listed", "q3", model.TextAnswer("Siempre")},
		{"choice number", "q3", model.NumberAnswer(1)},
		{"text number", "q4", model.NumberAnswer(1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Answer(ctx, "u1", session.ID, tc.questionID, tc.value)
			var invalid *InvalidAnswerError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tc.questionID, invalid.QuestionID)
		})
	}

	_, err = svc.Answer(ctx, "u1", session.ID, "q9", model.NumberAnswer(3))
	assert.ErrorIs(t, err, ErrUnknownQuestion)
}

func TestSessionGetMissing(t *testing.T) {
	svc, _ := newSessionFixture(t)

	_, err := svc.Get(context.Background(), "u1", "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionCompleteRequiresAllAnswers(t *testing.T) {
	svc, _ := newSessionFixture(t)
	ctx := context.Background()

	session, err := svc.Start(ctx, "s1", "u1", model.AnswerSet{"q1": model.NumberAnswer(4)})
	require.NoError(t, err)

	_, err = svc.Complete(ctx, "u1", session.ID)
	var incomplete *IncompleteSurveyError
	require.ErrorAs(t, err, &incomplete)
	assert.ElementsMatch(t, []string{"q2", "q3"}, incomplete.Missing)

	// The session survives a failed completion.
	_, err = svc.Get(ctx, "u1", session.ID)
	assert.NoError(t, err)
}

func TestSessionCompleteFreeTextOptional(t *testing.T) {
	svc, resultRepo := newSessionFixture(t)
	ctx := context.Background()

	session, err := svc.Start(ctx, "s1", "u1", model.AnswerSet{
		"q1": model.NumberAnswer(5),
		"q2": model.NumberAnswer(2),
		"q3": model.TextAnswer("A veces"),
	})
	require.NoError(t, err)

	result, err := svc.Complete(ctx, "u1", session.ID)
	require.NoError(t, err)

	assert.Equal(t, 5.0, result.Scores["Carga de Trabajo"])
	assert.Equal(t, 2.0, result.Scores["Apoyo"])
	assert.Equal(t, 3.5, result.TotalScore)

	// Result persisted, session gone.
	history, err := resultRepo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, history, 1)

	_, err = svc.Get(ctx, "u1", session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
