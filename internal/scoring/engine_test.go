package scoring

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"psychopulse/internal/model"
)

func demoSurvey() *model.Survey {
	return &model.Survey{
		ID:    "s1",
		Title: "Clima Laboral",
		Questions: []model.Question{
			{ID: "q1", Text: "Carga", Type: model.QuestionTypeLikert, Category: "Carga de Trabajo"},
			{ID: "q2", Text: "Carga 2", Type: model.QuestionTypeLikert, Category: "Carga de Trabajo"},
			{ID: "q3", Text: "Apoyo", Type: model.QuestionTypeLikert, Category: "Apoyo"},
			{ID: "q4", Text: "Opción", Type: model.QuestionTypeMultipleChoice, Options: []string{"A", "B"}},
			{ID: "q5", Text: "Comentario", Type: model.QuestionTypeText},
		},
	}
}

func TestScoreAveragesPerCategory(t *testing.T) {
	answers := model.AnswerSet{
		"q1": model.NumberAnswer(4),
		"q2": model.NumberAnswer(5),
		"q3": model.NumberAnswer(3),
		"q4": model.TextAnswer("A"),
		"q5": model.TextAnswer("todo bien"),
	}

	res := Score(demoSurvey(), answers, "user_1", time.Now())

	assert.Equal(t, 4.5, res.Scores["Carga de Trabajo"])
	assert.Equal(t, 3.0, res.Scores["Apoyo"])
	assert.Equal(t, 4.0, res.TotalScore)
	assert.Equal(t, []string{"Carga de Trabajo", "Apoyo"}, res.CategoryOrder)
}

func TestScoreRoundsHalfAwayFromZero(t *testing.T) {
	survey := &model.Survey{
		ID: "s1",
		Questions: []model.Question{
			{ID: "q1", Type: model.QuestionTypeLikert, Category: "C"},
			{ID: "q2", Type: model.QuestionTypeLikert, Category: "C"},
		},
	}
	answers := model.AnswerSet{
		"q1": model.NumberAnswer(2.25),
		"q2": model.NumberAnswer(2.25),
	}
	// average 2.25 -> 2.3, not banker's 2.2
	res := Score(survey, answers, "u", time.Now())
	assert.Equal(t, 2.3, res.Scores["C"])

	survey.Questions = append(survey.Questions, model.Question{ID: "q3", Type: model.QuestionTypeLikert, Category: "C"})
	answers["q3"] = model.NumberAnswer(2.5)
	// 7/3 = 2.333... -> 2.3
	res = Score(survey, answers, "u", time.Now())
	assert.Equal(t, 2.3, res.Scores["C"])
}

func TestScoreCoercesNumericStrings(t *testing.T) {
	answers := model.AnswerSet{
		"q1": model.TextAnswer("4"),
		"q2": model.TextAnswer("no sé"),
		"q3": model.NumberAnswer(2),
	}

	res := Score(demoSurvey(), answers, "u", time.Now())

	assert.Equal(t, 4.0, res.Scores["Carga de Trabajo"])
	assert.Equal(t, 2.0, res.Scores["Apoyo"])
	assert.Equal(t, 3.0, res.TotalScore)
}

func TestScoreSkipsNaN(t *testing.T) {
	answers := model.AnswerSet{
		"q1": model.NumberAnswer(math.NaN()),
		"q3": model.NumberAnswer(5),
	}

	res := Score(demoSurvey(), answers, "u", time.Now())

	_, ok := res.Scores["Carga de Trabajo"]
	assert.False(t, ok)
	assert.Equal(t, 5.0, res.TotalScore)
}

func TestScoreNoLikertAnswers(t *testing.T) {
	answers := model.AnswerSet{
		"q4": model.TextAnswer("B"),
		"q5": model.TextAnswer("comentario"),
	}

	res := Score(demoSurvey(), answers, "u", time.Now())

	assert.Empty(t, res.Scores)
	assert.Zero(t, res.TotalScore)
	assert.Empty(t, res.CategoryOrder)
}

func TestScoreAcceptsOutOfRangeValues(t *testing.T) {
	answers := model.AnswerSet{
		"q1": model.NumberAnswer(7),
		"q2": model.NumberAnswer(0),
	}

	res := Score(demoSurvey(), answers, "u", time.Now())

	assert.Equal(t, 3.5, res.Scores["Carga de Trabajo"])
}

func TestScoreUncategorizedLikertCountsForTotal(t *testing.T) {
	survey := &model.Survey{
		ID: "s1",
		Questions: []model.Question{
			{ID: "q1", Type: model.QuestionTypeLikert, Category: "C"},
			{ID: "q2", Type: model.QuestionTypeLikert}, // no category
		},
	}
	answers := model.AnswerSet{
		"q1": model.NumberAnswer(4),
		"q2": model.NumberAnswer(2),
	}

	res := Score(survey, answers, "u", time.Now())

	assert.Equal(t, 4.0, res.Scores["C"])
	assert.Equal(t, 3.0, res.TotalScore)
	assert.Len(t, res.Scores, 1)
}

func TestScoreResultIdentity(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	res := Score(demoSurvey(), model.AnswerSet{"q1": model.NumberAnswer(3)}, "user_42", now)

	require.NotEmpty(t, res.ID)
	assert.Equal(t, "s1", res.SurveyID)
	assert.Equal(t, "user_42", res.UserID)
	assert.Equal(t, now, res.Timestamp)
}
