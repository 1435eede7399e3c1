package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"psychopulse/internal/model"
	"psychopulse/internal/repository"
)

func validSurvey() *model.Survey {
	return &model.Survey{
		Title: "Clima Laboral",
		Questions: []model.Question{
			{ID: "q1", Text: "Carga", Type: model.QuestionTypeLikert, Category: "Carga de Trabajo"},
			{ID: "q2", Text: "Síntomas", Type: model.QuestionTypeMultipleChoice, Options: []string{"Nunca", "Siempre"}},
		},
	}
}

func TestSurveyCreateAndGet(t *testing.T) {
	svc := NewSurveyService(repository.NewMemorySurveyRepo())
	ctx := context.Background()

	id, err := svc.Create(ctx, validSurvey())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Clima Laboral", got.Title)

	missing, err := svc.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSurveyCreateValidation(t *testing.T) {
	svc := NewSurveyService(repository.NewMemorySurveyRepo())
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*model.Survey)
	}{
		{"no title", func(s *model.Survey) { s.Title = "" }},
		{"no questions", func(s *model.Survey) { s.Questions = nil }},
		{"question without id", func(s *model.Survey) { s.Questions[0].ID = "" }},
		{"question without text", func(s *model.Survey) { s.Questions[0].Text = "" }},
		{"choice without options", func(s *model.Survey) { s.Questions[1].Options = nil }},
		{"unknown type", func(s *model.Survey) { s.Questions[0].Type = "SLIDER" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			survey := validSurvey()
			tc.mutate(survey)
			_, err := svc.Create(ctx, survey)
			assert.ErrorIs(t, err, ErrInvalidSurvey)
		})
	}
}

func TestSurveyUpdateAndDelete(t *testing.T) {
	svc := NewSurveyService(repository.NewMemorySurveyRepo())
	ctx := context.Background()

	id, err := svc.Create(ctx, validSurvey())
	require.NoError(t, err)

	updated := validSurvey()
	updated.ID = id
	updated.Title = "Clima Laboral v2"
	require.NoError(t, svc.Update(ctx, updated))

	got, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Clima Laboral v2", got.Title)

	require.NoError(t, svc.Delete(ctx, id))
	got, err = svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)
}
