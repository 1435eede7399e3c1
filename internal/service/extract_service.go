package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"psychopulse/internal/model"
	"psychopulse/internal/repository"
)

// ErrNoAnswersDetected is returned when the vision model produced no
// usable answer mapping. The caller prompts the user to retry with a
// clearer photo; no survey session is started.
var ErrNoAnswersDetected = errors.New("no answers detected in image")

// ErrSurveyNotFound is returned when a survey id does not exist
var ErrSurveyNotFound = errors.New("survey not found")

// ExtractService reads answers off photographed paper surveys via the
// vision model.
type ExtractService struct {
	surveyRepo repository.SurveyRepo
	agent      *AgentService
}

// NewExtractService creates a new extract service
func NewExtractService(surveyRepo repository.SurveyRepo, agent *AgentService) *ExtractService {
	return &ExtractService{
		surveyRepo: surveyRepo,
		agent:      agent,
	}
}

// Extract sends the image and the survey's question list to the vision
// model and coerces the returned mapping to each question's answer type.
// One attempt per call; failures surface as ErrNoAnswersDetected or
// ErrAgentUnavailable, never as a partial session.
func (s *ExtractService) Extract(ctx context.Context, surveyID, base64Image, mimeType string) (model.AnswerSet, error) {
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, ErrSurveyNotFound
	}

	prompt := buildExtractPrompt(survey)
	text, err := s.agent.ExtractFromImage(ctx, base64Image, mimeType, prompt)
	if err != nil {
		if errors.Is(err, ErrAgentUnavailable) {
			return nil, err
		}
		return nil, ErrNoAnswersDetected
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, ErrNoAnswersDetected
	}

	answers := coerceExtracted(survey, raw)
	if len(answers) == 0 {
		return nil, ErrNoAnswersDetected
	}
	return answers, nil
}

// coerceExtracted keeps only values for known questions, coerced to the
// question's answer type. Values the model got wrong are dropped rather
// than failing the whole extraction.
func coerceExtracted(survey *model.Survey, raw map[string]json.RawMessage) model.AnswerSet {
	answers := make(model.AnswerSet)
	for id, data := range raw {
		q := survey.QuestionByID(id)
		if q == nil {
			continue
		}
		var v model.AnswerValue
		if err := json.Unmarshal(data, &v); err != nil {
			continue
		}
		switch q.Type {
		case model.QuestionTypeLikert:
			if v.IsNumber {
				answers[id] = v
			}
		case model.QuestionTypeMultipleChoice:
			if !v.IsNumber && hasOption(q.Options, v.Text) {
				answers[id] = v
			}
		case model.QuestionTypeText:
			if !v.IsNumber && v.Text != "" {
				answers[id] = v
			}
		}
	}
	return answers
}

func buildExtractPrompt(survey *model.Survey) string {
	var b strings.Builder
	b.WriteString("Analiza esta imagen de encuesta. Extrae las respuestas.\nContexto de preguntas:\n")
	for _, q := range survey.Questions {
		fmt.Fprintf(&b, "ID: %s, Pregunta: %q, Tipo: %s", q.ID, q.Text, q.Type)
		if len(q.Options) > 0 {
			fmt.Fprintf(&b, ", Opciones: %s", strings.Join(q.Options, ", "))
		}
		b.WriteString("\n")
	}
	b.WriteString("\nDevuelve JSON puro: {\"q1\": 5, \"q2\": \"Opción A\"}\n")
	return b.String()
}

func hasOption(options []string, value string) bool {
	for _, opt := range options {
		if opt == value {
			return true
		}
	}
	return false
}
