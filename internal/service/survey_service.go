package service

import (
	"context"
	"errors"

	"psychopulse/internal/model"
	"psychopulse/internal/repository"
)

// ErrInvalidSurvey is returned when a survey template fails validation
var ErrInvalidSurvey = errors.New("survey must have a title and at least one question")

// SurveyService handles survey template operations
type SurveyService struct {
	surveyRepo repository.SurveyRepo
}

// NewSurveyService creates a new survey service
func NewSurveyService(surveyRepo repository.SurveyRepo) *SurveyService {
	return &SurveyService{surveyRepo: surveyRepo}
}

// Create validates and stores a new survey template
func (s *SurveyService) Create(ctx context.Context, survey *model.Survey) (string, error) {
	if err := validateSurvey(survey); err != nil {
		return "", err
	}
	return s.surveyRepo.Create(ctx, survey)
}

// GetByID retrieves a survey by ID
func (s *SurveyService) GetByID(ctx context.Context, id string) (*model.Survey, error) {
	return s.surveyRepo.GetByID(ctx, id)
}

// List retrieves all available surveys
func (s *SurveyService) List(ctx context.Context) ([]*model.Survey, error) {
	return s.surveyRepo.List(ctx)
}

// Update validates and replaces an existing survey template
func (s *SurveyService) Update(ctx context.Context, survey *model.Survey) error {
	if err := validateSurvey(survey); err != nil {
		return err
	}
	return s.surveyRepo.Update(ctx, survey)
}

// Delete removes a survey template
func (s *SurveyService) Delete(ctx context.Context, id string) error {
	return s.surveyRepo.Delete(ctx, id)
}

func validateSurvey(survey *model.Survey) error {
	if survey.Title == "" || len(survey.Questions) == 0 {
		return ErrInvalidSurvey
	}
	for _, q := range survey.Questions {
		if q.ID == "" || q.Text == "" {
			return ErrInvalidSurvey
		}
		switch q.Type {
		case model.QuestionTypeLikert, model.QuestionTypeText:
		case model.QuestionTypeMultipleChoice:
			if len(q.Options) == 0 {
				return ErrInvalidSurvey
			}
		default:
			return ErrInvalidSurvey
		}
	}
	return nil
}
