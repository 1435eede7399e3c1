package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"psychopulse/internal/cache"
	"psychopulse/internal/model"
	"psychopulse/internal/repository"
)

var (
	ErrSessionNotFound  = errors.New("session not found or expired")
	ErrSessionCompleted = errors.New("session already completed")
	ErrUnknownQuestion  = errors.New("question does not belong to this survey")
)

// InvalidAnswerError reports a value that fails the question's type
// validation at the collection boundary.
type InvalidAnswerError struct {
	QuestionID string
	Reason     string
}

func (e *InvalidAnswerError) Error() string {
	return fmt.Sprintf("invalid answer for %s: %s", e.QuestionID, e.Reason)
}

// SessionService runs the survey-taking wizard: one question at a time,
// per-type validation on each answer, step progression, and a completion
// gate that hands the finished answer set to the result service.
type SessionService struct {
	surveyRepo   repository.SurveyRepo
	sessionCache cache.SessionCache
	resultSvc    *ResultService
}

// NewSessionService creates a new session service
func NewSessionService(surveyRepo repository.SurveyRepo, sessionCache cache.SessionCache, resultSvc *ResultService) *SessionService {
	return &SessionService{
		surveyRepo:   surveyRepo,
		sessionCache: sessionCache,
		resultSvc:    resultSvc,
	}
}

// Start opens a new in-progress session for a survey. initialAnswers
// pre-fills the wizard from a photo extraction; values that fail the
// per-question validation are dropped rather than failing the start.
func (s *SessionService) Start(ctx context.Context, surveyID, userID string, initialAnswers model.AnswerSet) (*model.SurveySession, error) {
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, ErrSurveyNotFound
	}

	answers := make(model.AnswerSet)
	for id, v := range initialAnswers {
		q := survey.QuestionByID(id)
		if q == nil {
			continue
		}
		if validateAnswer(q, v) == nil {
			answers[id] = v
		}
	}

	session := &model.SurveySession{
		ID:        uuid.New().String(),
		SurveyID:  surveyID,
		UserID:    userID,
		State:     model.SessionInProgress,
		Step:      nextStep(survey, answers, 0),
		Answers:   answers,
		StartedAt: time.Now(),
	}

	if err := s.sessionCache.Set(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Get returns an in-progress session
func (s *SessionService) Get(ctx context.Context, userID, sessionID string) (*model.SurveySession, error) {
	session, err := s.sessionCache.Get(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Answer records a validated answer and advances the wizard step past
// the furthest answered question.
func (s *SessionService) Answer(ctx context.Context, userID, sessionID, questionID string, value model.AnswerValue) (*model.SurveySession, error) {
	session, err := s.Get(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State == model.SessionCompleted {
		return nil, ErrSessionCompleted
	}

	survey, err := s.surveyRepo.GetByID(ctx, session.SurveyID)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, ErrSurveyNotFound
	}

	question := survey.QuestionByID(questionID)
	if question == nil {
		return nil, ErrUnknownQuestion
	}
	if err := validateAnswer(question, value); err != nil {
		return nil, err
	}

	session.Answers[questionID] = value
	session.Step = nextStep(survey, session.Answers, session.Step)

	if err := s.sessionCache.Set(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Complete closes the session into an immutable SurveyResult. The
// session is discarded only after the result is safely appended.
func (s *SessionService) Complete(ctx context.Context, userID, sessionID string) (*model.SurveyResult, error) {
	session, err := s.Get(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State == model.SessionCompleted {
		return nil, ErrSessionCompleted
	}

	survey, err := s.surveyRepo.GetByID(ctx, session.SurveyID)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, ErrSurveyNotFound
	}

	result, err := s.resultSvc.Complete(ctx, survey, userID, session.Answers)
	if err != nil {
		return nil, err
	}

	if err := s.sessionCache.Delete(ctx, userID, sessionID); err != nil {
		return nil, err
	}
	return result, nil
}

// validateAnswer enforces the per-type rules of the collection boundary.
// Likert answers must be whole numbers on the 1-5 scale here; the
// scoring engine itself stays total and accepts whatever it is handed.
func validateAnswer(q *model.Question, v model.AnswerValue) error {
	switch q.Type {
	case model.QuestionTypeLikert:
		if !v.IsNumber {
			return &InvalidAnswerError{QuestionID: q.ID, Reason: "likert answer must be a number"}
		}
		if v.Number < 1 || v.Number > 5 || v.Number != float64(int(v.Number)) {
			return &InvalidAnswerError{QuestionID: q.ID, Reason: "likert answer must be an integer between 1 and 5"}
		}
	case model.QuestionTypeMultipleChoice:
		if v.IsNumber || !hasOption(q.Options, v.Text) {
			return &InvalidAnswerError{QuestionID: q.ID, Reason: "answer must be one of the listed options"}
		}
	case model.QuestionTypeText:
		if v.IsNumber {
			return &InvalidAnswerError{QuestionID: q.ID, Reason: "text answer must be a string"}
		}
	}
	return nil
}

// nextStep moves the wizard to the first unanswered question at or after
// the current step; a fully answered survey parks on the last question.
func nextStep(survey *model.Survey, answers model.AnswerSet, from int) int {
	for i := from; i < len(survey.Questions); i++ {
		if _, ok := answers[survey.Questions[i].ID]; !ok {
			return i
		}
	}
	return len(survey.Questions) - 1
}
