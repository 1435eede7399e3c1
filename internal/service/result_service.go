package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"psychopulse/internal/cache"
	"psychopulse/internal/model"
	"psychopulse/internal/repository"
	"psychopulse/internal/scoring"
)

// Broadcaster pushes events to a user's open dashboard connections.
// Implemented by the WebSocket hub.
type Broadcaster interface {
	NotifyResultCreated(userID string, result *model.SurveyResult)
}

// IncompleteSurveyError reports which required questions are still
// unanswered when completion is attempted.
type IncompleteSurveyError struct {
	Missing []string
}

func (e *IncompleteSurveyError) Error() string {
	return fmt.Sprintf("survey incomplete, unanswered questions: %v", e.Missing)
}

// ResultService finalizes completed surveys into the append-only result
// history.
type ResultService struct {
	resultRepo     repository.ResultRepo
	dashboardCache cache.DashboardCache
	broadcaster    Broadcaster
}

// NewResultService creates a new result service
func NewResultService(resultRepo repository.ResultRepo, dashboardCache cache.DashboardCache) *ResultService {
	return &ResultService{
		resultRepo:     resultRepo,
		dashboardCache: dashboardCache,
	}
}

// SetBroadcaster injects the WebSocket hub for live dashboard updates
func (s *ResultService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Complete scores a finished answer set and appends the result to the
// user's history atomically. All Likert and multiple-choice questions
// must carry an answer; free-text questions are optional.
func (s *ResultService) Complete(ctx context.Context, survey *model.Survey, userID string, answers model.AnswerSet) (*model.SurveyResult, error) {
	var missing []string
	for _, id := range survey.RequiredQuestionIDs() {
		if _, ok := answers[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, &IncompleteSurveyError{Missing: missing}
	}

	result := scoring.Score(survey, answers, userID, time.Now())
	if err := s.resultRepo.Append(ctx, result); err != nil {
		return nil, err
	}

	// Derived metrics are stale now; cache failures must not undo a
	// completed survey.
	if err := s.dashboardCache.Invalidate(ctx, userID); err != nil {
		log.Printf("dashboard cache invalidate failed for %s: %v", userID, err)
	}

	if s.broadcaster != nil {
		s.broadcaster.NotifyResultCreated(userID, result)
	}

	return result, nil
}

// History returns the user's results ordered by timestamp ascending
func (s *ResultService) History(ctx context.Context, userID string) ([]*model.SurveyResult, error) {
	return s.resultRepo.GetByUserID(ctx, userID)
}
