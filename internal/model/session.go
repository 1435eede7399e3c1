package model

import "time"

// SessionState is the closed set of survey-taking session states
type SessionState string

const (
	SessionInProgress SessionState = "in_progress"
	SessionCompleted  SessionState = "completed"
)

// SurveySession is an in-progress survey-taking wizard for one user.
// Step points at the current question; answers accumulate until every
// required question is answered and the session completes into an
// immutable SurveyResult.
type SurveySession struct {
	ID        string       `json:"id"`
	SurveyID  string       `json:"surveyId"`
	UserID    string       `json:"userId"`
	State     SessionState `json:"state"`
	Step      int          `json:"step"` // index into the survey's question order
	Answers   AnswerSet    `json:"answers"`
	StartedAt time.Time    `json:"startedAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}
