package model

import "time"

// QuestionType defines the type of question
type QuestionType string

const (
	QuestionTypeLikert         QuestionType = "LIKERT"          // 1-5 agreement scale, feeds scoring
	QuestionTypeMultipleChoice QuestionType = "MULTIPLE_CHOICE" // One option from a fixed list
	QuestionTypeText           QuestionType = "TEXT"            // Free text, never scored
)

// Question is a single item inside a survey. Category groups related
// questions for sub-score aggregation; a question without a category
// still counts toward the overall average when it is a Likert item.
type Question struct {
	ID       string       `json:"id" bson:"id"`
	Text     string       `json:"text" bson:"text"`
	Type     QuestionType `json:"type" bson:"type"`
	Options  []string     `json:"options,omitempty" bson:"options,omitempty"`   // MULTIPLE_CHOICE only
	Category string       `json:"category,omitempty" bson:"category,omitempty"` // e.g. "Carga de Trabajo"
}

// Survey is a persistent assessment template. Question order defines
// presentation order.
type Survey struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description" bson:"description"`
	Questions   []Question `json:"questions" bson:"questions"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// QuestionByID returns the question with the given id, or nil.
func (s *Survey) QuestionByID(id string) *Question {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i]
		}
	}
	return nil
}

// RequiredQuestionIDs returns the ids of every question that must be
// answered before a session can complete. TEXT questions are optional.
func (s *Survey) RequiredQuestionIDs() []string {
	var ids []string
	for _, q := range s.Questions {
		if q.Type == QuestionTypeLikert || q.Type == QuestionTypeMultipleChoice {
			ids = append(ids, q.ID)
		}
	}
	return ids
}
