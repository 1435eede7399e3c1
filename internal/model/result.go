package model

import (
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// AnswerValue holds a single raw answer: a number for Likert items or a
// string for multiple-choice and free-text items. It serializes as a bare
// JSON number or string, matching the wire format clients send.
type AnswerValue struct {
	Number   float64
	Text     string
	IsNumber bool
}

// NumberAnswer builds a numeric answer value.
func NumberAnswer(n float64) AnswerValue {
	return AnswerValue{Number: n, IsNumber: true}
}

// TextAnswer builds a string answer value.
func TextAnswer(s string) AnswerValue {
	return AnswerValue{Text: s}
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	if v.IsNumber {
		return json.Marshal(v.Number)
	}
	return json.Marshal(v.Text)
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = NumberAnswer(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("answer value must be a number or a string: %w", err)
	}
	// Numeric-looking strings are kept verbatim here; the scoring engine
	// coerces them when aggregating Likert items.
	*v = TextAnswer(s)
	return nil
}

func (v AnswerValue) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if v.IsNumber {
		return bson.MarshalValue(v.Number)
	}
	return bson.MarshalValue(v.Text)
}

func (v *AnswerValue) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Double:
		*v = NumberAnswer(raw.Double())
	case bsontype.Int32:
		*v = NumberAnswer(float64(raw.Int32()))
	case bsontype.Int64:
		*v = NumberAnswer(float64(raw.Int64()))
	case bsontype.String:
		*v = TextAnswer(raw.StringValue())
	default:
		return fmt.Errorf("unsupported answer value type %s", t)
	}
	return nil
}

// AnswerSet maps question ids to raw answer values. Unanswered questions
// are simply absent.
type AnswerSet map[string]AnswerValue

// SurveyResult is the immutable outcome of one completed survey session.
// It is created exactly once and only ever appended to a user's history.
type SurveyResult struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	SurveyID  string    `json:"surveyId" bson:"surveyId"`
	UserID    string    `json:"userId" bson:"userId"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	Answers   AnswerSet `json:"answers" bson:"answers"`

	// Scores holds per-category averaged Likert values, one decimal place.
	Scores map[string]float64 `json:"scores" bson:"scores"`

	// CategoryOrder records the categories of Scores in first-appearance
	// order over the survey's questions. Benchmark pairing depends on it
	// because Go maps do not iterate deterministically.
	CategoryOrder []string `json:"categoryOrder" bson:"categoryOrder"`

	// TotalScore is the mean of all answered Likert values across the
	// whole survey, independent of category, one decimal place.
	TotalScore float64 `json:"totalScore" bson:"totalScore"`
}

// Score returns the category score and whether the category is present.
func (r *SurveyResult) Score(category string) (float64, bool) {
	s, ok := r.Scores[category]
	return s, ok
}
