// Package scoring turns a survey and a set of raw answers into an
// immutable SurveyResult with per-category and overall averages.
package scoring

import (
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"

	"psychopulse/internal/model"
)

// Score aggregates the answered Likert items of a survey into category
// averages and an overall average, both rounded to one decimal place
// using round-half-away-from-zero. It is a total function: malformed
// values are treated as missing, never rejected.
//
// Likert values are averaged as-is even when outside the declared 1-5
// range; range enforcement belongs to the collection boundary, not here.
func Score(survey *model.Survey, answers model.AnswerSet, userID string, now time.Time) *model.SurveyResult {
	scores := make(map[string]float64)
	counts := make(map[string]int)
	var order []string

	var globalSum float64
	var globalCount int

	for _, q := range survey.Questions {
		if q.Type != model.QuestionTypeLikert {
			continue
		}
		raw, ok := answers[q.ID]
		if !ok {
			continue
		}
		val, ok := likertValue(raw)
		if !ok {
			continue
		}

		if q.Category != "" {
			if _, seen := counts[q.Category]; !seen {
				order = append(order, q.Category)
			}
			scores[q.Category] += val
			counts[q.Category]++
		}

		globalSum += val
		globalCount++
	}

	for cat, sum := range scores {
		scores[cat] = round1(sum / float64(counts[cat]))
	}

	total := 0.0
	if globalCount > 0 {
		total = round1(globalSum / float64(globalCount))
	}

	return &model.SurveyResult{
		ID:            uuid.New().String(),
		SurveyID:      survey.ID,
		UserID:        userID,
		Timestamp:     now,
		Answers:       answers,
		Scores:        scores,
		CategoryOrder: order,
		TotalScore:    total,
	}
}

// likertValue interprets a raw answer as a Likert number. Numeric strings
// are coerced; anything non-numeric (or NaN) counts as unanswered so it
// cannot corrupt the running averages.
func likertValue(v model.AnswerValue) (float64, bool) {
	if v.IsNumber {
		if math.IsNaN(v.Number) {
			return 0, false
		}
		return v.Number, true
	}
	f, err := strconv.ParseFloat(v.Text, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
