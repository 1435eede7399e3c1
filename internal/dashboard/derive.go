// Package dashboard derives display metrics from a user's scored result
// history: the burnout risk index, eNPS, trend line, radar breakdown and
// benchmark comparison. It never mutates the history it reads.
package dashboard

import (
	"math"
	"sort"
	"time"

	"psychopulse/internal/model"
)

const (
	neutralMidpoint = 3.0 // default when no signal category is present
	likertFullMark  = 5.0
	defaultENPS     = 40.0
	defaultBench    = 3.5
	benchmarkLimit  = 5
)

// Fallback lookup chains for the risk signals. First category present in
// the latest scores wins; the neutral midpoint applies when none match.
var (
	exhaustionChain = []string{"Agotamiento", "Carga de Trabajo"}
	supportChain    = []string{"Apoyo", "Liderazgo"}
)

// BurnoutRisk computes the 0-100 burnout risk index from the latest
// category scores. The constants weight exhaustion 1.5x against the
// inverse of support and scale the roughly 1-5 inputs onto 0-100; they
// are part of the observable contract and must not be re-derived.
func BurnoutRisk(scores map[string]float64) float64 {
	exhaustion := lookup(scores, exhaustionChain)
	support := lookup(scores, supportChain)

	risk := ((exhaustion * 1.5) + (6 - support)) / 2.5 * 20
	return clamp(risk, 0, 100)
}

// ClassifyRisk maps a risk index to its display band. Band lower bounds
// are inclusive.
func ClassifyRisk(risk float64) model.RiskLevel {
	switch {
	case risk >= 70:
		return model.RiskHigh
	case risk >= 40:
		return model.RiskModerate
	default:
		return model.RiskHealthy
	}
}

// ENPS maps the 1-5 eNPS category score onto a roughly -10..90 range.
// Missing score defaults to 40.
func ENPS(scores map[string]float64) float64 {
	if s, ok := scores["eNPS"]; ok {
		return s*20 - 10
	}
	return defaultENPS
}

// Trend returns the (timestamp, totalScore) series of the history in
// ascending timestamp order. The input slice is left untouched.
func Trend(history []*model.SurveyResult) []model.TrendPoint {
	ordered := sortedByTimestamp(history)
	points := make([]model.TrendPoint, len(ordered))
	for i, r := range ordered {
		points[i] = model.TrendPoint{Timestamp: r.Timestamp, TotalScore: r.TotalScore}
	}
	return points
}

// Radar returns one axis per category of the latest result, fixed full
// mark of 5.
func Radar(latest *model.SurveyResult) []model.RadarPoint {
	points := make([]model.RadarPoint, 0, len(latest.Scores))
	for _, cat := range categoryOrder(latest) {
		points = append(points, model.RadarPoint{
			Category: cat,
			Value:    latest.Scores[cat],
			FullMark: likertFullMark,
		})
	}
	return points
}

// Benchmarks pairs the first five categories of the latest result against
// the company reference averages. Categories without a benchmark default
// to 3.5.
func Benchmarks(latest *model.SurveyResult, benchmarks map[string]float64) []model.BenchmarkPoint {
	cats := categoryOrder(latest)
	if len(cats) > benchmarkLimit {
		cats = cats[:benchmarkLimit]
	}

	points := make([]model.BenchmarkPoint, 0, len(cats))
	for _, cat := range cats {
		bench, ok := benchmarks[cat]
		if !ok {
			bench = defaultBench
		}
		points = append(points, model.BenchmarkPoint{
			Category:  cat,
			User:      latest.Scores[cat],
			Benchmark: bench,
		})
	}
	return points
}

// Metrics derives the full dashboard from a non-empty result history.
// Returns nil when the history is empty.
func Metrics(history []*model.SurveyResult, benchmarks map[string]float64, now time.Time) *model.DashboardMetrics {
	if len(history) == 0 {
		return nil
	}

	ordered := sortedByTimestamp(history)
	latest := ordered[len(ordered)-1]

	risk := BurnoutRisk(latest.Scores)

	m := &model.DashboardMetrics{
		BurnoutRisk:    risk,
		RiskLevel:      ClassifyRisk(risk),
		WellbeingScore: latest.TotalScore,
		ENPS:           ENPS(latest.Scores),
		Trend:          Trend(ordered),
		Radar:          Radar(latest),
		Benchmarks:     Benchmarks(latest, benchmarks),
		GeneratedAt:    now,
	}

	if len(ordered) > 1 {
		previous := ordered[len(ordered)-2]
		if previous.TotalScore != 0 {
			delta := (latest.TotalScore - previous.TotalScore) / previous.TotalScore * 100
			m.WellbeingDelta = math.Round(delta*10) / 10
		}
		m.HasPrevious = true
	}

	return m
}

func lookup(scores map[string]float64, chain []string) float64 {
	for _, cat := range chain {
		if s, ok := scores[cat]; ok {
			return s
		}
	}
	return neutralMidpoint
}

// categoryOrder prefers the recorded first-appearance order and falls
// back to sorted keys for results seeded without one.
func categoryOrder(r *model.SurveyResult) []string {
	if len(r.CategoryOrder) == len(r.Scores) {
		return r.CategoryOrder
	}
	cats := make([]string, 0, len(r.Scores))
	for cat := range r.Scores {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	return cats
}

// sortedByTimestamp returns a stably ordered copy; ties keep their
// original append order.
func sortedByTimestamp(history []*model.SurveyResult) []*model.SurveyResult {
	ordered := make([]*model.SurveyResult, len(history))
	copy(ordered, history)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})
	return ordered
}

func clamp(x, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, x))
}
