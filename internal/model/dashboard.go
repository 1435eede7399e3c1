package model

import "time"

// RiskLevel classifies the burnout risk index into display bands
type RiskLevel string

const (
	RiskHealthy  RiskLevel = "Healthy"       // risk < 40
	RiskModerate RiskLevel = "Moderate Risk" // 40 <= risk < 70
	RiskHigh     RiskLevel = "High Risk"     // risk >= 70
)

// TrendPoint is one point of the historical wellbeing line
type TrendPoint struct {
	Timestamp  time.Time `json:"timestamp"`
	TotalScore float64   `json:"totalScore"`
}

// RadarPoint is one axis of the dimensional breakdown chart
type RadarPoint struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
	FullMark float64 `json:"fullMark"`
}

// BenchmarkPoint pairs a user's category score against the company
// reference average
type BenchmarkPoint struct {
	Category  string  `json:"category"`
	User      float64 `json:"user"`
	Benchmark float64 `json:"benchmark"`
}

// DashboardMetrics is everything the wellbeing dashboard displays,
// derived read-only from a user's result history.
type DashboardMetrics struct {
	BurnoutRisk float64   `json:"burnoutRisk"` // 0-100
	RiskLevel   RiskLevel `json:"riskLevel"`

	WellbeingScore float64 `json:"wellbeingScore"` // latest totalScore
	WellbeingDelta float64 `json:"wellbeingDelta"` // % change vs previous result
	HasPrevious    bool    `json:"hasPrevious"`

	ENPS float64 `json:"enps"` // eNPS-like KPI, roughly -10..90

	Trend      []TrendPoint     `json:"trend"`
	Radar      []RadarPoint     `json:"radar"`
	Benchmarks []BenchmarkPoint `json:"benchmarks"`

	GeneratedAt time.Time `json:"generatedAt"`
}
