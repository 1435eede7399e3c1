package repository

import (
	"context"
	"errors"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"psychopulse/internal/model"
)

// ErrImmutableHistory is returned on any attempt to rewrite an already
// appended result.
var ErrImmutableHistory = errors.New("result history is append-only")

// MemorySurveyRepo is an in-memory SurveyRepo used by tests and local
// runs without MongoDB.
type MemorySurveyRepo struct {
	mu      sync.RWMutex
	surveys map[string]*model.Survey
}

// NewMemorySurveyRepo creates an empty in-memory survey repository
func NewMemorySurveyRepo() *MemorySurveyRepo {
	return &MemorySurveyRepo{surveys: make(map[string]*model.Survey)}
}

func (r *MemorySurveyRepo) Create(_ context.Context, survey *model.Survey) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if survey.ID == "" {
		survey.ID = primitive.NewObjectID().Hex()
	}
	cp := *survey
	r.surveys[survey.ID] = &cp
	return survey.ID, nil
}

func (r *MemorySurveyRepo) GetByID(_ context.Context, id string) (*model.Survey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	survey, ok := r.surveys[id]
	if !ok {
		return nil, nil
	}
	cp := *survey
	return &cp, nil
}

func (r *MemorySurveyRepo) List(_ context.Context) ([]*model.Survey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	surveys := make([]*model.Survey, 0, len(r.surveys))
	for _, s := range r.surveys {
		cp := *s
		surveys = append(surveys, &cp)
	}
	return surveys, nil
}

func (r *MemorySurveyRepo) Update(_ context.Context, survey *model.Survey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *survey
	r.surveys[survey.ID] = &cp
	return nil
}

func (r *MemorySurveyRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.surveys, id)
	return nil
}

// MemoryResultRepo is an in-memory ResultRepo. Appended results keep
// their insertion order per user, which doubles as the tie-break for
// equal timestamps.
type MemoryResultRepo struct {
	mu      sync.RWMutex
	byUser  map[string][]*model.SurveyResult
	results map[string]*model.SurveyResult
}

// NewMemoryResultRepo creates an empty in-memory result repository
func NewMemoryResultRepo() *MemoryResultRepo {
	return &MemoryResultRepo{
		byUser:  make(map[string][]*model.SurveyResult),
		results: make(map[string]*model.SurveyResult),
	}
}

func (r *MemoryResultRepo) Append(_ context.Context, result *model.SurveyResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.results[result.ID]; exists {
		return ErrImmutableHistory
	}
	cp := *result
	r.results[result.ID] = &cp
	r.byUser[result.UserID] = append(r.byUser[result.UserID], &cp)
	return nil
}

func (r *MemoryResultRepo) GetByID(_ context.Context, id string) (*model.SurveyResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result, ok := r.results[id]
	if !ok {
		return nil, nil
	}
	cp := *result
	return &cp, nil
}

func (r *MemoryResultRepo) GetByUserID(_ context.Context, userID string) ([]*model.SurveyResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	history := r.byUser[userID]
	out := make([]*model.SurveyResult, len(history))
	for i, res := range history {
		cp := *res
		out[i] = &cp
	}
	// Stored in append order; sort ascending by timestamp, stable so
	// same-timestamp results keep their original order.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Timestamp.Before(out[j-1].Timestamp); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out, nil
}

// MemoryBenchmarkRepo is an in-memory BenchmarkRepo
type MemoryBenchmarkRepo struct {
	mu     sync.RWMutex
	values map[string]float64
}

// NewMemoryBenchmarkRepo creates a benchmark repository seeded with the
// given values.
func NewMemoryBenchmarkRepo(values map[string]float64) *MemoryBenchmarkRepo {
	seeded := make(map[string]float64, len(values))
	for k, v := range values {
		seeded[k] = v
	}
	return &MemoryBenchmarkRepo{values: seeded}
}

func (r *MemoryBenchmarkRepo) GetAll(_ context.Context) (map[string]float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]float64, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out, nil
}

func (r *MemoryBenchmarkRepo) Upsert(_ context.Context, category string, value float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[category] = value
	return nil
}
