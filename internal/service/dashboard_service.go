package service

import (
	"context"
	"log"
	"time"

	"psychopulse/internal/cache"
	"psychopulse/internal/dashboard"
	"psychopulse/internal/model"
	"psychopulse/internal/repository"
)

// DashboardService serves derived wellbeing metrics, caching them per
// user until the next survey completion invalidates them.
type DashboardService struct {
	resultRepo     repository.ResultRepo
	benchmarkRepo  repository.BenchmarkRepo
	dashboardCache cache.DashboardCache
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(resultRepo repository.ResultRepo, benchmarkRepo repository.BenchmarkRepo, dashboardCache cache.DashboardCache) *DashboardService {
	return &DashboardService{
		resultRepo:     resultRepo,
		benchmarkRepo:  benchmarkRepo,
		dashboardCache: dashboardCache,
	}
}

// Metrics returns the user's dashboard, deriving and caching it on miss.
// A cache failure falls through to a fresh derivation.
func (s *DashboardService) Metrics(ctx context.Context, userID string) (*model.DashboardMetrics, error) {
	cached, err := s.dashboardCache.Get(ctx, userID)
	if err != nil {
		log.Printf("dashboard cache read failed for %s: %v", userID, err)
	}
	if cached != nil {
		return cached, nil
	}

	history, err := s.resultRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, ErrNoResults
	}

	benchmarks, err := s.benchmarkRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	metrics := dashboard.Metrics(history, benchmarks, time.Now())

	if err := s.dashboardCache.Set(ctx, userID, metrics); err != nil {
		log.Printf("dashboard cache write failed for %s: %v", userID, err)
	}
	return metrics, nil
}
