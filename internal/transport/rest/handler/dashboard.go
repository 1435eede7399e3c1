package handler

import (
	"errors"
	"net/http"

	"psychopulse/internal/service"
	"psychopulse/internal/transport/rest/middleware"
)

// DashboardHandler handles dashboard and insight endpoints
type DashboardHandler struct {
	dashboardSvc *service.DashboardService
	insightSvc   *service.InsightService
	resultSvc    *service.ResultService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardSvc *service.DashboardService, insightSvc *service.InsightService, resultSvc *service.ResultService) *DashboardHandler {
	return &DashboardHandler{
		dashboardSvc: dashboardSvc,
		insightSvc:   insightSvc,
		resultSvc:    resultSvc,
	}
}

// Metrics handles GET /v1/dashboard
func (h *DashboardHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	metrics, err := h.dashboardSvc.Metrics(r.Context(), userID)
	if errors.Is(err, service.ErrNoResults) {
		writeError(w, http.StatusNotFound, "no survey results yet")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, metrics)
}

// GenerateInsight handles POST /v1/dashboard/insight. The response is
// always displayable text; AI unavailability yields the fixed fallback.
func (h *DashboardHandler) GenerateInsight(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	insight, err := h.insightSvc.Generate(r.Context(), userID)
	if errors.Is(err, service.ErrNoResults) {
		writeError(w, http.StatusNotFound, "no survey results yet")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"insight": insight})
}

// History handles GET /v1/results
func (h *DashboardHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	results, err := h.resultSvc.History(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}
