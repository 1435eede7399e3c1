package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"psychopulse/internal/service"
)

// ExtractHandler handles photo answer-extraction endpoints
type ExtractHandler struct {
	extractSvc *service.ExtractService
}

// NewExtractHandler creates a new extract handler
func NewExtractHandler(extractSvc *service.ExtractService) *ExtractHandler {
	return &ExtractHandler{extractSvc: extractSvc}
}

// ExtractRequest carries the photographed survey page
type ExtractRequest struct {
	Image    string `json:"image"` // base64, no data: prefix
	MimeType string `json:"mimeType"`
}

// Extract handles POST /v1/surveys/{surveyId}/extract. On success the
// client starts a session pre-filled with the returned answers; on a
// soft failure the user is told to retry with a clearer photo and no
// session is started.
func (h *ExtractHandler) Extract(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Image == "" {
		writeError(w, http.StatusBadRequest, "image is required")
		return
	}
	if req.MimeType == "" {
		req.MimeType = "image/jpeg"
	}

	answers, err := h.extractSvc.Extract(r.Context(), surveyID, req.Image, req.MimeType)
	switch {
	case errors.Is(err, service.ErrSurveyNotFound):
		writeError(w, http.StatusNotFound, "survey not found")
	case errors.Is(err, service.ErrAgentUnavailable):
		writeError(w, http.StatusServiceUnavailable, "extracción por IA no disponible")
	case errors.Is(err, service.ErrNoAnswersDetected):
		writeError(w, http.StatusUnprocessableEntity,
			"No se pudieron detectar respuestas en la imagen. Intenta con una foto más clara.")
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, map[string]interface{}{"answers": answers})
	}
}
