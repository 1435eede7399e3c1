package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"psychopulse/internal/config"
)

// ErrAgentUnavailable is returned when the AI API key is not configured.
// Callers branch on it deterministically instead of catching failures.
var ErrAgentUnavailable = errors.New("ai agent not configured")

// AgentService is the raw Gemini API client. One attempt per call, no
// retry or de-duplication; the HTTP client timeout is the only bound.
type AgentService struct {
	config *config.AIConfig
	client *http.Client
}

// NewAgentService creates an agent service from the default AI config
func NewAgentService() *AgentService {
	return NewAgentServiceWithConfig(config.DefaultAIConfig())
}

// NewAgentServiceWithConfig creates an agent service with an explicit
// config, used by tests.
func NewAgentServiceWithConfig(cfg *config.AIConfig) *AgentService {
	return &AgentService{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// IsEnabled reports whether an API key is configured
func (s *AgentService) IsEnabled() bool {
	return s.config.IsEnabled()
}

// GenerateText sends a text prompt to the insight model and returns the
// free-form response.
func (s *AgentService) GenerateText(ctx context.Context, prompt string) (string, error) {
	if !s.config.IsEnabled() {
		return "", ErrAgentUnavailable
	}
	parts := []map[string]interface{}{
		{"text": prompt},
	}
	return s.callGemini(ctx, s.config.Models.Insight, parts, false)
}

// ExtractFromImage sends an inline image plus prompt to the vision model
// and returns its JSON response text.
func (s *AgentService) ExtractFromImage(ctx context.Context, base64Image, mimeType, prompt string) (string, error) {
	if !s.config.IsEnabled() {
		return "", ErrAgentUnavailable
	}
	parts := []map[string]interface{}{
		{"inlineData": map[string]string{"mimeType": mimeType, "data": base64Image}},
		{"text": prompt},
	}
	return s.callGemini(ctx, s.config.Models.Extract, parts, true)
}

// callGemini makes a request to the Gemini API
func (s *AgentService) callGemini(ctx context.Context, modelName string, parts []map[string]interface{}, jsonResponse bool) (string, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": parts},
		},
	}
	if jsonResponse {
		reqBody["generationConfig"] = map[string]interface{}{
			"responseMimeType": "application/json",
		}
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", s.config.ModelEndpoint(modelName), s.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API returned status %d: %s", resp.StatusCode, string(body))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", err
	}
	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty response from gemini")
	}

	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}
