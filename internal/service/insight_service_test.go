package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"psychopulse/internal/config"
	"psychopulse/internal/model"
	"psychopulse/internal/repository"
)

// geminiStub serves a fixed Gemini-shaped response.
func geminiStub(t *testing.T, text string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		if status != http.StatusOK {
			return
		}
		body := map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": text}},
				}},
			},
		}
		json.NewEncoder(w).Encode(body)
	}))
}

func stubbedAgent(url string) *AgentService {
	return NewAgentServiceWithConfig(&config.AIConfig{
		APIKey:    "test-key",
		BaseURL:   url,
		Models:    config.GeminiModels{Insight: "test-model", Extract: "test-model"},
		TimeoutMS: 2000,
	})
}

func disabledAgent() *AgentService {
	return NewAgentServiceWithConfig(&config.AIConfig{
		BaseURL:   "http://localhost:0",
		Models:    config.GeminiModels{Insight: "test-model", Extract: "test-model"},
		TimeoutMS: 100,
	})
}

func seedHistory(t *testing.T, repo *repository.MemoryResultRepo, userID string) {
	t.Helper()
	err := repo.Append(context.Background(), &model.SurveyResult{
		ID:            "r1",
		SurveyID:      "s1",
		UserID:        userID,
		Timestamp:     time.Now(),
		Scores:        map[string]float64{"Agotamiento": 4, "Apoyo": 2},
		CategoryOrder: []string{"Agotamiento", "Apoyo"},
		TotalScore:    3.0,
	})
	require.NoError(t, err)
}

func TestInsightNoHistory(t *testing.T) {
	svc := NewInsightService(repository.NewMemoryResultRepo(), disabledAgent())

	_, err := svc.Generate(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestInsightAgentDisabled(t *testing.T) {
	repo := repository.NewMemoryResultRepo()
	seedHistory(t, repo, "u1")
	svc := NewInsightService(repo, disabledAgent())

	text, err := svc.Generate(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, InsightUnavailable, text)
}

func TestInsightAgentFailure(t *testing.T) {
	server := geminiStub(t, "", http.StatusInternalServerError)
	defer server.Close()

	repo := repository.NewMemoryResultRepo()
	seedHistory(t, repo, "u1")
	svc := NewInsightService(repo, stubbedAgent(server.URL))

	text, err := svc.Generate(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, InsightFallback, text)
}

func TestInsightReturnsAgentText(t *testing.T) {
	server := geminiStub(t, "**Análisis Personal:** Todo en orden.", http.StatusOK)
	defer server.Close()

	repo := repository.NewMemoryResultRepo()
	seedHistory(t, repo, "u1")
	svc := NewInsightService(repo, stubbedAgent(server.URL))

	text, err := svc.Generate(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "**Análisis Personal:** Todo en orden.", text)
}

func TestInsightPromptContents(t *testing.T) {
	history := []*model.SurveyResult{
		{TotalScore: 3.0, Scores: map[string]float64{"Agotamiento": 4}},
		{TotalScore: 3.5, Scores: map[string]float64{"Agotamiento": 5, "Apoyo": 1}},
	}

	prompt := buildInsightPrompt(history, history[1])

	assert.Contains(t, prompt, "3.0 -> 3.5")
	assert.Contains(t, prompt, `"Agotamiento":5`)
	// exhaustion 5, support 1: ((5*1.5)+(6-1))/2.5*20 clamps at 100
	assert.Contains(t, prompt, "100.0")
	assert.Contains(t, prompt, "ESPAÑOL")
}
