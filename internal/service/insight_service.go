package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"psychopulse/internal/dashboard"
	"psychopulse/internal/model"
	"psychopulse/internal/repository"
)

// ErrNoResults is returned when a user has no completed surveys yet
var ErrNoResults = errors.New("no survey results for user")

// Fallback texts shown instead of an AI response. They are fixed
// strings: insight generation never fails survey completion or
// dashboard rendering.
const (
	InsightUnavailable = "Insights de IA no disponibles. Configura tu API_KEY."
	InsightFallback    = "El Agente de IA está analizando patrones complejos... Intenta nuevamente."
)

// InsightService generates the free-text wellbeing report from a user's
// scored history.
type InsightService struct {
	resultRepo repository.ResultRepo
	agent      *AgentService
}

// NewInsightService creates a new insight service
func NewInsightService(resultRepo repository.ResultRepo, agent *AgentService) *InsightService {
	return &InsightService{
		resultRepo: resultRepo,
		agent:      agent,
	}
}

// Generate builds the analysis prompt from the latest and historical
// scores and asks the agent for a report. It always returns displayable
// text: agent unavailability or failure yields the fixed fallbacks.
func (s *InsightService) Generate(ctx context.Context, userID string) (string, error) {
	history, err := s.resultRepo.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(history) == 0 {
		return "", ErrNoResults
	}

	latest := history[len(history)-1]
	prompt := buildInsightPrompt(history, latest)

	text, err := s.agent.GenerateText(ctx, prompt)
	if errors.Is(err, ErrAgentUnavailable) {
		return InsightUnavailable, nil
	}
	if err != nil || text == "" {
		return InsightFallback, nil
	}
	return text, nil
}

// buildInsightPrompt embeds the latest category scores and the
// historical total trend into the HR-consultant prompt. Response: three
// labeled Markdown sections in Spanish, under 150 words.
func buildInsightPrompt(history []*model.SurveyResult, latest *model.SurveyResult) string {
	scores, _ := json.Marshal(latest.Scores)

	totals := make([]string, len(history))
	for i, r := range history {
		totals[i] = strconv.FormatFloat(r.TotalScore, 'f', 1, 64)
	}

	risk := dashboard.BurnoutRisk(latest.Scores)

	return fmt.Sprintf(`Eres un consultor de Recursos Humanos y Psicólogo Organizacional Senior (Agente IA).
Analiza los datos del usuario.

Puntajes actuales (1-5): %s
Tendencia (Total histórico): %s
Índice de riesgo de burnout (0-100): %.1f

Genera una respuesta con 3 secciones claras en ESPAÑOL, formateadas en Markdown simple:

1. **Análisis Personal:** Breve estado del bienestar del empleado (tono empático).
2. **Riesgos Latentes:** ¿Hay peligro de burnout o rotación basado en los datos?
3. **Recomendación Estratégica:** Un consejo accionable para que el empleado mejore su situación hoy mismo.

Mantén el texto total bajo 150 palabras. Sé directo y profesional.`,
		scores, strings.Join(totals, " -> "), risk)
}
