// Command seed loads the demo survey catalog, company benchmarks and six
// months of demo result history into MongoDB.
package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"psychopulse/internal/config"
	"psychopulse/internal/model"
	"psychopulse/internal/repository"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)
	surveyRepo := repository.NewSurveyRepo(db)
	resultRepo := repository.NewResultRepo(db)
	benchmarkRepo := repository.NewBenchmarkRepo(db)

	for _, survey := range demoSurveys() {
		if _, err := surveyRepo.Create(ctx, survey); err != nil {
			log.Fatalf("seed survey %q: %v", survey.Title, err)
		}
		log.Printf("seeded survey %s (%s)", survey.ID, survey.Title)
	}

	for category, value := range demoBenchmarks() {
		if err := benchmarkRepo.Upsert(ctx, category, value); err != nil {
			log.Fatalf("seed benchmark %q: %v", category, err)
		}
	}
	log.Println("seeded benchmarks")

	demoUser := os.Getenv("DEMO_USER_ID")
	if demoUser == "" {
		demoUser = "user_1"
	}
	for _, result := range demoHistory(demoUser) {
		if err := resultRepo.Append(ctx, result); err != nil {
			log.Fatalf("seed history: %v", err)
		}
	}
	log.Printf("seeded 6 months of history for %s", demoUser)
}

func demoSurveys() []*model.Survey {
	return []*model.Survey{
		{
			ID:          "s1",
			Title:       "Estrés Laboral y Clima (General)",
			Description: "Evaluación mensual estándar para medir los niveles de estrés y la percepción del clima organizacional.",
			Questions: []model.Question{
				{ID: "q1", Text: "Me siento abrumado por mi carga de trabajo actual.", Type: model.QuestionTypeLikert, Category: "Carga de Trabajo"},
				{ID: "q2", Text: "Tengo autonomía para decidir cómo realizar mi trabajo.", Type: model.QuestionTypeLikert, Category: "Autonomía"},
				{ID: "q3", Text: "Mi supervisor directo demuestra interés por mi bienestar.", Type: model.QuestionTypeLikert, Category: "Liderazgo"},
				{ID: "q4", Text: "Siento que mi trabajo es valorado y reconocido.", Type: model.QuestionTypeLikert, Category: "Reconocimiento"},
				{ID: "q5", Text: "El ambiente entre compañeros es de colaboración y confianza.", Type: model.QuestionTypeLikert, Category: "Clima Social"},
				{ID: "q6", Text: "¿Recomendarías esta empresa como un buen lugar para trabajar?", Type: model.QuestionTypeLikert, Category: "eNPS"},
				{ID: "q7", Text: "Comentarios abiertos sobre el clima laboral:", Type: model.QuestionTypeText},
			},
		},
		{
			ID:          "s2",
			Title:       "Inventario de Riesgo de Burnout",
			Description: "Detección temprana de agotamiento emocional, despersonalización y falta de realización personal.",
			Questions: []model.Question{
				{ID: "b1", Text: "Me siento emocionalmente agotado por mi trabajo.", Type: model.QuestionTypeLikert, Category: "Agotamiento"},
				{ID: "b2", Text: "Me siento cansado cuando me levanto por la mañana y tengo que ir a trabajar.", Type: model.QuestionTypeLikert, Category: "Agotamiento"},
				{ID: "b3", Text: "Siento que me estoy volviendo más cínico respecto a la utilidad de mi trabajo.", Type: model.QuestionTypeLikert, Category: "Cinismo"},
				{ID: "b4", Text: "Siento que estoy logrando muchas cosas valiosas en este trabajo.", Type: model.QuestionTypeLikert, Category: "Realización"},
				{ID: "b5", Text: "Siento que tengo demasiadas cosas que hacer y poco tiempo.", Type: model.QuestionTypeLikert, Category: "Presión Temporal"},
				{ID: "b6", Text: "¿Has experimentado síntomas físicos (dolor de cabeza, insomnio) por el trabajo?", Type: model.QuestionTypeMultipleChoice, Options: []string{"Nunca", "A veces", "Frecuentemente", "Siempre"}},
			},
		},
		{
			ID:          "s3",
			Title:       "Bienestar en Trabajo Remoto/Híbrido",
			Description: "Evaluación de ergonomía, desconexión digital y aislamiento en modalidades de teletrabajo.",
			Questions: []model.Question{
				{ID: "r1", Text: "Tengo un espacio físico adecuado y ergonómico para trabajar en casa.", Type: model.QuestionTypeLikert, Category: "Ergonomía"},
				{ID: "r2", Text: "Logro desconectarme digitalmente al terminar mi jornada laboral.", Type: model.QuestionTypeLikert, Category: "Desconexión"},
				{ID: "r3", Text: "Me siento aislado o desconectado de mi equipo.", Type: model.QuestionTypeLikert, Category: "Aislamiento"},
				{ID: "r4", Text: "Las herramientas digitales que usamos facilitan mi trabajo en lugar de entorpecerlo.", Type: model.QuestionTypeLikert, Category: "Herramientas"},
				{ID: "r5", Text: "Siento que mi carrera profesional avanza igual que si estuviera en la oficina.", Type: model.QuestionTypeLikert, Category: "Desarrollo"},
			},
		},
	}
}

func demoBenchmarks() map[string]float64 {
	return map[string]float64{
		"Carga de Trabajo": 3.2,
		"Autonomía":        3.8,
		"Liderazgo":        3.5,
		"Reconocimiento":   3.0,
		"Clima Social":     4.2,
		"eNPS":             3.9,
		"Agotamiento":      2.5,
		"Cinismo":          2.0,
		"Realización":      4.0,
	}
}

// demoHistory fabricates six monthly results that improve slightly and
// then dip, so the demo dashboard has something worth analyzing.
func demoHistory(userID string) []*model.SurveyResult {
	rng := rand.New(rand.NewSource(42))
	order := []string{"Carga de Trabajo", "Autonomía", "Liderazgo", "Reconocimiento", "Clima Social", "eNPS"}

	var history []*model.SurveyResult
	now := time.Now()

	for i := 5; i >= 0; i-- {
		factor := -0.2
		if i > 2 {
			factor = 0.5
		}

		scores := map[string]float64{
			"Carga de Trabajo": likert(3+rng.Float64()+factor),
			"Autonomía":        likert(3.5 + rng.Float64()),
			"Liderazgo":        likert(4 + rng.Float64()*0.5),
			"Reconocimiento":   likert(2.5 + rng.Float64()),
			"Clima Social":     likert(4 + rng.Float64()),
			"eNPS":             likert(3 + rng.Float64()),
		}

		total := 0.0
		for _, cat := range order {
			total += scores[cat]
		}
		total = math.Round(total/float64(len(order))*10) / 10

		history = append(history, &model.SurveyResult{
			ID:            fmt.Sprintf("hist_%d", i),
			SurveyID:      "s1",
			UserID:        userID,
			Timestamp:     now.AddDate(0, -i, 0),
			Answers:       model.AnswerSet{},
			Scores:        scores,
			CategoryOrder: order,
			TotalScore:    total,
		})
	}
	return history
}

// likert clamps onto the 1-5 scale, one decimal place
func likert(x float64) float64 {
	x = math.Min(5, math.Max(1, x))
	return math.Round(x*10) / 10
}
