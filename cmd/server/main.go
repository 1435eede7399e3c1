package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"psychopulse/internal/cache"
	"psychopulse/internal/config"
	"psychopulse/internal/repository"
	"psychopulse/internal/service"
	"psychopulse/internal/transport/rest"
	"psychopulse/internal/transport/ws"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// AI config
	aiConfig := config.DefaultAIConfig()
	log.Printf("AI Config:")
	log.Printf("  Insight:  %s", aiConfig.Models.Insight)
	log.Printf("  Extract:  %s", aiConfig.Models.Extract)
	if aiConfig.IsEnabled() {
		log.Println("  API Key:  configured")
	} else {
		log.Println("  API Key:  NOT SET (insights fall back to fixed text)")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Repositories
	surveyRepo := repository.NewSurveyRepo(db)
	resultRepo := repository.NewResultRepo(db)
	benchmarkRepo := repository.NewBenchmarkRepo(db)

	// Caches
	dashboardCache := cache.NewDashboardCache(rdb)
	sessionCache := cache.NewSessionCache(rdb)

	// Services
	authSvc := service.NewAuthService()
	agent := service.NewAgentServiceWithConfig(aiConfig)
	surveySvc := service.NewSurveyService(surveyRepo)
	resultSvc := service.NewResultService(resultRepo, dashboardCache)
	sessionSvc := service.NewSessionService(surveyRepo, sessionCache, resultSvc)
	dashboardSvc := service.NewDashboardService(resultRepo, benchmarkRepo, dashboardCache)
	insightSvc := service.NewInsightService(resultRepo, agent)
	extractSvc := service.NewExtractService(surveyRepo, agent)

	// Live dashboard updates on survey completion
	resultSvc.SetBroadcaster(wsHub)

	container := &rest.Container{
		AuthService:      authSvc,
		SurveyService:    surveySvc,
		SessionService:   sessionSvc,
		ResultService:    resultSvc,
		DashboardService: dashboardSvc,
		InsightService:   insightSvc,
		ExtractService:   extractSvc,
		WSHub:            wsHub,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  GET  /v1/surveys")
		log.Println("  POST /v1/surveys/{surveyId}/sessions")
		log.Println("  PUT  /v1/sessions/{sessionId}/answers/{questionId}")
		log.Println("  POST /v1/sessions/{sessionId}/complete")
		log.Println("  GET  /v1/dashboard")
		log.Println("  POST /v1/dashboard/insight")
		log.Println("  POST /v1/surveys/{surveyId}/extract")
		log.Println("  WS   /v1/ws/dashboard")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
