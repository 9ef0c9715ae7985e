package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ametsa/advisor-service/internal/advisor"
	"github.com/ametsa/advisor-service/internal/analyzer"
	"github.com/ametsa/advisor-service/internal/config"
	"github.com/ametsa/advisor-service/internal/forecast"
	"github.com/ametsa/advisor-service/internal/handler"
	"github.com/ametsa/advisor-service/internal/integrations/transactions"
	"github.com/ametsa/advisor-service/internal/middleware"
	"github.com/ametsa/advisor-service/internal/savings"
)

func main() {
	// Local development overrides; missing file is fine.
	_ = godotenv.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize clients and engines
	feed := transactions.NewClient(cfg, logger)
	an := analyzer.NewAnalyzer(cfg, logger)
	rec := savings.NewRecommender(cfg, logger)
	fc := forecast.NewService(cfg, logger)
	adv := advisor.New(cfg, logger)
	if adv.Available() {
		logger.Infof("OpenAI advisor enabled with model %s", cfg.OpenAIModel)
	} else {
		logger.Info("OpenAI advisor disabled, using rule-based fallback")
	}

	h := handler.NewHandler(cfg, logger, feed, an, rec, fc, adv)

	// Setup router
	r := mux.NewRouter()
	r.HandleFunc("/health", h.Health).Methods("GET")

	// Protected routes
	authRouter := r.PathPrefix("/api/advisor").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/spending-analysis", h.SpendingAnalysis).Methods("GET")
	authRouter.HandleFunc("/savings-capacity", h.SavingsCapacity).Methods("GET")
	authRouter.HandleFunc("/goal-recommendation", h.GoalRecommendation).Methods("POST")
	authRouter.HandleFunc("/insights", h.Insights).Methods("GET")
	authRouter.HandleFunc("/ai-insights", h.AIInsights).Methods("GET")
	authRouter.HandleFunc("/ai-goal-advice", h.AIGoalAdvice).Methods("POST")
	authRouter.HandleFunc("/forecast", h.Forecast).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:        addr,
		Handler:     r,
		ReadTimeout: 10 * time.Second,
		// Requests may wait on the core service and OpenAI back to back.
		WriteTimeout: 90 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
