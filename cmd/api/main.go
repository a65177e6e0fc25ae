package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"candidate-pipeline-backend/config"
	_ "candidate-pipeline-backend/docs" // Important for Swagger
	v1 "candidate-pipeline-backend/internal/delivery/http/v1"
	"candidate-pipeline-backend/internal/repository/postgres"
	"candidate-pipeline-backend/internal/usecase"
	"candidate-pipeline-backend/pkg/database"
	"candidate-pipeline-backend/pkg/email"
	"candidate-pipeline-backend/pkg/filestore"
	"candidate-pipeline-backend/pkg/logger"
	"candidate-pipeline-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// @title           Candidate Pipeline API
// @version         1.0
// @description     Recruitment-pipeline tracking backend: candidate submissions, interview scheduling, notifications.
// @host            localhost:8080
// @BasePath        /
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting candidate pipeline backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.Connect(context.Background(), cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Repository and supporting services
	candidateRepo := postgres.NewCandidateRepository(dbPool)
	resumeStore := filestore.New(cfg.ResumeUploadDir)

	mailer := email.NewMailer(cfg)
	if !mailer.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - interview notifications will fail")
	}

	// 5. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)

	candidateUC := usecase.NewCandidateUsecase(candidateRepo, resumeStore, validate, cfg.MaxResumeSizeMB)
	interviewUC := usecase.NewInterviewUsecase(candidateRepo, mailer)

	// 6. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		CandidateUC: candidateUC,
		InterviewUC: interviewUC,
		Config:      cfg,
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
