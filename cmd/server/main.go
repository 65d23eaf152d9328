package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	httpapi "rentalincome-backend/internal/api/http"
	"rentalincome-backend/internal/config"
	"rentalincome-backend/internal/jobs"
	"rentalincome-backend/internal/logger"
	"rentalincome-backend/internal/mailparse"
	"rentalincome-backend/internal/repository/postgres"
	"rentalincome-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting rental income backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Services
	emailSvc := service.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)
	resolver := service.NewApartmentResolver(store.ApartmentRepository)
	classifier := mailparse.NewClassifier(cfg.Ingest.WebDomains)
	ingestSvc := service.NewIngestService(
		store.IncomeRepository,
		resolver,
		classifier,
		time.Duration(cfg.Ingest.ProcessTimeoutSeconds)*time.Second,
	)
	incomeSvc := service.NewIncomeService(store.IncomeRepository)

	// Job runner backs the manual reconciliation trigger
	jobRunner := jobs.NewJobRunner(store.IncomeRepository, emailSvc, cfg)

	// Initialize Handlers
	webhookHandler := httpapi.NewWebhookHandler(ingestSvc)
	incomeHandler := httpapi.NewIncomeHandler(incomeSvc, jobRunner)

	// Routes
	r := mux.NewRouter()
	r.HandleFunc("/webhooks/email/reservation", webhookHandler.HandleReservationEmail).Methods("POST")
	r.HandleFunc("/webhooks/email/manual", webhookHandler.HandleManualEmail).Methods("POST")
	r.HandleFunc("/api/v1/incomes", incomeHandler.HandleListIncomes).Methods("GET")
	r.HandleFunc("/api/v1/incomes/{id}", incomeHandler.HandleGetIncome).Methods("GET")
	r.HandleFunc("/api/v1/reconcile", incomeHandler.HandleReconcile).Methods("POST")
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
