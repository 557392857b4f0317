package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"gugudan/internal/config"
	"gugudan/internal/database"
	"gugudan/internal/handlers"
	"gugudan/internal/repository"
	"gugudan/internal/scheduler"
	"gugudan/internal/security"
	"gugudan/internal/service"
	"gugudan/internal/store"
	"gugudan/internal/validation"
)

func main() {
	// Load configuration
	cfg := config.Load()
	ctx := context.Background()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	kv := store.NewSQLStore(db)

	// Initialize repositories
	settingsRepo := repository.NewSettingsRepository(kv)
	resultRepo := repository.NewResultRepository(kv)
	statsRepo := repository.NewStatsRepository(kv)
	rewardRepo := repository.NewRewardRepository(kv)
	sessionRepo := repository.NewSessionRepository(kv)
	dailyRepo := repository.NewDailyRepository(kv, cfg.Location)

	// Initialize services
	settingsService := service.NewSettingsService(ctx, settingsRepo)
	rewardService := service.NewRewardService(rewardRepo)
	quizService := service.NewQuizService(service.QuizDeps{
		Settings: settingsService,
		Rewards:  rewardService,
		Stats:    statsRepo,
		Results:  resultRepo,
		Sessions: sessionRepo,
		Daily:    dailyRepo,
	})
	homeService := service.NewHomeService(dailyRepo, rewardService, quizService, settingsService)
	resetService := service.NewResetService(kv, settingsService, quizService)

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.ParentEmail, cfg.Location, cfg.Debug)
	if err != nil {
		log.Printf("Warning: Failed to initialize email service: %v", err)
	} else if emailService.IsEnabled() {
		quizService.AddNotifier(emailService)
		log.Printf("Session reports will be e-mailed to %s", cfg.ParentEmail)
	}

	// Parent gate
	if err := validation.ValidatePIN(cfg.ParentPIN); err != nil {
		log.Fatalf("Invalid PARENT_PIN: %v", err)
	}
	pinChecker, err := security.NewPINChecker(cfg.ParentPIN)
	if err != nil {
		log.Fatalf("Failed to prepare parent PIN: %v", err)
	}
	if cfg.ParentPIN == "0000" {
		log.Println("Warning: PARENT_PIN is the default, set it in .env")
	}
	parentTokens := security.NewParentTokens(cfg.ParentTokenSecret, cfg.ParentTokenTTL)
	unlockLimiter := security.NewRateLimiter(5, time.Minute)
	defer unlockLimiter.Stop()

	// Start background session sweep
	sched := scheduler.New(quizService, cfg.Location)
	if err := sched.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Initialize handlers and routes
	mux := http.NewServeMux()
	handlers.Handlers{
		Kid:           handlers.NewKidHandler(homeService, settingsService, rewardService, resultRepo),
		Quiz:          handlers.NewQuizHandler(quizService),
		Parent:        handlers.NewParentHandler(pinChecker, parentTokens, settingsService, resetService, resultRepo, statsRepo, cfg.Location),
		Middleware:    handlers.NewMiddleware(parentTokens, cfg.Debug),
		UnlockLimiter: unlockLimiter,
	}.Register(mux)

	// The UI is served from its own origin
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "Accept", "Origin"},
		ExposedHeaders: []string{"Content-Disposition", "Retry-After"},
		MaxAge:         86400,
	}).Handler(mux)

	// Wrap with logging middleware
	handler := handlers.Logging(corsHandler)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
