// Package main is the entry point for the Monanji complaint backend server.
// It provides a REST API for citizen complaint submission with per-type
// detail records, protocol-number lookup, status workflow updates by
// investigators, evidence attachments, missing-person search, and
// dashboard statistics.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/delciomanico/Monanji/internal/blob"
	"github.com/delciomanico/Monanji/internal/config"
	"github.com/delciomanico/Monanji/internal/database"
	"github.com/delciomanico/Monanji/internal/handlers"
	"github.com/delciomanico/Monanji/internal/metrics"
	"github.com/delciomanico/Monanji/internal/middleware"
	"github.com/delciomanico/Monanji/internal/models"
	"github.com/delciomanico/Monanji/internal/services"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Initialize structured logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	sugar := logger.Sugar()

	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		sugar.Fatalf("Failed to load config: %v", err)
	}

	sugar.Infow("Starting Monanji server",
		"port", cfg.Port,
		"env", cfg.Environment,
		"blob_driver", cfg.BlobDriver,
	)

	// Initialize database connection pool
	db, err := database.NewPool(cfg.DatabaseURL)
	if err != nil {
		sugar.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Redis is optional; rate limiting and stats caching fall back to
	// in-process implementations without it.
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			sugar.Fatalf("Invalid REDIS_URL: %v", err)
		}
		rdb = redis.NewClient(opts)
		defer rdb.Close()
	}

	// Evidence blob storage (filesystem, S3 or in-memory)
	store, err := blob.Open(context.Background(), cfg)
	if err != nil {
		sugar.Fatalf("Failed to open blob store: %v", err)
	}

	// Initialize services
	authSvc := services.NewAuthService(db, sugar, cfg.JWTSecret,
		time.Duration(cfg.JWTExpiryHours)*time.Hour, cfg.BcryptCost)
	complaintSvc := services.NewComplaintService(db, sugar)
	workflowSvc := services.NewWorkflowService(db, sugar)
	notifySvc := services.NewNotificationService(db, sugar)
	evidenceSvc := services.NewEvidenceService(db, store, sugar, cfg.MaxFileSizeBytes, cfg.APIBaseURL)
	searchSvc := services.NewSearchService(db, sugar)
	statsSvc := services.NewStatsService(db, rdb, sugar)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authSvc, sugar)
	complaintHandler := handlers.NewComplaintHandler(complaintSvc, workflowSvc, notifySvc, sugar)
	evidenceHandler := handlers.NewEvidenceHandler(evidenceSvc, sugar, cfg.MaxFileSizeBytes, cfg.MaxFilesPerComplaint)
	searchHandler := handlers.NewSearchHandler(searchSvc, sugar)
	statsHandler := handlers.NewStatsHandler(statsSvc, sugar)
	notificationHandler := handlers.NewNotificationHandler(notifySvc, sugar)
	healthHandler := handlers.NewHealthHandler(db, rdb, sugar)

	auth := middleware.NewAuth(db, cfg.JWTSecret, sugar)

	// Build router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.SecurityHeaders())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.RateLimit(cfg.RateLimitRPM, rdb, sugar))
	r.Use(metrics.Middleware)

	// API Routes
	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", healthHandler.Check)
		r.Get("/health/ready", healthHandler.Ready)

		// Accounts
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.With(auth.Require).Post("/logout", authHandler.Logout)
			r.With(auth.Require).Get("/me", authHandler.Me)
		})

		// Complaints. "/my" must be registered before the wildcard so
		// it is not swallowed by it. The GET wildcard carries the
		// protocol number, the PUT wildcard the complaint UUID.
		r.Route("/complaints", func(r chi.Router) {
			r.With(auth.Optional).Post("/", complaintHandler.Submit)
			r.With(auth.Require).Get("/my", complaintHandler.My)
			r.With(auth.Optional).Get("/{id}", complaintHandler.Lookup)
			r.With(auth.Require, middleware.RequireRole(models.RoleInvestigator, models.RoleAdmin)).
				Put("/{id}/update", complaintHandler.Update)
		})

		// Evidence
		r.Route("/evidence", func(r chi.Router) {
			r.With(auth.Optional).Post("/complaints/{id}/evidence", evidenceHandler.Upload)
			r.Get("/complaints/{id}/evidence", evidenceHandler.List)
			r.Get("/{id}/download", evidenceHandler.Download)
			r.With(auth.Require).Delete("/{id}", evidenceHandler.Delete)
		})

		// Public missing-person search
		r.Get("/search/missing-persons", searchHandler.MissingPersons)

		// Dashboard statistics (staff only)
		r.With(auth.Require, middleware.RequireRole(models.RoleInvestigator, models.RoleAdmin)).
			Get("/stats/dashboard", statsHandler.Dashboard)

		// Notifications
		r.Route("/notifications", func(r chi.Router) {
			r.Use(auth.Require)
			r.Get("/", notificationHandler.List)
			r.Get("/unread-count", notificationHandler.UnreadCount)
			r.Put("/{id}/read", notificationHandler.MarkRead)
			r.Put("/read-all", notificationHandler.MarkAllRead)
		})
	})

	// Prometheus metrics
	r.Handle("/metrics", metrics.Handler())

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sugar.Infof("Server listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	sugar.Info("Shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		sugar.Fatalf("Forced shutdown: %v", err)
	}

	sugar.Info("Server stopped")
}
