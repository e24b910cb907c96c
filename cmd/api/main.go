package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lunarai-web/config"
	_ "lunarai-web/docs" // Important for Swagger
	"lunarai-web/internal/content"
	v1 "lunarai-web/internal/delivery/http/v1"
	"lunarai-web/internal/domain"
	"lunarai-web/internal/repository/postgres"
	"lunarai-web/internal/usecase"
	"lunarai-web/pkg/database"
	"lunarai-web/pkg/email"
	"lunarai-web/pkg/eventlog"
	"lunarai-web/pkg/functions"
	"lunarai-web/pkg/logger"
	"lunarai-web/pkg/metrics"
	"lunarai-web/pkg/redis"
	"lunarai-web/pkg/validation"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const serviceName = "lunarai-web"

// @title           LunarAI Web API
// @version         1.0
// @description     Landing site content and contact form for the LunarAI agency.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting LunarAI web", "port", cfg.Port, "dispatcher", cfg.ContactDispatcher)

	events := eventlog.New(serviceName, cfg.Environment())
	defer func() { _ = events.Sync() }()

	// 3. Optional Database (operator events only)
	var dbPool *pgxpool.Pool
	if cfg.DBUrl != "" {
		dbPool, err = database.NewPostgresConnection(context.Background(), cfg.DBUrl)
		if err != nil {
			logger.Log.Warn("Database unavailable, operator events will only be logged", "error", err)
			dbPool = nil
		} else {
			defer dbPool.Close()
			if cfg.EventLogToDB {
				events.SetPersistFunc(postgres.NewEventRepository(dbPool).PersistFunc())
			}
		}
	}

	// 4. Optional Redis (rate limiting)
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, rate limiting falls back to memory", "error", err)
		} else {
			defer func() { _ = redis.Close() }()
		}
	}

	// 5. Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	contactMetrics := metrics.NewContactMetrics(registry)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	// 6. Site content
	site, err := content.Load(cfg.SiteContentFile)
	if err != nil {
		logger.Log.Error("Failed to load site content", "file", cfg.SiteContentFile, "error", err)
		os.Exit(1)
	}

	// 7. Setup UseCases
	contactUC := usecase.NewContactUsecase(usecase.ContactDeps{
		Validator:       validation.NewFormValidator(),
		Dispatcher:      newDispatcher(cfg),
		DispatcherName:  cfg.ContactDispatcher,
		DispatchTimeout: cfg.DispatchTimeout,
		Events:          events,
		Metrics:         contactMetrics,
	})
	siteUC := usecase.NewSiteUsecase(site)

	checks := map[string]usecase.HealthCheck{"redis": nil, "database": nil}
	if redis.Client() != nil {
		checks["redis"] = redis.HealthCheck
	}
	if dbPool != nil {
		checks["database"] = dbPool.Ping
	}
	healthUC := usecase.NewHealthUsecase(checks)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC:   contactUC,
		SiteUC:      siteUC,
		HealthUC:    healthUC,
		Config:      cfg,
		Redis:       redis.Client(),
		Events:      events,
		HTTPMetrics: httpMetrics,
		Gatherer:    registry,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
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

// newDispatcher builds the mail-dispatch collaborator named by CONTACT_DISPATCHER.
// config.Validate has already rejected unknown names.
func newDispatcher(cfg *config.Config) domain.ContactDispatcher {
	switch cfg.ContactDispatcher {
	case config.DispatcherSMTP:
		return email.NewSMTPDispatcher(email.SMTPConfig{
			Host:      cfg.SMTPHost,
			Port:      cfg.SMTPPort,
			Username:  cfg.SMTPUsername,
			Password:  cfg.SMTPPassword,
			FromEmail: cfg.SMTPFromEmail,
			ToEmail:   cfg.ContactEmailTo,
			Timeout:   cfg.DispatchTimeout,
		})
	case config.DispatcherSendGrid:
		return email.NewSendGridDispatcher(email.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SMTPFromEmail,
			ToEmail:   cfg.ContactEmailTo,
		})
	default:
		return functions.NewContactDispatcher(functions.NewClient(functions.Config{
			BaseURL:      cfg.FunctionsURL,
			AnonKey:      cfg.FunctionsAnonKey,
			FunctionName: cfg.ContactFunctionName,
		}))
	}
}
