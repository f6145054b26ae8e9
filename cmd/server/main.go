package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"

	"webformguard/config"
	_ "webformguard/docs"
	"webformguard/internal/adapters/auth"
	"webformguard/internal/adapters/redact"
	delivery "webformguard/internal/delivery/http"
	"webformguard/internal/delivery/http/controllers"
	"webformguard/internal/domain"
	"webformguard/internal/metrics"
	"webformguard/internal/repository/postgres"
	"webformguard/internal/services"
)

// @title webformguard API
// @version 1.0
// @description Friend-email validation for form submissions.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger(cfg)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := db.PingContext(pingCtx); err != nil {
		// The store may come up after us; /healthz reports it until then.
		logger.Warn("database not reachable at startup", "err", err)
	}
	cancel()

	m := metrics.New(prometheus.NewRegistry())
	submissionRepo := postgres.NewSubmissionRepository(db)
	validator := services.NewSubmissionValidator(
		logger,
		submissionRepo,
		services.NewMessages(cfg.MessageLocale),
		redact.NewEmailHasher(cfg.LogRedactionKey),
		m,
	)

	var verifier domain.TokenVerifier
	if cfg.AuthEnabled() {
		verifier = auth.NewJWTVerifier(cfg.ServiceTokenSecret)
	} else {
		logger.Warn("SERVICE_TOKEN_SECRET not set: validation route is unauthenticated")
	}

	router := delivery.NewRouter(
		delivery.RouterConfig{
			Logger:         logger,
			Verifier:       verifier,
			AllowedOrigins: cfg.AllowedOrigins,
			Metrics:        m,
		},
		controllers.NewSubmissionController(logger, validator),
		controllers.NewHealthController(logger, submissionRepo),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment, "locale", cfg.MessageLocale)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
	logger.Info("server stopped")
}
