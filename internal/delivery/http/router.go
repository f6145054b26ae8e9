package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"webformguard/internal/delivery/http/controllers"
	"webformguard/internal/delivery/http/middleware"
	"webformguard/internal/domain"
	"webformguard/internal/metrics"
)

// RouterConfig carries what NewRouter needs besides the controllers.
type RouterConfig struct {
	Logger         *slog.Logger
	Verifier       domain.TokenVerifier // nil disables service token auth
	AllowedOrigins []string
	Metrics        *metrics.Metrics
}

// NewRouter initializes the HTTP router with all application routes and wraps it in the middleware chain.
func NewRouter(cfg RouterConfig, submissionController *controllers.SubmissionController, healthController *controllers.HealthController) http.Handler {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(cfg.Verifier, cfg.Logger)

	// API Routes
	mux.HandleFunc("POST /forms/{formID}/submissions/validate", requireAuth(submissionController.ValidateSubmission))

	// Operations
	mux.HandleFunc("GET /healthz", healthController.Health)
	mux.Handle("GET /metrics", cfg.Metrics.Handler())

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	var handler http.Handler = cfg.Metrics.HTTPMetrics(mux)
	handler = middleware.CORS(cfg.AllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(cfg.Logger, handler)
	return middleware.RequestID(handler)
}
