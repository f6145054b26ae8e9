// Package metrics exposes Prometheus metrics for HTTP traffic and validation outcomes.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"webformguard/internal/domain"
)

// unmatchedRoute labels requests that did not match a registered route, so raw
// paths never become label values.
const unmatchedRoute = "unmatched"

// Metrics holds the service collectors and the registry they live in.
type Metrics struct {
	registry    *prometheus.Registry
	reqDuration *prometheus.HistogramVec
	validations *prometheus.CounterVec
}

// New registers the Go runtime and process collectors plus the service collectors in reg.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: reg,
		reqDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "Duration of HTTP requests.",
				// buckets in seconds
				Buckets: []float64{0.01, 0.1, 0.3, 1.2, 5},
			},
			[]string{"route", "method", "status"},
		),
		validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webform_submission_validations_total",
				Help: "Submission validations by outcome.",
			},
			[]string{"outcome"},
		),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.reqDuration,
		m.validations,
	)
	return m
}

// RecordValidation implements domain.ValidationRecorder.
func (m *Metrics) RecordValidation(outcome domain.ValidationOutcome) {
	m.validations.WithLabelValues(string(outcome)).Inc()
}

// HTTPMetrics records request duration into http_request_duration_seconds.
// It must wrap the ServeMux directly: the route label is the mux pattern
// (e.g. "POST /forms/{formID}/submissions/validate"), which the mux sets on the request.
func (m *Metrics) HTTPMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		route := r.Pattern
		if route == "" {
			route = unmatchedRoute
		}
		m.reqDuration.WithLabelValues(
			route,
			r.Method,
			strconv.Itoa(sw.status),
		).Observe(time.Since(start).Seconds())
	})
}

// Handler returns an http.Handler that exposes the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
