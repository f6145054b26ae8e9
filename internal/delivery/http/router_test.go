package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"webformguard/internal/adapters/auth"
	"webformguard/internal/delivery/http/controllers"
	"webformguard/internal/delivery/http/helpers"
	"webformguard/internal/delivery/http/middleware"
	"webformguard/internal/domain"
	"webformguard/internal/metrics"
	"webformguard/internal/services"
)

// memoryStore serves a fixed set of submissions.
type memoryStore struct {
	subs []*domain.Submission
}

func (m *memoryStore) ListIDsSharingFriendEmails(ctx context.Context, formID, email string, friendEmails [3]string) ([]string, error) {
	var ids []string
	for _, s := range m.subs {
		if s.FormID != formID || s.Value(domain.FieldEmail) != email {
			continue
		}
		for _, f := range friendEmails {
			if s.HasFriendEmail(f) {
				ids = append(ids, s.ID)
				break
			}
		}
	}
	return ids, nil
}

func (m *memoryStore) GetMultiple(ctx context.Context, ids []string) ([]*domain.Submission, error) {
	var out []*domain.Submission
	for _, s := range m.subs {
		for _, id := range ids {
			if s.ID == id {
				out = append(out, s)
			}
		}
	}
	return out, nil
}

func (m *memoryStore) Ping(ctx context.Context) error { return nil }

type hashRedactor struct{}

func (hashRedactor) Hash(email string) string { return "redacted" }

func newTestRouter(t *testing.T, secret string) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := &memoryStore{subs: []*domain.Submission{
		domain.NewSubmission("10", "ef5", map[string]string{
			"email": "a@x.com", "email_amigo_1": "b@x.com", "email_amigo_2": "e@x.com", "email_amigo_3": "f@x.com",
		}),
	}}
	m := metrics.New(prometheus.NewRegistry())
	validator := services.NewSubmissionValidator(logger, store, services.NewMessages("en"), hashRedactor{}, m)

	var verifier domain.TokenVerifier
	if secret != "" {
		verifier = auth.NewJWTVerifier(secret)
	}
	return NewRouter(
		RouterConfig{Logger: logger, Verifier: verifier, Metrics: m},
		controllers.NewSubmissionController(logger, validator),
		controllers.NewHealthController(logger, store),
	)
}

func TestRouter_ValidateEndToEnd(t *testing.T) {
	router := newTestRouter(t, "")

	body := `{"data":{"email":"a@x.com","email_amigo_1":"c@x.com","email_amigo_2":"b@x.com","email_amigo_3":"d@x.com"}}`
	req := httptest.NewRequest(http.MethodPost, "/forms/ef5/submissions/validate", strings.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotEmpty(t, rr.Header().Get(middleware.RequestIDHeader))
	var resp struct {
		Data controllers.ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.False(t, resp.Data.Valid)
	require.Len(t, resp.Data.Errors, 1)
	require.Equal(t, domain.FieldFriendEmail2, resp.Data.Errors[0].Field)

	metricsRR := httptest.NewRecorder()
	router.ServeHTTP(metricsRR, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, metricsRR.Code)
	require.Contains(t, metricsRR.Body.String(), `webform_submission_validations_total{outcome="friend_email_reused"} 1`)
}

func TestRouter_RequiresServiceToken(t *testing.T) {
	const secret = "router-secret"
	router := newTestRouter(t, secret)
	token, err := auth.NewJWTIssuer(secret).Issue("cms-1", nil, time.Minute)
	require.NoError(t, err)

	body := `{"data":{"email":"a@x.com","email_amigo_1":"x@x.com","email_amigo_2":"y@x.com","email_amigo_3":"z@x.com"}}`

	req := httptest.NewRequest(http.MethodPost, "/forms/ef5/submissions/validate", strings.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	var envelope helpers.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	require.Equal(t, helpers.ErrCodeUnauthorized, envelope.Error.Code)

	req = httptest.NewRequest(http.MethodPost, "/forms/ef5/submissions/validate", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"valid":true`)
}

func TestRouter_HealthAndUnknownRoutes(t *testing.T) {
	router := newTestRouter(t, "secret")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/forms/ef5/submissions/validate", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
