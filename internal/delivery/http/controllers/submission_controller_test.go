package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"webformguard/internal/delivery/http/helpers"
	"webformguard/internal/domain"
)

type mockSubmissionValidator struct {
	errs *domain.ValidationErrors
	err  error
	got  *domain.Submission
}

func (m *mockSubmissionValidator) Validate(ctx context.Context, sub *domain.Submission) (*domain.ValidationErrors, error) {
	m.got = sub
	if m.err != nil {
		return nil, m.err
	}
	if m.errs == nil {
		return &domain.ValidationErrors{}, nil
	}
	return m.errs, nil
}

type validateResponse struct {
	Data  *ValidationResult `json:"data"`
	Error *helpers.APIError `json:"error"`
}

func newValidateRequest(formID, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/forms/"+formID+"/submissions/validate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("formID", formID)
	return req
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestSubmissionController_ValidateSubmission_Accepted(t *testing.T) {
	svc := &mockSubmissionValidator{}
	ctrl := NewSubmissionController(testLogger(), svc)

	body := `{"submission_id":"","data":{"email":"a@x.com","email_amigo_1":"b@x.com","email_amigo_2":"c@x.com","email_amigo_3":"d@x.com"}}`
	w := httptest.NewRecorder()
	ctrl.ValidateSubmission(w, newValidateRequest("ef5", body))

	require.Equal(t, http.StatusOK, w.Code)
	var resp validateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Nil(t, resp.Error)
	require.True(t, resp.Data.Valid)
	require.Empty(t, resp.Data.Errors)
	require.Contains(t, w.Body.String(), `"errors":[]`)

	require.Equal(t, "ef5", svc.got.FormID)
	require.Equal(t, "", svc.got.ID)
	require.Equal(t, "c@x.com", svc.got.Value(domain.FieldFriendEmail2))
}

func TestSubmissionController_ValidateSubmission_Rejected(t *testing.T) {
	errs := &domain.ValidationErrors{}
	errs.Set(domain.FieldFriendEmail2, domain.ErrFriendEmailAlreadyUsed, "Friend email 2 already used, use a different friend email!")
	svc := &mockSubmissionValidator{errs: errs}
	ctrl := NewSubmissionController(testLogger(), svc)

	body := `{"submission_id":"42","data":{"email":"a@x.com","email_amigo_1":"c@x.com","email_amigo_2":"b@x.com","email_amigo_3":"d@x.com"}}`
	w := httptest.NewRecorder()
	ctrl.ValidateSubmission(w, newValidateRequest("ef5", body))

	require.Equal(t, http.StatusOK, w.Code)
	var resp validateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Data.Valid)
	require.Equal(t, []domain.FieldError{{
		Field:   "email_amigo_2",
		Code:    "friend_email_already_used",
		Message: "Friend email 2 already used, use a different friend email!",
	}}, resp.Data.Errors)
	require.Equal(t, "42", svc.got.ID)
}

func TestSubmissionController_ValidateSubmission_BadRequest(t *testing.T) {
	tests := []struct {
		name   string
		formID string
		body   string
	}{
		{"missing form id", "", `{"data":{}}`},
		{"invalid json", "ef5", `{`},
		{"unknown field", "ef5", `{"data":{},"extra":1}`},
		{"missing data", "ef5", `{"submission_id":"1"}`},
		{"non-string value", "ef5", `{"data":{"email":3}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockSubmissionValidator{}
			ctrl := NewSubmissionController(testLogger(), svc)
			w := httptest.NewRecorder()
			ctrl.ValidateSubmission(w, newValidateRequest(tt.formID, tt.body))

			require.Equal(t, http.StatusBadRequest, w.Code)
			var resp helpers.APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.NotNil(t, resp.Error)
			require.Equal(t, helpers.ErrCodeBadRequest, resp.Error.Code)
			require.Nil(t, svc.got)
		})
	}
}

func TestSubmissionController_ValidateSubmission_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid input", fmt.Errorf("%w: submission has no form", domain.ErrInvalidInput), http.StatusBadRequest, helpers.ErrCodeBadRequest},
		{"store failure", errors.New("connection refused"), http.StatusInternalServerError, helpers.ErrCodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewSubmissionController(testLogger(), &mockSubmissionValidator{err: tt.err})
			w := httptest.NewRecorder()
			ctrl.ValidateSubmission(w, newValidateRequest("ef5", `{"data":{"email":"a@x.com"}}`))

			require.Equal(t, tt.wantStatus, w.Code)
			var resp helpers.APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.Equal(t, tt.wantCode, resp.Error.Code)
			require.NotContains(t, w.Body.String(), "connection refused")
		})
	}
}
