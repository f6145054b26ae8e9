package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"webformguard/internal/delivery/http/helpers"
	"webformguard/internal/domain"
)

type SubmissionController struct {
	Logger    *slog.Logger
	Validator domain.SubmissionValidator
}

func NewSubmissionController(logger *slog.Logger, validator domain.SubmissionValidator) *SubmissionController {
	return &SubmissionController{
		Logger:    logger,
		Validator: validator,
	}
}

// ValidateSubmissionRequest is the request body for POST /forms/{formID}/submissions/validate.
type ValidateSubmissionRequest struct {
	// SubmissionID is set when an existing submission is being edited.
	SubmissionID string            `json:"submission_id"`
	Data         map[string]string `json:"data"`
}

// Validate implements helpers.Validator.
func (r *ValidateSubmissionRequest) Validate() []string {
	if r.Data == nil {
		return []string{"data is required"}
	}
	return nil
}

// ValidationResult is the data payload of a validation response.
// swagger:model ValidationResult
type ValidationResult struct {
	Valid  bool                `json:"valid"`
	Errors []domain.FieldError `json:"errors"`
}

// ValidateSubmissionSuccessResponse is the success response envelope for POST /forms/{formID}/submissions/validate (200).
type ValidateSubmissionSuccessResponse struct {
	Data  *ValidationResult `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ValidateSubmission godoc
// @Summary Validate a form submission's friend emails
// @Description Rejects the submission when its three friend emails are not distinct, or when a friend email was already used with the same primary email in an earlier submission of the form. A rejected submission is still a 200: valid is false and errors lists the offending fields.
// @Tags submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param formID path string true "Form ID"
// @Param body body controllers.ValidateSubmissionRequest true "Submitted field values"
// @Success 200 {object} controllers.ValidateSubmissionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /forms/{formID}/submissions/validate [post]
func (c *SubmissionController) ValidateSubmission(w http.ResponseWriter, r *http.Request) {
	formID := r.PathValue("formID")
	if formID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing formID")
		return
	}

	var req ValidateSubmissionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	sub := domain.NewSubmission(req.SubmissionID, formID, req.Data)
	errs, err := c.Validator.Validate(r.Context(), sub)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "submission store unavailable")
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusOK, &ValidationResult{
		Valid:  errs.Empty(),
		Errors: errs.List(),
	})
}
