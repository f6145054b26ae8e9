package domain

import "context"

// FieldError is a user-facing validation error attached to a form field.
// swagger:model FieldError
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationErrors holds at most one error per field. Setting a field twice
// replaces the earlier message but keeps the field's original position.
type ValidationErrors struct {
	order  []string
	byName map[string]FieldError
}

// Set attaches an error of the given kind to field.
func (v *ValidationErrors) Set(field string, kind error, message string) {
	if v.byName == nil {
		v.byName = make(map[string]FieldError)
	}
	if _, ok := v.byName[field]; !ok {
		v.order = append(v.order, field)
	}
	v.byName[field] = FieldError{Field: field, Code: kind.Error(), Message: message}
}

// Get returns the error attached to field, if any.
func (v *ValidationErrors) Get(field string) (FieldError, bool) {
	fe, ok := v.byName[field]
	return fe, ok
}

// Len returns the number of fields with an error.
func (v *ValidationErrors) Len() int {
	return len(v.order)
}

// Empty reports whether the submission passed validation.
func (v *ValidationErrors) Empty() bool {
	return v.Len() == 0
}

// List returns the errors in the order fields were first flagged. Never nil.
func (v *ValidationErrors) List() []FieldError {
	out := make([]FieldError, 0, len(v.order))
	for _, f := range v.order {
		out = append(out, v.byName[f])
	}
	return out
}

// Messages builds the user-facing validation messages.
type Messages interface {
	// DuplicateFriendEmail is reported when email appears twice among the friend fields.
	DuplicateFriendEmail(email string) string
	// FriendEmailAlreadyUsed is reported for friend field n (1-based) reused from an earlier submission.
	FriendEmailAlreadyUsed(n int) string
}

// ValidationOutcome labels the result of one validation run.
type ValidationOutcome string

const (
	OutcomeAccepted          ValidationOutcome = "accepted"
	OutcomeDuplicateInForm   ValidationOutcome = "duplicate_in_submission"
	OutcomeFriendEmailReused ValidationOutcome = "friend_email_reused"
	OutcomeError             ValidationOutcome = "error"
)

// ValidationRecorder observes validation outcomes (e.g. for metrics).
type ValidationRecorder interface {
	RecordValidation(outcome ValidationOutcome)
}

// SubmissionValidator checks a submission's friend emails before the host accepts it.
type SubmissionValidator interface {
	// Validate returns the field errors for sub. An empty result accepts the submission.
	// The error return is reserved for store failures.
	Validate(ctx context.Context, sub *Submission) (*ValidationErrors, error)
}

// EmailRedactor maps an email address to a token that is safe to log.
type EmailRedactor interface {
	Hash(email string) string
}
