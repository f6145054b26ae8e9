package domain

import "context"

// Submission field names read by the friend-email validator.
const (
	FieldEmail        = "email"
	FieldFriendEmail1 = "email_amigo_1"
	FieldFriendEmail2 = "email_amigo_2"
	FieldFriendEmail3 = "email_amigo_3"
)

// FriendEmailFields lists the friend fields in form order.
var FriendEmailFields = [3]string{FieldFriendEmail1, FieldFriendEmail2, FieldFriendEmail3}

// Submission is a form submission as stored by the form host.
// swagger:model Submission
type Submission struct {
	ID     string            `json:"id"`
	FormID string            `json:"form_id"`
	Data   map[string]string `json:"data"`
}

// NewSubmission returns a Submission for formID. ID is empty for submissions not yet stored.
func NewSubmission(id, formID string, data map[string]string) *Submission {
	if data == nil {
		data = map[string]string{}
	}
	return &Submission{ID: id, FormID: formID, Data: data}
}

// Lookup returns the value stored for field and whether the field is present.
func (s *Submission) Lookup(field string) (string, bool) {
	v, ok := s.Data[field]
	return v, ok
}

// Value returns the value stored for field, or "" when the field is absent.
func (s *Submission) Value(field string) string {
	return s.Data[field]
}

// FriendEmails returns the three friend email values in form order. Absent fields read as "".
func (s *Submission) FriendEmails() [3]string {
	var out [3]string
	for i, f := range FriendEmailFields {
		out[i] = s.Value(f)
	}
	return out
}

// HasFriendEmail reports whether email is stored in any of the submission's friend fields.
// An absent field never matches.
func (s *Submission) HasFriendEmail(email string) bool {
	for _, f := range FriendEmailFields {
		if v, ok := s.Lookup(f); ok && v == email {
			return true
		}
	}
	return false
}

// SubmissionRepository is read-only access to the host's stored submissions.
type SubmissionRepository interface {
	// ListIDsSharingFriendEmails returns IDs of submissions to formID whose email equals email
	// and whose friend fields hold at least one of friendEmails.
	ListIDsSharingFriendEmails(ctx context.Context, formID, email string, friendEmails [3]string) ([]string, error)
	// GetMultiple loads the submissions with the given IDs. Unknown IDs are skipped.
	GetMultiple(ctx context.Context, ids []string) ([]*Submission, error)
	// Ping checks the store is reachable.
	Ping(ctx context.Context) error
}
