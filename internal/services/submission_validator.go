package services

import (
	"context"
	"fmt"
	"log/slog"

	"webformguard/internal/domain"
)

type submissionValidator struct {
	logger   *slog.Logger
	repo     domain.SubmissionRepository
	messages domain.Messages
	redactor domain.EmailRedactor
	recorder domain.ValidationRecorder
}

// NewSubmissionValidator creates a SubmissionValidator backed by the host's submission store.
// recorder may be nil.
func NewSubmissionValidator(
	logger *slog.Logger,
	repo domain.SubmissionRepository,
	messages domain.Messages,
	redactor domain.EmailRedactor,
	recorder domain.ValidationRecorder,
) domain.SubmissionValidator {
	return &submissionValidator{
		logger:   logger,
		repo:     repo,
		messages: messages,
		redactor: redactor,
		recorder: recorder,
	}
}

func (s *submissionValidator) Validate(ctx context.Context, sub *domain.Submission) (*domain.ValidationErrors, error) {
	if sub == nil || sub.FormID == "" {
		return nil, fmt.Errorf("%w: submission has no form", domain.ErrInvalidInput)
	}
	errs := &domain.ValidationErrors{}
	friends := sub.FriendEmails()

	// The three friend emails must be distinct before anything is looked up.
	if dup, ok := firstRepeated(friends); ok {
		errs.Set(domain.FieldFriendEmail2, domain.ErrDuplicateFriendEmailInSubmission, s.messages.DuplicateFriendEmail(dup))
		s.logger.InfoContext(ctx, "friend email repeated in submission",
			"form_id", sub.FormID,
			"friend_email", s.redactor.Hash(dup),
		)
		s.record(domain.OutcomeDuplicateInForm)
		return errs, nil
	}

	email := sub.Value(domain.FieldEmail)
	priors, err := s.loadPriors(ctx, sub, email, friends)
	if err != nil {
		s.record(domain.OutcomeError)
		return nil, err
	}

	for _, prior := range priors {
		if v, ok := prior.Lookup(domain.FieldEmail); !ok || v != email {
			continue
		}
		for i, field := range domain.FriendEmailFields {
			if prior.HasFriendEmail(friends[i]) {
				// Errors are keyed by field: a later prior submission overwrites the message.
				errs.Set(field, domain.ErrFriendEmailAlreadyUsed, s.messages.FriendEmailAlreadyUsed(i+1))
			}
		}
	}

	if errs.Empty() {
		s.record(domain.OutcomeAccepted)
		return errs, nil
	}
	s.logger.InfoContext(ctx, "friend email already used",
		"form_id", sub.FormID,
		"email", s.redactor.Hash(email),
		"fields", errs.Len(),
		"prior_submissions", len(priors),
	)
	s.record(domain.OutcomeFriendEmailReused)
	return errs, nil
}

// loadPriors returns the earlier submissions of the same form that share the primary email
// and at least one friend email. The submission being validated is never its own prior.
func (s *submissionValidator) loadPriors(ctx context.Context, sub *domain.Submission, email string, friends [3]string) ([]*domain.Submission, error) {
	ids, err := s.repo.ListIDsSharingFriendEmails(ctx, sub.FormID, email, friends)
	if err != nil {
		return nil, fmt.Errorf("list submissions sharing friend emails: %w", err)
	}
	var filtered []string
	for _, id := range ids {
		if sub.ID != "" && id == sub.ID {
			continue
		}
		filtered = append(filtered, id)
	}
	if len(filtered) == 0 {
		return nil, nil
	}
	priors, err := s.repo.GetMultiple(ctx, filtered)
	if err != nil {
		return nil, fmt.Errorf("load prior submissions: %w", err)
	}
	s.logger.DebugContext(ctx, "loaded prior submissions", "form_id", sub.FormID, "count", len(priors))
	return priors, nil
}

func (s *submissionValidator) record(outcome domain.ValidationOutcome) {
	if s.recorder != nil {
		s.recorder.RecordValidation(outcome)
	}
}

// firstRepeated returns the first value, in order of appearance, that occurs more than once.
func firstRepeated(values [3]string) (string, bool) {
	seen := make(map[string]int, len(values))
	for _, v := range values {
		seen[v]++
	}
	for _, v := range values {
		if seen[v] > 1 {
			return v, true
		}
	}
	return "", false
}
