package domain

import "errors"

// ErrInvalidInput is returned when the request is invalid (e.g. a submission without a form ID).
var ErrInvalidInput = errors.New("invalid input")

// Validation error kinds. They are reported as FieldError codes, never returned as Go errors.
var (
	ErrDuplicateFriendEmailInSubmission = errors.New("duplicate_friend_email_in_submission")
	ErrFriendEmailAlreadyUsed           = errors.New("friend_email_already_used")
)
