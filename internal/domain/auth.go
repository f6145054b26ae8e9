package domain

import "time"

// TokenIssuer issues service tokens for form hosts allowed to call the validator.
type TokenIssuer interface {
	Issue(hostID string, forms []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a service token and returns the calling host's ID.
type TokenVerifier interface {
	Verify(token string) (hostID string, err error)
}
