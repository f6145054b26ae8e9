// Package redact turns personal data into stable, non-reversible tokens for logs.
package redact

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// digestLen is the number of hex characters kept from each digest.
const digestLen = 16

// EmailHasher hashes email addresses with keyed BLAKE2b.
type EmailHasher struct {
	key []byte
}

// NewEmailHasher returns an EmailHasher keyed with key. An empty key yields plain BLAKE2b.
// Keys longer than 64 bytes are rejected by BLAKE2b and are truncated here.
func NewEmailHasher(key string) *EmailHasher {
	k := []byte(key)
	if len(k) > blake2b.Size {
		k = k[:blake2b.Size]
	}
	return &EmailHasher{key: k}
}

// Hash returns a short digest of email. Case and surrounding spaces are ignored so the
// same mailbox always maps to the same token. Empty input returns "".
func (h *EmailHasher) Hash(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ""
	}
	d, err := blake2b.New256(h.key)
	if err != nil {
		// unreachable: key length is bounded in NewEmailHasher
		return ""
	}
	d.Write([]byte(email))
	return hex.EncodeToString(d.Sum(nil))[:digestLen]
}

// HashAll hashes each email in order.
func (h *EmailHasher) HashAll(emails []string) []string {
	out := make([]string, len(emails))
	for i, e := range emails {
		out[i] = h.Hash(e)
	}
	return out
}
