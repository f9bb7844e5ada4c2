package store

import (
	"errors"
	"strings"
)

// ErrNotFound is returned by lookups when no row matches.
var ErrNotFound = errors.New("not found")

// ErrEmailTaken is returned by CreateUser when the email is already registered.
var ErrEmailTaken = errors.New("email already in use")

// CredentialError carries the human-readable reasons a credential was rejected
// (password policy violations). Each reason is safe to return to the client.
type CredentialError struct {
	Reasons []string
}

func (e *CredentialError) Error() string {
	return "invalid credential: " + strings.Join(e.Reasons, "; ")
}
