package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUserExists signals a username or email collision on create.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound is returned by repository lookups that match nothing.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials covers unknown user, wrong password and inactive
	// account alike so login failures are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenInvalid covers bad signature, malformed input and wrong token type.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenExpired is returned when a token's expiry has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenMissing is returned when a refresh request carries no token at all.
	ErrTokenMissing = errors.New("refresh token is required")
)

// ValidationError carries per-field registration failures so the API can
// render field-level detail instead of a single opaque message.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a failure for field; the first message per field wins.
func (e *ValidationError) Add(field, msg string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// Empty reports whether no field failed.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Fields[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
