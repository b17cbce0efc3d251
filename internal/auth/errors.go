// ABOUTME: Error taxonomy for login, logout, and session checks
// ABOUTME: Sentinels are matched with errors.Is; detailed errors carry user-facing text

package auth

import (
	"errors"
	"strings"
)

var (
	// ErrValidation marks credentials rejected locally before any request
	ErrValidation = errors.New("invalid input")
	// ErrLoginFailed marks any login that did not produce a session
	ErrLoginFailed = errors.New("login failed")
	// ErrLogoutNotConfirmed marks a logout whose server call failed after local clearing
	ErrLogoutNotConfirmed = errors.New("server did not confirm logout")
	// ErrNotLoggedIn marks a guarded operation attempted without a session
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrWrongRole marks a guarded operation attempted with the wrong kind of session
	ErrWrongRole = errors.New("not permitted for this account")
	// ErrSessionExpired marks a session cleared after the server rejected its token
	ErrSessionExpired = errors.New("session expired")
)

const (
	// DefaultLoginFailure is shown when the server supplies no message
	DefaultLoginFailure = "Invalid credentials"
	// SessionExpiredNotice is shown when a session is cleared after an authorization rejection
	SessionExpiredNotice = "Session expired. Please login again."
)

// ValidationError lists the fields that failed local validation
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, field := range []string{"email", "password", "name"} {
		if msg, ok := e.Fields[field]; ok {
			parts = append(parts, msg)
		}
	}
	if len(parts) == 0 {
		return ErrValidation.Error()
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// LoginError is the single failure kind reported for a rejected login
type LoginError struct {
	// Message is the server's text when it supplied one, otherwise DefaultLoginFailure
	Message string
	Err     error
}

func (e *LoginError) Error() string {
	return e.Message
}

func (e *LoginError) Unwrap() []error {
	return []error{ErrLoginFailed, e.Err}
}
