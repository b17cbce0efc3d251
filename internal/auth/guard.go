// ABOUTME: Session guard for authenticated screens and commands
// ABOUTME: Rejects missing sessions and clears the store when the server rejects a token

package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/steadystudy/studyportal/internal/client"
	"github.com/steadystudy/studyportal/internal/session"
)

// Guard checks the session before guarded work and reacts to authorization failures
type Guard struct {
	sessions *session.Store
}

// NewGuard creates a guard over sessions
func NewGuard(sessions *session.Store) *Guard {
	return &Guard{sessions: sessions}
}

// Current returns the stored session, if any
func (g *Guard) Current() (session.Session, bool) {
	return g.sessions.Current()
}

// Require returns the current session when one exists with one of roles.
// With no roles any session is accepted.
func (g *Guard) Require(roles ...session.Role) (session.Session, error) {
	sess, ok := g.sessions.Current()
	if !ok {
		return session.Session{}, ErrNotLoggedIn
	}
	if len(roles) > 0 && !slices.Contains(roles, sess.Role) {
		return session.Session{}, fmt.Errorf("%w: logged in as %s", ErrWrongRole, sess.Role)
	}
	return sess, nil
}

// Check inspects the error from an authorized call. An authorization
// rejection clears the session and yields ErrSessionExpired; other errors
// are returned unchanged.
func (g *Guard) Check(err error) error {
	if err == nil || !errors.Is(err, client.ErrUnauthorized) {
		return err
	}

	if clearErr := g.sessions.Clear(); clearErr != nil {
		slog.Error("Failed to clear expired session", "error", clearErr)
	}
	slog.Info("Session expired", "error", err)
	return fmt.Errorf("%w: %w", ErrSessionExpired, err)
}

// LoginEntry names the command that starts a login for role
func LoginEntry(role session.Role) string {
	if role == "" {
		return "studyportal login --role <admin|student>"
	}
	return "studyportal login --role " + string(role)
}
