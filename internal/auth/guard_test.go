// ABOUTME: Tests for the session guard
// ABOUTME: Covers role checks and clearing on authorization rejection

package auth

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/steadystudy/studyportal/internal/client"
	"github.com/steadystudy/studyportal/internal/session"
	"github.com/steadystudy/studyportal/internal/storage"
)

func TestRequire(t *testing.T) {
	kv := storage.NewMemory()
	guard := NewGuard(session.NewStore(kv))

	if _, err := guard.Require(); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("expected ErrNotLoggedIn, got %v", err)
	}

	kv.Update(map[string]string{storage.KeyToken: "T", storage.KeyRole: "student"})

	if _, err := guard.Require(session.RoleAdmin); !errors.Is(err, ErrWrongRole) {
		t.Errorf("expected ErrWrongRole, got %v", err)
	}
	sess, err := guard.Require(session.RoleStudent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Token != "T" {
		t.Errorf("expected token T, got %s", sess.Token)
	}
	if _, err := guard.Require(); err != nil {
		t.Errorf("expected any role accepted, got %v", err)
	}
}

func TestCheck_UnauthorizedClearsSession(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		t.Run(fmt.Sprint(status), func(t *testing.T) {
			kv := storage.NewMemory()
			kv.Update(map[string]string{
				storage.KeyToken:    "T",
				storage.KeyRole:     "student",
				storage.KeyDeviceID: "WEB-ABC12345",
			})
			guard := NewGuard(session.NewStore(kv))

			err := guard.Check(&client.APIError{StatusCode: status, Message: "expired"})
			if !errors.Is(err, ErrSessionExpired) {
				t.Errorf("expected ErrSessionExpired, got %v", err)
			}
			if _, ok := kv.Get(storage.KeyToken); ok {
				t.Error("expected token cleared")
			}
			if _, ok := kv.Get(storage.KeyDeviceID); !ok {
				t.Error("expected device id kept")
			}
		})
	}
}

func TestCheck_OtherErrorsKeepSession(t *testing.T) {
	kv := storage.NewMemory()
	kv.Update(map[string]string{storage.KeyToken: "T", storage.KeyRole: "admin"})
	guard := NewGuard(session.NewStore(kv))

	for _, in := range []error{
		nil,
		&client.APIError{StatusCode: http.StatusInternalServerError},
		fmt.Errorf("%w: refused", client.ErrTransport),
	} {
		if out := guard.Check(in); out != in {
			t.Errorf("expected error passed through, got %v", out)
		}
	}
	if _, ok := kv.Get(storage.KeyToken); !ok {
		t.Error("expected session kept")
	}
}

func TestLoginEntry(t *testing.T) {
	if got := LoginEntry(session.RoleAdmin); got != "studyportal login --role admin" {
		t.Errorf("unexpected entry %q", got)
	}
}
