// ABOUTME: Tests for the login screen model
// ABOUTME: Drives the model with synthetic messages

package login

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/steadystudy/studyportal/internal/session"
)

func TestNewPrefillsMostRecentEmail(t *testing.T) {
	l := New(session.RoleStudent, []string{"new@b.co", "old@b.co"})
	if l.email != "new@b.co" {
		t.Errorf("expected most recent email prefilled, got %q", l.email)
	}
	if l.Role() != session.RoleStudent {
		t.Errorf("expected student role, got %s", l.Role())
	}
}

func TestEscGoesBack(t *testing.T) {
	l := New(session.RoleAdmin, nil)
	_, cmd := l.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(BackMsg); !ok {
		t.Error("expected BackMsg")
	}
}

func TestSubmittingIgnoresKeys(t *testing.T) {
	l := New(session.RoleStudent, nil)
	l.submitting = true
	l.email = "a@b.co"

	_, cmd := l.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no command while submitting")
	}
	if !strings.Contains(l.View(), "Signing in as a@b.co") {
		t.Errorf("expected spinner line, got %q", l.View())
	}
}

func TestFailShowsMessageAndClearsPassword(t *testing.T) {
	l := New(session.RoleStudent, nil)
	l.submitting = true
	l.email = "a@b.co"
	l.password = "secret"

	l.Fail("Device limit reached")

	if l.Submitting() {
		t.Error("expected submission to end")
	}
	if l.password != "" {
		t.Error("expected password cleared")
	}
	if l.email != "a@b.co" {
		t.Errorf("expected email kept, got %q", l.email)
	}
	if !strings.Contains(l.View(), "Device limit reached") {
		t.Error("expected failure message in view")
	}
}
