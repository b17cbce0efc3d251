// ABOUTME: Tests for role selection menu
// ABOUTME: Validates options and selection behavior

package menu

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/steadystudy/studyportal/internal/session"
)

func TestMenuOptions(t *testing.T) {
	m := New("")

	if len(m.options) != 2 {
		t.Errorf("expected 2 options, got %d", len(m.options))
	}
	if m.options[0].value != session.RoleStudent {
		t.Errorf("expected student first, got %s", m.options[0].value)
	}
	if m.Selected() != session.RoleStudent {
		t.Errorf("expected student preselected, got %s", m.Selected())
	}
}

func TestMenuPreselectsLastRole(t *testing.T) {
	m := New(session.RoleAdmin)
	if m.Selected() != session.RoleAdmin {
		t.Errorf("expected admin preselected, got %s", m.Selected())
	}
}

func TestMenuView(t *testing.T) {
	m := New("")
	m.Init()
	view := m.View()
	if !strings.Contains(view, "Student login") || !strings.Contains(view, "Admin login") {
		t.Errorf("expected both options in view, got:\n%s", view)
	}
}

func TestMenuCancel(t *testing.T) {
	m := New("")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(CancelledMsg); !ok {
		t.Error("expected CancelledMsg")
	}
}
