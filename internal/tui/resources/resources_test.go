// ABOUTME: Tests for the resource list component
// ABOUTME: Validates cursor movement, open messages, and row rendering

package resources

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/steadystudy/studyportal/internal/access"
	"github.com/steadystudy/studyportal/internal/blob"
	"github.com/steadystudy/studyportal/internal/client"
	"github.com/steadystudy/studyportal/internal/session"
)

func newList() *List {
	gate := access.NewGate(nil, session.RoleStudent, blob.NewRegistry())
	l := New("My Resources", gate.Preview)
	l.SetItems([]client.Resource{
		{ID: "1", Title: "Kinematics", URL: "https://cdn/k.pdf"},
		{ID: "2", Title: "Slides", URL: "https://cdn/s.pptx"},
		{ID: "3", Title: "Pending"},
	})
	return l
}

func TestCursorClamps(t *testing.T) {
	l := newList()
	for range 5 {
		l.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if r, _ := l.Selected(); r.ID != "3" {
		t.Errorf("expected last item selected, got %s", r.ID)
	}
	for range 5 {
		l.Update(tea.KeyMsg{Type: tea.KeyUp})
	}
	if r, _ := l.Selected(); r.ID != "1" {
		t.Errorf("expected first item selected, got %s", r.ID)
	}
}

func TestEnterOpensSelected(t *testing.T) {
	l := newList()
	l.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := l.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(OpenMsg)
	if !ok || msg.Resource.ID != "2" {
		t.Errorf("expected OpenMsg for 2, got %#v", msg)
	}
}

func TestView(t *testing.T) {
	l := newList()
	view := l.View()
	for _, want := range []string{"My Resources", "Kinematics", "PDF", "NO PREVIEW", "NO FILE"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q\n%s", want, view)
		}
	}

	l.SetItems(nil)
	if !strings.Contains(l.View(), "No resources") {
		t.Error("expected empty message")
	}

	l.SetLoading(true)
	if !strings.Contains(l.View(), "Loading") {
		t.Error("expected loading message")
	}
}
