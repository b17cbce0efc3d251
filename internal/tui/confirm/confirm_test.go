// ABOUTME: Tests for the confirmation dialog
// ABOUTME: Checks that dismissing the dialog reports a negative answer

package confirm

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestDialogEscCancels(t *testing.T) {
	d := New("logout", "Log out of Steady Study?", "Log out")
	d.Init()

	_, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected command on esc")
	}
	res, ok := cmd().(ResultMsg)
	if !ok {
		t.Fatalf("expected ResultMsg, got %T", cmd())
	}
	if res.ID != "logout" || res.Confirmed {
		t.Errorf("expected unconfirmed logout result, got %+v", res)
	}
}

func TestDialogView(t *testing.T) {
	d := New("delete", "Delete Notes.pdf?", "Delete")
	d.Init()
	if !strings.Contains(d.View(), "Delete Notes.pdf?") {
		t.Errorf("expected question in view, got:\n%s", d.View())
	}
	if d.ID() != "delete" {
		t.Errorf("unexpected id %q", d.ID())
	}
}
