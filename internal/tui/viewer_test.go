// ABOUTME: Tests for the standalone viewer program
// ABOUTME: Drives the model with synthetic size, key and close messages

package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/steadystudy/studyportal/internal/blob"
	"github.com/steadystudy/studyportal/internal/document/pdftest"
	"github.com/steadystudy/studyportal/internal/tui/pdfview"
	"github.com/steadystudy/studyportal/internal/viewer"
)

func TestViewerProgram(t *testing.T) {
	blobs := blob.NewRegistry()
	v := viewer.New(blobs, "Steady-Study-8")
	if err := v.Open(blobs.Create(pdftest.Build("first", "second"), "application/pdf"), "Notes"); err != nil {
		t.Fatalf("failed to open: %v", err)
	}
	m := &viewerProgram{v: v}

	if m.View() != "Loading..." {
		t.Errorf("expected loading before size is known, got %q", m.View())
	}

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if !strings.Contains(m.View(), "Page 2 of 2") {
		t.Errorf("expected second page status, got:\n%s", m.View())
	}
	if n := strings.Count(m.View(), "Page 2 of 2"); n != 1 {
		t.Errorf("expected the status line once, got %d", n)
	}

	_, cmd := m.Update(pdfview.CloseMsg{})
	if cmd == nil {
		t.Fatal("expected quit command on close")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
