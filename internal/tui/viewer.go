// ABOUTME: Standalone document viewer program for the resources open command
// ABOUTME: Hosts the pdfview screen full-window and quits when it is closed

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/steadystudy/studyportal/internal/tui/pdfview"
	"github.com/steadystudy/studyportal/internal/viewer"
)

// viewerProgram adapts pdfview to a top-level model
type viewerProgram struct {
	v    *viewer.Viewer
	view *pdfview.View
}

func (m *viewerProgram) Init() tea.Cmd {
	return nil
}

func (m *viewerProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if m.view == nil {
			m.view = pdfview.New(m.v, msg.Width, msg.Height-1)
		} else {
			m.view.SetSize(msg.Width, msg.Height-1)
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case pdfview.CloseMsg:
		return m, tea.Quit
	}

	if m.view == nil {
		return m, nil
	}
	_, cmd := m.view.Update(msg)
	return m, cmd
}

func (m *viewerProgram) View() string {
	if m.view == nil {
		return "Loading..."
	}
	return m.view.View()
}

// RunViewer shows an open viewer until the user closes it, then releases the document
func RunViewer(v *viewer.Viewer) error {
	defer v.Close()

	p := tea.NewProgram(&viewerProgram{v: v}, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
