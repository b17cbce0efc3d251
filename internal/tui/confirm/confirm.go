// ABOUTME: Yes/no confirmation dialog built on a huh Confirm field
// ABOUTME: Used before logging out and before deleting a resource

package confirm

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// ResultMsg reports the user's answer for the dialog identified by ID
type ResultMsg struct {
	ID        string
	Confirmed bool
}

// Dialog asks a single question
type Dialog struct {
	id     string
	answer bool
	form   *huh.Form
}

// New creates a dialog; id is echoed back in ResultMsg
func New(id, question, affirmative string) *Dialog {
	d := &Dialog{id: id}
	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Affirmative(affirmative).
				Negative("Cancel").
				Value(&d.answer),
		),
	).WithTheme(huh.ThemeBase()).WithShowHelp(false)
	return d
}

// ID returns the dialog identifier
func (d *Dialog) ID() string {
	return d.id
}

// Init implements tea.Model
func (d *Dialog) Init() tea.Cmd {
	return d.form.Init()
}

// Update implements tea.Model
func (d *Dialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return d, d.result(false)
	}

	form, cmd := d.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.form = f
	}

	switch d.form.State {
	case huh.StateCompleted:
		return d, d.result(d.answer)
	case huh.StateAborted:
		return d, d.result(false)
	}
	return d, cmd
}

func (d *Dialog) result(ok bool) tea.Cmd {
	res := ResultMsg{ID: d.id, Confirmed: ok}
	return func() tea.Msg { return res }
}

// View implements tea.Model
func (d *Dialog) View() string {
	return d.form.View()
}
