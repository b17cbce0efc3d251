// ABOUTME: Role selection menu shown before login
// ABOUTME: Lets the user choose between the admin and student portals

package menu

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/steadystudy/studyportal/internal/session"
)

// RoleSelectedMsg is sent when the user picks a portal
type RoleSelectedMsg struct {
	Role session.Role
}

// CancelledMsg is sent when the user leaves the menu
type CancelledMsg struct{}

type option struct {
	label string
	value session.Role
}

// Menu represents the role selection menu
type Menu struct {
	options  []option
	selected session.Role
	form     *huh.Form
}

// New creates a new role menu, preselecting last when set
func New(last session.Role) *Menu {
	m := &Menu{
		options: []option{
			{label: "Student login", value: session.RoleStudent},
			{label: "Admin login", value: session.RoleAdmin},
		},
		selected: session.RoleStudent,
	}
	if last != "" {
		m.selected = last
	}
	m.form = m.createForm()
	return m
}

func (m *Menu) createForm() *huh.Form {
	var options []huh.Option[session.Role]
	for _, opt := range m.options {
		options = append(options, huh.NewOption(opt.label, opt.value))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[session.Role]().
				Title("Who is signing in?").
				Options(options...).
				Value(&m.selected),
		),
	).WithTheme(huh.ThemeBase()).WithShowHelp(false)
}

// Selected returns the highlighted role
func (m *Menu) Selected() session.Role {
	return m.selected
}

// Init implements tea.Model
func (m *Menu) Init() tea.Cmd {
	return m.form.Init()
}

// Update implements tea.Model
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc":
			return m, func() tea.Msg { return CancelledMsg{} }
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		role := m.selected
		// Rebuild so returning to the menu starts fresh
		m.form = m.createForm()
		return m, tea.Batch(m.form.Init(), func() tea.Msg { return RoleSelectedMsg{Role: role} })
	}
	return m, cmd
}

// View implements tea.Model
func (m *Menu) View() string {
	return m.form.View()
}
