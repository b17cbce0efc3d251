// ABOUTME: Login screen with email and password form for one role
// ABOUTME: Offers recent emails as suggestions and shows a spinner while submitting

package login

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/steadystudy/studyportal/internal/auth"
	"github.com/steadystudy/studyportal/internal/session"
	"github.com/steadystudy/studyportal/internal/tui/icons"
	"github.com/steadystudy/studyportal/internal/tui/styles"
)

// SubmitMsg is sent when the form is completed
type SubmitMsg struct {
	Role        session.Role
	Credentials auth.Credentials
}

// BackMsg is sent when the user leaves the login screen
type BackMsg struct{}

// Login collects credentials for one role
type Login struct {
	role        session.Role
	suggestions []string
	email       string
	password    string
	form        *huh.Form
	spinner     spinner.Model
	submitting  bool
	notice      string
	isErr       bool
}

// New creates a login screen; suggestions are recent emails, newest first
func New(role session.Role, suggestions []string) *Login {
	l := &Login{
		role:        role,
		suggestions: suggestions,
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	if len(suggestions) > 0 {
		l.email = suggestions[0]
	}
	l.form = l.createForm()
	return l
}

func (l *Login) createForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Suggestions(l.suggestions).
				Value(&l.email).
				Validate(auth.ValidateEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&l.password).
				Validate(func(s string) error {
					if s == "" {
						return &auth.ValidationError{Fields: map[string]string{"password": "password is required"}}
					}
					return nil
				}),
		).Title(title(l.role)),
	).WithTheme(huh.ThemeBase()).WithShowHelp(false)
}

func title(role session.Role) string {
	if role == session.RoleAdmin {
		return icons.Admin.String() + " Admin login"
	}
	return icons.Student.String() + " Student login"
}

// Role returns the role this screen logs in as
func (l *Login) Role() session.Role {
	return l.role
}

// Submitting reports whether a login request is in flight
func (l *Login) Submitting() bool {
	return l.submitting
}

// SetNotice shows msg above the form
func (l *Login) SetNotice(msg string, isErr bool) {
	l.notice = msg
	l.isErr = isErr
}

// Fail ends a submission with msg and reopens the form, keeping the email
func (l *Login) Fail(msg string) tea.Cmd {
	l.submitting = false
	l.password = ""
	l.SetNotice(msg, true)
	l.form = l.createForm()
	return l.form.Init()
}

// Init implements tea.Model
func (l *Login) Init() tea.Cmd {
	return l.form.Init()
}

// Update implements tea.Model
func (l *Login) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if l.submitting {
		// Repeated submissions are ignored until the request settles
		if tick, ok := msg.(spinner.TickMsg); ok {
			var cmd tea.Cmd
			l.spinner, cmd = l.spinner.Update(tick)
			return l, cmd
		}
		return l, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return l, func() tea.Msg { return BackMsg{} }
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	if l.form.State == huh.StateCompleted {
		l.submitting = true
		l.notice = ""
		submit := SubmitMsg{
			Role: l.role,
			Credentials: auth.Credentials{
				Email:    strings.TrimSpace(l.email),
				Password: l.password,
			},
		}
		return l, tea.Batch(l.spinner.Tick, func() tea.Msg { return submit })
	}
	return l, cmd
}

// View implements tea.Model
func (l *Login) View() string {
	var sb strings.Builder
	if l.notice != "" {
		sb.WriteString(styles.Notice(l.notice, l.isErr))
		sb.WriteString("\n\n")
	}
	if l.submitting {
		sb.WriteString(l.spinner.View() + " Signing in as " + l.email + "...")
		return sb.String()
	}
	sb.WriteString(l.form.View())
	return sb.String()
}
