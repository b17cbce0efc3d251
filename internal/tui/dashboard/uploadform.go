// ABOUTME: Upload form for adding PDF files to a batch
// ABOUTME: Collects one path per line and validates the whole selection up front

package dashboard

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/steadystudy/studyportal/internal/client"
	"github.com/steadystudy/studyportal/internal/upload"
)

// UploadRequestedMsg carries a validated selection
type UploadRequestedMsg struct {
	Batch client.Batch
	Paths []string
}

// UploadCancelledMsg is sent when the form is dismissed
type UploadCancelledMsg struct{}

// UploadForm asks for the files to upload into one batch
type UploadForm struct {
	batch client.Batch
	raw   string
	form  *huh.Form
}

// NewUploadForm creates a form targeting batch
func NewUploadForm(batch client.Batch) *UploadForm {
	u := &UploadForm{batch: batch}
	u.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Files to upload into "+batch.Title).
				Description("One PDF path per line. Every file must be a PDF or nothing is uploaded.").
				Lines(5).
				Value(&u.raw).
				Validate(func(s string) error {
					return upload.Validate(ParsePaths(s))
				}),
		),
	).WithTheme(huh.ThemeBase()).WithShowHelp(false)
	return u
}

// ParsePaths splits form input into trimmed non-empty paths
func ParsePaths(raw string) []string {
	var paths []string
	for _, line := range strings.Split(raw, "\n") {
		if p := strings.TrimSpace(line); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// Init implements tea.Model
func (u *UploadForm) Init() tea.Cmd {
	return u.form.Init()
}

// Update implements tea.Model
func (u *UploadForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return u, func() tea.Msg { return UploadCancelledMsg{} }
	}

	form, cmd := u.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		u.form = f
	}

	if u.form.State == huh.StateCompleted {
		req := UploadRequestedMsg{Batch: u.batch, Paths: ParsePaths(u.raw)}
		return u, func() tea.Msg { return req }
	}
	return u, cmd
}

// View implements tea.Model
func (u *UploadForm) View() string {
	return u.form.View()
}
