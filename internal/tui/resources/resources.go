// ABOUTME: Resource list for the student portal
// ABOUTME: Cursor navigation over resources with preview status per row

package resources

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/steadystudy/studyportal/internal/access"
	"github.com/steadystudy/studyportal/internal/client"
	"github.com/steadystudy/studyportal/internal/tui/icons"
	"github.com/steadystudy/studyportal/internal/tui/styles"
	"github.com/steadystudy/studyportal/internal/tui/widgets"
)

// OpenMsg is sent when the user opens a resource
type OpenMsg struct {
	Resource client.Resource
}

// List shows resources and tracks the cursor
type List struct {
	title   string
	items   []client.Resource
	preview func(client.Resource) access.Preview
	cursor  int
	loading bool
	width   int
}

// New creates an empty list; preview classifies each row
func New(title string, preview func(client.Resource) access.Preview) *List {
	return &List{title: title, preview: preview, loading: true}
}

// SetItems replaces the list contents, keeping the cursor in range
func (l *List) SetItems(items []client.Resource) {
	l.items = items
	l.loading = false
	if l.cursor >= len(items) {
		l.cursor = max(len(items)-1, 0)
	}
}

// SetLoading marks the list as waiting for data
func (l *List) SetLoading(loading bool) {
	l.loading = loading
}

// Items returns the current rows
func (l *List) Items() []client.Resource {
	return l.items
}

// Selected returns the resource under the cursor
func (l *List) Selected() (client.Resource, bool) {
	if l.cursor < 0 || l.cursor >= len(l.items) {
		return client.Resource{}, false
	}
	return l.items[l.cursor], true
}

// Init implements tea.Model
func (l *List) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (l *List) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		l.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if l.cursor > 0 {
				l.cursor--
			}
		case "down", "j":
			if l.cursor < len(l.items)-1 {
				l.cursor++
			}
		case "enter", "o":
			if r, ok := l.Selected(); ok {
				return l, func() tea.Msg { return OpenMsg{Resource: r} }
			}
		}
	}
	return l, nil
}

// View implements tea.Model
func (l *List) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Document.String() + " " + l.title))
	sb.WriteString("\n")

	if l.loading {
		sb.WriteString(styles.Subtitle.Render("Loading resources..."))
		return sb.String()
	}
	if len(l.items) == 0 {
		sb.WriteString(styles.Subtitle.Render("No resources available yet."))
		return sb.String()
	}

	for i, r := range l.items {
		p := l.preview(r)
		icon := icons.Document
		if p == access.PreviewNoLink {
			icon = icons.NoFile
		}

		cursor := "  "
		style := styles.Normal
		if i == l.cursor {
			cursor = "> "
			style = styles.Selected
		}
		if p != access.PreviewPDF && i != l.cursor {
			style = styles.Disabled
		}

		row := fmt.Sprintf("%s%s %s", cursor, icon.String(), style.Render(r.Title))
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row, "  ", widgets.PreviewBadge(p)))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
