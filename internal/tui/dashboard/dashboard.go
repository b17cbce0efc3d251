// ABOUTME: Admin dashboard showing enrollment counts and batches
// ABOUTME: Lists every batch with its student count and lets the admin drill in

package dashboard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/steadystudy/studyportal/internal/client"
	"github.com/steadystudy/studyportal/internal/roster"
	"github.com/steadystudy/studyportal/internal/tui/icons"
	"github.com/steadystudy/studyportal/internal/tui/styles"
	"github.com/steadystudy/studyportal/internal/tui/widgets"
)

// BatchSelectedMsg is sent when the admin opens a batch
type BatchSelectedMsg struct {
	Batch client.Batch
}

// Dashboard displays the admin overview
type Dashboard struct {
	overview *roster.Overview
	cursor   int
	width    int
	height   int
}

// New creates a new dashboard; a nil overview renders as loading
func New(overview *roster.Overview, width, height int) *Dashboard {
	return &Dashboard{
		overview: overview,
		width:    width,
		height:   height,
	}
}

// SetOverview replaces the data shown
func (d *Dashboard) SetOverview(overview *roster.Overview) {
	d.overview = overview
	if overview != nil && d.cursor >= len(overview.Batches) {
		d.cursor = max(len(overview.Batches)-1, 0)
	}
}

// SetSize updates the dashboard dimensions
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// Selected returns the batch under the cursor
func (d *Dashboard) Selected() (client.Batch, bool) {
	if d.overview == nil || d.cursor >= len(d.overview.Batches) {
		return client.Batch{}, false
	}
	return d.overview.Batches[d.cursor], true
}

// Init implements tea.Model
func (d *Dashboard) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (d *Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || d.overview == nil {
		return d, nil
	}

	switch key.String() {
	case "up", "k":
		if d.cursor > 0 {
			d.cursor--
		}
	case "down", "j":
		if d.cursor < len(d.overview.Batches)-1 {
			d.cursor++
		}
	case "enter":
		if b, ok := d.Selected(); ok {
			return d, func() tea.Msg { return BatchSelectedMsg{Batch: b} }
		}
	}
	return d, nil
}

// View renders the dashboard
func (d *Dashboard) View() string {
	if d.overview == nil {
		return styles.Panel.Width(max(d.width, 20)).Render("Loading students and batches...")
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Dashboard"))
	sb.WriteString("\n")

	config := widgets.DefaultMetricBlockConfig()
	blocks := lipgloss.JoinHorizontal(lipgloss.Top,
		widgets.CountBlock(icons.Student, "Students", len(d.overview.Students), "enrolled", config),
		" ",
		widgets.CountBlock(icons.Batch, "Batches", len(d.overview.Batches), "active", config),
		" ",
		widgets.CountBlock(icons.Settings, "Assignments", d.overview.Assigned(), "student-batch links", config),
	)
	sb.WriteString(blocks)
	sb.WriteString("\n\n")

	rows := d.overview.BatchRows()
	if len(rows) == 0 {
		sb.WriteString(styles.Subtitle.Render("No batches yet. Create one with: studyportal batches create TITLE"))
		return sb.String()
	}

	titleWidth := len("Batch Name")
	for _, row := range rows {
		titleWidth = max(titleWidth, lipgloss.Width(row.Batch.Title))
	}

	sb.WriteString(styles.KeyStyle.Render(fmt.Sprintf("  %-*s  %s", titleWidth, "Batch Name", "No. of Students")))
	sb.WriteString("\n")
	for i, row := range rows {
		line := fmt.Sprintf("%-*s  %d", titleWidth, row.Batch.Title, row.Students)
		if i == d.cursor {
			sb.WriteString(styles.Selected.Render("> " + line))
		} else {
			sb.WriteString(styles.Normal.Render("  " + line))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
