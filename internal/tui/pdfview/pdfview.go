// ABOUTME: In-app document viewer screen with watermark overlay
// ABOUTME: Maps keys onto viewer navigation and swallows save and print shortcuts

package pdfview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/steadystudy/studyportal/internal/tui/styles"
	"github.com/steadystudy/studyportal/internal/viewer"
)

// CloseMsg is sent when the user closes the document
type CloseMsg struct{}

// watermarkEvery is the number of text lines between watermark lines
const watermarkEvery = 6

const blockedNotice = "Saving and printing are disabled for study material"

// View renders the open document in a scrollable viewport
type View struct {
	viewer   *viewer.Viewer
	viewport viewport.Model
	width    int
	height   int
	notice   string
}

// New creates a viewer screen over v, which must already be open
func New(v *viewer.Viewer, width, height int) *View {
	pv := &View{viewer: v, viewport: viewport.New(width, max(height-2, 1))}
	pv.SetSize(width, height)
	return pv
}

// SetSize updates the screen dimensions and re-renders the page
func (pv *View) SetSize(width, height int) {
	pv.width = width
	pv.height = height
	pv.viewport.Width = width
	pv.viewport.Height = max(height-2, 1)
	pv.render()
}

// Init implements tea.Model
func (pv *View) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (pv *View) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonRight {
			pv.notice = blockedNotice
			return pv, nil
		}

	case tea.KeyMsg:
		pv.notice = ""
		switch msg.String() {
		case "ctrl+s", "ctrl+p", "alt+s", "alt+p":
			pv.notice = blockedNotice
			return pv, nil
		case "esc", "q":
			return pv, func() tea.Msg { return CloseMsg{} }
		case "right", "l", "n":
			pv.viewer.Next()
			pv.render()
			pv.viewport.GotoTop()
			return pv, nil
		case "left", "h", "p":
			pv.viewer.Prev()
			pv.render()
			pv.viewport.GotoTop()
			return pv, nil
		case "+", "=":
			pv.viewer.ZoomIn()
			pv.render()
			return pv, nil
		case "-", "_":
			pv.viewer.ZoomOut()
			pv.render()
			return pv, nil
		case "r":
			pv.viewer.Rotate()
			pv.render()
			return pv, nil
		}
	}

	var cmd tea.Cmd
	pv.viewport, cmd = pv.viewport.Update(msg)
	return pv, cmd
}

// Status describes the current page, zoom, and rotation
func (pv *View) Status() string {
	v := pv.viewer
	return fmt.Sprintf("%s  |  Page %d of %d  |  Zoom %d%%  |  Rotation %d°",
		v.Title(), v.Page(), v.NumPages(), int(v.Scale()*100+0.5), v.Rotation())
}

// View implements tea.Model
func (pv *View) View() string {
	status := styles.KeyStyle.Render(pv.Status())
	if pv.notice != "" {
		status += "  " + styles.StatusWarning.Render(pv.notice)
	}
	return status + "\n" + pv.viewport.View()
}

// render lays out the current page into the viewport
func (pv *View) render() {
	text, err := pv.viewer.PageText()
	if err != nil {
		pv.viewport.SetContent(styles.StatusCritical.Render("Error: " + err.Error()))
		return
	}
	if strings.TrimSpace(text) == "" {
		text = "(this page has no extractable text)"
	}

	// Larger scales fit fewer columns per line
	cols := int(float64(max(pv.width-2, 20)) / pv.viewer.Scale())
	lines := Rotate(wrap(text, cols), pv.viewer.Rotation())
	pv.viewport.SetContent(stamp(lines, pv.viewer.Watermark()))
}

// stamp overlays the watermark above the page and between every few lines
func stamp(lines []string, mark string) string {
	wm := styles.Watermark.Render(strings.Repeat(mark+"   ", 3))
	var sb strings.Builder
	sb.WriteString(wm)
	sb.WriteString("\n")
	for i, line := range lines {
		sb.WriteString(line)
		sb.WriteString("\n")
		if (i+1)%watermarkEvery == 0 {
			sb.WriteString(wm)
			sb.WriteString("\n")
		}
	}
	sb.WriteString(wm)
	return sb.String()
}

// wrap breaks text into lines of at most width display columns
func wrap(text string, width int) []string {
	width = max(width, 1)
	var out []string
	for _, para := range strings.Split(text, "\n") {
		wrapped := lipgloss.NewStyle().Width(width).Render(para)
		for _, line := range strings.Split(wrapped, "\n") {
			out = append(out, strings.TrimRight(line, " "))
		}
	}
	return out
}

// Rotate turns a block of text clockwise by deg (0, 90, 180, or 270)
func Rotate(lines []string, deg int) []string {
	if deg%360 == 0 || len(lines) == 0 {
		return lines
	}

	grid := make([][]rune, len(lines))
	cols := 0
	for i, line := range lines {
		grid[i] = []rune(line)
		cols = max(cols, len(grid[i]))
	}
	at := func(r, c int) rune {
		if c < len(grid[r]) {
			return grid[r][c]
		}
		return ' '
	}
	rows := len(grid)

	var out []string
	switch deg % 360 {
	case 90:
		for c := 0; c < cols; c++ {
			var b strings.Builder
			for r := rows - 1; r >= 0; r-- {
				b.WriteRune(at(r, c))
			}
			out = append(out, strings.TrimRight(b.String(), " "))
		}
	case 180:
		for r := rows - 1; r >= 0; r-- {
			var b strings.Builder
			for c := cols - 1; c >= 0; c-- {
				b.WriteRune(at(r, c))
			}
			out = append(out, strings.TrimRight(b.String(), " "))
		}
	case 270:
		for c := cols - 1; c >= 0; c-- {
			var b strings.Builder
			for r := 0; r < rows; r++ {
				b.WriteRune(at(r, c))
			}
			out = append(out, strings.TrimRight(b.String(), " "))
		}
	default:
		return lines
	}
	return out
}
