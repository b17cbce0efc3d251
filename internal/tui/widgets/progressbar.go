// ABOUTME: Progress bar widgets for upload runs
// ABOUTME: Renders done/total counts as a filled bar with a label

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBarConfig holds configuration for the progress bar
type ProgressBarConfig struct {
	Width       int
	FilledColor lipgloss.Color
	FailedColor lipgloss.Color
	EmptyColor  lipgloss.Color
}

// DefaultProgressBarConfig returns sensible defaults
func DefaultProgressBarConfig() ProgressBarConfig {
	return ProgressBarConfig{
		Width:       20,
		FilledColor: lipgloss.Color("#10B981"), // Green
		FailedColor: lipgloss.Color("#EF4444"), // Red
		EmptyColor:  lipgloss.Color("#374151"), // Dark gray
	}
}

// ProgressBar renders done of total as a bracketed bar.
// When failed is set the bar is drawn in the failure color.
func ProgressBar(done, total int, failed bool, config ProgressBarConfig) string {
	if config.Width <= 0 {
		config.Width = 20
	}

	filled := 0
	if total > 0 {
		filled = min(max(done, 0)*config.Width/total, config.Width)
	}

	color := config.FilledColor
	if failed {
		color = config.FailedColor
	}

	var bar strings.Builder
	bar.WriteString("[")
	bar.WriteString(lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)))
	bar.WriteString(lipgloss.NewStyle().Foreground(config.EmptyColor).Render(strings.Repeat("░", config.Width-filled)))
	bar.WriteString("]")
	return bar.String()
}

// ProgressBarWithLabel renders the bar followed by "done/total"
func ProgressBarWithLabel(done, total int, failed bool, config ProgressBarConfig) string {
	label := fmt.Sprintf("%d/%d", done, total)
	if failed {
		label += " " + StatusIcon(StatusCritical)
	} else if total > 0 && done == total {
		label += " " + StatusIcon(StatusOK)
	}
	return ProgressBar(done, total, failed, config) + " " + label
}
