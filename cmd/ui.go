// ABOUTME: Interactive terminal UI command
// ABOUTME: Starts the full-screen portal with role menu, login, dashboards, and viewer

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/steadystudy/studyportal/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the interactive portal",
	Long: `Launch the full-screen portal. Without a session it starts at the role menu;
with one it opens the admin dashboard or the student resource list.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, p *portal, w io.Writer) int {
			return runUI(p, w)
		})
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

// runTUI starts the program; replaced in tests
var runTUI = tui.Run

func runUI(p *portal, w io.Writer) int {
	err := runTUI(tui.Deps{
		Client:    p.client,
		Gateway:   p.gateway,
		Guard:     p.guard,
		Blobs:     p.blobs,
		Watermark: p.cfg.Watermark,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}
	return exitOK
}
