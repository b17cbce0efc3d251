// ABOUTME: Admin commands for batches and the enrollment overview
// ABOUTME: Counts students per batch from the same roster the dashboard shows

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/steadystudy/studyportal/internal/roster"
	"github.com/steadystudy/studyportal/internal/session"
)

var batchesCmd = &cobra.Command{
	Use:   "batches",
	Short: "Manage batches (admins)",
}

var batchesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List batches with their student counts",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, p *portal, w io.Writer) int {
			return runBatchesList(ctx, p, w)
		})
	},
}

var batchesCreateCmd = &cobra.Command{
	Use:   "create TITLE",
	Short: "Create a batch",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, p *portal, w io.Writer) int {
			return runBatchesCreate(ctx, p, w, args[0])
		})
	},
}

var batchesOverviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show enrollment totals",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, p *portal, w io.Writer) int {
			return runBatchesOverview(ctx, p, w)
		})
	},
}

func init() {
	batchesCmd.AddCommand(batchesListCmd, batchesCreateCmd, batchesOverviewCmd)
	rootCmd.AddCommand(batchesCmd)
}

// batchRowJSON is the JSON shape of one batch row
type batchRowJSON struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Students int    `json:"students"`
}

func runBatchesList(ctx context.Context, p *portal, w io.Writer) int {
	overview, code := p.loadOverview(ctx, w)
	if overview == nil {
		return code
	}

	rows := overview.BatchRows()
	if IsJSONOutput() {
		out := make([]batchRowJSON, 0, len(rows))
		for _, r := range rows {
			out = append(out, batchRowJSON{ID: r.Batch.ID, Title: r.Batch.Title, Students: r.Students})
		}
		printJSON(w, out)
		return exitOK
	}
	fmt.Fprint(w, formatBatchRows(rows))
	return exitOK
}

// formatBatchRows renders the batch table
func formatBatchRows(rows []roster.BatchRow) string {
	if len(rows) == 0 {
		return "No batches yet.\n"
	}

	idWidth, titleWidth := len("ID"), len("BATCH NAME")
	for _, r := range rows {
		idWidth = max(idWidth, len(r.Batch.ID))
		titleWidth = max(titleWidth, len(r.Batch.Title))
	}

	out := fmt.Sprintf("%-*s  %-*s  %s\n", idWidth, "ID", titleWidth, "BATCH NAME", "STUDENTS")
	for _, r := range rows {
		out += fmt.Sprintf("%-*s  %-*s  %d\n", idWidth, r.Batch.ID, titleWidth, r.Batch.Title, r.Students)
	}
	return out
}

func runBatchesCreate(ctx context.Context, p *portal, w io.Writer, title string) int {
	if _, ok := p.require(w, session.RoleAdmin); !ok {
		return exitUsage
	}
	title = strings.TrimSpace(title)
	if title == "" {
		fmt.Fprintln(w, "Error: batch title is required")
		return exitUsage
	}

	if err := p.client.CreateBatch(ctx, title); err != nil {
		return p.remoteFailure(w, err, session.RoleAdmin)
	}
	fmt.Fprintf(w, "Created batch %s\n", title)
	return exitOK
}

func runBatchesOverview(ctx context.Context, p *portal, w io.Writer) int {
	overview, code := p.loadOverview(ctx, w)
	if overview == nil {
		return code
	}

	if IsJSONOutput() {
		printJSON(w, map[string]int{
			"students":    len(overview.Students),
			"batches":     len(overview.Batches),
			"assignments": overview.Assigned(),
		})
		return exitOK
	}
	fmt.Fprintf(w, "Students:     %d\nBatches:      %d\nAssignments:  %d\n\n",
		len(overview.Students), len(overview.Batches), overview.Assigned())
	fmt.Fprint(w, formatBatchRows(overview.BatchRows()))
	return exitOK
}
