// ABOUTME: Resource commands for listing, viewing, uploading, and deleting documents
// ABOUTME: Every operation passes through the access gate for the signed-in role

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/steadystudy/studyportal/internal/access"
	"github.com/steadystudy/studyportal/internal/client"
	"github.com/steadystudy/studyportal/internal/session"
	"github.com/steadystudy/studyportal/internal/tui"
	"github.com/steadystudy/studyportal/internal/upload"
	"github.com/steadystudy/studyportal/internal/viewer"
)

var resourceBatch string

// runViewer shows an opened document; replaced in tests
var runViewer = tui.RunViewer

var resourcesCmd = &cobra.Command{
	Use:     "resources",
	Aliases: []string{"res"},
	Short:   "List, view, upload, and delete study resources",
}

var resourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List resources (students: your batches; admins: --batch)",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, p *portal, w io.Writer) int {
			return runResourcesList(ctx, p, w, resourceBatch)
		})
	},
}

var resourcesOpenCmd = &cobra.Command{
	Use:   "open ID",
	Short: "Open a PDF resource in the watermarked viewer",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, p *portal, w io.Writer) int {
			return runResourcesOpen(ctx, p, w, args[0])
		})
	},
}

var resourcesUploadCmd = &cobra.Command{
	Use:   "upload --batch ID FILE...",
	Short: "Upload PDF files to a batch",
	Long: `Upload PDF files to a batch. Every file must be a PDF or nothing is sent.
Files are uploaded one at a time in the order given and the run stops at the
first failure; files already uploaded stay.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, p *portal, w io.Writer) int {
			return runResourcesUpload(ctx, p, w, resourceBatch, args)
		})
	},
}

var resourcesDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a resource",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, p *portal, w io.Writer) int {
			return runResourcesDelete(ctx, p, w, args[0])
		})
	},
}

func init() {
	resourcesListCmd.Flags().StringVar(&resourceBatch, "batch", "", "Batch ID (admins)")
	resourcesUploadCmd.Flags().StringVar(&resourceBatch, "batch", "", "Batch ID to upload into")
	resourcesUploadCmd.MarkFlagRequired("batch")

	resourcesCmd.AddCommand(resourcesListCmd, resourcesOpenCmd, resourcesUploadCmd, resourcesDeleteCmd)
	rootCmd.AddCommand(resourcesCmd)
}

func runResourcesList(ctx context.Context, p *portal, w io.Writer, batchID string) int {
	sess, ok := p.require(w)
	if !ok {
		return exitUsage
	}

	gate := access.NewGate(p.client, sess.Role, p.blobs)
	list, err := gate.ListResources(ctx, batchID)
	if err != nil {
		if errors.Is(err, access.ErrForbidden) {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitUsage
		}
		return p.remoteFailure(w, err, sess.Role)
	}

	if IsJSONOutput() {
		printJSON(w, list)
		return exitOK
	}
	fmt.Fprint(w, formatResources(list, gate.Preview))
	return exitOK
}

// formatResources renders one row per resource with its preview status
func formatResources(list []client.Resource, preview func(client.Resource) access.Preview) string {
	if len(list) == 0 {
		return "No resources available yet.\n"
	}

	idWidth, titleWidth := len("ID"), len("TITLE")
	for _, r := range list {
		idWidth = max(idWidth, len(r.ID))
		titleWidth = max(titleWidth, len(r.Title))
	}

	out := fmt.Sprintf("%-*s  %-*s  %s\n", idWidth, "ID", titleWidth, "TITLE", "PREVIEW")
	for _, r := range list {
		out += fmt.Sprintf("%-*s  %-*s  %s\n", idWidth, r.ID, titleWidth, r.Title, preview(r))
	}
	return out
}

func runResourcesOpen(ctx context.Context, p *portal, w io.Writer, id string) int {
	sess, ok := p.require(w, session.RoleStudent)
	if !ok {
		return exitUsage
	}

	gate := access.NewGate(p.client, sess.Role, p.blobs)
	list, err := gate.ListResources(ctx, "")
	if err != nil {
		return p.remoteFailure(w, err, sess.Role)
	}
	r, found := access.Find(list, id)
	if !found {
		fmt.Fprintf(w, "Error: resource %s not found\n", id)
		return exitUsage
	}

	ref, err := gate.OpenResource(ctx, r)
	switch {
	case errors.Is(err, access.ErrNoLink):
		fmt.Fprintln(w, "Error: no file is attached to this resource")
		return exitUsage
	case errors.Is(err, access.ErrNoPreview):
		fmt.Fprintln(w, "Error: preview not available for this file type")
		return exitUsage
	case err != nil:
		return p.remoteFailure(w, err, sess.Role)
	}

	v := viewer.New(p.blobs, viewer.Mark(p.cfg.Watermark, sess.Email))
	if err := v.Open(ref, r.Title); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitRemote
	}
	if err := runViewer(v); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}
	return exitOK
}

func runResourcesUpload(ctx context.Context, p *portal, w io.Writer, batchID string, paths []string) int {
	if _, ok := p.require(w, session.RoleAdmin); !ok {
		return exitUsage
	}

	progress := func(done, total int) {
		fmt.Fprintf(w, "[%d/%d] uploaded %s\n", done, total, filepath.Base(paths[done-1]))
	}
	result, err := upload.NewUploader(p.client).Upload(ctx, batchID, paths, progress)
	if err != nil {
		if result.Failed == "" {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitUsage
		}
		return p.remoteFailure(w, err, session.RoleAdmin)
	}

	if IsJSONOutput() {
		printJSON(w, result)
		return exitOK
	}
	fmt.Fprintf(w, "Uploaded %d file(s) to batch %s\n", len(result.Uploaded), batchID)
	return exitOK
}

func runResourcesDelete(ctx context.Context, p *portal, w io.Writer, id string) int {
	sess, ok := p.require(w)
	if !ok {
		return exitUsage
	}

	gate := access.NewGate(p.client, sess.Role, p.blobs)
	if err := gate.DeleteResource(ctx, id); err != nil {
		if errors.Is(err, access.ErrForbidden) {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitUsage
		}
		return p.remoteFailure(w, err, sess.Role)
	}
	fmt.Fprintf(w, "Deleted resource %s\n", id)
	return exitOK
}
