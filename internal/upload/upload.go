// ABOUTME: Sequential multi-file PDF upload into a batch
// ABOUTME: Validates every file before sending any and stops at the first failure

package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ErrNotPDF marks a selected file that is not a PDF
var ErrNotPDF = errors.New("only PDF files are allowed")

// API is the subset of the portal client used for uploads
type API interface {
	UploadResource(ctx context.Context, batchID, title, filename string, content io.Reader) error
}

// Result reports how far an upload run got
type Result struct {
	// Uploaded lists files accepted by the server, in order
	Uploaded []string
	// Failed is the file that stopped the run, empty on success
	Failed string
}

// Progress is called after each accepted file
type Progress func(done, total int)

// Validate checks every path is a readable PDF; one bad file rejects the whole selection
func Validate(paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("no files selected")
	}
	for _, path := range paths {
		if !strings.EqualFold(filepath.Ext(path), ".pdf") {
			return fmt.Errorf("%w: %s", ErrNotPDF, filepath.Base(path))
		}
		mtype, err := mimetype.DetectFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
		}
		if !mtype.Is("application/pdf") {
			return fmt.Errorf("%w: %s is %s", ErrNotPDF, filepath.Base(path), mtype.String())
		}
	}
	return nil
}

// Title is the resource title sent for path: its file name
func Title(path string) string {
	return filepath.Base(path)
}

// Uploader sends files to one batch
type Uploader struct {
	api API
}

// NewUploader creates an uploader
func NewUploader(api API) *Uploader {
	return &Uploader{api: api}
}

// Upload validates paths, then uploads them one at a time in order.
// Files uploaded before a failure stay uploaded.
func (u *Uploader) Upload(ctx context.Context, batchID string, paths []string, progress Progress) (Result, error) {
	var result Result
	if batchID == "" {
		return result, fmt.Errorf("a batch id is required")
	}
	if err := Validate(paths); err != nil {
		return result, err
	}

	for i, path := range paths {
		if err := u.UploadFile(ctx, batchID, path); err != nil {
			result.Failed = path
			slog.Warn("Upload stopped", "batch_id", batchID, "file", path, "uploaded", len(result.Uploaded), "error", err)
			return result, fmt.Errorf("upload of %s failed after %d of %d files: %w", filepath.Base(path), i, len(paths), err)
		}
		result.Uploaded = append(result.Uploaded, path)
		if progress != nil {
			progress(i+1, len(paths))
		}
	}

	slog.Info("Upload complete", "batch_id", batchID, "files", len(paths))
	return result, nil
}

// UploadFile sends one file without validating it; callers run Validate first
func (u *Uploader) UploadFile(ctx context.Context, batchID, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return u.api.UploadResource(ctx, batchID, Title(path), filepath.Base(path), f)
}
