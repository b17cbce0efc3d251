// ABOUTME: Resource access gate: role permissions, listing, and preview rules
// ABOUTME: Fetches student documents into the blob registry for in-app viewing

package access

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/steadystudy/studyportal/internal/blob"
	"github.com/steadystudy/studyportal/internal/client"
	"github.com/steadystudy/studyportal/internal/session"
)

var (
	// ErrNoPreview marks a resource that is not a PDF
	ErrNoPreview = errors.New("preview not supported")
	// ErrNoLink marks a resource without a downloadable artifact
	ErrNoLink = errors.New("resource has no file")
	// ErrForbidden marks an operation the session's role may not perform
	ErrForbidden = errors.New("operation not permitted for this role")
)

// Op is a resource operation subject to role checks
type Op string

const (
	OpListOwn   Op = "list-own"
	OpListBatch Op = "list-batch"
	OpOpen      Op = "open"
	OpUpload    Op = "upload"
	OpDelete    Op = "delete"
)

var permissions = map[session.Role][]Op{
	session.RoleStudent: {OpListOwn, OpOpen},
	session.RoleAdmin:   {OpListBatch, OpUpload, OpDelete},
}

// Permitted reports whether role may perform op
func Permitted(role session.Role, op Op) bool {
	for _, allowed := range permissions[role] {
		if allowed == op {
			return true
		}
	}
	return false
}

// Preview classifies how a resource can be shown
type Preview int

const (
	PreviewNoLink Preview = iota
	PreviewUnsupported
	PreviewPDF
)

func (p Preview) String() string {
	switch p {
	case PreviewPDF:
		return "pdf"
	case PreviewUnsupported:
		return "preview not supported"
	default:
		return "no file"
	}
}

// API is the subset of the portal client used by the gate
type API interface {
	StudentResources(ctx context.Context) ([]client.Resource, error)
	StudentResourceFile(ctx context.Context, id string) ([]byte, error)
	BatchResources(ctx context.Context, batchID string) ([]client.Resource, error)
	DeleteResource(ctx context.Context, id string) error
}

// Gate applies role rules to resource operations for the current session
type Gate struct {
	api   API
	role  session.Role
	blobs *blob.Registry
}

// NewGate creates a gate acting as role
func NewGate(api API, role session.Role, blobs *blob.Registry) *Gate {
	return &Gate{api: api, role: role, blobs: blobs}
}

func (g *Gate) require(op Op) error {
	if !Permitted(g.role, op) {
		return fmt.Errorf("%w: %s cannot %s", ErrForbidden, g.role, op)
	}
	return nil
}

// ListResources returns the resources visible to the session. Students see
// their own batches' resources and must not pass batchID; admins must.
func (g *Gate) ListResources(ctx context.Context, batchID string) ([]client.Resource, error) {
	switch g.role {
	case session.RoleStudent:
		if batchID != "" {
			return nil, fmt.Errorf("%w: students cannot select a batch", ErrForbidden)
		}
		return g.api.StudentResources(ctx)
	case session.RoleAdmin:
		if batchID == "" {
			return nil, fmt.Errorf("a batch id is required")
		}
		return g.api.BatchResources(ctx, batchID)
	default:
		return nil, fmt.Errorf("%w: unknown role %q", ErrForbidden, g.role)
	}
}

// Preview reports whether r can be opened in the viewer
func (g *Gate) Preview(r client.Resource) Preview {
	switch {
	case !r.HasLink():
		return PreviewNoLink
	case !r.IsPDF():
		return PreviewUnsupported
	default:
		return PreviewPDF
	}
}

// OpenResource fetches r's document and returns a blob ref for the viewer.
// Resources that cannot be previewed are refused without a request.
func (g *Gate) OpenResource(ctx context.Context, r client.Resource) (string, error) {
	if err := g.require(OpOpen); err != nil {
		return "", err
	}
	switch g.Preview(r) {
	case PreviewNoLink:
		return "", ErrNoLink
	case PreviewUnsupported:
		return "", ErrNoPreview
	}

	data, err := g.api.StudentResourceFile(ctx, r.ID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %q: %w", r.Title, err)
	}

	ref := g.blobs.Create(data, "application/pdf")
	slog.Debug("Fetched resource", "id", r.ID, "bytes", len(data), "ref", ref)
	return ref, nil
}

// DeleteResource removes resource id
func (g *Gate) DeleteResource(ctx context.Context, id string) error {
	if err := g.require(OpDelete); err != nil {
		return err
	}
	return g.api.DeleteResource(ctx, id)
}

// Find returns the resource with id from list
func Find(list []client.Resource, id string) (client.Resource, bool) {
	for _, r := range list {
		if r.ID == id {
			return r, true
		}
	}
	return client.Resource{}, false
}
