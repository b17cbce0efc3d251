// ABOUTME: Viewer state for one open document: page, zoom, and rotation
// ABOUTME: Owns at most one blob ref and revokes it on open and close

package viewer

import (
	"fmt"
	"math"

	"github.com/steadystudy/studyportal/internal/blob"
	"github.com/steadystudy/studyportal/internal/document"
)

const (
	// ScaleStep is the zoom increment
	ScaleStep = 0.2
	// MinScale is the zoom floor; there is no ceiling
	MinScale = 0.6
)

// Viewer tracks navigation over the currently open document
type Viewer struct {
	blobs     *blob.Registry
	watermark string

	ref      string
	title    string
	doc      *document.Document
	page     int
	numPages int
	scale    float64
	rotation int
}

// New creates a closed viewer; watermark is stamped on every rendered page
func New(blobs *blob.Registry, watermark string) *Viewer {
	v := &Viewer{blobs: blobs, watermark: watermark}
	v.reset()
	return v
}

func (v *Viewer) reset() {
	v.page = 1
	v.numPages = 0
	v.scale = 1
	v.rotation = 0
}

// Open shows the document behind ref, releasing any previously open one
func (v *Viewer) Open(ref, title string) error {
	v.Close()

	obj, ok := v.blobs.Resolve(ref)
	if !ok {
		return fmt.Errorf("document %s is no longer available", ref)
	}
	doc, err := document.Parse(obj.Data)
	if err != nil {
		v.blobs.Revoke(ref)
		return fmt.Errorf("failed to load %q: %w", title, err)
	}

	v.ref = ref
	v.title = title
	v.doc = doc
	v.SetNumPages(doc.NumPages())
	return nil
}

// Close releases the open document and resets navigation state
func (v *Viewer) Close() {
	if v.ref != "" {
		v.blobs.Revoke(v.ref)
	}
	v.ref = ""
	v.title = ""
	v.doc = nil
	v.reset()
}

// SetNumPages records the page count reported once the document has loaded
func (v *Viewer) SetNumPages(n int) {
	v.numPages = max(n, 0)
	if v.page > v.numPages && v.numPages > 0 {
		v.page = v.numPages
	}
}

// Next advances one page, stopping at the last
func (v *Viewer) Next() {
	if v.numPages < 1 {
		return
	}
	v.page = min(v.page+1, v.numPages)
}

// Prev goes back one page, stopping at the first
func (v *Viewer) Prev() {
	v.page = max(v.page-1, 1)
}

// ZoomIn increases scale by one step
func (v *Viewer) ZoomIn() {
	v.scale = round2(v.scale + ScaleStep)
}

// ZoomOut decreases scale by one step, never below MinScale
func (v *Viewer) ZoomOut() {
	v.scale = math.Max(MinScale, round2(v.scale-ScaleStep))
}

// Rotate turns the page 90 degrees clockwise
func (v *Viewer) Rotate() {
	v.rotation = (v.rotation + 90) % 360
}

// PageText returns the text of the current page
func (v *Viewer) PageText() (string, error) {
	if v.doc == nil {
		return "", fmt.Errorf("no document open")
	}
	return v.doc.PageText(v.page)
}

func (v *Viewer) IsOpen() bool      { return v.ref != "" }
func (v *Viewer) Ref() string       { return v.ref }
func (v *Viewer) Title() string     { return v.title }
func (v *Viewer) Page() int         { return v.page }
func (v *Viewer) NumPages() int     { return v.numPages }
func (v *Viewer) Scale() float64    { return v.scale }
func (v *Viewer) Rotation() int     { return v.rotation }
func (v *Viewer) Watermark() string { return v.watermark }

// Mark combines the portal watermark with the viewer's email
func Mark(base, email string) string {
	if email == "" {
		return base
	}
	return base + " · " + email
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
