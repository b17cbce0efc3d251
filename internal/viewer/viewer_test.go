// ABOUTME: Tests for viewer navigation, zoom, rotation, and ref ownership
// ABOUTME: Documents come from generated PDF fixtures

package viewer

import (
	"testing"

	"github.com/steadystudy/studyportal/internal/blob"
	"github.com/steadystudy/studyportal/internal/document/pdftest"
)

func openThreePages(t *testing.T) (*Viewer, *blob.Registry) {
	t.Helper()
	blobs := blob.NewRegistry()
	v := New(blobs, "Steady-Study-8 • s@b.co")
	ref := blobs.Create(pdftest.Build("one", "two", "three"), "application/pdf")
	if err := v.Open(ref, "Notes"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return v, blobs
}

func TestNavigationClamps(t *testing.T) {
	v, _ := openThreePages(t)

	if v.NumPages() != 3 || v.Page() != 1 {
		t.Fatalf("expected page 1 of 3, got %d of %d", v.Page(), v.NumPages())
	}

	for range 5 {
		v.Next()
	}
	if v.Page() != 3 {
		t.Errorf("expected page 3 after overshooting, got %d", v.Page())
	}

	for range 5 {
		v.Prev()
	}
	if v.Page() != 1 {
		t.Errorf("expected page 1 after undershooting, got %d", v.Page())
	}
}

func TestNextWithoutPagesIsNoop(t *testing.T) {
	v := New(blob.NewRegistry(), "")
	v.Next()
	if v.Page() != 1 {
		t.Errorf("expected page 1, got %d", v.Page())
	}
}

func TestZoom(t *testing.T) {
	v := New(blob.NewRegistry(), "")

	v.ZoomIn()
	v.ZoomIn()
	if v.Scale() != 1.4 {
		t.Errorf("expected scale 1.4, got %v", v.Scale())
	}

	for range 10 {
		v.ZoomOut()
	}
	if v.Scale() != MinScale {
		t.Errorf("expected scale floor %v, got %v", MinScale, v.Scale())
	}

	for range 20 {
		v.ZoomIn()
	}
	if v.Scale() != 4.6 {
		t.Errorf("expected no zoom ceiling, got %v", v.Scale())
	}
}

func TestRotateCycles(t *testing.T) {
	v := New(blob.NewRegistry(), "")
	want := []int{90, 180, 270, 0}
	for i, w := range want {
		v.Rotate()
		if v.Rotation() != w {
			t.Errorf("rotation %d: expected %d, got %d", i+1, w, v.Rotation())
		}
	}
}

func TestCloseResetsAndRevokes(t *testing.T) {
	v, blobs := openThreePages(t)
	v.Next()
	v.ZoomIn()
	v.Rotate()

	v.Close()
	if v.IsOpen() {
		t.Error("expected viewer closed")
	}
	if v.Page() != 1 || v.Scale() != 1 || v.Rotation() != 0 {
		t.Errorf("expected reset state, got page=%d scale=%v rotation=%d", v.Page(), v.Scale(), v.Rotation())
	}
	if blobs.Len() != 0 {
		t.Errorf("expected ref revoked, %d outstanding", blobs.Len())
	}
}

func TestOpenReleasesPreviousRef(t *testing.T) {
	v, blobs := openThreePages(t)
	first := v.Ref()
	v.Next()
	v.ZoomIn()

	second := blobs.Create(pdftest.Build("a", "b"), "application/pdf")
	if err := v.Open(second, "Other"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := blobs.Resolve(first); ok {
		t.Error("expected first ref revoked")
	}
	if blobs.Len() != 1 {
		t.Errorf("expected exactly one outstanding ref, got %d", blobs.Len())
	}
	if v.Page() != 1 || v.Scale() != 1 || v.NumPages() != 2 {
		t.Errorf("expected fresh state, got page=%d scale=%v pages=%d", v.Page(), v.Scale(), v.NumPages())
	}
}

func TestOpenInvalidDocumentRevokes(t *testing.T) {
	blobs := blob.NewRegistry()
	v := New(blobs, "")
	ref := blobs.Create([]byte("not a pdf"), "application/pdf")

	if err := v.Open(ref, "Broken"); err == nil {
		t.Fatal("expected error")
	}
	if v.IsOpen() || blobs.Len() != 0 {
		t.Errorf("expected nothing held, open=%v outstanding=%d", v.IsOpen(), blobs.Len())
	}
}

func TestPageText(t *testing.T) {
	v, _ := openThreePages(t)
	v.Next()
	text, err := v.PageText()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text == "" {
		t.Error("expected text for page 2")
	}
}

func TestMark(t *testing.T) {
	if got := Mark("Steady-Study-8", "asha@example.com"); got != "Steady-Study-8 · asha@example.com" {
		t.Errorf("unexpected mark %q", got)
	}
	if got := Mark("Steady-Study-8", ""); got != "Steady-Study-8" {
		t.Errorf("expected bare mark, got %q", got)
	}
}
