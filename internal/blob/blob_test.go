// ABOUTME: Tests for the blob registry
// ABOUTME: Covers create, resolve, and revoke lifecycle

package blob

import (
	"strings"
	"testing"
)

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry()

	ref := r.Create([]byte("%PDF-1.4"), "application/pdf")
	if !strings.HasPrefix(ref, Scheme) {
		t.Errorf("expected ref with %s prefix, got %s", Scheme, ref)
	}
	if r.Len() != 1 {
		t.Errorf("expected 1 outstanding ref, got %d", r.Len())
	}

	obj, ok := r.Resolve(ref)
	if !ok || string(obj.Data) != "%PDF-1.4" || obj.ContentType != "application/pdf" {
		t.Errorf("unexpected object %+v (ok=%v)", obj, ok)
	}

	other := r.Create(nil, "")
	if other == ref {
		t.Error("expected distinct refs")
	}

	r.Revoke(ref)
	if _, ok := r.Resolve(ref); ok {
		t.Error("expected revoked ref to be gone")
	}
	r.Revoke(ref)
	r.Revoke("https://example.com/doc.pdf")
	if r.Len() != 1 {
		t.Errorf("expected 1 outstanding ref, got %d", r.Len())
	}
}
