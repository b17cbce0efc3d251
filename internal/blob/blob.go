// ABOUTME: In-memory registry of fetched documents addressed by opaque refs
// ABOUTME: Refs are valid until revoked; the viewer holds at most one at a time

package blob

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Scheme prefixes every ref issued by a Registry
const Scheme = "blob:"

// Object is one registered payload
type Object struct {
	Data        []byte
	ContentType string
}

// Registry maps refs to payloads held in memory
type Registry struct {
	mu      sync.Mutex
	objects map[string]Object
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{objects: make(map[string]Object)}
}

// Create registers data and returns its ref
func (r *Registry) Create(data []byte, contentType string) string {
	ref := Scheme + uuid.NewString()
	r.mu.Lock()
	r.objects[ref] = Object{Data: data, ContentType: contentType}
	r.mu.Unlock()
	return ref
}

// Resolve returns the payload for ref
func (r *Registry) Resolve(ref string) (Object, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	obj, ok := r.objects[ref]
	return obj, ok
}

// Revoke releases ref; unknown refs are ignored
func (r *Registry) Revoke(ref string) {
	if !strings.HasPrefix(ref, Scheme) {
		return
	}
	r.mu.Lock()
	delete(r.objects, ref)
	r.mu.Unlock()
}

// Len returns the number of outstanding refs
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.objects)
}
