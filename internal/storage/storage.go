// ABOUTME: Persistent key/value storage for client-side session state
// ABOUTME: Backs device identity, tokens, and recent emails with a JSON file in the config dir

package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Keys used by the portal client
const (
	KeyToken               = "token"
	KeyRole                = "role"
	KeyDeviceID            = "deviceId"
	KeyRecentAdminEmails   = "recentAdminEmails"
	KeyRecentStudentEmails = "recentStudentEmails"
	KeyStudentEmail        = "studentEmail"
	KeyStudentName         = "studentName"
	KeyAdminEmail          = "adminEmail"
)

// KV is the storage contract consumed by the session, device, and recent-email layers.
// Update applies all sets and removals as one write; on error nothing changes.
type KV interface {
	Get(key string) (string, bool)
	Update(set map[string]string, remove ...string) error
}

// File is a KV persisted as a JSON object on disk
type File struct {
	dir  string
	mu   sync.Mutex
	data map[string]string
}

// Open loads the store from dir, treating a missing or corrupt file as empty
func Open(dir string) (*File, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage directory not set")
	}

	f := &File{dir: dir, data: map[string]string{}}

	raw, err := os.ReadFile(f.path())
	if os.IsNotExist(err) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read storage: %w", err)
	}

	var data map[string]string
	if err := json.Unmarshal(raw, &data); err != nil {
		// Invalid JSON, start fresh
		return f, nil
	}
	if data != nil {
		f.data = data
	}
	return f, nil
}

// path returns the location of the storage file
func (f *File) path() string {
	return filepath.Join(f.dir, "storage.json")
}

// Get returns the value stored under key
func (f *File) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	v, ok := f.data[key]
	return v, ok
}

// Update applies set and remove, then persists the result
func (f *File) Update(set map[string]string, remove ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	next := make(map[string]string, len(f.data)+len(set))
	for k, v := range f.data {
		next[k] = v
	}
	for k, v := range set {
		next[k] = v
	}
	for _, k := range remove {
		delete(next, k)
	}

	if err := f.write(next); err != nil {
		return err
	}
	f.data = next
	return nil
}

// write persists data atomically via a temp file and rename
func (f *File) write(data map[string]string) error {
	if err := os.MkdirAll(f.dir, 0700); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode storage: %w", err)
	}

	tmp, err := os.CreateTemp(f.dir, "storage-*.json")
	if err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmpName, f.path()); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

// Memory is an in-process KV with no persistence
type Memory struct {
	mu   sync.Mutex
	data map[string]string

	// FailWrites makes every Update return an error, for exercising write failures
	FailWrites bool
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{data: map[string]string{}}
}

// Get returns the value stored under key
func (m *Memory) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.data[key]
	return v, ok
}

// Update applies set and remove
func (m *Memory) Update(set map[string]string, remove ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWrites {
		return fmt.Errorf("storage is read-only")
	}
	for k, v := range set {
		m.data[k] = v
	}
	for _, k := range remove {
		delete(m.data, k)
	}
	return nil
}

// Snapshot returns a copy of the stored values
func (m *Memory) Snapshot() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]string, len(m.data))
	for k, v := range m.data {
		out[k] = v
	}
	return out
}
