// ABOUTME: Tests for the device identity provider
// ABOUTME: Checks format, idempotence, and that cached ids are never regenerated

package device

import (
	"regexp"
	"testing"

	"github.com/steadystudy/studyportal/internal/storage"
)

var idPattern = regexp.MustCompile(`^WEB-[0-9A-Z]{8}$`)

func TestDeviceIDFormat(t *testing.T) {
	p := NewProvider(storage.NewMemory())

	id, err := p.DeviceID()
	if err != nil {
		t.Fatalf("DeviceID() error: %v", err)
	}
	if !idPattern.MatchString(id) {
		t.Errorf("device id %q does not match %s", id, idPattern)
	}
}

func TestDeviceIDIdempotent(t *testing.T) {
	kv := storage.NewMemory()
	p := NewProvider(kv)

	first, _ := p.DeviceID()
	for i := 0; i < 10; i++ {
		next, err := p.DeviceID()
		if err != nil {
			t.Fatalf("DeviceID() error: %v", err)
		}
		if next != first {
			t.Fatalf("expected %q on call %d, got %q", first, i, next)
		}
	}

	// A fresh provider over the same storage sees the same id
	if again, _ := NewProvider(kv).DeviceID(); again != first {
		t.Errorf("expected %q from new provider, got %q", first, again)
	}
}

func TestDeviceIDUsesCachedValue(t *testing.T) {
	kv := storage.NewMemory()
	kv.Update(map[string]string{storage.KeyDeviceID: "WEB-ABC12345"})

	p := NewProvider(kv)
	p.random = func() string {
		t.Fatal("random suffix should not be generated when an id is cached")
		return ""
	}

	id, err := p.DeviceID()
	if err != nil {
		t.Fatalf("DeviceID() error: %v", err)
	}
	if id != "WEB-ABC12345" {
		t.Errorf("expected cached id, got %q", id)
	}
}

func TestDeviceIDPersistFailure(t *testing.T) {
	kv := storage.NewMemory()
	kv.FailWrites = true

	if _, err := NewProvider(kv).DeviceID(); err == nil {
		t.Error("expected error when the id cannot be persisted")
	}
}

func TestDistinctStoresGetDistinctIDs(t *testing.T) {
	a, _ := NewProvider(storage.NewMemory()).DeviceID()
	b, _ := NewProvider(storage.NewMemory()).DeviceID()
	if a == b {
		t.Errorf("expected distinct ids for separate stores, both %q", a)
	}
}

func TestRandomSuffixUsesWholeAlphabetInFirstPosition(t *testing.T) {
	seen := map[byte]bool{}
	for range 500 {
		s := randomSuffix()
		if len(s) != suffixLength {
			t.Fatalf("expected %d characters, got %q", suffixLength, s)
		}
		seen[s[0]] = true
	}
	for c := byte('G'); c <= 'Z'; c++ {
		if seen[c] {
			return
		}
	}
	t.Errorf("expected a leading character above F in 500 suffixes, saw %v", seen)
}
