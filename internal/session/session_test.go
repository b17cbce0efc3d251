// ABOUTME: Tests for the session store
// ABOUTME: Verifies token-presence semantics, replacement, and clearing

package session

import (
	"testing"

	"github.com/steadystudy/studyportal/internal/storage"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		input   string
		want    Role
		wantErr bool
	}{
		{"admin", RoleAdmin, false},
		{"Student", RoleStudent, false},
		{" student ", RoleStudent, false},
		{"tutor", "", true},
		{"", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseRole(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseRole(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ParseRole(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestCurrentWithoutToken(t *testing.T) {
	kv := storage.NewMemory()
	// Stale echo fields without a token still mean logged out
	kv.Update(map[string]string{
		storage.KeyRole:         "student",
		storage.KeyStudentEmail: "a@example.com",
	})

	if _, ok := NewStore(kv).Current(); ok {
		t.Error("expected no session without a token")
	}
}

func TestReplaceStudent(t *testing.T) {
	kv := storage.NewMemory()
	s := NewStore(kv)

	err := s.Replace(Session{
		Token:       "tok",
		Role:        RoleStudent,
		DisplayName: "Asha",
		Email:       "asha@example.com",
		DeviceID:    "WEB-ABC12345",
	})
	if err != nil {
		t.Fatalf("Replace() error: %v", err)
	}

	sess, ok := s.Current()
	if !ok {
		t.Fatal("expected session")
	}
	if sess.Token != "tok" || sess.Role != RoleStudent {
		t.Errorf("unexpected session %+v", sess)
	}
	if sess.Email != "asha@example.com" || sess.DisplayName != "Asha" {
		t.Errorf("unexpected echo fields %+v", sess)
	}
	if sess.DeviceID != "WEB-ABC12345" {
		t.Errorf("expected device id, got %q", sess.DeviceID)
	}
}

func TestReplaceAdminDropsStudentFields(t *testing.T) {
	kv := storage.NewMemory()
	s := NewStore(kv)
	s.Replace(Session{Token: "t1", Role: RoleStudent, Email: "s@example.com", DisplayName: "S"})

	if err := s.Replace(Session{Token: "t2", Role: RoleAdmin, Email: "admin@example.com"}); err != nil {
		t.Fatalf("Replace() error: %v", err)
	}

	snap := kv.Snapshot()
	if _, ok := snap[storage.KeyStudentEmail]; ok {
		t.Error("expected student email removed on admin login")
	}
	if _, ok := snap[storage.KeyStudentName]; ok {
		t.Error("expected student name removed on admin login")
	}

	sess, _ := s.Current()
	if sess.Email != "admin@example.com" || sess.Role != RoleAdmin {
		t.Errorf("unexpected session %+v", sess)
	}
}

func TestReplaceRejectsEmptyToken(t *testing.T) {
	kv := storage.NewMemory()
	if err := NewStore(kv).Replace(Session{Role: RoleAdmin}); err == nil {
		t.Error("expected error for empty token")
	}
	if len(kv.Snapshot()) != 0 {
		t.Error("expected no writes for rejected session")
	}
}

func TestClearKeepsDeviceAndRecents(t *testing.T) {
	kv := storage.NewMemory()
	kv.Update(map[string]string{storage.KeyRecentStudentEmails: `["a@example.com"]`})
	s := NewStore(kv)
	s.Replace(Session{Token: "tok", Role: RoleStudent, Email: "a@example.com", DeviceID: "WEB-1"})

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}

	if _, ok := s.Current(); ok {
		t.Error("expected no session after Clear")
	}
	snap := kv.Snapshot()
	if snap[storage.KeyDeviceID] != "WEB-1" {
		t.Error("expected device id to survive Clear")
	}
	if snap[storage.KeyRecentStudentEmails] == "" {
		t.Error("expected recent emails to survive Clear")
	}
}
