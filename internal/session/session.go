// ABOUTME: Session model and the single authoritative session store
// ABOUTME: A session exists iff a token is stored; all writes go through Replace and Clear

package session

import (
	"fmt"
	"strings"

	"github.com/steadystudy/studyportal/internal/storage"
)

// Role identifies the kind of principal behind a session
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// ParseRole converts user input into a Role
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleStudent:
		return RoleStudent, nil
	default:
		return "", fmt.Errorf("unknown role %q (expected admin or student)", s)
	}
}

// String returns the role name
func (r Role) String() string {
	return string(r)
}

// Session is one authenticated principal bound to one device
type Session struct {
	Token       string `json:"-"`
	Role        Role   `json:"role"`
	DisplayName string `json:"display_name,omitempty"`
	Email       string `json:"email,omitempty"`
	DeviceID    string `json:"device_id"`
}

// sessionKeys are cleared on logout; deviceId and recent emails survive
var sessionKeys = []string{
	storage.KeyToken,
	storage.KeyRole,
	storage.KeyStudentEmail,
	storage.KeyStudentName,
	storage.KeyAdminEmail,
}

// Store reads and writes the current session in client storage
type Store struct {
	kv storage.KV
}

// NewStore creates a session store over kv
func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// Token returns the bearer token, empty when logged out
func (s *Store) Token() string {
	token, _ := s.kv.Get(storage.KeyToken)
	return token
}

// Current returns the stored session; ok is false when no token is present
func (s *Store) Current() (Session, bool) {
	token := s.Token()
	if token == "" {
		return Session{}, false
	}

	role, _ := s.kv.Get(storage.KeyRole)
	deviceID, _ := s.kv.Get(storage.KeyDeviceID)
	sess := Session{
		Token:    token,
		Role:     Role(role),
		DeviceID: deviceID,
	}

	switch sess.Role {
	case RoleStudent:
		sess.Email, _ = s.kv.Get(storage.KeyStudentEmail)
		sess.DisplayName, _ = s.kv.Get(storage.KeyStudentName)
	case RoleAdmin:
		sess.Email, _ = s.kv.Get(storage.KeyAdminEmail)
	}
	return sess, true
}

// Replace stores sess as the current session in a single write
func (s *Store) Replace(sess Session) error {
	if sess.Token == "" {
		return fmt.Errorf("session token is empty")
	}

	set := map[string]string{
		storage.KeyToken: sess.Token,
		storage.KeyRole:  string(sess.Role),
	}
	if sess.DeviceID != "" {
		set[storage.KeyDeviceID] = sess.DeviceID
	}

	// Drop echo fields from any previous session before writing the new ones
	var remove []string
	switch sess.Role {
	case RoleStudent:
		set[storage.KeyStudentEmail] = sess.Email
		if sess.DisplayName != "" {
			set[storage.KeyStudentName] = sess.DisplayName
		} else {
			remove = append(remove, storage.KeyStudentName)
		}
		remove = append(remove, storage.KeyAdminEmail)
	case RoleAdmin:
		set[storage.KeyAdminEmail] = sess.Email
		remove = append(remove, storage.KeyStudentEmail, storage.KeyStudentName)
	default:
		return fmt.Errorf("unknown role %q", sess.Role)
	}

	return s.kv.Update(set, remove...)
}

// Clear removes the current session
func (s *Store) Clear() error {
	return s.kv.Update(nil, sessionKeys...)
}
