// ABOUTME: Recently used login emails for input autocomplete
// ABOUTME: Keeps a per-role, de-duplicated, most-recent-first list capped at five entries

package recent

import (
	"encoding/json"
	"fmt"

	"github.com/steadystudy/studyportal/internal/session"
	"github.com/steadystudy/studyportal/internal/storage"
)

// MaxRecentEmails is the maximum number of emails kept per role
const MaxRecentEmails = 5

// Emails manages the recent-email list for one role.
// The list is a convenience only and never grants access.
type Emails struct {
	kv  storage.KV
	key string
}

// New creates the recent-email list for role
func New(kv storage.KV, role session.Role) *Emails {
	key := storage.KeyRecentStudentEmails
	if role == session.RoleAdmin {
		key = storage.KeyRecentAdminEmails
	}
	return &Emails{kv: kv, key: key}
}

// List returns the stored emails, most recent first
func (e *Emails) List() []string {
	raw, ok := e.kv.Get(e.key)
	if !ok || raw == "" {
		return []string{}
	}

	var emails []string
	if err := json.Unmarshal([]byte(raw), &emails); err != nil {
		// Invalid JSON, start fresh
		return []string{}
	}

	// Normalize lists written by older clients or edited by hand
	out := make([]string, 0, len(emails))
	for i := len(emails) - 1; i >= 0; i-- {
		out = Push(out, emails[i])
	}
	return out
}

// Add moves email to the front of the list and persists it
func (e *Emails) Add(email string) error {
	emails := Push(e.List(), email)

	data, err := json.Marshal(emails)
	if err != nil {
		return fmt.Errorf("failed to encode recent emails: %w", err)
	}
	return e.kv.Update(map[string]string{e.key: string(data)})
}

// Push returns list with email at the front, duplicates removed, trimmed to MaxRecentEmails
func Push(list []string, email string) []string {
	if email == "" {
		return list
	}

	out := make([]string, 0, len(list)+1)
	out = append(out, email)
	for _, existing := range list {
		if existing != email && existing != "" {
			out = append(out, existing)
		}
	}

	if len(out) > MaxRecentEmails {
		out = out[:MaxRecentEmails]
	}
	return out
}
