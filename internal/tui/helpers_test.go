// ABOUTME: Test helpers for TUI app tests
// ABOUTME: Builds an App against an httptest backend with in-memory storage

package tui

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/steadystudy/studyportal/internal/auth"
	"github.com/steadystudy/studyportal/internal/blob"
	"github.com/steadystudy/studyportal/internal/client"
	"github.com/steadystudy/studyportal/internal/device"
	"github.com/steadystudy/studyportal/internal/session"
	"github.com/steadystudy/studyportal/internal/storage"
)

type testEnv struct {
	app      *App
	sessions *session.Store
	blobs    *blob.Registry
}

// newTestApp wires an App to handler; a nil handler answers 404 to everything
func newTestApp(t *testing.T, handler http.HandlerFunc) *testEnv {
	t.Helper()
	if handler == nil {
		handler = http.NotFound
	}
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	kv := storage.NewMemory()
	sessions := session.NewStore(kv)
	api := client.New(server.URL, client.WithTokenSource(sessions))
	blobs := blob.NewRegistry()

	deps := Deps{
		Client:    api,
		Gateway:   auth.NewGateway(api, sessions, device.NewProvider(kv), kv),
		Guard:     auth.NewGuard(sessions),
		Blobs:     blobs,
		Watermark: "Steady-Study-8",
	}
	return &testEnv{app: New(deps), sessions: sessions, blobs: blobs}
}

// signIn stores a session directly, bypassing the login endpoint
func (e *testEnv) signIn(t *testing.T, role session.Role) {
	t.Helper()
	err := e.sessions.Replace(session.Session{
		Token:    "T1",
		Role:     role,
		Email:    string(role) + "@example.com",
		DeviceID: "WEB-TEST0001",
	})
	if err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
}
