// ABOUTME: Tests for the root command and global flag handling
// ABOUTME: Verifies environment variable and flag configuration precedence

package cmd

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/steadystudy/studyportal/internal/client"
	"github.com/steadystudy/studyportal/internal/config"
	"github.com/steadystudy/studyportal/internal/session"
	"github.com/steadystudy/studyportal/internal/storage"
)

// newTestPortal wires a portal to handler with in-memory storage
func newTestPortal(t *testing.T, handler http.HandlerFunc) (*portal, *storage.Memory) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	kv := storage.NewMemory()
	cfg := &config.Config{
		APIURL:      server.URL,
		ConfigDir:   t.TempDir(),
		HTTPTimeout: 5 * time.Second,
		Watermark:   config.DefaultWatermark,
	}
	return newPortal(cfg, kv), kv
}

// signIn stores a session for role without calling the server
func signIn(t *testing.T, p *portal, role session.Role) {
	t.Helper()
	err := p.sessions.Replace(session.Session{
		Token:    "T1",
		Role:     role,
		Email:    string(role) + "@example.com",
		DeviceID: "WEB-TEST0001",
	})
	if err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
}

func TestLoadConfig_Default(t *testing.T) {
	t.Setenv("STUDYPORTAL_API_URL", "")
	t.Setenv("STUDYPORTAL_CONFIG_DIR", t.TempDir())
	apiURL, configDir = "", ""

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != config.DefaultAPIURL {
		t.Errorf("expected default URL %s, got %s", config.DefaultAPIURL, cfg.APIURL)
	}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("STUDYPORTAL_API_URL", "http://backend.example.com/api/")
	t.Setenv("STUDYPORTAL_CONFIG_DIR", t.TempDir())
	apiURL, configDir = "", ""

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "http://backend.example.com/api" {
		t.Errorf("expected env URL without trailing slash, got %s", cfg.APIURL)
	}
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("STUDYPORTAL_API_URL", "http://backend.example.com/api")
	t.Setenv("STUDYPORTAL_CONFIG_DIR", "/env/dir")
	dir := t.TempDir()
	apiURL, configDir = "http://flag-override.example.com/api/", dir
	t.Cleanup(func() { apiURL, configDir = "", "" })

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "http://flag-override.example.com/api" {
		t.Errorf("expected flag to override env, got %s", cfg.APIURL)
	}
	if cfg.ConfigDir != dir {
		t.Errorf("expected config dir flag to win, got %s", cfg.ConfigDir)
	}
}

func TestLoadConfig_InvalidFlagURL(t *testing.T) {
	t.Setenv("STUDYPORTAL_CONFIG_DIR", t.TempDir())
	apiURL = "ftp://nope"
	t.Cleanup(func() { apiURL = "" })

	if _, err := loadConfig(); err == nil || !strings.Contains(err.Error(), "--api-url") {
		t.Errorf("expected --api-url error, got %v", err)
	}
}

func TestJSONOutput(t *testing.T) {
	jsonOutput = true
	defer func() { jsonOutput = false }()

	if !IsJSONOutput() {
		t.Error("expected IsJSONOutput to return true")
	}
}

func TestRequire_ExplainsLogin(t *testing.T) {
	p, _ := newTestPortal(t, http.NotFound)
	var buf bytes.Buffer

	if _, ok := p.require(&buf, session.RoleAdmin); ok {
		t.Fatal("expected require to fail without a session")
	}
	if !strings.Contains(buf.String(), "studyportal login --role admin") {
		t.Errorf("expected login hint, got %q", buf.String())
	}
}

func TestRemoteFailure_ExpiredSessionIsCleared(t *testing.T) {
	p, _ := newTestPortal(t, http.NotFound)
	signIn(t, p, session.RoleStudent)
	var buf bytes.Buffer

	err := &client.APIError{StatusCode: http.StatusUnauthorized, Message: "jwt expired"}
	if code := p.remoteFailure(&buf, err, session.RoleStudent); code != exitRemote {
		t.Errorf("expected exit code %d, got %d", exitRemote, code)
	}
	if _, ok := p.sessions.Current(); ok {
		t.Error("expected session cleared")
	}
	if !strings.Contains(buf.String(), "Session expired") {
		t.Errorf("expected expiry notice, got %q", buf.String())
	}
}

func TestRemoteFailure_OtherErrorsKeepSession(t *testing.T) {
	p, _ := newTestPortal(t, http.NotFound)
	signIn(t, p, session.RoleStudent)
	var buf bytes.Buffer

	p.remoteFailure(&buf, errors.New("boom"), session.RoleStudent)
	if _, ok := p.sessions.Current(); !ok {
		t.Error("expected session kept")
	}
	if buf.String() != "Error: boom\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}
