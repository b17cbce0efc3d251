// ABOUTME: Client-side auth gateway for admin and student logins
// ABOUTME: Exchanges credentials plus device id for a token and owns logout

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/steadystudy/studyportal/internal/client"
	"github.com/steadystudy/studyportal/internal/recent"
	"github.com/steadystudy/studyportal/internal/session"
	"github.com/steadystudy/studyportal/internal/storage"
)

// API is the subset of the portal client used for authentication
type API interface {
	AdminLogin(ctx context.Context, req client.LoginRequest) (*client.LoginResponse, error)
	StudentLogin(ctx context.Context, req client.LoginRequest) (*client.LoginResponse, error)
	AdminLogout(ctx context.Context, deviceID string) error
	StudentLogout(ctx context.Context, deviceID string) error
}

// DeviceSource provides the persistent device identifier
type DeviceSource interface {
	DeviceID() (string, error)
}

// Gateway performs login and logout and is the only writer of the session store
type Gateway struct {
	api      API
	sessions *session.Store
	devices  DeviceSource
	kv       storage.KV
}

// NewGateway creates a gateway; kv holds the recent-email lists
func NewGateway(api API, sessions *session.Store, devices DeviceSource, kv storage.KV) *Gateway {
	return &Gateway{
		api:      api,
		sessions: sessions,
		devices:  devices,
		kv:       kv,
	}
}

// RecentEmails returns the autocomplete list for role
func (g *Gateway) RecentEmails(role session.Role) []string {
	return recent.New(g.kv, role).List()
}

// Login authenticates creds for role and stores the resulting session.
// On any failure the session store is left as it was.
func (g *Gateway) Login(ctx context.Context, creds Credentials, role session.Role) (session.Session, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if err := creds.Validate(); err != nil {
		return session.Session{}, err
	}

	deviceID, err := g.devices.DeviceID()
	if err != nil {
		return session.Session{}, &LoginError{Message: "Could not determine device id", Err: err}
	}

	req := client.LoginRequest{
		Email:    creds.Email,
		Password: creds.Password,
		DeviceID: deviceID,
	}

	var resp *client.LoginResponse
	switch role {
	case session.RoleAdmin:
		resp, err = g.api.AdminLogin(ctx, req)
	case session.RoleStudent:
		resp, err = g.api.StudentLogin(ctx, req)
	default:
		return session.Session{}, fmt.Errorf("unknown role %q", role)
	}
	if err != nil {
		msg := client.ServerMessage(err)
		if msg == "" {
			msg = DefaultLoginFailure
		}
		slog.Warn("Login rejected", "role", role, "device_id", deviceID, "error", err)
		return session.Session{}, &LoginError{Message: msg, Err: err}
	}
	if resp == nil || resp.Token == "" {
		return session.Session{}, &LoginError{Message: DefaultLoginFailure, Err: fmt.Errorf("login response carried no token")}
	}

	sess := session.Session{
		Token:    resp.Token,
		Role:     role,
		Email:    creds.Email,
		DeviceID: deviceID,
	}
	if role == session.RoleStudent {
		sess.DisplayName = resp.Name
	}

	if err := g.sessions.Replace(sess); err != nil {
		return session.Session{}, &LoginError{Message: "Could not save session", Err: err}
	}

	if err := recent.New(g.kv, role).Add(creds.Email); err != nil {
		slog.Warn("Failed to record recent email", "role", role, "error", err)
	}

	slog.Info("Login succeeded", "role", role, "device_id", deviceID)
	return sess, nil
}

// Logout tells the server this device's session has ended, then clears the
// local session whether or not the server call succeeded.
func (g *Gateway) Logout(ctx context.Context) error {
	sess, ok := g.sessions.Current()
	if !ok {
		return nil
	}

	deviceID := sess.DeviceID
	if deviceID == "" {
		deviceID, _ = g.devices.DeviceID()
	}

	var serverErr error
	switch sess.Role {
	case session.RoleAdmin:
		serverErr = g.api.AdminLogout(ctx, deviceID)
	case session.RoleStudent:
		serverErr = g.api.StudentLogout(ctx, deviceID)
	default:
		serverErr = fmt.Errorf("unknown role %q", sess.Role)
	}

	if err := g.sessions.Clear(); err != nil {
		return fmt.Errorf("failed to clear local session: %w", err)
	}

	if serverErr != nil {
		slog.Warn("Logout not confirmed by server", "role", sess.Role, "device_id", deviceID, "error", serverErr)
		return fmt.Errorf("%w: %w", ErrLogoutNotConfirmed, serverErr)
	}

	slog.Info("Logged out", "role", sess.Role, "device_id", deviceID)
	return nil
}
