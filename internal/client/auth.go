// ABOUTME: Login and logout calls for admin and student principals
// ABOUTME: Logout calls carry the bearer token and device id

package client

import (
	"context"
	"net/http"
)

// AdminLogin calls POST /admin/login
func (c *Client) AdminLogin(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/admin/login", req, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StudentLogin calls POST /student/login
func (c *Client) StudentLogin(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/student/login", req, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AdminLogout calls POST /admin/logout
func (c *Client) AdminLogout(ctx context.Context, deviceID string) error {
	return c.doJSON(ctx, http.MethodPost, "/admin/logout", LogoutRequest{DeviceID: deviceID}, nil, true)
}

// StudentLogout calls POST /student/logout
func (c *Client) StudentLogout(ctx context.Context, deviceID string) error {
	return c.doJSON(ctx, http.MethodPost, "/student/logout", LogoutRequest{DeviceID: deviceID}, nil, true)
}

// StudentResetPassword calls PUT /student/reset-password and returns the CSV body
func (c *Client) StudentResetPassword(ctx context.Context, email string) ([]byte, error) {
	return c.doBinary(ctx, http.MethodPut, "/student/reset-password", EmailRequest{Email: email})
}
