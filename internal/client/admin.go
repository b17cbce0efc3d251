// ABOUTME: Admin roster calls for students and batches
// ABOUTME: Enrollment and password resets return credential CSVs

package client

import (
	"context"
	"net/http"
)

// Students calls GET /admin/students
func (c *Client) Students(ctx context.Context) ([]Student, error) {
	var students []Student
	if err := c.doJSON(ctx, http.MethodGet, "/admin/students", nil, &students, true); err != nil {
		return nil, err
	}
	return students, nil
}

// Batches calls GET /admin/batches
func (c *Client) Batches(ctx context.Context) ([]Batch, error) {
	var batches []Batch
	if err := c.doJSON(ctx, http.MethodGet, "/admin/batches", nil, &batches, true); err != nil {
		return nil, err
	}
	return batches, nil
}

// CreateBatch calls POST /admin/create-batch
func (c *Client) CreateBatch(ctx context.Context, title string) error {
	return c.doJSON(ctx, http.MethodPost, "/admin/create-batch", CreateBatchRequest{Title: title}, nil, true)
}

// EnrollStudent calls POST /admin/enroll-student and returns the credentials CSV
func (c *Client) EnrollStudent(ctx context.Context, req EnrollStudentRequest) ([]byte, error) {
	return c.doBinary(ctx, http.MethodPost, "/admin/enroll-student", req)
}

// ResetStudentPassword calls PUT /admin/reset-password and returns the credentials CSV
func (c *Client) ResetStudentPassword(ctx context.Context, studentID string) ([]byte, error) {
	return c.doBinary(ctx, http.MethodPut, "/admin/reset-password", StudentRef{StudentID: studentID})
}

// SetDeviceLimit calls PUT /admin/set-student-device-limit
func (c *Client) SetDeviceLimit(ctx context.Context, studentID string, limit int) error {
	req := DeviceLimitRequest{StudentID: studentID, DeviceLimit: limit}
	return c.doJSON(ctx, http.MethodPut, "/admin/set-student-device-limit", req, nil, true)
}

// AssignBatches calls PUT /admin/assign-batches
func (c *Client) AssignBatches(ctx context.Context, studentID string, batchIDs []string) error {
	if batchIDs == nil {
		batchIDs = []string{}
	}
	req := AssignBatchesRequest{StudentID: studentID, BatchIDs: batchIDs}
	return c.doJSON(ctx, http.MethodPut, "/admin/assign-batches", req, nil, true)
}
