// ABOUTME: Request and response types for the portal API
// ABOUTME: Mirrors the JSON shapes exchanged with the backend

package client

import (
	"net/url"
	"strings"
)

// LoginRequest is the body of POST /admin/login and POST /student/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	DeviceID string `json:"deviceId"`
}

// LoginResponse is the body returned by a successful login
type LoginResponse struct {
	Token string `json:"token"`
	Name  string `json:"name,omitempty"`
}

// LogoutRequest is the body of the logout endpoints
type LogoutRequest struct {
	DeviceID string `json:"deviceId"`
}

// Resource describes an uploaded study document
type Resource struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
}

// HasLink reports whether the resource has a downloadable artifact
func (r Resource) HasLink() bool {
	return strings.TrimSpace(r.URL) != ""
}

// IsPDF reports whether the resource URL names a .pdf file, ignoring query and case
func (r Resource) IsPDF() bool {
	if !r.HasLink() {
		return false
	}
	clean := r.URL
	if i := strings.IndexAny(clean, "?#"); i >= 0 {
		clean = clean[:i]
	}
	if u, err := url.PathUnescape(clean); err == nil {
		clean = u
	}
	return strings.HasSuffix(strings.ToLower(clean), ".pdf")
}

// Batch is a named group of students sharing resources
type Batch struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
}

// Student is an enrolled student as returned by GET /admin/students
type Student struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	DeviceLimit int     `json:"deviceLimit"`
	Batches     []Batch `json:"batchIds,omitempty"`
}

// InBatch reports whether the student is assigned to batchID
func (s Student) InBatch(batchID string) bool {
	for _, b := range s.Batches {
		if b.ID == batchID {
			return true
		}
	}
	return false
}

// CreateBatchRequest is the body of POST /admin/create-batch
type CreateBatchRequest struct {
	Title string `json:"title"`
}

// EnrollStudentRequest is the body of POST /admin/enroll-student
type EnrollStudentRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// StudentRef is the body of PUT /admin/reset-password
type StudentRef struct {
	StudentID string `json:"studentId"`
}

// DeviceLimitRequest is the body of PUT /admin/set-student-device-limit
type DeviceLimitRequest struct {
	StudentID   string `json:"studentId"`
	DeviceLimit int    `json:"deviceLimit"`
}

// AssignBatchesRequest is the body of PUT /admin/assign-batches
type AssignBatchesRequest struct {
	StudentID string   `json:"studentId"`
	BatchIDs  []string `json:"batchIds"`
}

// EmailRequest is the body of PUT /student/reset-password
type EmailRequest struct {
	Email string `json:"email"`
}
