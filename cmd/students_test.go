// ABOUTME: Tests for the admin student and batch commands
// ABOUTME: Runs each command against a fake backend holding two batches and two students

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/steadystudy/studyportal/internal/client"
	"github.com/steadystudy/studyportal/internal/session"
	"github.com/steadystudy/studyportal/internal/tui"
)

var (
	morning = client.Batch{ID: "b1", Title: "Morning"}
	evening = client.Batch{ID: "b2", Title: "Evening"}
)

// adminBackend serves the roster and records write requests
type adminBackend struct {
	writes []string
	bodies []map[string]any
}

func (b *adminBackend) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /admin/students":
			json.NewEncoder(w).Encode([]client.Student{
				{ID: "s1", Name: "Ada", Email: "ada@example.com", DeviceLimit: 2, Batches: []client.Batch{morning}},
				{ID: "s2", Name: "Grace", Email: "grace@example.com", DeviceLimit: 1},
			})
		case "GET /admin/batches":
			json.NewEncoder(w).Encode([]client.Batch{morning, evening})
		case "POST /admin/enroll-student", "PUT /admin/reset-password":
			b.record(t, r)
			w.Header().Set("Content-Type", "text/csv")
			w.Write([]byte("email,password\nada@example.com,secret\n"))
		default:
			b.record(t, r)
			w.Write([]byte(`{}`))
		}
	}
}

func (b *adminBackend) record(t *testing.T, r *http.Request) {
	b.writes = append(b.writes, r.Method+" "+r.URL.Path)
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		t.Errorf("failed to decode %s body: %v", r.URL.Path, err)
	}
	b.bodies = append(b.bodies, body)
}

func newAdminPortal(t *testing.T) (*portal, *adminBackend) {
	t.Helper()
	backend := &adminBackend{}
	p, _ := newTestPortal(t, backend.handler(t))
	signIn(t, p, session.RoleAdmin)
	return p, backend
}

func TestRunStudentsList(t *testing.T) {
	p, _ := newAdminPortal(t)
	var buf bytes.Buffer

	if code := runStudentsList(context.Background(), p, &buf, ""); code != exitOK {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	out := buf.String()
	if !strings.Contains(out, "ada@example.com") || !strings.Contains(out, "grace@example.com") {
		t.Errorf("expected both students:\n%s", out)
	}

	buf.Reset()
	if code := runStudentsList(context.Background(), p, &buf, "morning"); code != exitOK {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if strings.Contains(buf.String(), "grace@example.com") {
		t.Errorf("expected only students in Morning:\n%s", buf.String())
	}

	buf.Reset()
	if code := runStudentsList(context.Background(), p, &buf, "night"); code != exitUsage {
		t.Errorf("expected exit %d for an unknown batch, got %d", exitUsage, code)
	}
}

func TestRunStudentsList_RequiresAdmin(t *testing.T) {
	p, _ := newTestPortal(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("expected no request, got %s", r.URL.Path)
	})
	signIn(t, p, session.RoleStudent)
	var buf bytes.Buffer

	if code := runStudentsList(context.Background(), p, &buf, ""); code != exitUsage {
		t.Errorf("expected exit %d, got %d", exitUsage, code)
	}
	if !strings.Contains(buf.String(), "studyportal login --role admin") {
		t.Errorf("expected admin login hint, got %q", buf.String())
	}
}

func TestRunStudentsEnroll(t *testing.T) {
	p, backend := newAdminPortal(t)
	t.Chdir(t.TempDir())
	var buf bytes.Buffer

	if code := runStudentsEnroll(context.Background(), p, &buf, "Ada", "ada@example.com", ""); code != exitOK {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		t.Fatalf("expected credentials file: %v", err)
	}
	if !strings.Contains(string(data), "secret") {
		t.Errorf("unexpected CSV %q", data)
	}
	if backend.bodies[0]["email"] != "ada@example.com" {
		t.Errorf("unexpected request body %v", backend.bodies[0])
	}

	buf.Reset()
	if code := runStudentsEnroll(context.Background(), p, &buf, "", "ada@example.com", ""); code != exitUsage {
		t.Errorf("expected exit %d without a name, got %d", exitUsage, code)
	}
	if len(backend.writes) != 1 {
		t.Errorf("expected invalid enrollment to send nothing, got %v", backend.writes)
	}
}

func TestRunStudentsReset(t *testing.T) {
	p, backend := newAdminPortal(t)
	t.Chdir(t.TempDir())
	var buf bytes.Buffer

	if code := runStudentsReset(context.Background(), p, &buf, "ada@example.com", ""); code != exitOK {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	if _, err := os.Stat("reset_password_ada@example.com.csv"); err != nil {
		t.Errorf("expected reset CSV: %v", err)
	}
	if backend.bodies[0]["studentId"] != "s1" {
		t.Errorf("expected student id s1, got %v", backend.bodies[0])
	}
}

func TestRunStudentsDeviceLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit string
		code  int
	}{
		{"in range", "3", exitOK},
		{"too low", "0", exitUsage},
		{"too high", "6", exitUsage},
		{"not a number", "two", exitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, backend := newAdminPortal(t)
			var buf bytes.Buffer

			if code := runStudentsDeviceLimit(context.Background(), p, &buf, "s1", tt.limit); code != tt.code {
				t.Fatalf("expected exit %d, got %d: %s", tt.code, code, buf.String())
			}
			if tt.code != exitOK {
				if len(backend.writes) != 0 {
					t.Errorf("expected no write, got %v", backend.writes)
				}
				return
			}
			if backend.bodies[0]["deviceLimit"] != float64(3) {
				t.Errorf("unexpected body %v", backend.bodies[0])
			}
		})
	}
}

func TestRunStudentsAssign(t *testing.T) {
	p, backend := newAdminPortal(t)
	var buf bytes.Buffer

	if code := runStudentsAssign(context.Background(), p, &buf, "grace@example.com", []string{"Morning", "b2"}); code != exitOK {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	ids, _ := backend.bodies[0]["batchIds"].([]any)
	if len(ids) != 2 || ids[0] != "b1" || ids[1] != "b2" {
		t.Errorf("expected batch ids [b1 b2], got %v", backend.bodies[0]["batchIds"])
	}
	if !strings.Contains(buf.String(), "Morning, Evening") {
		t.Errorf("unexpected output %q", buf.String())
	}

	buf.Reset()
	if code := runStudentsAssign(context.Background(), p, &buf, "s1", []string{""}); code != exitOK {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if ids, _ := backend.bodies[1]["batchIds"].([]any); ids == nil || len(ids) != 0 {
		t.Errorf("expected an empty batch list, got %v", backend.bodies[1]["batchIds"])
	}
	if !strings.Contains(buf.String(), "Removed ada@example.com from all batches") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestRunBatches(t *testing.T) {
	p, backend := newAdminPortal(t)
	var buf bytes.Buffer

	if code := runBatchesList(context.Background(), p, &buf); code != exitOK {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(buf.String(), "Morning") || !strings.Contains(buf.String(), "Evening") {
		t.Errorf("unexpected list:\n%s", buf.String())
	}

	buf.Reset()
	if code := runBatchesOverview(context.Background(), p, &buf); code != exitOK {
		t.Fatalf("expected exit 0, got %d", code)
	}
	for _, want := range []string{"Students:     2", "Batches:      2", "Assignments:  1"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected %q in overview:\n%s", want, buf.String())
		}
	}

	buf.Reset()
	if code := runBatchesCreate(context.Background(), p, &buf, "  "); code != exitUsage {
		t.Errorf("expected exit %d for a blank title, got %d", exitUsage, code)
	}
	if code := runBatchesCreate(context.Background(), p, &buf, " Weekend "); code != exitOK {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	if backend.writes[0] != "POST /admin/create-batch" || backend.bodies[0]["title"] != "Weekend" {
		t.Errorf("unexpected request %v %v", backend.writes, backend.bodies)
	}
}

func TestRunUI(t *testing.T) {
	p, _ := newAdminPortal(t)
	orig := runTUI
	t.Cleanup(func() { runTUI = orig })

	var got tui.Deps
	runTUI = func(deps tui.Deps) error {
		got = deps
		return nil
	}
	var buf bytes.Buffer
	if code := runUI(p, &buf); code != exitOK {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if got.Client != p.client || got.Blobs != p.blobs || got.Watermark != p.cfg.Watermark {
		t.Errorf("expected portal dependencies to be passed through")
	}

	runTUI = func(tui.Deps) error { return errors.New("no terminal") }
	buf.Reset()
	if code := runUI(p, &buf); code != exitUsage || !strings.Contains(buf.String(), "no terminal") {
		t.Errorf("expected failure, code=%d out=%q", code, buf.String())
	}
}
