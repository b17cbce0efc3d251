// ABOUTME: Admin overview of students and batches with per-batch counts
// ABOUTME: Loads both lists concurrently and answers lookups for admin commands

package roster

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/steadystudy/studyportal/internal/client"
)

const (
	MinDeviceLimit = 1
	MaxDeviceLimit = 5
)

// API is the subset of the portal client used for the overview
type API interface {
	Students(ctx context.Context) ([]client.Student, error)
	Batches(ctx context.Context) ([]client.Batch, error)
}

// Overview is a snapshot of all students and batches
type Overview struct {
	Students []client.Student
	Batches  []client.Batch
}

// BatchRow is one dashboard line
type BatchRow struct {
	Batch    client.Batch
	Students int
}

// Load fetches students and batches in parallel
func Load(ctx context.Context, api API) (*Overview, error) {
	var o Overview
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		students, err := api.Students(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch students: %w", err)
		}
		o.Students = students
		return nil
	})
	g.Go(func() error {
		batches, err := api.Batches(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch batches: %w", err)
		}
		o.Batches = batches
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &o, nil
}

// StudentsIn returns the students assigned to batchID
func (o *Overview) StudentsIn(batchID string) []client.Student {
	var out []client.Student
	for _, s := range o.Students {
		if s.InBatch(batchID) {
			out = append(out, s)
		}
	}
	return out
}

// StudentCount returns how many students are assigned to batchID
func (o *Overview) StudentCount(batchID string) int {
	return len(o.StudentsIn(batchID))
}

// BatchRows returns every batch with its student count, in server order
func (o *Overview) BatchRows() []BatchRow {
	rows := make([]BatchRow, 0, len(o.Batches))
	for _, b := range o.Batches {
		rows = append(rows, BatchRow{Batch: b, Students: o.StudentCount(b.ID)})
	}
	return rows
}

// Assigned returns the total number of student-batch assignments
func (o *Overview) Assigned() int {
	n := 0
	for _, s := range o.Students {
		n += len(s.Batches)
	}
	return n
}

// FindStudent matches key against student id or email
func (o *Overview) FindStudent(key string) (client.Student, error) {
	for _, s := range o.Students {
		if s.ID == key || strings.EqualFold(s.Email, key) {
			return s, nil
		}
	}
	return client.Student{}, fmt.Errorf("no student matches %q", key)
}

// FindBatch matches key against batch id or title
func (o *Overview) FindBatch(key string) (client.Batch, error) {
	for _, b := range o.Batches {
		if b.ID == key || strings.EqualFold(b.Title, key) {
			return b, nil
		}
	}
	return client.Batch{}, fmt.Errorf("no batch matches %q", key)
}

// BatchTitles returns the titles of a student's batches joined for display
func BatchTitles(s client.Student) string {
	titles := make([]string, 0, len(s.Batches))
	for _, b := range s.Batches {
		titles = append(titles, b.Title)
	}
	return strings.Join(titles, ", ")
}

// ValidateDeviceLimit checks limit is within the allowed range
func ValidateDeviceLimit(limit int) error {
	if limit < MinDeviceLimit || limit > MaxDeviceLimit {
		return fmt.Errorf("device limit must be between %d and %d, got %d", MinDeviceLimit, MaxDeviceLimit, limit)
	}
	return nil
}

// RemoveResource drops id from list without touching the input slice
func RemoveResource(list []client.Resource, id string) []client.Resource {
	return slices.DeleteFunc(slices.Clone(list), func(r client.Resource) bool {
		return r.ID == id
	})
}
