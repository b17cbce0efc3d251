// ABOUTME: Admin commands for managing enrolled students
// ABOUTME: Enrollment and password resets save the CSV credentials the server returns

package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/steadystudy/studyportal/internal/auth"
	"github.com/steadystudy/studyportal/internal/client"
	"github.com/steadystudy/studyportal/internal/roster"
	"github.com/steadystudy/studyportal/internal/session"
)

var (
	studentBatch    string
	enrollName      string
	enrollEmail     string
	enrollOut       string
	studentResetOut string
	assignBatchIDs  []string
)

var studentsCmd = &cobra.Command{
	Use:   "students",
	Short: "Manage enrolled students (admins)",
}

var studentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List students, optionally only those in one batch",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, p *portal, w io.Writer) int {
			return runStudentsList(ctx, p, w, studentBatch)
		})
	},
}

var studentsEnrollCmd = &cobra.Command{
	Use:   "enroll --name NAME --email EMAIL",
	Short: "Enroll a student and save the generated credentials",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, p *portal, w io.Writer) int {
			return runStudentsEnroll(ctx, p, w, enrollName, enrollEmail, enrollOut)
		})
	},
}

var studentsResetCmd = &cobra.Command{
	Use:   "reset-password STUDENT",
	Short: "Reset a student's password and save the new credentials",
	Long:  `Reset a student's password. STUDENT is a student id or email.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, p *portal, w io.Writer) int {
			return runStudentsReset(ctx, p, w, args[0], studentResetOut)
		})
	},
}

var studentsDeviceLimitCmd = &cobra.Command{
	Use:   "device-limit STUDENT LIMIT",
	Short: "Set how many devices a student may sign in from",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, p *portal, w io.Writer) int {
			return runStudentsDeviceLimit(ctx, p, w, args[0], args[1])
		})
	},
}

var studentsAssignCmd = &cobra.Command{
	Use:   "assign STUDENT --batch BATCH...",
	Short: "Replace a student's batches",
	Long: `Replace the set of batches a student belongs to. Each --batch is a batch id
or title. Pass --batch "" to remove the student from every batch.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, p *portal, w io.Writer) int {
			return runStudentsAssign(ctx, p, w, args[0], assignBatchIDs)
		})
	},
}

func init() {
	studentsListCmd.Flags().StringVar(&studentBatch, "batch", "", "Only students in this batch (id or title)")

	studentsEnrollCmd.Flags().StringVar(&enrollName, "name", "", "Student name")
	studentsEnrollCmd.Flags().StringVar(&enrollEmail, "email", "", "Student email")
	studentsEnrollCmd.Flags().StringVar(&enrollOut, "out", credentialsFile, "Where to save the credentials CSV")
	studentsEnrollCmd.MarkFlagRequired("name")
	studentsEnrollCmd.MarkFlagRequired("email")

	studentsResetCmd.Flags().StringVar(&studentResetOut, "out", "", "Where to save the CSV (default reset_password_<email>.csv)")

	studentsAssignCmd.Flags().StringSliceVar(&assignBatchIDs, "batch", nil, "Batch id or title (repeatable)")
	studentsAssignCmd.MarkFlagRequired("batch")

	studentsCmd.AddCommand(studentsListCmd, studentsEnrollCmd, studentsResetCmd, studentsDeviceLimitCmd, studentsAssignCmd)
	rootCmd.AddCommand(studentsCmd)
}

// loadOverview fetches students and batches for an admin command
func (p *portal) loadOverview(ctx context.Context, w io.Writer) (*roster.Overview, int) {
	if _, ok := p.require(w, session.RoleAdmin); !ok {
		return nil, exitUsage
	}
	overview, err := roster.Load(ctx, p.client)
	if err != nil {
		return nil, p.remoteFailure(w, err, session.RoleAdmin)
	}
	return overview, exitOK
}

func runStudentsList(ctx context.Context, p *portal, w io.Writer, batchKey string) int {
	overview, code := p.loadOverview(ctx, w)
	if overview == nil {
		return code
	}

	students := overview.Students
	if batchKey != "" {
		b, err := overview.FindBatch(batchKey)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitUsage
		}
		students = overview.StudentsIn(b.ID)
	}

	if IsJSONOutput() {
		printJSON(w, students)
		return exitOK
	}
	fmt.Fprint(w, formatStudents(students))
	return exitOK
}

// formatStudents renders the student table
func formatStudents(students []client.Student) string {
	if len(students) == 0 {
		return "No students found.\n"
	}

	nameWidth, emailWidth := len("NAME"), len("EMAIL")
	for _, s := range students {
		nameWidth = max(nameWidth, len(s.Name))
		emailWidth = max(emailWidth, len(s.Email))
	}

	out := fmt.Sprintf("%-*s  %-*s  %-7s  %s\n", nameWidth, "NAME", emailWidth, "EMAIL", "DEVICES", "BATCHES")
	for _, s := range students {
		batches := roster.BatchTitles(s)
		if batches == "" {
			batches = "-"
		}
		out += fmt.Sprintf("%-*s  %-*s  %-7d  %s\n", nameWidth, s.Name, emailWidth, s.Email, s.DeviceLimit, batches)
	}
	return out
}

func runStudentsEnroll(ctx context.Context, p *portal, w io.Writer, name, email, out string) int {
	if _, ok := p.require(w, session.RoleAdmin); !ok {
		return exitUsage
	}
	if err := auth.ValidateEnrollment(name, email); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}

	data, err := p.client.EnrollStudent(ctx, client.EnrollStudentRequest{Name: name, Email: email})
	if err != nil {
		return p.remoteFailure(w, err, session.RoleAdmin)
	}
	if out == "" {
		out = credentialsFile
	}
	if err := saveCSV(out, data); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}
	fmt.Fprintf(w, "Enrolled %s <%s>. Credentials saved to %s\n", name, email, out)
	return exitOK
}

func runStudentsReset(ctx context.Context, p *portal, w io.Writer, key, out string) int {
	overview, code := p.loadOverview(ctx, w)
	if overview == nil {
		return code
	}
	s, err := overview.FindStudent(key)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}

	data, err := p.client.ResetStudentPassword(ctx, s.ID)
	if err != nil {
		return p.remoteFailure(w, err, session.RoleAdmin)
	}
	if out == "" {
		out = resetPasswordFile(s.Email)
	}
	if err := saveCSV(out, data); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}
	fmt.Fprintf(w, "Password reset for %s. Credentials saved to %s\n", s.Email, out)
	return exitOK
}

func runStudentsDeviceLimit(ctx context.Context, p *portal, w io.Writer, key, rawLimit string) int {
	limit, err := strconv.Atoi(rawLimit)
	if err != nil {
		fmt.Fprintf(w, "Error: device limit must be a number, got %q\n", rawLimit)
		return exitUsage
	}
	if err := roster.ValidateDeviceLimit(limit); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}

	overview, code := p.loadOverview(ctx, w)
	if overview == nil {
		return code
	}
	s, err := overview.FindStudent(key)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}

	if err := p.client.SetDeviceLimit(ctx, s.ID, limit); err != nil {
		return p.remoteFailure(w, err, session.RoleAdmin)
	}
	fmt.Fprintf(w, "Device limit for %s set to %d\n", s.Email, limit)
	return exitOK
}

func runStudentsAssign(ctx context.Context, p *portal, w io.Writer, key string, batchKeys []string) int {
	overview, code := p.loadOverview(ctx, w)
	if overview == nil {
		return code
	}
	s, err := overview.FindStudent(key)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}

	assigned := client.Student{Email: s.Email}
	ids := make([]string, 0, len(batchKeys))
	for _, bk := range batchKeys {
		if bk == "" {
			continue
		}
		b, err := overview.FindBatch(bk)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitUsage
		}
		ids = append(ids, b.ID)
		assigned.Batches = append(assigned.Batches, b)
	}

	if err := p.client.AssignBatches(ctx, s.ID, ids); err != nil {
		return p.remoteFailure(w, err, session.RoleAdmin)
	}
	if len(ids) == 0 {
		fmt.Fprintf(w, "Removed %s from all batches\n", s.Email)
		return exitOK
	}
	fmt.Fprintf(w, "Assigned %s to %d batch(es): %s\n", s.Email, len(ids), roster.BatchTitles(assigned))
	return exitOK
}
