// ABOUTME: Student self-service password reset command
// ABOUTME: Requests a new password and saves the CSV the server returns

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/steadystudy/studyportal/internal/auth"
	"github.com/steadystudy/studyportal/internal/session"
)

var (
	resetEmail string
	resetOut   string
)

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Reset your student password",
	Long: `Ask the portal to generate a new password for the signed-in student.
The server answers with a CSV containing the new credentials, which is saved
to --out (default reset_password_<email>.csv).`,
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, p *portal, w io.Writer) int {
			return runResetPassword(ctx, p, w, resetEmail, resetOut)
		})
	},
}

func init() {
	resetPasswordCmd.Flags().StringVar(&resetEmail, "email", "", "Account email (default: the signed-in student)")
	resetPasswordCmd.Flags().StringVar(&resetOut, "out", "", "Where to save the CSV")
	rootCmd.AddCommand(resetPasswordCmd)
}

func runResetPassword(ctx context.Context, p *portal, w io.Writer, email, out string) int {
	sess, ok := p.require(w, session.RoleStudent)
	if !ok {
		return exitUsage
	}
	if email == "" {
		email = sess.Email
	}
	if err := auth.ValidateEmail(email); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}

	data, err := p.client.StudentResetPassword(ctx, email)
	if err != nil {
		return p.remoteFailure(w, err, session.RoleStudent)
	}

	if out == "" {
		out = resetPasswordFile(email)
	}
	if err := saveCSV(out, data); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}
	fmt.Fprintf(w, "Password reset for %s. Credentials saved to %s\n", email, out)
	return exitOK
}
