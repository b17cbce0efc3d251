// ABOUTME: Login, logout, and identity commands
// ABOUTME: Drives the auth gateway and prompts for missing credentials with huh

package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/steadystudy/studyportal/internal/auth"
	"github.com/steadystudy/studyportal/internal/device"
	"github.com/steadystudy/studyportal/internal/session"
)

type loginOptions struct {
	role          string
	email         string
	password      string
	passwordStdin bool
}

var loginOpts loginOptions

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in as an admin or student",
	Long: `Sign in to the portal. The session is bound to this device and replaces any
existing session. Missing email or password values are prompted for.`,
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, p *portal, w io.Writer) int {
			return runLogin(ctx, p, w, os.Stdin, loginOpts)
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session on this device",
	Run: func(cmd *cobra.Command, args []string) {
		run(runLogout)
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, p *portal, w io.Writer) int {
			return runWhoami(p, w)
		})
	},
}

var deviceCmd = &cobra.Command{
	Use:   "device",
	Short: "Show this device's identifier",
	Long:  `Show the identifier this device presents at login. It is created on first use and survives logout.`,
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, p *portal, w io.Writer) int {
			return runDevice(p, w)
		})
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginOpts.role, "role", "", "Account type: admin or student (required)")
	loginCmd.Flags().StringVar(&loginOpts.email, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginOpts.password, "password", "", "Account password")
	loginCmd.Flags().BoolVar(&loginOpts.passwordStdin, "password-stdin", false, "Read the password from stdin")
	loginCmd.MarkFlagsMutuallyExclusive("password", "password-stdin")
	loginCmd.MarkFlagRequired("role")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, deviceCmd)
}

// promptCredentials fills in missing fields interactively
var promptCredentials = func(role session.Role, suggestions []string, creds *auth.Credentials) error {
	var fields []huh.Field
	if creds.Email == "" {
		if len(suggestions) > 0 {
			creds.Email = suggestions[0]
		}
		fields = append(fields, huh.NewInput().
			Title("Email").
			Suggestions(suggestions).
			Validate(auth.ValidateEmail).
			Value(&creds.Email))
	}
	if creds.Password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&creds.Password))
	}
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...).Title("Sign in as " + role.String())).Run()
}

// runLogin signs in and returns the exit code
func runLogin(ctx context.Context, p *portal, w io.Writer, stdin io.Reader, opts loginOptions) int {
	role, err := session.ParseRole(opts.role)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}

	creds := auth.Credentials{Email: opts.email, Password: opts.password}
	if opts.passwordStdin {
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(w, "Error: failed to read password: %v\n", err)
			return exitUsage
		}
		creds.Password = strings.TrimRight(line, "\r\n")
	}

	if creds.Email == "" || creds.Password == "" {
		if err := promptCredentials(role, p.gateway.RecentEmails(role), &creds); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitUsage
		}
	}

	sess, err := p.gateway.Login(ctx, creds, role)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		if errors.Is(err, auth.ErrValidation) {
			return exitUsage
		}
		return exitRemote
	}

	if IsJSONOutput() {
		printJSON(w, sess)
		return exitOK
	}
	who := sess.Email
	if sess.DisplayName != "" {
		who = fmt.Sprintf("%s <%s>", sess.DisplayName, sess.Email)
	}
	fmt.Fprintf(w, "Logged in as %s (%s) on device %s\n", who, sess.Role, sess.DeviceID)
	return exitOK
}

// runLogout ends the session; local state is cleared even when the server call fails
func runLogout(ctx context.Context, p *portal, w io.Writer) int {
	if _, ok := p.guard.Current(); !ok {
		fmt.Fprintln(w, "Not logged in.")
		return exitOK
	}

	if err := p.gateway.Logout(ctx); err != nil {
		fmt.Fprintf(w, "Logged out on this device.\nWarning: %v\n", err)
		return exitOK
	}
	fmt.Fprintln(w, "Logged out.")
	return exitOK
}

func runWhoami(p *portal, w io.Writer) int {
	sess, ok := p.require(w)
	if !ok {
		return exitUsage
	}

	if IsJSONOutput() {
		printJSON(w, sess)
		return exitOK
	}
	fmt.Fprintf(w, "Role:    %s\n", sess.Role)
	if sess.DisplayName != "" {
		fmt.Fprintf(w, "Name:    %s\n", sess.DisplayName)
	}
	fmt.Fprintf(w, "Email:   %s\n", sess.Email)
	fmt.Fprintf(w, "Device:  %s\n", sess.DeviceID)
	return exitOK
}

func runDevice(p *portal, w io.Writer) int {
	id, err := device.NewProvider(p.kv).DeviceID()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}
	if IsJSONOutput() {
		printJSON(w, map[string]string{"deviceId": id})
		return exitOK
	}
	fmt.Fprintln(w, id)
	return exitOK
}
