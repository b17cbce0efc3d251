// ABOUTME: Root command for the studyportal CLI
// ABOUTME: Handles global flags, configuration, logging, and shared dependencies

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/steadystudy/studyportal/internal/auth"
	"github.com/steadystudy/studyportal/internal/blob"
	"github.com/steadystudy/studyportal/internal/client"
	"github.com/steadystudy/studyportal/internal/config"
	"github.com/steadystudy/studyportal/internal/device"
	"github.com/steadystudy/studyportal/internal/logger"
	"github.com/steadystudy/studyportal/internal/session"
	"github.com/steadystudy/studyportal/internal/storage"
)

// Exit codes
const (
	exitOK     = 0
	exitUsage  = 1 // usage, validation, or missing session
	exitRemote = 2 // the server rejected or never answered a request
)

var (
	apiURL     string
	jsonOutput bool
	configDir  string
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "studyportal",
	Short: "Terminal client for the Steady Study tutoring portal",
	Long: `studyportal is a terminal client for the Steady Study tutoring portal.

Admins manage students, batches, and PDF resources. Students sign in on a
registered device and read the resources assigned to their batches.

Environment Variables:
  STUDYPORTAL_API_URL       Backend API URL (default: http://localhost:5000/api)
  STUDYPORTAL_CONFIG_DIR    Directory for session storage and debug.log
  STUDYPORTAL_HTTP_TIMEOUT  Request timeout in seconds (default: 30)
  STUDYPORTAL_WATERMARK     Text stamped on viewed documents
  LOG_LEVEL, LOG_FORMAT     Debug log level and format (text or json)`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides STUDYPORTAL_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Config directory (overrides STUDYPORTAL_CONFIG_DIR)")
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// loadConfig reads the environment and applies flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		u := strings.TrimRight(apiURL, "/")
		if err := config.ValidateAPIURL(u); err != nil {
			return nil, fmt.Errorf("--api-url: %w", err)
		}
		cfg.APIURL = u
	}
	if configDir != "" {
		cfg.ConfigDir = configDir
	}
	return cfg, nil
}

// portal bundles the collaborators every command uses
type portal struct {
	cfg      *config.Config
	kv       storage.KV
	sessions *session.Store
	client   *client.Client
	gateway  *auth.Gateway
	guard    *auth.Guard
	blobs    *blob.Registry
}

// newPortal wires the session store, API client, and auth services over kv
func newPortal(cfg *config.Config, kv storage.KV) *portal {
	sessions := session.NewStore(kv)
	c := client.New(cfg.APIURL, client.WithTokenSource(sessions), client.WithTimeout(cfg.HTTPTimeout))
	return &portal{
		cfg:      cfg,
		kv:       kv,
		sessions: sessions,
		client:   c,
		gateway:  auth.NewGateway(c, sessions, device.NewProvider(kv), kv),
		guard:    auth.NewGuard(sessions),
		blobs:    blob.NewRegistry(),
	}
}

// run loads configuration, opens storage and the debug log, then calls fn
// with a context cancelled on SIGINT/SIGTERM. It exits the process on failure.
func run(fn func(ctx context.Context, p *portal, w io.Writer) int) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitUsage)
	}

	closer, err := logger.Init(cfg.ConfigDir, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: debug log disabled: %v\n", err)
	}

	kv, err := storage.Open(cfg.ConfigDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitUsage)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := fn(ctx, newPortal(cfg, kv), os.Stdout)
	cancel()
	if closer != nil {
		closer.Close()
	}

	if code != exitOK {
		os.Exit(code)
	}
}

// require checks that a session of one of roles exists and explains how to get one
func (p *portal) require(w io.Writer, roles ...session.Role) (session.Session, bool) {
	sess, err := p.guard.Require(roles...)
	if err != nil {
		role := session.Role("")
		if len(roles) == 1 {
			role = roles[0]
		}
		fmt.Fprintf(w, "Error: %v\nRun: %s\n", err, auth.LoginEntry(role))
		return session.Session{}, false
	}
	return sess, true
}

// remoteFailure reports a failed API call and clears the session on an authorization rejection
func (p *portal) remoteFailure(w io.Writer, err error, role session.Role) int {
	checked := p.guard.Check(err)
	if errors.Is(checked, auth.ErrSessionExpired) {
		fmt.Fprintf(w, "Error: %s\nRun: %s\n", auth.SessionExpiredNotice, auth.LoginEntry(role))
		return exitRemote
	}
	fmt.Fprintf(w, "Error: %v\n", checked)
	return exitRemote
}
