// ABOUTME: Root command for the a365 CLI
// ABOUTME: Handles global flags and wires configuration, session state, and backend clients

package cmd

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/Nirvasoft/A365SS/internal/auth"
	"github.com/Nirvasoft/A365SS/internal/client"
	"github.com/Nirvasoft/A365SS/internal/config"
	"github.com/Nirvasoft/A365SS/internal/logger"
	"github.com/Nirvasoft/A365SS/internal/store"
)

var jsonOutput bool

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "a365",
	Short: "Employee self-service CLI for A365",
	Long: `a365 is a command-line client for the A365 HR platform.

It covers sign-in, requests, approvals, leave, claims, team attendance,
and public holidays against the HXM and A365 backends.

Environment Variables:
  A365_HXM_URL      HXM service URL
  A365_AUTH_URL     IAM auth URL
  A365_MAIN_URL     A365 main service URL
  A365_DATA_DIR     Session and device identity directory
  A365_ENV          dev, staging, sit, or prod (default: dev)`,
}

// Execute runs the root command
func Execute() error {
	logger.Init()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// app bundles the wired clients every command needs.
type app struct {
	cfg      *config.Config
	sessions *store.SessionStore
	auth     *auth.Negotiator
	hxm      *client.HXM
	main     *client.Main
}

// newApp loads configuration, opens the session store, and builds the
// negotiator plus the per-namespace clients over one shared transport.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	sessions, err := store.OpenSession(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	negotiator := auth.NewNegotiator(cfg, sessions, httpClient)
	transport := client.NewTransport(httpClient, sessions, negotiator)

	return &app{
		cfg:      cfg,
		sessions: sessions,
		auth:     negotiator,
		hxm:      client.NewHXM(cfg.HXMURL, transport),
		main:     client.NewMain(cfg.MainURL, transport),
	}, nil
}

// requireLogin reports exit code 1 with a hint when no session exists.
func (a *app) requireLogin(w io.Writer) int {
	if a.sessions.Current().IsAuthenticated() {
		return 0
	}
	fmt.Fprintln(w, "Not signed in. Run: a365 login")
	return 1
}

// reportError maps backend failures to exit codes: 1 for expired
// sessions, 2 for everything else.
func reportError(w io.Writer, err error) int {
	if errors.Is(err, auth.ErrSessionExpired) {
		fmt.Fprintln(w, "Session expired. Run: a365 login")
		return 1
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	return 2
}
