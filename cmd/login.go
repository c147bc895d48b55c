// ABOUTME: Login command covering the password and OTP sign-in flows
// ABOUTME: Prompts interactively with huh when credentials are not passed as flags

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Nirvasoft/A365SS/internal/auth"
	"github.com/Nirvasoft/A365SS/internal/store"
)

var (
	loginUser     string
	loginPassword string
	loginOTP      bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to A365",
	Long: `Sign in with your user id and password, or with a one-time code
sent to your registered channel when --otp is given.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUser, "user", "u", "", "User id (email)")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (prompted when omitted)")
	loginCmd.Flags().BoolVar(&loginOTP, "otp", false, "Sign in with a one-time code instead of a password")
	rootCmd.AddCommand(loginCmd)
}

// runLogin executes the sign-in flow and returns exit code
func runLogin(ctx context.Context, w io.Writer) int {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	var session store.Session
	if loginOTP {
		session, err = loginWithOTP(ctx, a)
	} else {
		session, err = loginWithPassword(ctx, a)
	}
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			fmt.Fprintf(w, "Login failed: %v\n", err)
			return 1
		}
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	// Best effort; the session works without the cached profile
	if profile, err := a.hxm.Profile(ctx); err != nil {
		slog.Warn("Profile fetch after login failed", "error", err)
	} else if err := a.sessions.SetProfile(profile); err != nil {
		slog.Warn("Could not cache profile", "error", err)
	}

	fmt.Fprintf(w, "Signed in as %s", session.UserID)
	if session.DomainName != "" {
		fmt.Fprintf(w, " (%s)", session.DomainName)
	}
	fmt.Fprintln(w)
	return 0
}

func loginWithPassword(ctx context.Context, a *app) (store.Session, error) {
	user, password := loginUser, loginPassword

	if user == "" || password == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("User id").
					Value(&user).
					Validate(notEmpty("user id")),
				huh.NewInput().
					Title("Password").
					EchoMode(huh.EchoModePassword).
					Value(&password).
					Validate(notEmpty("password")),
			),
		).WithTheme(huh.ThemeBase())
		if err := form.RunWithContext(ctx); err != nil {
			return store.Session{}, err
		}
	}

	return a.auth.Login(ctx, strings.TrimSpace(user), password)
}

func loginWithOTP(ctx context.Context, a *app) (store.Session, error) {
	user := loginUser
	if user == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("User id").
					Value(&user).
					Validate(notEmpty("user id")),
			),
		).WithTheme(huh.ThemeBase())
		if err := form.RunWithContext(ctx); err != nil {
			return store.Session{}, err
		}
	}
	user = strings.TrimSpace(user)

	challenge, err := a.auth.RequestOTP(ctx, user)
	if err != nil {
		return store.Session{}, err
	}

	var code string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("One-time code").
				Description("Enter the code sent to your registered channel").
				Value(&code).
				Validate(notEmpty("code")),
		),
	).WithTheme(huh.ThemeBase())
	if err := form.RunWithContext(ctx); err != nil {
		return store.Session{}, err
	}

	return a.auth.VerifyOTP(ctx, user, strings.TrimSpace(code), challenge)
}

func notEmpty(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
