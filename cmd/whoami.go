// ABOUTME: Whoami command showing the current session identity
// ABOUTME: Reads the persisted session and cached profile without calling the backend

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Nirvasoft/A365SS/internal/store"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in identity",
	Run: func(cmd *cobra.Command, args []string) {
		if exitCode := runWhoami(os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami prints the session identity and returns exit code
func runWhoami(w io.Writer) int {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	session := a.sessions.Current()
	if !session.IsAuthenticated() {
		fmt.Fprintln(w, "Not signed in. Run: a365 login")
		return 1
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatWhoamiJSON(session))
	} else {
		fmt.Fprintln(w, formatWhoamiHuman(session))
	}
	return 0
}

// formatWhoamiHuman formats the session for human readability
func formatWhoamiHuman(session store.Session) string {
	out := fmt.Sprintf("User:    %s", session.UserID)
	if session.User != nil && session.User.Name != "" {
		out += fmt.Sprintf("\nName:    %s", session.User.Name)
	}
	if session.User != nil && session.User.Position != "" {
		out += fmt.Sprintf("\nRole:    %s", session.User.Position)
	}
	if session.DomainName != "" {
		out += fmt.Sprintf("\nDomain:  %s (%s)", session.DomainName, session.Domain)
	} else if session.Domain != "" {
		out += fmt.Sprintf("\nDomain:  %s", session.Domain)
	}
	return out
}

// formatWhoamiJSON formats the session as JSON, tokens redacted
func formatWhoamiJSON(session store.Session) string {
	session.Token = ""
	session.RefreshToken = ""
	data, _ := json.MarshalIndent(session, "", "  ")
	return string(data)
}
