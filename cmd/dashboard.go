// ABOUTME: Dashboard command launching the interactive TUI
// ABOUTME: Shows pending work, leave balances, and holidays in one screen

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Nirvasoft/A365SS/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive dashboard",
	Run: func(cmd *cobra.Command, args []string) {
		if exitCode := runDashboard(os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

// runDashboard launches the TUI and returns exit code
func runDashboard(w io.Writer) int {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if code := a.requireLogin(w); code != 0 {
		return code
	}

	backends := tui.Backends{HXM: a.hxm, Main: a.main}
	if err := tui.Run(backends, a.sessions.Current()); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	return 0
}
