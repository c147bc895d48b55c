// ABOUTME: Team command group showing the reporting hierarchy and member attendance
// ABOUTME: Data comes from the A365 main service, not HXM

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Nirvasoft/A365SS/internal/models"
)

var (
	attendanceDate string
	attendanceTeam string
)

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Show your reporting hierarchy and teams",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runTeam(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var teamShowCmd = &cobra.Command{
	Use:   "show <teamid>",
	Short: "Show one team with its member list",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runTeamShow(ctx, os.Stdout, args[0]); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var teamMemberCmd = &cobra.Command{
	Use:   "member <employee-syskey>",
	Short: "Show one member's check-ins for a date",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runTeamMember(ctx, os.Stdout, args[0]); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	teamMemberCmd.Flags().StringVar(&attendanceDate, "date", "", "Date yyyyMMdd (default: today)")
	teamMemberCmd.Flags().StringVar(&attendanceTeam, "team", "", "Team id")
	teamCmd.AddCommand(teamShowCmd)
	teamCmd.AddCommand(teamMemberCmd)
	rootCmd.AddCommand(teamCmd)
}

// runTeam prints the hierarchy view and returns exit code
func runTeam(ctx context.Context, w io.Writer) int {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if code := a.requireLogin(w); code != 0 {
		return code
	}

	page, err := a.main.Team(ctx)
	if err != nil {
		return reportError(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(page, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if page.User != nil {
		fmt.Fprintf(w, "You: %s (%s)\n", page.User.UserName, page.User.Rank)
	}
	if len(page.Seniors) > 0 {
		fmt.Fprintln(w, "Reports to:")
		for _, m := range page.Seniors {
			fmt.Fprintf(w, "  %s (%s)\n", m.UserName, m.Rank)
		}
	}
	if len(page.Juniors) > 0 {
		fmt.Fprintln(w, "Direct reports:")
		for _, m := range page.Juniors {
			fmt.Fprintf(w, "  %s (%s)\n", m.UserName, m.Rank)
		}
	}
	if len(page.Teams) > 0 {
		fmt.Fprintln(w, "Teams:")
		for _, t := range page.Teams {
			fmt.Fprintf(w, "  %-12s %s\n", t.TeamID, t.TeamName)
		}
	}
	return 0
}

// runTeamShow prints one team and returns exit code
func runTeamShow(ctx context.Context, w io.Writer, teamID string) int {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if code := a.requireLogin(w); code != 0 {
		return code
	}

	team, err := a.main.TeamByID(ctx, teamID)
	if err != nil {
		return reportError(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(team, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "Team: %s (%s)\n", team.TeamName, team.TeamID)
	for _, m := range team.TeamMembers {
		status := ""
		if m.TodayIsLeave == "1" {
			status = " [on leave]"
		} else if m.TimeInTime != "" {
			status = fmt.Sprintf(" [in %s]", m.TimeInTime)
		}
		fmt.Fprintf(w, "  %-24s %-16s%s\n", m.UserName, m.Rank, status)
	}
	return 0
}

// runTeamMember prints a member's check-ins for a day and returns exit code
func runTeamMember(ctx context.Context, w io.Writer, employeeSyskey string) int {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if code := a.requireLogin(w); code != 0 {
		return code
	}

	date := attendanceDate
	if date == "" {
		date = time.Now().Format(dateLayout)
	}

	records, err := a.main.MemberAttendance(ctx, date, employeeSyskey, attendanceTeam)
	if err != nil {
		return reportError(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(records, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(records) == 0 {
		fmt.Fprintf(w, "No check-ins on %s.\n", date)
		return 0
	}
	for _, rec := range records {
		fmt.Fprintln(w, formatAttendanceRecord(rec))
	}
	return 0
}

// formatAttendanceRecord renders one check-in event line
func formatAttendanceRecord(rec models.AttendanceRecord) string {
	kind := "activity"
	switch rec.Type {
	case models.AttendanceTimeIn:
		kind = "time in"
	case models.AttendanceTimeOut:
		kind = "time out"
	}
	line := fmt.Sprintf("%s  %-8s %s", rec.Time, kind, rec.Location)
	if rec.Description != "" {
		line += "  " + rec.Description
	}
	return line
}
