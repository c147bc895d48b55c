// ABOUTME: Attendance command group for the caller's own check-in history
// ABOUTME: Shows today's events, the monthly calendar, and the monthly summary

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
)

var (
	calendarFrom string
	calendarTo   string
)

var attendanceCmd = &cobra.Command{
	Use:   "attendance",
	Short: "Show your check-ins for today",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runAttendanceToday(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var attendanceCalendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show your attendance calendar for a date range",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runAttendanceCalendar(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var attendanceMonthCmd = &cobra.Command{
	Use:   "month",
	Short: "Show this month's check-in summary",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runAttendanceMonth(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	attendanceCalendarCmd.Flags().StringVar(&calendarFrom, "from", "", "Start date yyyyMMdd (default: first of this month)")
	attendanceCalendarCmd.Flags().StringVar(&calendarTo, "to", "", "End date yyyyMMdd (default: today)")
	attendanceCmd.AddCommand(attendanceCalendarCmd)
	attendanceCmd.AddCommand(attendanceMonthCmd)
	rootCmd.AddCommand(attendanceCmd)
}

// runAttendanceToday prints today's check-ins and returns exit code
func runAttendanceToday(ctx context.Context, w io.Writer) int {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if code := a.requireLogin(w); code != 0 {
		return code
	}

	today := time.Now().Format(dateLayout)
	records, err := a.main.TodayCheckins(ctx, today)
	if err != nil {
		return reportError(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(records, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(records) == 0 {
		fmt.Fprintln(w, "No check-ins today.")
		return 0
	}
	for _, rec := range records {
		fmt.Fprintln(w, formatAttendanceRecord(rec))
	}
	return 0
}

// runAttendanceCalendar prints the calendar view and returns exit code
func runAttendanceCalendar(ctx context.Context, w io.Writer) int {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if code := a.requireLogin(w); code != 0 {
		return code
	}

	now := time.Now()
	from, to := calendarFrom, calendarTo
	if from == "" {
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format(dateLayout)
	}
	if to == "" {
		to = now.Format(dateLayout)
	}

	days, err := a.main.CalendarView(ctx, from, to)
	if err != nil {
		return reportError(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(days, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	for _, d := range days {
		fmt.Fprintf(w, "%s  %s\n", d.Date, calendarStatusLabel(d.StatusCode))
	}
	return 0
}

// runAttendanceMonth prints the monthly summary and returns exit code
func runAttendanceMonth(ctx context.Context, w io.Writer) int {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if code := a.requireLogin(w); code != 0 {
		return code
	}

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format(dateLayout)
	summary, err := a.main.MonthlySummary(ctx, start)
	if err != nil {
		return reportError(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(summary, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "Working days:  %s of %s required\n", summary.WorkingDays, summary.RequiredWorkDays)
	fmt.Fprintf(w, "Time in:       %s\n", summary.TimeInCount)
	fmt.Fprintf(w, "Time out:      %s\n", summary.TimeOutCount)
	fmt.Fprintf(w, "Leave days:    %s\n", summary.LeaveCount)
	return 0
}

// calendarStatusLabel maps a calendar status code to a display label
func calendarStatusLabel(code int) string {
	switch code {
	case 1:
		return "present"
	case 2:
		return "leave"
	case 3:
		return "holiday"
	case 4:
		return "absent"
	default:
		return "-"
	}
}
