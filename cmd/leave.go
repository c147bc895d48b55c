// ABOUTME: Leave command group covering leave history, balances, and the taken summary
// ABOUTME: Balances come live from the backend and are never cached

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Nirvasoft/A365SS/internal/models"
)

var leaveStatus string

var leaveCmd = &cobra.Command{
	Use:   "leave",
	Short: "List your leave requests and balances",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runLeaveList(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var leaveBalanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show remaining balance per leave type",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runLeaveBalance(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var leaveSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show total leave taken per type",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runLeaveSummary(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var leaveDeleteCmd = &cobra.Command{
	Use:   "delete <syskey>",
	Short: "Delete a pending leave request",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runLeaveDelete(ctx, os.Stdout, args[0]); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	leaveCmd.Flags().StringVar(&leaveStatus, "status", "all", "Filter: pending, approved, rejected, or all")
	leaveCmd.AddCommand(leaveBalanceCmd)
	leaveCmd.AddCommand(leaveSummaryCmd)
	leaveCmd.AddCommand(leaveDeleteCmd)
	rootCmd.AddCommand(leaveCmd)
}

// runLeaveList lists leave requests and returns exit code
func runLeaveList(ctx context.Context, w io.Writer) int {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if code := a.requireLogin(w); code != 0 {
		return code
	}

	status, err := statusCode(leaveStatus)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	leaves, err := a.hxm.LeaveList(ctx, status)
	if err != nil {
		return reportError(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(leaves, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(leaves) == 0 {
		fmt.Fprintln(w, "No leave requests.")
		return 0
	}
	for _, r := range leaves {
		fmt.Fprintf(w, "%-12s  %-20s %s - %-10s (%s days) [%s]\n",
			r.Syskey, r.RequestSubTypeDesc, r.StartDate, r.EndDate, r.Duration,
			models.StatusLabel(r.RequestStatus))
	}
	return 0
}

// runLeaveBalance prints per-type balances and returns exit code
func runLeaveBalance(ctx context.Context, w io.Writer) int {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if code := a.requireLogin(w); code != 0 {
		return code
	}

	types, err := a.hxm.LeaveTypes(ctx)
	if err != nil {
		return reportError(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(types, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}
	fmt.Fprintf(w, "%-24s %9s %9s %9s\n", "Leave Type", "Total", "Used", "Left")
	for _, t := range types {
		fmt.Fprintf(w, "%-24s %9.1f %9.1f %9.1f\n", t.Description, t.Balance, t.Used, t.Remaining)
	}
	return 0
}

// runLeaveSummary prints the taken summary and returns exit code
func runLeaveSummary(ctx context.Context, w io.Writer) int {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if code := a.requireLogin(w); code != 0 {
		return code
	}

	summary, err := a.hxm.LeaveSummary(ctx)
	if err != nil {
		return reportError(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(summary, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}
	fmt.Fprintf(w, "%-24s %9s %9s %9s %9s\n", "Leave Type", "Total", "Used", "Left", "Pending")
	for _, item := range summary {
		fmt.Fprintf(w, "%-24s %9.1f %9.1f %9.1f %9.1f\n",
			item.LeaveType, item.TotalDays, item.UsedDays, item.RemainingDays, item.PendingDays)
	}
	return 0
}

// runLeaveDelete deletes a leave request and returns exit code
func runLeaveDelete(ctx context.Context, w io.Writer, syskey string) int {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if code := a.requireLogin(w); code != 0 {
		return code
	}

	if err := a.hxm.DeleteLeave(ctx, syskey); err != nil {
		return reportError(w, err)
	}
	fmt.Fprintf(w, "Deleted leave request %s\n", syskey)
	return 0
}
