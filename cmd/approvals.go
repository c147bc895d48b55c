// ABOUTME: Approvals command group for reviewing and deciding pending requests
// ABOUTME: Approve and reject record a decision against a request syskey

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
	approvalFrom    string
	approvalTo      string
	approvalStatus  string
	approvalComment string
	approvalCar     string
	approvalDriver  string
)

const dateLayout = "20060102"

var approvalsCmd = &cobra.Command{
	Use:   "approvals",
	Short: "List and decide requests waiting on you",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runApprovalList(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var approveCmd = &cobra.Command{
	Use:   "approve <syskey>",
	Short: "Approve a request",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runDecide(ctx, os.Stdout, args[0], models.StatusApproved); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var rejectCmd = &cobra.Command{
	Use:   "reject <syskey>",
	Short: "Reject a request",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runDecide(ctx, os.Stdout, args[0], models.StatusRejected); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	approvalsCmd.Flags().StringVar(&approvalFrom, "from", "", "Start date yyyyMMdd (default: 30 days ago)")
	approvalsCmd.Flags().StringVar(&approvalTo, "to", "", "End date yyyyMMdd (default: today)")
	approvalsCmd.Flags().StringVar(&approvalStatus, "status", "pending", "Filter: pending, approved, rejected, or all")

	for _, c := range []*cobra.Command{approveCmd, rejectCmd} {
		c.Flags().StringVar(&approvalComment, "comment", "", "Decision comment")
		c.Flags().StringVar(&approvalCar, "car", "", "Assigned car (transportation requests)")
		c.Flags().StringVar(&approvalDriver, "driver", "", "Assigned driver (transportation requests)")
	}

	approvalsCmd.AddCommand(approveCmd)
	approvalsCmd.AddCommand(rejectCmd)
	rootCmd.AddCommand(approvalsCmd)
}

// runApprovalList lists pending approvals and returns exit code
func runApprovalList(ctx context.Context, w io.Writer) int {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if code := a.requireLogin(w); code != 0 {
		return code
	}

	status, err := statusCode(approvalStatus)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	from, to := approvalFrom, approvalTo
	if to == "" {
		to = time.Now().Format(dateLayout)
	}
	if from == "" {
		from = time.Now().AddDate(0, 0, -30).Format(dateLayout)
	}

	approvals, err := a.hxm.Approvals(ctx, from, to, status)
	if err != nil {
		return reportError(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(approvals, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(approvals) == 0 {
		fmt.Fprintln(w, "Nothing waiting on you.")
		return 0
	}
	for _, r := range approvals {
		fmt.Fprintf(w, "%-12s  %-20s %-20s %-23s [%s]\n",
			r.Syskey, r.Name, r.RequestTypeDesc, r.StartDate, models.StatusLabel(r.RequestStatus))
	}
	return 0
}

// runDecide saves an approval decision and returns exit code
func runDecide(ctx context.Context, w io.Writer, syskey, status string) int {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if code := a.requireLogin(w); code != 0 {
		return code
	}

	decision := models.ApprovalDecision{
		Syskey:  syskey,
		Status:  status,
		Comment: approvalComment,
		Car:     approvalCar,
		Driver:  approvalDriver,
	}
	if err := a.hxm.SaveApproval(ctx, decision); err != nil {
		return reportError(w, err)
	}

	verb := "Approved"
	if status == models.StatusRejected {
		verb = "Rejected"
	}
	fmt.Fprintf(w, "%s request %s\n", verb, syskey)
	return 0
}
