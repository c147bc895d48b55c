// ABOUTME: Claims command group for expense claims
// ABOUTME: Covers listing, detail, deletion, and the claim type and currency lookups

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

var claimsCmd = &cobra.Command{
	Use:   "claims",
	Short: "List and manage your expense claims",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runClaimList(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var claimShowCmd = &cobra.Command{
	Use:   "show <syskey>",
	Short: "Show one claim",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runClaimShow(ctx, os.Stdout, args[0]); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var claimDeleteCmd = &cobra.Command{
	Use:   "delete <syskey>",
	Short: "Delete a pending claim",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runClaimDelete(ctx, os.Stdout, args[0]); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var claimTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the configured claim types and currencies",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runClaimTypes(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var (
	newClaimType     string
	newClaimAmount   float64
	newClaimCurrency string
	newClaimDate     string
	newClaimRemark   string
	newClaimApprover string
)

var claimNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Submit a new expense claim",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runClaimNew(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	claimNewCmd.Flags().StringVar(&newClaimType, "type", "", "Claim type syskey (see: a365 claims types)")
	claimNewCmd.Flags().Float64Var(&newClaimAmount, "amount", 0, "Claim amount")
	claimNewCmd.Flags().StringVar(&newClaimCurrency, "currency", "", "Currency code")
	claimNewCmd.Flags().StringVar(&newClaimDate, "date", "", "Expense date yyyyMMdd")
	claimNewCmd.Flags().StringVar(&newClaimRemark, "remark", "", "Remark")
	claimNewCmd.Flags().StringVar(&newClaimApprover, "approver", "", "Approver user id, syskey, or name")
	claimsCmd.AddCommand(claimShowCmd)
	claimsCmd.AddCommand(claimDeleteCmd)
	claimsCmd.AddCommand(claimTypesCmd)
	claimsCmd.AddCommand(claimNewCmd)
	rootCmd.AddCommand(claimsCmd)
}

// runClaimNew submits a new claim and returns exit code
func runClaimNew(ctx context.Context, w io.Writer) int {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if code := a.requireLogin(w); code != 0 {
		return code
	}

	if newClaimType == "" || newClaimAmount <= 0 {
		fmt.Fprintln(w, "Error: --type and a positive --amount are required")
		return 2
	}

	payload := map[string]interface{}{
		"claimtype":    newClaimType,
		"amount":       newClaimAmount,
		"currencytype": newClaimCurrency,
		"date":         newClaimDate,
		"remark":       newClaimRemark,
	}
	if newClaimApprover != "" {
		approver, err := resolveApprover(ctx, a, newClaimApprover)
		if err != nil {
			return reportError(w, err)
		}
		payload["selectedApprovers"] = []models.Approver{*approver}
	}

	if err := a.hxm.SaveClaim(ctx, payload); err != nil {
		return reportError(w, err)
	}
	fmt.Fprintln(w, "Claim submitted.")
	return 0
}

// runClaimList lists claims and returns exit code
func runClaimList(ctx context.Context, w io.Writer) int {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if code := a.requireLogin(w); code != 0 {
		return code
	}

	claims, err := a.hxm.Claims(ctx)
	if err != nil {
		return reportError(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(claims, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(claims) == 0 {
		fmt.Fprintln(w, "No claims.")
		return 0
	}
	for _, c := range claims {
		fmt.Fprintf(w, "%-12s  #%-5d %-20s %12.2f %-4s [%s]\n",
			c.Syskey, c.RefNo, c.ClaimType, c.Amount, c.CurrencyType,
			models.StatusLabel(c.RequestStatus))
	}
	return 0
}

// runClaimShow prints one claim and returns exit code
func runClaimShow(ctx context.Context, w io.Writer, syskey string) int {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if code := a.requireLogin(w); code != 0 {
		return code
	}

	claim, err := a.hxm.ClaimDetail(ctx, syskey)
	if err != nil {
		return reportError(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(claim, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "Claim:    %s (#%d)\n", claim.ClaimType, claim.RefNo)
	fmt.Fprintf(w, "Status:   %s\n", models.StatusLabel(claim.RequestStatus))
	fmt.Fprintf(w, "Amount:   %.2f %s\n", claim.Amount, claim.CurrencyType)
	if claim.Date != "" {
		fmt.Fprintf(w, "Date:     %s\n", claim.Date)
	}
	if claim.Remark != "" {
		fmt.Fprintf(w, "Remark:   %s\n", claim.Remark)
	}
	return 0
}

// runClaimDelete deletes a claim and returns exit code
func runClaimDelete(ctx context.Context, w io.Writer, syskey string) int {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if code := a.requireLogin(w); code != 0 {
		return code
	}

	if err := a.hxm.DeleteClaim(ctx, syskey); err != nil {
		return reportError(w, err)
	}
	fmt.Fprintf(w, "Deleted claim %s\n", syskey)
	return 0
}

// runClaimTypes lists claim types and currencies and returns exit code
func runClaimTypes(ctx context.Context, w io.Writer) int {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if code := a.requireLogin(w); code != 0 {
		return code
	}

	types, err := a.hxm.ClaimTypes(ctx)
	if err != nil {
		return reportError(w, err)
	}
	currencies, err := a.hxm.Currencies(ctx)
	if err != nil {
		return reportError(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(map[string]interface{}{
			"claimTypes": types,
			"currencies": currencies,
		}, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintln(w, "Claim types:")
	for _, t := range types {
		fmt.Fprintf(w, "  %-12s %s\n", t.Syskey, t.Description)
	}
	fmt.Fprintln(w, "Currencies:")
	for _, c := range currencies {
		fmt.Fprintf(w, "  %-12s %s\n", c.Code, c.Description)
	}
	return 0
}
