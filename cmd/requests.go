// ABOUTME: Requests command group for listing, inspecting, and deleting requests
// ABOUTME: Status filter accepts pending, approved, rejected, or all

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Nirvasoft/A365SS/internal/models"
)

var requestStatus string

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "List and manage your requests",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runRequestList(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var requestShowCmd = &cobra.Command{
	Use:   "show <syskey>",
	Short: "Show one request with its approver chain",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runRequestShow(ctx, os.Stdout, args[0]); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var requestDeleteCmd = &cobra.Command{
	Use:   "delete <syskey>",
	Short: "Delete a pending request",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runRequestDelete(ctx, os.Stdout, args[0]); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var requestTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the configured request types",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runRequestTypes(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var (
	newRequestType      string
	newRequestSubType   string
	newRequestStart     string
	newRequestEnd       string
	newRequestStartTime string
	newRequestEndTime   string
	newRequestRemark    string
	newRequestApprover  string
)

var requestNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Submit a new request",
	Long: `Submit a new request. The type-specific fields not covered by flags
default to empty; the backend validates what each request type needs.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runRequestNew(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var requestLookupsCmd = &cobra.Command{
	Use:   "lookups <kind>",
	Short: "List a request lookup table",
	Long: `List one of the lookup tables used when filling in a request:
transportation, cars, drivers, rooms, reservation, travel, vehicle,
products, or projects.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runRequestLookups(ctx, os.Stdout, args[0]); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	requestsCmd.Flags().StringVar(&requestStatus, "status", "all", "Filter: pending, approved, rejected, or all")
	requestNewCmd.Flags().StringVar(&newRequestType, "type", "", "Request type syskey (see: a365 requests types)")
	requestNewCmd.Flags().StringVar(&newRequestSubType, "subtype", "", "Request sub-type syskey")
	requestNewCmd.Flags().StringVar(&newRequestStart, "start", "", "Start date yyyyMMdd")
	requestNewCmd.Flags().StringVar(&newRequestEnd, "end", "", "End date yyyyMMdd")
	requestNewCmd.Flags().StringVar(&newRequestStartTime, "start-time", "", "Start time HH:mm")
	requestNewCmd.Flags().StringVar(&newRequestEndTime, "end-time", "", "End time HH:mm")
	requestNewCmd.Flags().StringVar(&newRequestRemark, "remark", "", "Remark")
	requestNewCmd.Flags().StringVar(&newRequestApprover, "approver", "", "Approver user id, syskey, or name")
	requestsCmd.AddCommand(requestShowCmd)
	requestsCmd.AddCommand(requestDeleteCmd)
	requestsCmd.AddCommand(requestTypesCmd)
	requestsCmd.AddCommand(requestNewCmd)
	requestsCmd.AddCommand(requestLookupsCmd)
	rootCmd.AddCommand(requestsCmd)
}

// statusCode maps a status word to the backend's numeric code
func statusCode(word string) (string, error) {
	switch strings.ToLower(word) {
	case "pending":
		return models.StatusPending, nil
	case "approved":
		return models.StatusApproved, nil
	case "rejected":
		return models.StatusRejected, nil
	case "all", "":
		return models.StatusAll, nil
	}
	return "", fmt.Errorf("unknown status %q (use pending, approved, rejected, or all)", word)
}

// runRequestList lists requests and returns exit code
func runRequestList(ctx context.Context, w io.Writer) int {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if code := a.requireLogin(w); code != 0 {
		return code
	}

	status, err := statusCode(requestStatus)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	requests, err := a.hxm.Requests(ctx, status)
	if err != nil {
		return reportError(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(requests, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(requests) == 0 {
		fmt.Fprintln(w, "No requests.")
		return 0
	}
	for _, r := range requests {
		fmt.Fprintln(w, formatRequestRow(r))
	}
	return 0
}

// runRequestShow prints one request and returns exit code
func runRequestShow(ctx context.Context, w io.Writer, syskey string) int {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if code := a.requireLogin(w); code != 0 {
		return code
	}

	detail, approvers, err := a.hxm.RequestDetail(ctx, syskey)
	if err != nil {
		return reportError(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(map[string]interface{}{
			"request":   detail,
			"approvers": approvers,
		}, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintln(w, formatRequestDetail(detail, approvers))
	return 0
}

// runRequestDelete deletes a request and returns exit code
func runRequestDelete(ctx context.Context, w io.Writer, syskey string) int {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if code := a.requireLogin(w); code != 0 {
		return code
	}

	if err := a.hxm.DeleteRequest(ctx, syskey); err != nil {
		return reportError(w, err)
	}
	fmt.Fprintf(w, "Deleted request %s\n", syskey)
	return 0
}

// runRequestTypes lists the request types and returns exit code
func runRequestTypes(ctx context.Context, w io.Writer) int {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if code := a.requireLogin(w); code != 0 {
		return code
	}

	types, err := a.hxm.RequestTypes(ctx)
	if err != nil {
		return reportError(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(types, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}
	for _, t := range types {
		fmt.Fprintf(w, "%-12s %s\n", t.Syskey, t.Description)
	}
	return 0
}

// runRequestNew submits a new request and returns exit code
func runRequestNew(ctx context.Context, w io.Writer) int {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if code := a.requireLogin(w); code != 0 {
		return code
	}

	if newRequestType == "" {
		fmt.Fprintln(w, "Error: --type is required (see: a365 requests types)")
		return 2
	}

	payload := map[string]interface{}{
		"requesttype":    newRequestType,
		"requestsubtype": newRequestSubType,
		"startdate":      newRequestStart,
		"enddate":        newRequestEnd,
		"starttime":      newRequestStartTime,
		"endtime":        newRequestEndTime,
		"remark":         newRequestRemark,
	}
	if newRequestApprover != "" {
		approver, err := resolveApprover(ctx, a, newRequestApprover)
		if err != nil {
			return reportError(w, err)
		}
		payload["selectedApprovers"] = []models.Approver{*approver}
	}

	if err := a.hxm.SaveRequest(ctx, payload); err != nil {
		return reportError(w, err)
	}
	fmt.Fprintln(w, "Request submitted.")
	return 0
}

// resolveApprover finds a directory entry by user id, syskey, or name.
func resolveApprover(ctx context.Context, a *app, ref string) (*models.Approver, error) {
	members, err := a.hxm.Members(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		if m.UserID == ref || m.Syskey == ref || strings.EqualFold(m.Name, ref) {
			return &m, nil
		}
	}
	return nil, fmt.Errorf("no member matches %q", ref)
}

// runRequestLookups lists one lookup table and returns exit code
func runRequestLookups(ctx context.Context, w io.Writer, kind string) int {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if code := a.requireLogin(w); code != 0 {
		return code
	}

	var items []models.TypeItem
	switch strings.ToLower(kind) {
	case "transportation":
		items, err = a.hxm.TransportationTypes(ctx)
	case "cars":
		items, err = a.hxm.Cars(ctx)
	case "drivers":
		items, err = a.hxm.Drivers(ctx)
	case "rooms":
		items, err = a.hxm.Rooms(ctx)
	case "reservation":
		items, err = a.hxm.ReservationTypes(ctx)
	case "travel":
		items, err = a.hxm.TravelModes(ctx)
	case "vehicle":
		items, err = a.hxm.VehicleUses(ctx)
	case "products":
		items, err = a.hxm.Products(ctx)
	case "projects":
		items, err = a.hxm.Projects(ctx)
	default:
		fmt.Fprintf(w, "Error: unknown lookup %q (use transportation, cars, drivers, rooms, reservation, travel, vehicle, products, or projects)\n", kind)
		return 2
	}
	if err != nil {
		return reportError(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(items, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}
	for _, item := range items {
		line := fmt.Sprintf("%-12s %s", item.Syskey, item.Description)
		if item.MaxPeople > 0 {
			line += fmt.Sprintf(" (up to %d people)", item.MaxPeople)
		}
		fmt.Fprintln(w, line)
	}
	return 0
}

// formatRequestRow renders one request list line
func formatRequestRow(r models.Request) string {
	period := r.StartDate
	if r.EndDate != "" && r.EndDate != r.StartDate {
		period += " - " + r.EndDate
	}
	if period == "" {
		period = r.Date
	}
	return fmt.Sprintf("%-12s  #%-5d %-20s %-23s [%s]",
		r.Syskey, r.RefNo, r.RequestTypeDesc, period, models.StatusLabel(r.RequestStatus))
}

// formatRequestDetail renders a request with its approver chain
func formatRequestDetail(r *models.Request, approvers []models.Approver) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Request:  %s (#%d)\n", r.RequestTypeDesc, r.RefNo)
	fmt.Fprintf(&sb, "Status:   %s\n", models.StatusLabel(r.RequestStatus))
	if r.StartDate != "" {
		fmt.Fprintf(&sb, "Period:   %s - %s\n", r.StartDate, r.EndDate)
	}
	if r.StartTime != "" {
		fmt.Fprintf(&sb, "Time:     %s - %s\n", r.StartTime, r.EndTime)
	}
	if r.PickupPlace != "" {
		fmt.Fprintf(&sb, "Route:    %s -> %s\n", r.PickupPlace, r.DropoffPlace)
	}
	if r.Amount != 0 {
		fmt.Fprintf(&sb, "Amount:   %.2f %s\n", r.Amount, r.CurrencyType)
	}
	if r.Remark != "" {
		fmt.Fprintf(&sb, "Remark:   %s\n", r.Remark)
	}
	if len(approvers) > 0 {
		sb.WriteString("Approvers:\n")
		for _, ap := range approvers {
			fmt.Fprintf(&sb, "  %s (%s)\n", ap.Name, ap.Position)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
