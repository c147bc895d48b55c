// ABOUTME: Holidays command listing the public holidays for a year
// ABOUTME: Defaults to the current year

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

var holidayYear int

var holidaysCmd = &cobra.Command{
	Use:   "holidays",
	Short: "List public holidays",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runHolidays(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	holidaysCmd.Flags().IntVar(&holidayYear, "year", 0, "Year (default: current year)")
	rootCmd.AddCommand(holidaysCmd)
}

// runHolidays lists holidays and returns exit code
func runHolidays(ctx context.Context, w io.Writer) int {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if code := a.requireLogin(w); code != 0 {
		return code
	}

	year := holidayYear
	if year == 0 {
		year = time.Now().Year()
	}

	holidays, err := a.main.Holidays(ctx, year)
	if err != nil {
		return reportError(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(holidays, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(holidays) == 0 {
		fmt.Fprintf(w, "No holidays found for %d.\n", year)
		return 0
	}
	for _, h := range holidays {
		fmt.Fprintf(w, "%-12s %s\n", h.Date, h.HolidayName)
	}
	return 0
}
