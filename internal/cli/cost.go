package cli

import (
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newCostCommand(a *app) *cobra.Command {
	var since, until string

	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Summarize spend from the cost ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseTime(since, false)
			if err != nil {
				return fmt.Errorf("--since: %w", err)
			}
			end, err := parseTime(until, true)
			if err != nil {
				return fmt.Errorf("--until: %w", err)
			}

			sum, err := a.costs.TotalBetween(cmd.Context(), start, end)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total: $%.6f (%d requests)\n", sum.Total, sum.Count)
			if len(sum.ByModel) == 0 {
				return nil
			}

			models := make([]string, 0, len(sum.ByModel))
			for m := range sum.ByModel {
				models = append(models, m)
			}
			sort.Strings(models)

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "MODEL\tCOST")
			for _, m := range models {
				fmt.Fprintf(tw, "%s\t$%.6f\n", m, sum.ByModel[m])
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "Start date (YYYY-MM-DD or RFC3339)")
	cmd.Flags().StringVar(&until, "until", "", "End date, inclusive (YYYY-MM-DD or RFC3339)")
	return cmd
}

// parseTime accepts a date or an RFC3339 timestamp. A bare date used as
// an end bound covers the whole day.
func parseTime(s string, endOfDay bool) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Millisecond)
	}
	return t, nil
}
