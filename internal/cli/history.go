package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spetersoncode/aidispatch/store"
)

const msgNoHistory = "No history recorded yet."

var errEmptyHistoryID = errors.New("history id is required")

func newHistoryCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect past requests",
	}
	cmd.AddCommand(
		newHistoryListCommand(a),
		newHistoryShowCommand(a),
		newHistoryDeleteCommand(a),
		newHistoryClearCommand(a),
	)
	return cmd
}

func newHistoryListCommand(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent requests, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := a.history.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to read history: %w", err)
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}
			return renderHistory(cmd.OutOrStdout(), entries)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Max entries to show (0 for all)")
	return cmd
}

func newHistoryShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one request and its response",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := findEntry(cmd.Context(), a.history, args[0])
			if err != nil {
				return err
			}
			raw, err := json.MarshalIndent(entry, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(raw))
			return nil
		},
	}
}

func newHistoryDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one history entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := findEntry(cmd.Context(), a.history, args[0])
			if err != nil {
				return err
			}
			if _, err := a.history.Delete(cmd.Context(), entry.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", entry.ID)
			return nil
		},
	}
}

func newHistoryClearCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all history",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.history.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}
}

// findEntry looks up an entry by full id or unique id prefix.
func findEntry(ctx context.Context, h *store.History, id string) (store.HistoryEntry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return store.HistoryEntry{}, errEmptyHistoryID
	}
	if entry, ok, err := h.Get(ctx, id); err != nil || ok {
		return entry, err
	}

	entries, err := h.List(ctx)
	if err != nil {
		return store.HistoryEntry{}, err
	}
	var matches []store.HistoryEntry
	for _, e := range entries {
		if strings.HasPrefix(e.ID, id) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return store.HistoryEntry{}, fmt.Errorf("history entry %q not found", id)
	case 1:
		return matches[0], nil
	default:
		return store.HistoryEntry{}, fmt.Errorf("history id %q is ambiguous (%d matches)", id, len(matches))
	}
}

func renderHistory(out io.Writer, entries []store.HistoryEntry) error {
	if len(entries) == 0 {
		fmt.Fprintln(out, msgNoHistory)
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIME\tPROVIDER\tMODEL\tCOST\tPROMPT")
	for _, e := range entries {
		var provider, model, cost string
		if e.Response != nil {
			provider, model = string(e.Response.Provider), e.Response.Model
			if e.Response.Usage != nil {
				cost = fmt.Sprintf("$%.6f", e.Response.Usage.Cost)
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(e.ID), e.Time().Local().Format(time.DateTime), provider, model, cost, truncate(e.Prompt, 50))
	}
	return tw.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
