package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"vidgrab/internal/api"
	"vidgrab/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List downloads recorded on this machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := requireHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				if entries == nil {
					entries = []*history.Entry{}
				}
				return writeJSON(cmd, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No downloads recorded")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderHistoryTable(entries))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to show (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON")
	cmd.AddCommand(newHistoryShowCommand(ctx))
	cmd.AddCommand(newHistoryPruneCommand(ctx))
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <download-id>",
		Short: "Show the recorded state of one download",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := requireHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			entry, err := store.Get(cmd.Context(), strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, entry)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Download ID: %s\n", entry.DownloadID)
			fmt.Fprintf(out, "URL:         %s\n", valueOrDash(entry.URL))
			fmt.Fprintf(out, "Format:      %s\n", valueOrDash(entry.Format))
			fmt.Fprintf(out, "Proxy:       %s\n", yesNo(entry.UseProxy))
			if entry.UseProxy {
				fmt.Fprintf(out, "Proxy URL:   %s\n", valueOrDash(entry.ProxyURL))
			}
			fmt.Fprintf(out, "Phase:       %s\n", phaseLabel(string(entry.Phase)))
			fmt.Fprintf(out, "Progress:    %s\n", api.FormatPercent(entry.Percent))
			if entry.StatusText != "" {
				fmt.Fprintf(out, "Status:      %s\n", entry.StatusText)
			}
			if entry.ErrorText != "" {
				fmt.Fprintf(out, "Error:       %s\n", entry.ErrorText)
			}
			fmt.Fprintf(out, "Created:     %s\n", formatTime(entry.CreatedAt))
			fmt.Fprintf(out, "Updated:     %s\n", formatTime(entry.UpdatedAt))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON")
	return cmd
}

func newHistoryPruneCommand(ctx *commandContext) *cobra.Command {
	var olderThan string

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove finished downloads older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			age := cfg.HistoryRetention()
			if strings.TrimSpace(olderThan) != "" {
				age, err = parseAge(olderThan)
				if err != nil {
					return err
				}
			}
			if age <= 0 {
				return errors.New("history retention is disabled; pass --older-than")
			}

			store, err := requireHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Prune(cmd.Context(), age)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d entr%s\n", removed, pluralSuffix(removed, "y", "ies"))
			return nil
		},
	}

	cmd.Flags().StringVar(&olderThan, "older-than", "", "Age cutoff, e.g. 7d or 12h (default: history.retention_days)")
	return cmd
}

func requireHistory(ctx *commandContext) (*history.Store, error) {
	store, err := ctx.openHistory()
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errors.New("history is disabled in the configuration")
	}
	return store, nil
}

func renderHistoryTable(entries []*history.Entry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.DownloadID,
			phaseLabel(string(e.Phase)),
			api.FormatPercent(e.Percent),
			valueOrDash(e.Format),
			valueOrDash(e.URL),
			formatTime(e.UpdatedAt),
		})
	}
	return renderTable(historyColumns, rows)
}

// parseAge accepts Go durations plus a whole-day "d" suffix.
func parseAge(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid age %q", value)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid age %q", value)
	}
	return d, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func valueOrDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func pluralSuffix(n int64, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
