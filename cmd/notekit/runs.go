// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/notekit/internal/ledger"
	"github.com/pdiddy/notekit/pkg/types"
)

var errLedgerRequired = errors.New("no ledger configured: pass --ledger or set ledger.path")

var runsCmd = &cobra.Command{
	Use:   "runs [run-id]",
	Short: "List runs recorded in the ledger",
	Long: `Runs lists the most recent convert and group runs recorded in the
SQLite ledger, newest first. Given a run ID it shows that run and the outcome
of every file it processed.

Use --format yaml or --format json to export the same data.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().Int("limit", ledger.DefaultLimit, "maximum number of runs to list")
	runsCmd.Flags().String("format", "table", "output format: table, yaml, json")

	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	format, _ := cmd.Flags().GetString("format")

	store, err := openLedger()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	var runID string
	if len(args) == 1 {
		runID = args[0]
	}

	switch format {
	case "table", "":
	case string(ledger.FormatYAML), string(ledger.FormatJSON):
		return store.Export(ctx, os.Stdout, ledger.Format(format), runID, limit)
	default:
		return fmt.Errorf("unsupported format %q: use table, yaml, or json", format)
	}

	if runID == "" {
		runs, err := store.Runs(ctx, limit)
		if err != nil {
			return err
		}
		formatRunsTable(os.Stdout, runs)
		return nil
	}

	run, err := store.Lookup(ctx, runID)
	if err != nil {
		return err
	}
	events, err := store.Events(ctx, runID)
	if err != nil {
		return err
	}
	formatRunDetail(os.Stdout, run, events)
	return nil
}

func formatRunsTable(w io.Writer, runs []types.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}

	fmt.Fprintf(w, "%-36s  %-7s  %-19s  %-6s  %-6s  %-6s  %s\n",
		"ID", "Tool", "Started", "OK", "Skip", "Fail", "Input")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for _, r := range runs {
		fmt.Fprintf(w, "%-36s  %-7s  %-19s  %-6s  %-6s  %-6s  %s\n",
			r.ID, r.Tool, r.StartedAt.Local().Format(time.DateTime),
			count(r, r.Succeeded), count(r, r.Skipped), count(r, r.Failed),
			truncate(r.InputDir, 40))
	}

	fmt.Fprintf(w, "\n%d runs\n", len(runs))
}

func formatRunDetail(w io.Writer, run types.Run, events []types.RunEvent) {
	fmt.Fprintf(w, "Run:      %s\n", run.ID)
	fmt.Fprintf(w, "Tool:     %s\n", run.Tool)
	fmt.Fprintf(w, "Input:    %s\n", run.InputDir)
	if run.OutputDir != "" {
		fmt.Fprintf(w, "Output:   %s\n", run.OutputDir)
	}
	fmt.Fprintf(w, "Started:  %s\n", run.StartedAt.Local().Format(time.DateTime))
	if run.Finished() {
		fmt.Fprintf(w, "Finished: %s\n", run.FinishedAt.Local().Format(time.DateTime))
		fmt.Fprintf(w, "Result:   %d ok, %d skipped, %d failed\n", run.Succeeded, run.Skipped, run.Failed)
	} else {
		fmt.Fprintln(w, "Finished: (incomplete)")
	}

	if len(events) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-4s  %-8s  %-40s  %s\n", "Seq", "Status", "Source", "Target / Detail")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, ev := range events {
		tail := ev.Target
		if ev.Detail != "" {
			tail = ev.Detail
		}
		fmt.Fprintf(w, "%-4d  %-8s  %-40s  %s\n", ev.Seq, ev.Status, truncate(ev.Source, 40), tail)
	}
}

// count renders a result column, or "-" for a run that never finished.
func count(r types.Run, n int) string {
	if !r.Finished() {
		return "-"
	}
	return fmt.Sprint(n)
}

// truncate shortens s to at most n bytes, keeping the tail of long paths.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n+3:]
}
