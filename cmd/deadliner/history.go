// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/deadliner/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Review past scan and notify runs",
	Long: `History lists the runs recorded in the local SQLite database, newest
first, with per-run scan and delivery counts. Use show to inspect the
deadlines recorded with one run, or export to write the full history
as YAML.`,
	RunE: runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show the deadlines recorded with one run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full run history as YAML",
	RunE:  runHistoryExport,
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum runs to list (default from config)")
	historyCmd.Flags().Bool("json", false, "output runs as JSON")

	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}

func openHistory() (*history.Store, error) {
	return history.NewStore(loadConfig().History)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Runs(context.Background(), limit)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}
	fmt.Printf("%-5s  %-20s  %-7s  %-6s  %-8s  %-9s  %-7s  %s\n",
		"ID", "Ran at", "Kind", "Files", "Records", "Notified", "Errors", "Delivered")
	for _, r := range runs {
		fmt.Printf("%-5d  %-20s  %-7s  %-6d  %-8d  %-9d  %-7d  %v\n",
			r.ID, r.RanAt.Local().Format("2006-01-02 15:04:05"), r.Kind,
			r.FilesScanned, r.Records, r.Notified, r.Errors, r.Delivered)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	var runID int64
	if _, err := fmt.Sscanf(args[0], "%d", &runID); err != nil {
		return fmt.Errorf("invalid run id %q", args[0])
	}

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	deadlines, err := store.RunDeadlines(context.Background(), runID)
	if err != nil {
		return err
	}
	if len(deadlines) == 0 {
		fmt.Println("No deadlines recorded for this run.")
		return nil
	}
	for _, d := range deadlines {
		fmt.Printf("%s:%d  %s  %s  %s\n", d.SourcePath, d.Line, d.Deadline, d.Element, d.Author)
	}
	return nil
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	path, err := store.Export(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("Exported to %s\n", path)
	return nil
}
