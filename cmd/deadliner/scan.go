// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/deadliner/internal/annotation"
	"github.com/pdiddy/deadliner/internal/discover"
	"github.com/pdiddy/deadliner/internal/history"
	"github.com/pdiddy/deadliner/pkg/types"
)

var scanCmd = &cobra.Command{
	Use:   "scan [paths...]",
	Short: "List @Deadline annotations in a source tree",
	Long: `Scan walks the given paths (default: the current directory), parses
every @Deadline annotation, and prints the annotated declarations with
their deadlines. Parse errors are reported per file and never stop the
scan.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringSlice("ext", nil, "file extensions to scan (default .dart)")
	scanCmd.Flags().Bool("json", false, "output records as JSON")
	scanCmd.Flags().Bool("no-history", false, "do not record this run in the history database")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if exts, _ := cmd.Flags().GetStringSlice("ext"); len(exts) > 0 {
		cfg.Scan.Extensions = exts
	}

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}

	files, err := discover.Files(roots, cfg.Scan)
	if err != nil {
		return err
	}

	records, errs, summary := annotation.ScanPaths(files, cfg.Scan, os.Stderr)

	if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory {
		recordHistory(cfg, "scan", summary, len(errs), nil, false)
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("No annotations found.")
		return nil
	}
	for _, rec := range records {
		fmt.Printf("%s:%d  %s  %s\n", rec.SourcePath, rec.Line, rec.Deadline, rec.Element)
		if rec.Description != "" {
			fmt.Printf("    %s\n", rec.Description)
		}
	}
	fmt.Printf("\n%d annotation(s) in %d file(s)\n", summary.Records, summary.Files)
	return nil
}

// recordHistory stores a run, reporting failures as warnings only: the
// history store must never fail a scan or notify invocation.
func recordHistory(cfg types.Config, kind string, summary annotation.ScanSummary, errCount int, notified []types.AnnotationRecord, delivered bool) {
	store, err := history.NewStore(cfg.History)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: history unavailable: %v\n", err)
		return
	}
	defer store.Close()

	run := history.Run{
		RanAt:        time.Now(),
		Kind:         kind,
		FilesScanned: summary.Files,
		Records:      summary.Records,
		Notified:     len(notified),
		Errors:       errCount,
		Delivered:    delivered,
	}
	if _, err := store.RecordRun(context.Background(), run, notified); err != nil {
		fmt.Fprintf(os.Stderr, "warning: recording run: %v\n", err)
	}
}
