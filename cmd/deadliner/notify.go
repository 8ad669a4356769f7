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
	"github.com/pdiddy/deadliner/internal/gitblame"
	"github.com/pdiddy/deadliner/internal/report"
	"github.com/pdiddy/deadliner/internal/slack"
)

var notifyCmd = &cobra.Command{
	Use:   "notify [paths...]",
	Short: "Scan, filter by deadline window, and post the notification",
	Long: `Notify runs the full pipeline: scan the given paths for @Deadline
annotations, attribute each one through git blame, keep the deadlines
inside the notification window, compose the message, and post it to the
configured Slack webhook.

Use --dry-run to print the composed message JSON instead of sending it.`,
	RunE: runNotify,
}

func init() {
	notifyCmd.Flags().Bool("dry-run", false, "print the composed message instead of sending")
	notifyCmd.Flags().String("date", "", "reference date YYYY-MM-DD (default: today)")
	notifyCmd.Flags().Int("window", -1, "override notify window in days")
	notifyCmd.Flags().Bool("past", false, "include overdue deadlines")
	notifyCmd.Flags().Bool("no-blame", false, "skip git blame attribution")

	rootCmd.AddCommand(notifyCmd)
}

func runNotify(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if window, _ := cmd.Flags().GetInt("window"); window >= 0 {
		cfg.Notify.WindowDays = window
	}
	if past, _ := cmd.Flags().GetBool("past"); past {
		cfg.Notify.PastDeadlines = true
	}
	if noBlame, _ := cmd.Flags().GetBool("no-blame"); noBlame {
		cfg.Blame.Disabled = true
	}

	ref, err := referenceDate(cmd)
	if err != nil {
		return err
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

	if !cfg.Blame.Disabled {
		src, err := gitblame.Open(cfg.Blame.RepoDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: blame unavailable: %v\n", err)
		} else {
			gitblame.Enrich(records, src, cfg.Blame.Concurrency)
		}
	}

	notifiable := report.Filter(records, ref, cfg.Notify)
	msg := report.BuildMessage(notifiable, cfg.Notify, ref)

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(msg); err != nil {
			return err
		}
		recordHistory(cfg, "notify", summary, len(errs), notifiable, false)
		return nil
	}

	client := slack.NewClient(cfg.WebhookURL, nil)
	sendErr := client.Send(context.Background(), msg)
	recordHistory(cfg, "notify", summary, len(errs), notifiable, sendErr == nil)
	if sendErr != nil {
		return fmt.Errorf("delivering notification: %w", sendErr)
	}

	fmt.Printf("Notified %d deadline(s) (%d annotation(s) scanned in %d file(s)).\n",
		len(notifiable), summary.Records, summary.Files)
	return nil
}

// referenceDate parses the --date flag, defaulting to the current local
// day.
func referenceDate(cmd *cobra.Command) (time.Time, error) {
	flag, _ := cmd.Flags().GetString("date")
	if flag == "" {
		return time.Now(), nil
	}
	ref, err := time.ParseInLocation("2006-01-02", flag, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing --date %q: %w", flag, err)
	}
	return ref, nil
}
