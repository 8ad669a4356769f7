// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/viper"

	"github.com/pdiddy/deadliner/internal/secrets"
	"github.com/pdiddy/deadliner/pkg/types"
)

// loadConfig assembles the pipeline configuration from the viper-backed
// config file, environment variables, and loaded secrets. Flag overrides
// are applied by the individual commands.
func loadConfig() types.Config {
	viper.SetDefault("scan.extensions", []string{".dart"})
	viper.SetDefault("scan.max_excerpt_lines", 15)
	viper.SetDefault("notify.language", "en")
	viper.SetDefault("notify.branch", "main")
	viper.SetDefault("notify.link_base", "https://github.com")
	viper.SetDefault("notify.window_days", 0)
	viper.SetDefault("notify.max_blocks", 30)
	viper.SetDefault("blame.repo_dir", ".")
	viper.SetDefault("blame.concurrency", 8)
	viper.SetDefault("history.dir", ".deadliner")
	viper.SetDefault("history.max_runs", 20)

	cfg := types.Config{
		Scan: types.ScanConfig{
			Extensions:      viper.GetStringSlice("scan.extensions"),
			Exclude:         viper.GetStringSlice("scan.exclude"),
			MaxExcerptLines: viper.GetInt("scan.max_excerpt_lines"),
		},
		Notify: types.NotifyConfig{
			Language:      viper.GetString("notify.language"),
			Repository:    viper.GetString("notify.repository"),
			Branch:        viper.GetString("notify.branch"),
			LinkBase:      viper.GetString("notify.link_base"),
			WindowDays:    viper.GetInt("notify.window_days"),
			PastDeadlines: viper.GetBool("notify.past_deadlines"),
			Mentions:      viper.GetStringMapString("notify.mentions"),
			Template:      viper.GetString("notify.template"),
			Channel:       viper.GetString("notify.channel"),
			MaxBlocks:     viper.GetInt("notify.max_blocks"),
		},
		Blame: types.BlameConfig{
			RepoDir:     viper.GetString("blame.repo_dir"),
			Concurrency: viper.GetInt("blame.concurrency"),
			Disabled:    viper.GetBool("blame.disabled"),
		},
		History: types.HistoryConfig{
			Dir:     viper.GetString("history.dir"),
			MaxRuns: viper.GetInt("history.max_runs"),
		},
		WebhookURL: viper.GetString("webhook_url"),
	}

	if cfg.WebhookURL == "" {
		cfg.WebhookURL = loadedSecrets[secrets.WebhookURLKey]
	}
	if cfg.Notify.Channel == "" {
		cfg.Notify.Channel = loadedSecrets[secrets.ChannelKey]
	}
	return cfg
}
