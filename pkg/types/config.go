// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ScanConfig holds settings for the scanning stage.
type ScanConfig struct {
	// Extensions lists the file extensions scanned for annotations
	// (default [".dart"]).
	Extensions []string `json:"extensions" yaml:"extensions"`

	// Exclude lists directory names skipped during discovery, in addition
	// to dot-directories (e.g. "build", "node_modules").
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`

	// MaxExcerptLines caps the extracted code excerpt; longer excerpts are
	// truncated with a marker (default 15).
	MaxExcerptLines int `json:"max_excerpt_lines" yaml:"max_excerpt_lines"`
}

// NotifyConfig holds settings for window filtering and message composition.
type NotifyConfig struct {
	// Language selects the message locale: "en" or "ja" (default "en").
	Language string `json:"language" yaml:"language"`

	// Repository is the "owner/name" identifier used to build source links.
	Repository string `json:"repository" yaml:"repository"`

	// Branch is the branch name used in source links (default "main").
	Branch string `json:"branch" yaml:"branch"`

	// LinkBase is the URL prefix for source links (default
	// "https://github.com").
	LinkBase string `json:"link_base" yaml:"link_base"`

	// WindowDays is the number of days ahead (inclusive) for which a
	// deadline is notifiable. Zero means only deadlines due today.
	WindowDays int `json:"window_days" yaml:"window_days"`

	// PastDeadlines includes deadlines that are already overdue regardless
	// of the window.
	PastDeadlines bool `json:"past_deadlines" yaml:"past_deadlines"`

	// Mentions maps GitHub usernames, emails, or display names to mention
	// IDs (e.g. Slack member IDs).
	Mentions map[string]string `json:"mentions,omitempty" yaml:"mentions,omitempty"`

	// Template is an optional Go text/template for the whole message; when
	// set and valid it replaces the default block layout.
	Template string `json:"template,omitempty" yaml:"template,omitempty"`

	// Channel is the optional delivery channel override.
	Channel string `json:"channel,omitempty" yaml:"channel,omitempty"`

	// MaxBlocks bounds the composed message's block count for delivery
	// channel limits (default 30).
	MaxBlocks int `json:"max_blocks" yaml:"max_blocks"`
}

// BlameConfig holds settings for the attribution enrichment stage.
type BlameConfig struct {
	// RepoDir is the git working tree the scanned paths belong to
	// (default ".").
	RepoDir string `json:"repo_dir" yaml:"repo_dir"`

	// Concurrency bounds the number of parallel blame lookups (default 8).
	Concurrency int `json:"concurrency" yaml:"concurrency"`

	// Disabled skips attribution enrichment entirely.
	Disabled bool `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// HistoryConfig holds settings for the run-history store.
type HistoryConfig struct {
	// Dir is the directory holding the history database (default
	// ".deadliner").
	Dir string `json:"dir" yaml:"dir"`

	// MaxRuns is the default maximum number of runs listed (default 20).
	MaxRuns int `json:"max_runs" yaml:"max_runs"`
}

// Config groups all stage configurations for the pipeline.
type Config struct {
	Scan    ScanConfig    `json:"scan" yaml:"scan"`
	Notify  NotifyConfig  `json:"notify" yaml:"notify"`
	Blame   BlameConfig   `json:"blame" yaml:"blame"`
	History HistoryConfig `json:"history" yaml:"history"`

	// WebhookURL is the delivery endpoint; usually loaded from
	// .secrets/slack-webhook-url rather than the config file.
	WebhookURL string `json:"webhook_url,omitempty" yaml:"webhook_url,omitempty"`
}
