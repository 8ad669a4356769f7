// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the deadliner CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/deadliner/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the deadliner CLI.
var rootCmd = &cobra.Command{
	Use:   "deadliner",
	Short: "Scan source trees for @Deadline annotations and notify owners",
	Long: `deadliner scans source files for @Deadline annotations that mark a
declaration for removal or review by a calendar date, attributes each
annotation to its author through git blame, and posts a notification to a
Slack webhook when a deadline falls inside the configured window.

Each stage is a subcommand: scan lists annotations, notify runs the full
pipeline, and history reviews past runs.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./deadliner.yaml or ~/.config/deadliner/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("deadliner")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "deadliner"))
		}
	}

	viper.SetEnvPrefix("DEADLINER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
