// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command dcharts serves and runs the divisional chart parser.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree and binds its flags to viper.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "dcharts",
		Short:        "Divisional chart fetcher and SVG parser",
		Long:         "dcharts fetches astrological chart SVGs from Prokerala, parses them into sign tables and stores the artifacts per user.",
		SilenceUsage: true,
	}

	// Global flags. Viper keys match the dcharts.Config mapstructure tags.
	flags := rootCmd.PersistentFlags()
	flags.String("client-id", "", "Prokerala client ID")
	flags.String("client-secret", "", "Prokerala client secret")
	flags.String("base-url", "", "Prokerala API base URL")
	flags.String("token-url", "", "OAuth2 token URL (default base URL + /token)")
	flags.Int("ayanamsa", 1, "Ayanamsa sent to the provider (1 = Lahiri)")
	flags.Duration("timeout", 60*time.Second, "Timeout for each provider call")
	flags.String("save-dir", "./charts", "Root directory for divisional chart artifacts")
	flags.String("ashtakavarga-save-dir", "./ashtakavarga_charts", "Root directory for ashtakavarga SVGs")
	flags.Bool("git-archive", false, "Commit stored artifacts to a git repository in each save root")
	flags.String("s3-bucket", "", "Store artifacts in this S3 bucket instead of on disk")
	flags.String("s3-prefix", "", "Key prefix inside the S3 bucket")
	flags.String("s3-region", "", "AWS region for the S3 bucket")
	flags.String("aws-profile", "", "AWS credential profile")
	flags.Int("parallelism", 4, "Concurrent provider calls in the batch operation")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.String("log-format", "text", "Log format: text or json")

	for _, name := range []string{
		"client-id", "client-secret", "base-url", "token-url", "ayanamsa", "timeout",
		"save-dir", "ashtakavarga-save-dir", "git-archive",
		"s3-bucket", "s3-prefix", "s3-region", "aws-profile",
		"parallelism", "log-level", "log-format",
	} {
		viper.BindPFlag(configKey(name), flags.Lookup(name))
	}

	// Env vars: DCHARTS_CLIENT_ID, DCHARTS_SAVE_DIR, etc., plus the
	// service's historical names.
	viper.SetEnvPrefix("DCHARTS")
	viper.AutomaticEnv()
	viper.BindEnv("client_id", "DCHARTS_CLIENT_ID", "PROKERALA_CLIENT_ID")
	viper.BindEnv("client_secret", "DCHARTS_CLIENT_SECRET", "PROKERALA_CLIENT_SECRET")
	viper.BindEnv("ashtakavarga_save_dir", "DCHARTS_ASHTAKAVARGA_SAVE_DIR", "ASHTAKAVARGA_SAVE_DIR")
	viper.BindEnv("allow_origins", "DCHARTS_ALLOW_ORIGINS", "ALLOW_ORIGINS")

	// Config file.
	viper.SetConfigName(".dcharts")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.ReadInConfig() // Ignore error; config file is optional.

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newFetchCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// configKey maps a flag name to its viper key: save-dir -> save_dir.
func configKey(flag string) string {
	return strings.ReplaceAll(flag, "-", "_")
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print dcharts version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dcharts %s\n", version)
		},
	}
}
