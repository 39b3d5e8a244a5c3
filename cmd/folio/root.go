// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"folio/internal/config"
)

var (
	envFile string
	apiURL  string

	// cfg is loaded before any subcommand runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Portfolio CMS API and tools",
	Long: `folio serves the portfolio JSON API (blog, portfolio, reviews,
services and their like counters) and ships the tools around it: database
migrations and seeding, plus terminal clients that list, aggregate and vote
against a running API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(envFile); err != nil {
			return err
		}
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		if apiURL != "" {
			c.APIURL = apiURL
		}
		cfg = c
		// The server logs to stdout; client commands keep stdout for
		// their output.
		logOut := os.Stderr
		if cmd == serveCmd {
			logOut = os.Stdout
		}
		slog.SetDefault(cfg.NewLogger(logOut))
		return nil
	},
}

// Execute runs the root command and exits non-zero on failure. Client
// commands are cancelled by an interrupt.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Dotenv file to load before reading the environment")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "API base URL for client commands (default: $FOLIO_API_URL)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(voteCmd)
}
