// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"folio/internal/client"
	"folio/internal/engagement"
	"folio/internal/fallback"
)

var voteCmd = &cobra.Command{
	Use:       "vote <blog|portfolio|review> <id>",
	Short:     "Like a post or love a project or review",
	Long:      "Record one vote for a record. Votes are remembered in a local ledger so each record is voted at most once from this machine.",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"blog", "portfolio", "review"},
	RunE: func(cmd *cobra.Command, args []string) error {
		resource, id := args[0], args[1]
		path, _ := cmd.Flags().GetString("ledger")
		if path == "" {
			p, err := engagement.DefaultLedgerPath()
			if err != nil {
				return err
			}
			path = p
		}
		ledger, err := engagement.OpenFileLedger(path)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		c := client.New(cfg.APIURL, nil)
		known, err := lastKnownCounts(ctx, c, resource)
		if err != nil {
			return err
		}
		counter := engagement.NewCounter(resource, c, ledger, engagement.WithFallback(known))

		voted, err := counter.Vote(ctx, id)
		if err != nil && !voted {
			return err
		}
		if err != nil {
			slog.Warn("vote counted but totals not refreshed", "error", err)
		}
		if !voted {
			if err := counter.Sync(ctx); err != nil {
				slog.Warn("refresh totals failed", "error", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "already voted for %s %s: %d\n", resource, id, counter.CurrentCount(id))
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "voted for %s %s: %d\n", resource, id, counter.CurrentCount(id))
		return nil
	},
}

// lastKnownCounts returns the engagement lookup of the resource's record
// store, used until the API reports authoritative totals.
func lastKnownCounts(ctx context.Context, c *client.Client, resource string) (func(string) (int, bool), error) {
	switch resource {
	case "blog":
		return openStore(ctx, c, "blog", fallback.Blog).Engagement, nil
	case "portfolio":
		return openStore(ctx, c, "portfolio", fallback.Portfolio).Engagement, nil
	case "review":
		return openStore(ctx, c, "reviews", fallback.Reviews).Engagement, nil
	}
	return nil, fmt.Errorf("unknown resource %q (blog, portfolio, review)", resource)
}

func init() {
	voteCmd.Flags().String("ledger", "", "Vote ledger file (default: votes.json in the user config directory)")
}
