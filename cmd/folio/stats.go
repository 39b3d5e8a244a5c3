// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"folio/internal/client"
	"folio/internal/fallback"
	"folio/internal/models"
	"folio/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:       "stats <blog|portfolio|reviews|services|all>",
	Short:     "Aggregate a collection",
	Long:      "Fetch a collection from the API and print its counts, engagement totals and (for reviews) rating breakdown. \"all\" loads every collection concurrently.",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"blog", "portfolio", "reviews", "services", "all"},
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		ctx := cmd.Context()
		c := client.New(cfg.APIURL, nil)
		now := time.Now()

		var out any
		switch args[0] {
		case "blog":
			out = stats.Blog(openStore(ctx, c, "blog", fallback.Blog).Records(), now)
		case "portfolio":
			out = stats.Portfolio(openStore(ctx, c, "portfolio", fallback.Portfolio).Records(), now)
		case "reviews":
			out = stats.Reviews(openStore(ctx, c, "reviews", fallback.Reviews).Records(), now)
		case "services":
			services, err := loadServices(ctx, c)
			if err != nil {
				return err
			}
			out = stats.Services(services)
		case "all":
			o, err := loadOverview(ctx, c, now)
			if err != nil {
				return err
			}
			out = o
		default:
			return fmt.Errorf("unknown resource %q", args[0])
		}

		w := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}
		printStats(w, out)
		return nil
	},
}

// overview aggregates every collection.
type overview struct {
	Blog      stats.BlogStats      `json:"blog"`
	Portfolio stats.PortfolioStats `json:"portfolio"`
	Reviews   stats.ReviewStats    `json:"reviews"`
	Services  stats.ServiceStats   `json:"services"`
}

// loadOverview reloads the four collections concurrently. Each one falls
// back to the bundled dataset on its own.
func loadOverview(ctx context.Context, c *client.Client, now time.Time) (overview, error) {
	var o overview
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		o.Blog = stats.Blog(openStore(ctx, c, "blog", fallback.Blog).Records(), now)
		return nil
	})
	g.Go(func() error {
		o.Portfolio = stats.Portfolio(openStore(ctx, c, "portfolio", fallback.Portfolio).Records(), now)
		return nil
	})
	g.Go(func() error {
		o.Reviews = stats.Reviews(openStore(ctx, c, "reviews", fallback.Reviews).Records(), now)
		return nil
	})
	g.Go(func() error {
		services, err := loadServices(ctx, c)
		if err != nil {
			return err
		}
		o.Services = stats.Services(services)
		return nil
	})
	if err := g.Wait(); err != nil {
		return overview{}, err
	}
	return o, nil
}

// loadServices fetches services, or the bundled ones when the API fails.
func loadServices(ctx context.Context, c *client.Client) ([]models.Service, error) {
	services, err := client.Fetch[models.Service](ctx, c, "services")
	if err != nil {
		slog.Warn("service fetch failed, using fallback", "error", err)
		return fallback.Services()
	}
	return services, nil
}

func printStats(w io.Writer, v any) {
	switch s := v.(type) {
	case stats.BlogStats:
		printSummary(w, "posts", "likes", s.Summary)
		fmt.Fprintf(w, "published: %d  drafts: %d\n", s.Published, s.Drafts)
		if s.TopPost != nil {
			fmt.Fprintf(w, "most liked: %s (%d)\n", s.TopPost.Title, s.TopPost.Likes)
		}
	case stats.PortfolioStats:
		printSummary(w, "projects", "loves", s.Summary)
		fmt.Fprintf(w, "featured: %d\n", s.Featured)
	case stats.ReviewStats:
		printSummary(w, "reviews", "loves", s.Summary)
		fmt.Fprintf(w, "average: %.1f %s  five-star: %d\n", s.AverageRating, s.Stars, s.FiveStar)
		for star := models.MaxRating; star >= models.MinRating; star-- {
			fmt.Fprintf(w, "  %d %s %d\n", star, strings.Repeat("█", s.Distribution[star]), s.Distribution[star])
		}
	case stats.ServiceStats:
		fmt.Fprintf(w, "services: %d  active: %d  inactive: %d\n", s.Total, s.Active, s.Inactive)
	case overview:
		for _, part := range []any{s.Blog, s.Portfolio, s.Reviews, s.Services} {
			printStats(w, part)
			fmt.Fprintln(w)
		}
	}
}

func printSummary(w io.Writer, noun, engagement string, s stats.Summary) {
	fmt.Fprintf(w, "%s: %d  recent: %d  %s: %d\n", noun, s.Total, s.Recent, engagement, s.TotalEngagement)
	for _, facet := range slices.Sorted(maps.Keys(s.ByFacet)) {
		fmt.Fprintf(w, "  %-20s %d\n", facet, s.ByFacet[facet])
	}
}

func init() {
	statsCmd.Flags().Bool("json", false, "Print the aggregate as JSON")
}
