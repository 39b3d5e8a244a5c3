// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"folio/internal/client"
	"folio/internal/datefmt"
	"folio/internal/fallback"
	"folio/internal/listing"
	"folio/internal/models"
	"folio/internal/recordstore"
)

var listCmd = &cobra.Command{
	Use:       "list <blog|portfolio|reviews|services>",
	Short:     "List records from the API",
	Long:      "Fetch a collection from the API and page through it locally. The bundled dataset is shown when the API is unreachable.",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"blog", "portfolio", "reviews", "services"},
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		search, _ := flags.GetString("search")
		category, _ := flags.GetString("category")
		sortKey, _ := flags.GetString("sort")
		page, _ := flags.GetInt("page")
		pageSize, _ := flags.GetInt("page-size")

		q := listing.Query{SearchTerm: search, Facet: category, Sort: listing.SortKey(sortKey), Page: page, PageSize: pageSize}
		if !q.Sort.Valid() {
			return fmt.Errorf("unknown sort %q (popular, newest, oldest, rating, title)", sortKey)
		}

		ctx := cmd.Context()
		c := client.New(cfg.APIURL, nil)
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		defer w.Flush()

		switch args[0] {
		case "blog":
			s := openStore(ctx, c, "blog", fallback.Blog)
			printPage(w, s, browse(s, q, listing.BlogPageSize), []string{"ID", "TITLE", "CATEGORY", "LIKES", "DATE"}, func(p models.BlogPost) []string {
				return []string{p.RecordID(), p.Title, p.Category, strconv.Itoa(p.Likes), shortDate(p.DisplayDate())}
			})
		case "portfolio":
			s := openStore(ctx, c, "portfolio", fallback.Portfolio)
			printPage(w, s, browse(s, q, listing.PortfolioPageSize), []string{"ID", "TITLE", "CATEGORY", "LOVES", "TECHNOLOGIES"}, func(p models.PortfolioItem) []string {
				return []string{p.RecordID(), p.Title, p.Category, strconv.Itoa(p.Loves), strings.Join(p.Technologies, ", ")}
			})
		case "reviews":
			s := openStore(ctx, c, "reviews", fallback.Reviews)
			printPage(w, s, browse(s, q, listing.TestimonialsPageSize), []string{"ID", "NAME", "PROJECT", "RATING", "DATE"}, func(r models.Review) []string {
				return []string{r.RecordID(), r.Name, r.Project, strings.Repeat("★", r.Rating), r.Date}
			})
		case "services":
			services, err := loadServices(ctx, c)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, "ID\tTITLE\tPRICE\tFEATURES")
			for _, s := range services {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", s.ID, s.Title, s.Price, len(s.Features))
			}
		default:
			return fmt.Errorf("unknown resource %q", args[0])
		}
		return nil
	},
}

// openStore loads a resource through a record store backed by the API,
// with the bundled dataset as fallback.
func openStore[T listing.Record](ctx context.Context, c *client.Client, resource string, bundled func() ([]T, error)) *recordstore.Store[T] {
	var opts []recordstore.Option[T]
	if records, err := bundled(); err != nil {
		slog.Warn("bundled dataset unreadable", "resource", resource, "error", err)
	} else {
		opts = append(opts, recordstore.WithFallback(records))
	}
	s := recordstore.New[T](resource, client.Source[T]{Client: c, Resource: resource}, opts...)
	s.LoadOrFallback(ctx)
	return s
}

// browse applies the flags to a listing state the way a viewer would:
// filters first, then the page within the filtered results.
func browse[T listing.Record](s *recordstore.Store[T], q listing.Query, defaultPageSize int) listing.Result[T] {
	st := listing.NewState(pageSizeOr(q.PageSize, defaultPageSize))
	st.SetFacet(q.Facet)
	st.SetSearch(q.SearchTerm)
	st.SetSort(q.Sort)
	st.SetPage(q.Page)
	return listing.Apply(st, s.Records())
}

func printPage[T listing.Record](w io.Writer, s *recordstore.Store[T], res listing.Result[T], header []string, row func(T) []string) {
	if facets := listing.Facets(s.Records()); len(facets) > 0 {
		fmt.Fprintf(w, "Categories: %s, %s\n\n", listing.FacetAll, strings.Join(facets, ", "))
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, r := range res.Items {
		fmt.Fprintln(w, strings.Join(row(r), "\t"))
	}
	if res.TotalCount == 0 {
		fmt.Fprintln(w, "(no matching records)")
	}
	fmt.Fprintf(w, "\npage %d of %d, %d total", res.CurrentPage, max(res.TotalPages, 1), res.TotalCount)
	if st := s.Status(); st == recordstore.StatusFallback || st == recordstore.StatusFailed {
		fmt.Fprintf(w, " (%s: API unreachable)", st)
	}
	fmt.Fprintln(w)
}

func pageSizeOr(n, def int) int {
	if n > 0 {
		return n
	}
	return def
}

// shortDate renders a display date as a calendar date when it parses.
func shortDate(s string) string {
	if t, ok := datefmt.Parse(s); ok {
		return datefmt.Normalize(t)
	}
	return s
}

func init() {
	f := listCmd.Flags()
	f.StringP("search", "s", "", "Case-insensitive text search")
	f.StringP("category", "c", listing.FacetAll, "Category (blog, portfolio) or project (reviews)")
	f.String("sort", "", "Sort key: popular, newest, oldest, rating, title")
	f.IntP("page", "p", 1, "Page number")
	f.IntP("page-size", "n", 0, "Items per page (default depends on the resource)")
}
