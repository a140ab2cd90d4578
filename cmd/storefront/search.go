package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ddeep01/storefront/searchindex"
)

var (
	flagSearchKind  string
	flagSearchLimit int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over products and blog posts",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		index, err := searchindex.Build(cmd.Context(), a.loader, a.logger)
		if err != nil {
			return fmt.Errorf("building search index: %w", err)
		}
		defer index.Close()

		limit := a.cfg.Search.Limit
		if flagSearchLimit > 0 {
			limit = flagSearchLimit
		}

		hits, err := index.Search(cmd.Context(), strings.Join(args, " "), searchindex.ParseKind(flagSearchKind), limit)
		if err != nil {
			return err
		}

		if len(hits) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No results.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "KIND\tID\tTITLE\tSCORE")
		for _, hit := range hits {
			fmt.Fprintf(w, "%s\t%d\t%s\t%.3f\n", hit.Kind, hit.ID, hit.Heading, hit.Score)
		}
		return w.Flush()
	},
}

func init() {
	searchCmd.Flags().StringVar(&flagSearchKind, "kind", "", "restrict to product or blog")
	searchCmd.Flags().IntVar(&flagSearchLimit, "limit", 0, "maximum number of results (overrides search.limit)")
}
