package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ddeep01/storefront"
	"github.com/ddeep01/storefront/internal/config"
)

var flagSyncTo string

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Snapshot the site documents into a local store",
	Long: `Fetch every site document from the configured source and store it in a bbolt or SQLite
snapshot. Point source.type at the snapshot afterwards to serve the site offline.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		to := config.SourceType(flagSyncTo)
		if to == a.cfg.Source.Type {
			return fmt.Errorf("source and destination are both %s", to)
		}

		dst, err := a.openStore(to)
		if err != nil {
			return err
		}

		counts, err := storefront.Mirror(cmd.Context(), a.source, dst, storefront.DefaultResources().Strings()...)
		if err != nil {
			return fmt.Errorf("syncing: %w", err)
		}

		keys := make([]string, 0, len(counts))
		for key := range counts {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			fmt.Fprintf(cmd.OutOrStdout(), "%-22s %d bytes\n", key, counts[key])
		}
		return nil
	},
}

func init() {
	syncCmd.Flags().StringVar(&flagSyncTo, "to", string(config.SourceTypeBolt), "destination store: bolt or sqlite")
}
