package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/ddeep01/storefront"
	"github.com/ddeep01/storefront/bboltstore"
	"github.com/ddeep01/storefront/internal/config"
	"github.com/ddeep01/storefront/internal/logging"
	"github.com/ddeep01/storefront/sqlitestore"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Catalog and blog site for a rice and spice trading company",
	Long: `storefront serves a product catalog and a blog built from static JSON documents
(products.json, blogs.json, categories.json, blog-categories.json).

It can serve the site over HTTP, render it to static files, snapshot the documents into
a local bbolt or SQLite store, and compile markdown posts into blogs.json.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default ./storefront.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(importBlogsCmd)
	rootCmd.AddCommand(newPostCmd)
	rootCmd.AddCommand(searchCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "storefront %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app is the state shared by the commands that read site documents.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	loader  *storefront.Loader
	source  storefront.Fetcher
	closers []io.Closer
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger, logCloser, err := logging.Setup(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("setting up logging: %w", err)
	}

	a := &app{cfg: cfg, logger: logger, closers: []io.Closer{logCloser}}

	a.source, err = a.fetcher()
	if err != nil {
		a.Close()
		return nil, err
	}

	a.loader, err = storefront.NewLoader(storefront.LoaderOptions{
		Fetcher: a.source,
		Logger:  logger,
		Timeout: cfg.Source.Timeout,
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// fetcher builds the document source named by the configuration.
func (a *app) fetcher() (storefront.Fetcher, error) {
	src := a.cfg.Source
	switch src.Type {
	case config.SourceTypeHTTP:
		return storefront.NewHTTPFetcher(src.URL, &http.Client{Timeout: src.Timeout})
	case config.SourceTypeBolt, config.SourceTypeSQLite:
		store, err := a.openStore(src.Type)
		if err != nil {
			return nil, err
		}
		return storefront.StoreFetcher(store), nil
	default:
		return storefront.NewDirFetcher(src.Dir), nil
	}
}

// openStore opens and initializes a snapshot store. It is closed with the app.
func (a *app) openStore(kind config.SourceType) (storefront.DocumentStore, error) {
	var store storefront.DocumentStore
	switch kind {
	case config.SourceTypeBolt:
		store = bboltstore.New(a.cfg.Source.DataDir, a.logger)
	case config.SourceTypeSQLite:
		db, err := sqlitestore.Open(a.cfg.Source.DBPath)
		if err != nil {
			return nil, err
		}
		sqlStore, err := sqlitestore.NewSQLiteStore(db, a.cfg.Source.Table)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		store = sqlStore
	default:
		return nil, fmt.Errorf("%q is not a snapshot store", kind)
	}

	if err := store.Init(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("opening %s store: %w", kind, err)
	}
	a.closers = append(a.closers, store)
	return store, nil
}

// Close releases stores and the log file, most recent first.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && a.logger != nil {
			a.logger.Warn("close failed", slog.String("error", err.Error()))
		}
	}
}
