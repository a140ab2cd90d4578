package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ddeep01/storefront/internal/server"
	"github.com/ddeep01/storefront/searchindex"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var index *searchindex.Index
		if a.cfg.Search.Enabled {
			index, err = searchindex.Build(ctx, a.loader, a.logger)
			if err != nil {
				return fmt.Errorf("building search index: %w", err)
			}
			defer index.Close()
		}

		srv, err := server.New(server.Options{
			Loader:         a.loader,
			Logger:         a.logger,
			SiteName:       a.cfg.Site.Name,
			PageSize:       a.cfg.Site.PageSize,
			Index:          index,
			SearchLimit:    a.cfg.Search.Limit,
			RequestTimeout: a.cfg.Server.RequestTimeout,
		})
		if err != nil {
			return err
		}

		addr := a.cfg.Server.Addr
		if flagAddr != "" {
			addr = flagAddr
		}

		httpServer := &http.Server{
			Addr:         addr,
			Handler:      srv.Handler(),
			ReadTimeout:  a.cfg.Server.ReadTimeout,
			WriteTimeout: a.cfg.Server.WriteTimeout,
		}

		errCh := make(chan error, 1)
		go func() {
			a.logger.Info("listening", slog.String("addr", addr))
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		a.logger.Info("shutting down")
		return httpServer.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "listen address (overrides server.addr)")
}
