package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ddeep01/storefront"
	"github.com/ddeep01/storefront/internal/server"
)

var flagOutputDir string

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the site to static HTML files",
	Long: `Render every page of the site into a directory that any static file host can serve.

Detail pages are written as products/<id>.html and blogs/<id>.html. Records without a
positive id get no detail page. A static host ignores query strings, so list pages are
rendered unfiltered and without the search and category forms.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		outDir := a.cfg.Site.OutputDir
		if flagOutputDir != "" {
			outDir = flagOutputDir
		}

		srv, err := server.New(server.Options{
			Loader:      a.loader,
			Logger:      a.logger,
			Links:       storefront.StaticLinks(),
			SiteName:    a.cfg.Site.Name,
			HideFilters: true,
		})
		if err != nil {
			return err
		}

		pages, err := staticPages(cmd.Context(), a.loader, a.logger)
		if err != nil {
			return err
		}

		if err := renderPages(cmd.Context(), srv, outDir, pages); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Rendered %d page(s) to %s.\n", len(pages), outDir)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&flagOutputDir, "out", "o", "", "output directory (overrides site.output_dir)")
}

type staticPage struct {
	file  string
	path  string
	query url.Values
}

// staticPages lists the files to render. Records without a positive id cannot be linked to and
// are skipped.
func staticPages(ctx context.Context, loader *storefront.Loader, logger *slog.Logger) ([]staticPage, error) {
	pages := []staticPage{
		{file: "index.html", path: server.PathHome},
		{file: filepath.Join("products", "index.html"), path: server.PathProducts},
		{file: filepath.Join("blogs", "index.html"), path: server.PathBlogs},
	}

	products, err := loader.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading products: %w", err)
	}
	for _, p := range products {
		if p.ID <= 0 {
			logger.Warn("skipping product without id", slog.String("name", p.Name))
			continue
		}
		pages = append(pages, staticPage{
			file:  filepath.Join("products", strconv.Itoa(p.ID)+".html"),
			path:  server.PathProductDetail,
			query: url.Values{"id": {strconv.Itoa(p.ID)}},
		})
	}

	blogs, err := loader.Blogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading blogs: %w", err)
	}
	for _, b := range blogs {
		if b.ID <= 0 {
			logger.Warn("skipping blog post without id", slog.String("title", b.Title))
			continue
		}
		pages = append(pages, staticPage{
			file:  filepath.Join("blogs", strconv.Itoa(b.ID)+".html"),
			path:  server.PathBlogDetail,
			query: url.Values{"id": {strconv.Itoa(b.ID)}},
		})
	}

	return pages, nil
}

func renderPages(ctx context.Context, srv *server.Server, outDir string, pages []staticPage) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for _, page := range pages {
		g.Go(func() error {
			var buf bytes.Buffer
			status, err := srv.Render(gctx, &buf, page.path, page.query)
			if err != nil {
				return fmt.Errorf("rendering %s: %w", page.file, err)
			}
			if status != http.StatusOK {
				return fmt.Errorf("rendering %s: status %d", page.file, status)
			}

			target := filepath.Join(outDir, page.file)
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}
			return os.WriteFile(target, buf.Bytes(), 0644)
		})
	}

	return g.Wait()
}
