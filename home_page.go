package storefront

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// HomeSurfaces are the targets of the home page sections. Either may be nil.
type HomeSurfaces struct {
	FeaturedProducts Surface // FeaturedProducts receives up to FeaturedProductsLimit product slides.
	LatestBlogs      Surface // LatestBlogs receives up to LatestBlogsLimit blog cards.
}

// HomePage is the controller of the landing page.
type HomePage struct {
	featured []Product
	latest   []BlogPost
	loader   *Loader
	opts     PageOptions
	surfaces HomeSurfaces
}

// NewHomePage creates the home page controller.
func NewHomePage(loader *Loader, surfaces HomeSurfaces, opts PageOptions) *HomePage {
	return &HomePage{
		loader:   loader,
		opts:     opts.withDefaults(loader),
		surfaces: surfaces,
	}
}

// Load fetches products and blog posts concurrently and fills both sections. A section whose
// source failed or has nothing to show is left untouched.
func (hp *HomePage) Load(ctx context.Context) error {
	var (
		products []Product
		blogs    []BlogPost
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		if products, err = hp.loader.Products(ctx); err != nil {
			hp.opts.Logger.Warn("featured products unavailable", slog.String("error", err.Error()))
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if blogs, err = hp.loader.Blogs(ctx); err != nil {
			hp.opts.Logger.Warn("latest blogs unavailable", slog.String("error", err.Error()))
		}
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}

	hp.featured = Featured(products, FeaturedProductsLimit)
	hp.latest = Latest(blogs, LatestBlogsLimit)

	if err := renderSection(hp.surfaces.FeaturedProducts, hp.opts.Templates, TemplateProductSlide, hp.featured); err != nil {
		return err
	}
	return renderSection(hp.surfaces.LatestBlogs, hp.opts.Templates, TemplateBlogHomeCard, hp.latest)
}

// Featured returns the featured products shown on the page.
func (hp *HomePage) Featured() []Product {
	return hp.featured
}

// Latest returns the latest blog posts shown on the page.
func (hp *HomePage) Latest() []BlogPost {
	return hp.latest
}

// Title returns the document title of the home page.
func (hp *HomePage) Title() string {
	return hp.opts.SiteName
}

func renderSection[T any](surface Surface, templates *Templates, name string, records []T) error {
	if surface == nil || len(records) == 0 {
		return nil
	}
	_, err := (&ListRenderer[T]{Container: surface, Templates: templates, Template: name}).Render(records)
	return err
}
