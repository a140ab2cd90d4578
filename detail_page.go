package storefront

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
)

// DetailSurfaces are the targets a detail page writes into.
type DetailSurfaces struct {
	Content Surface // Content receives the record detail or the not-found message.
	Related Surface // Related receives the related records. Optional.
}

type detailSource[T Record] struct {
	name            string
	records         func(ctx context.Context) ([]T, error)
	detailTemplate  string
	relatedTemplate string
	notFound        string
	noRelated       string
}

// DetailPage is the controller of a single record page selected by the "id" query parameter.
type DetailPage[T Record] struct {
	err      error
	opts     PageOptions
	record   T
	related  []T
	source   detailSource[T]
	state    PageState
	surfaces DetailSurfaces
}

// NewProductDetailPage creates the product detail controller.
func NewProductDetailPage(loader *Loader, surfaces DetailSurfaces, opts PageOptions) *DetailPage[Product] {
	return newDetailPage(loader, surfaces, opts, detailSource[Product]{
		name:            "product",
		records:         loader.Products,
		detailTemplate:  TemplateProductDetail,
		relatedTemplate: TemplateProductRelated,
		notFound:        "Product not found.",
		noRelated:       "No related products found.",
	})
}

// NewBlogDetailPage creates the blog post detail controller.
func NewBlogDetailPage(loader *Loader, surfaces DetailSurfaces, opts PageOptions) *DetailPage[BlogPost] {
	return newDetailPage(loader, surfaces, opts, detailSource[BlogPost]{
		name:            "blog",
		records:         loader.Blogs,
		detailTemplate:  TemplateBlogDetail,
		relatedTemplate: TemplateBlogRelated,
		notFound:        "Article not found.",
		noRelated:       "No related articles found.",
	})
}

func newDetailPage[T Record](loader *Loader, surfaces DetailSurfaces, opts PageOptions, source detailSource[T]) *DetailPage[T] {
	return &DetailPage[T]{
		opts:     opts.withDefaults(loader),
		source:   source,
		state:    PageLoading,
		surfaces: surfaces,
	}
}

// Load resolves the record named by query and renders it with up to RelatedLimit related records
// of the same category. A missing id, a failed fetch or an unknown id render the not-found message
// and leave the Related surface untouched; Load still returns nil and Err reports the cause.
func (dp *DetailPage[T]) Load(ctx context.Context, query url.Values) error {
	var zero T
	dp.state = PageLoading
	dp.record = zero
	dp.related = nil
	dp.err = nil

	if dp.surfaces.Content == nil {
		return ErrNilSurface
	}

	id, err := ParseID(query)
	if err != nil {
		return dp.notFound(err)
	}

	records, err := dp.source.records(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil {
		return dp.notFound(err)
	}

	record, ok := FindByID(records, id)
	if !ok {
		return dp.notFound(ErrRecordNotFound)
	}

	markup, err := dp.opts.Templates.Execute(dp.source.detailTemplate, record)
	if err != nil {
		return err
	}
	if err := dp.surfaces.Content.Replace(markup); err != nil {
		return err
	}

	dp.record = record
	dp.related = Related(records, record, RelatedLimit)
	dp.state = PageReady

	if dp.surfaces.Related == nil {
		return nil
	}

	if len(dp.related) == 0 {
		markup, err = dp.opts.Templates.Execute(TemplateNoRelated, dp.source.noRelated)
	} else {
		markup, err = (&ListRenderer[T]{Templates: dp.opts.Templates, Template: dp.source.relatedTemplate}).Markup(dp.related)
	}
	if err != nil {
		return err
	}
	return dp.surfaces.Related.Replace(markup)
}

func (dp *DetailPage[T]) notFound(cause error) error {
	dp.state = PageNotFound
	dp.err = cause

	level := slog.LevelWarn
	if errors.Is(cause, ErrMissingIdentifier) || errors.Is(cause, ErrRecordNotFound) {
		level = slog.LevelDebug
	}
	dp.opts.Logger.Log(context.Background(), level, "detail page not found",
		slog.String("page", dp.source.name),
		slog.String("error", cause.Error()))

	markup, err := dp.opts.Templates.Execute(TemplateNotFound, dp.source.notFound)
	if err != nil {
		return err
	}
	return dp.surfaces.Content.Replace(markup)
}

// State returns the current page state.
func (dp *DetailPage[T]) State() PageState {
	return dp.state
}

// Err returns why the last Load ended in PageNotFound, or nil.
func (dp *DetailPage[T]) Err() error {
	return dp.err
}

// Record returns the displayed record. ok is false unless the page is ready.
func (dp *DetailPage[T]) Record() (record T, ok bool) {
	return dp.record, dp.state == PageReady
}

// Related returns the displayed related records.
func (dp *DetailPage[T]) Related() []T {
	return dp.related
}

// Title returns the document title of the displayed record, or the site name if there is none.
func (dp *DetailPage[T]) Title() string {
	if dp.state != PageReady {
		return dp.opts.SiteName
	}
	return PageTitle(dp.record, dp.opts.SiteName)
}
