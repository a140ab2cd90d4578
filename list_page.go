package storefront

import (
	"context"
	"html/template"
	"log/slog"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"
)

const suggestionLimit = 3

// ListSurfaces are the targets a list page writes into. Only Grid is required.
type ListSurfaces struct {
	Grid        Surface   // Grid receives one card per record.
	NoResults   Indicator // NoResults is shown when the filtered view is empty.
	Categories  Surface   // Categories receives the category filter buttons.
	Suggestions Surface   // Suggestions receives "did you mean" links when a search finds nothing.
	Pagination  Surface   // Pagination receives the page links when PageSize is set.
}

type listSource[T Record] struct {
	name       string
	records    func(ctx context.Context) ([]T, error)
	categories func(ctx context.Context) ([]Category, error)
	template   string
	order      func(a, b T) int
	url        func(links Links, id int) string
}

// ListPage is the controller of a filterable list of records.
type ListPage[T Record] struct {
	categories []Category
	counts     []CategoryCount
	filter     *FilterController[T]
	opts       PageOptions
	page       int
	renderer   *ListRenderer[T]
	source     listSource[T]
	state      PageState
	surfaces   ListSurfaces
}

// NewProductListPage creates the products list controller. Products keep their source order.
func NewProductListPage(loader *Loader, surfaces ListSurfaces, opts PageOptions) *ListPage[Product] {
	return newListPage(loader, surfaces, opts, listSource[Product]{
		name:       "products",
		records:    loader.Products,
		categories: loader.Categories,
		template:   TemplateProductCard,
		url:        func(links Links, id int) string { return links.ProductURL(id) },
	})
}

// NewBlogListPage creates the blog list controller. Posts are ordered newest first.
func NewBlogListPage(loader *Loader, surfaces ListSurfaces, opts PageOptions) *ListPage[BlogPost] {
	return newListPage(loader, surfaces, opts, listSource[BlogPost]{
		name:       "blogs",
		records:    loader.Blogs,
		categories: loader.BlogCategories,
		template:   TemplateBlogCard,
		order:      NewestFirst[BlogPost],
		url:        func(links Links, id int) string { return links.BlogURL(id) },
	})
}

func newListPage[T Record](loader *Loader, surfaces ListSurfaces, opts PageOptions, source listSource[T]) *ListPage[T] {
	opts = opts.withDefaults(loader)
	return &ListPage[T]{
		opts: opts,
		page: 1,
		renderer: &ListRenderer[T]{
			Container: surfaces.Grid,
			Empty:     surfaces.NoResults,
			Templates: opts.Templates,
			Template:  source.template,
		},
		source:   source,
		state:    PageLoading,
		surfaces: surfaces,
	}
}

// Load fetches the records and categories and renders the unfiltered list. A failed fetch is
// treated as an empty collection. If ctx is done once loading finishes, nothing is rendered and
// ctx.Err() is returned.
func (lp *ListPage[T]) Load(ctx context.Context) error {
	lp.state = PageLoading

	var (
		records    []T
		categories []Category
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		if records, err = lp.source.records(ctx); err != nil {
			lp.opts.Logger.Warn("records unavailable, rendering empty list",
				slog.String("page", lp.source.name),
				slog.String("error", err.Error()))
			records = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if categories, err = lp.source.categories(ctx); err != nil {
			lp.opts.Logger.Warn("categories unavailable",
				slog.String("page", lp.source.name),
				slog.String("error", err.Error()))
			categories = nil
		}
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}

	var filterOpts []FilterOption[T]
	if lp.source.order != nil {
		filterOpts = append(filterOpts, WithOrder(lp.source.order))
	}

	lp.categories = categories
	lp.counts = CategoryCounts(records)
	lp.filter = NewFilterController(records, filterOpts...)
	lp.page = 1

	return lp.render()
}

// SelectCategory filters the list by category slug, or CategoryAll, and re-renders it.
func (lp *ListPage[T]) SelectCategory(slug string) error {
	if lp.filter == nil {
		return nil
	}
	lp.filter.SelectCategory(slug)
	lp.page = 1
	return lp.render()
}

// Search filters the list by a case-insensitive substring and re-renders it.
func (lp *ListPage[T]) Search(text string) error {
	if lp.filter == nil {
		return nil
	}
	lp.filter.SetQuery(text)
	lp.page = 1
	return lp.render()
}

// SetPage shows the given page of the filtered view. It has no effect unless PageSize is set.
func (lp *ListPage[T]) SetPage(page int) error {
	if lp.filter == nil {
		return nil
	}
	lp.page = page
	return lp.render()
}

// State returns the current page state.
func (lp *ListPage[T]) State() PageState {
	return lp.state
}

// View returns the full filtered view, across all pages.
func (lp *ListPage[T]) View() []T {
	if lp.filter == nil {
		return nil
	}
	return lp.filter.View()
}

// Filter returns the current filter state.
func (lp *ListPage[T]) Filter() FilterState {
	if lp.filter == nil {
		return NewFilterState()
	}
	return lp.filter.State()
}

// Categories returns the loaded categories.
func (lp *ListPage[T]) Categories() []Category {
	return lp.categories
}

func (lp *ListPage[T]) render() error {
	view := lp.filter.View()
	items := view

	var paginator Paginator[T]
	if lp.opts.PageSize > 0 {
		paginator = NewPaginator(view, lp.page, lp.opts.PageSize)
		lp.page = paginator.CurrentPage
		items = paginator.Items
	}

	if _, err := lp.renderer.Render(items); err != nil {
		return err
	}

	if len(view) == 0 {
		lp.state = PageEmpty
	} else {
		lp.state = PageReady
	}

	if err := lp.renderCategories(); err != nil {
		return err
	}
	if err := lp.renderSuggestions(); err != nil {
		return err
	}
	if lp.opts.PageSize > 0 {
		return lp.renderPagination(paginator)
	}
	return nil
}

func (lp *ListPage[T]) renderCategories() error {
	if lp.surfaces.Categories == nil {
		return nil
	}

	state := lp.filter.State()
	counts := make(map[string]int, len(lp.counts))
	for _, c := range lp.counts {
		counts[c.Slug] = c.Count
	}

	buttons := []CategoryButton{{
		Slug:   CategoryAll,
		Name:   "All",
		Count:  len(lp.filter.All()),
		Active: state.AllCategories(),
	}}
	for _, c := range lp.categories {
		key := c.Key()
		buttons = append(buttons, CategoryButton{
			Slug:   key,
			Name:   c.Name,
			Count:  counts[key],
			Active: !state.AllCategories() && state.SelectedCategory == key,
		})
	}

	var sb strings.Builder
	for _, button := range buttons {
		fragment, err := lp.opts.Templates.Execute(TemplateCategoryButton, button)
		if err != nil {
			return err
		}
		sb.WriteString(string(fragment))
	}
	return lp.surfaces.Categories.Replace(template.HTML(sb.String()))
}

func (lp *ListPage[T]) renderSuggestions() error {
	if lp.surfaces.Suggestions == nil {
		return nil
	}

	query := lp.filter.State().SearchQuery
	if lp.state != PageEmpty || query == "" {
		return lp.surfaces.Suggestions.Replace("")
	}

	candidates := Suggest(lp.filter.All(), query, suggestionLimit)
	if len(candidates) == 0 {
		return lp.surfaces.Suggestions.Replace("")
	}

	links := lp.opts.Templates.Links()
	suggestions := make([]Suggestion, len(candidates))
	for i, c := range candidates {
		suggestions[i] = Suggestion{Heading: c.Heading(), URL: lp.source.url(links, c.RecordID())}
	}

	markup, err := lp.opts.Templates.Execute(TemplateSuggestions, suggestions)
	if err != nil {
		return err
	}
	return lp.surfaces.Suggestions.Replace(markup)
}

func (lp *ListPage[T]) renderPagination(paginator Paginator[T]) error {
	if lp.surfaces.Pagination == nil {
		return nil
	}

	state := lp.filter.State()
	query := url.Values{}
	if !state.AllCategories() {
		query.Set("category", state.SelectedCategory)
	}
	if state.SearchQuery != "" {
		query.Set("q", state.SearchQuery)
	}

	markup, err := lp.opts.Templates.Execute(TemplatePagination, NewPaginationView(paginator, lp.opts.Path, query))
	if err != nil {
		return err
	}
	return lp.surfaces.Pagination.Replace(markup)
}
