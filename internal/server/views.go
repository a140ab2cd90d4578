package server

import (
	"context"
	"html/template"
	"log/slog"
	"net/url"

	"github.com/ddeep01/storefront"
	"github.com/ddeep01/storefront/searchindex"
)

type pageData struct {
	Active   string
	Title    string
	SiteName string
	Links    storefront.Links
	Home     *homeView
	List     *listView
	Detail   *detailView
	Search   *searchView
}

type homeView struct {
	Featured template.HTML
	Latest   template.HTML
}

type listView struct {
	Kind         string
	Heading      string
	Placeholder  string
	EmptyMessage string
	Category     string
	Query        string
	NoResults    bool
	Filters      bool

	grid        *storefront.MemorySurface
	empty       *storefront.MemorySurface
	categories  *storefront.MemorySurface
	suggestions *storefront.MemorySurface
	pagination  *storefront.MemorySurface
}

func newListSurfaces() (storefront.ListSurfaces, *listView) {
	view := &listView{
		grid:        storefront.NewMemorySurface(),
		empty:       storefront.NewMemorySurface(),
		categories:  storefront.NewMemorySurface(),
		suggestions: storefront.NewMemorySurface(),
		pagination:  storefront.NewMemorySurface(),
	}
	surfaces := storefront.ListSurfaces{
		Grid:        view.grid,
		NoResults:   view.empty,
		Categories:  view.categories,
		Suggestions: view.suggestions,
		Pagination:  view.pagination,
	}
	return surfaces, view
}

// fill copies the filter selection into the view. query is the q parameter as the visitor typed
// it; the filter state only holds its lowercased form.
func (lv *listView) fill(state storefront.FilterState, pageState storefront.PageState, query string) {
	lv.Query = query
	if !state.AllCategories() {
		lv.Category = state.SelectedCategory
	}
	lv.NoResults = pageState == storefront.PageEmpty
}

func (lv *listView) Grid() template.HTML { return lv.grid.Content() }
func (lv *listView) Categories() template.HTML { return lv.categories.Content() }
func (lv *listView) Suggestions() template.HTML { return lv.suggestions.Content() }
func (lv *listView) Pagination() template.HTML { return lv.pagination.Content() }

type detailView struct {
	Content        template.HTML
	Related        template.HTML
	RelatedHeading string
	Found          bool
}

type searchResult struct {
	Kind    string
	Heading string
	URL     string
}

type searchView struct {
	Query   string
	Kind    string
	Results []searchResult
}

func (s *Server) search(ctx context.Context, query url.Values) (pageData, error) {
	text := query.Get("q")
	kind := searchindex.ParseKind(query.Get("kind"))
	view := &searchView{Query: text, Kind: string(kind)}
	data := pageData{Active: "search", Title: "Search - " + s.opts.SiteName, Search: view}

	if text == "" {
		return data, nil
	}

	if s.index != nil {
		hits, err := s.index.Search(ctx, text, kind, s.opts.SearchLimit)
		if err != nil {
			return pageData{}, err
		}
		for _, hit := range hits {
			view.Results = append(view.Results, s.searchResult(hit.Kind, hit.ID, hit.Heading))
		}
		return data, nil
	}

	// Without an index, match the same way the list pages filter.
	filter := storefront.FilterState{SelectedCategory: storefront.CategoryAll, SearchQuery: text}
	if kind != searchindex.KindBlog {
		products, err := s.loader.Products(ctx)
		if err != nil {
			s.logger.Warn("products unavailable for search", slog.String("error", err.Error()))
		}
		for _, p := range products {
			if filter.Matches(p) {
				view.Results = append(view.Results, s.searchResult(searchindex.KindProduct, p.ID, p.Name))
			}
		}
	}
	if kind != searchindex.KindProduct {
		blogs, err := s.loader.Blogs(ctx)
		if err != nil {
			s.logger.Warn("blogs unavailable for search", slog.String("error", err.Error()))
		}
		for _, b := range storefront.SortNewestFirst(blogs) {
			if filter.Matches(b) {
				view.Results = append(view.Results, s.searchResult(searchindex.KindBlog, b.ID, b.Title))
			}
		}
	}
	if len(view.Results) > s.opts.SearchLimit {
		view.Results = view.Results[:s.opts.SearchLimit]
	}
	return data, ctx.Err()
}

func (s *Server) searchResult(kind searchindex.Kind, id int, heading string) searchResult {
	result := searchResult{Kind: string(kind), Heading: heading}
	switch kind {
	case searchindex.KindBlog:
		result.URL = s.links.BlogURL(id)
	default:
		result.URL = s.links.ProductURL(id)
	}
	return result
}
