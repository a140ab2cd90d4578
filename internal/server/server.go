package server

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ddeep01/storefront"
	"github.com/ddeep01/storefront/searchindex"
)

//go:embed templates/*.tmpl
var layoutFS embed.FS

// Routes served by the server and understood by Render.
const (
	PathHome          = "/"
	PathProducts      = "/products"
	PathProductDetail = "/products/detail"
	PathBlogs         = "/blogs"
	PathBlogDetail    = "/blogs/detail"
	PathSearch        = "/search"
	PathHealth        = "/healthz"
)

// Options configures a Server.
type Options struct {
	Loader         *storefront.Loader // Loader provides the site documents. Required.
	Logger         *slog.Logger       // Logger receives request and page logs. Default is the Loader's logger.
	Links          storefront.Links   // Links is used for every rendered href. Default is storefront.DefaultLinks.
	SiteName       string             // SiteName is shown in titles. Default is storefront.DefaultSiteName.
	PageSize       int                // PageSize paginates list pages. Zero shows every record.
	Index          *searchindex.Index // Index answers /search. Without it, search falls back to substring matching.
	SearchLimit    int                // SearchLimit caps /search results. Default is searchindex.DefaultLimit.
	RequestTimeout time.Duration      // RequestTimeout bounds each request. Zero disables it.
	HideFilters    bool               // HideFilters omits the list search and category forms, for hosts that ignore query strings.
}

// Server renders the storefront pages over HTTP and for static export.
type Server struct {
	index     *searchindex.Index
	layout    *template.Template
	links     storefront.Links
	loader    *storefront.Loader
	logger    *slog.Logger
	opts      Options
	router    chi.Router
	templates *storefront.Templates
}

// New creates a Server.
func New(opts Options) (*Server, error) {
	if opts.Loader == nil {
		return nil, errors.New("loader is required")
	}
	if opts.Logger == nil {
		opts.Logger = opts.Loader.Logger()
	}
	if opts.SiteName == "" {
		opts.SiteName = storefront.DefaultSiteName
	}
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = searchindex.DefaultLimit
	}

	templates, err := storefront.NewTemplates(storefront.TemplateOptions{Links: opts.Links, SiteName: opts.SiteName})
	if err != nil {
		return nil, err
	}

	layout, err := template.New("layout").ParseFS(layoutFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	s := &Server{
		index:     opts.Index,
		layout:    layout,
		links:     templates.Links(),
		loader:    opts.Loader,
		logger:    opts.Logger,
		opts:      opts,
		templates: templates,
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(s.logger))
	r.Use(middleware.Recoverer)
	if s.opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.opts.RequestTimeout))
	}

	r.Get(PathHealth, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{PathHome, PathProducts, PathProductDetail, PathBlogs, PathBlogDetail, PathSearch} {
		r.Get(path, s.handlePage)
	}
	r.Get(PathProducts+"/", s.handlePage)
	r.Get(PathBlogs+"/", s.handlePage)
	r.NotFound(s.handlePage)

	return r
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	status, err := s.Render(r.Context(), &buf, r.URL.Path, r.URL.Query())
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		s.logger.Error("failed to render page",
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("error", err.Error()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Render writes the full page for path and query to w and returns its HTTP status. Unknown paths
// and unresolved detail pages render a not-found page with http.StatusNotFound.
func (s *Server) Render(ctx context.Context, w io.Writer, path string, query url.Values) (int, error) {
	if query == nil {
		query = url.Values{}
	}

	var (
		data   pageData
		status = http.StatusOK
		err    error
	)

	switch strings.TrimSuffix(path, "/") {
	case "", "/index.html":
		data, err = s.homePage(ctx)
	case PathProducts:
		data, err = s.productList(ctx, query)
	case PathProductDetail:
		data, status, err = s.productDetail(ctx, query)
	case PathBlogs:
		data, err = s.blogList(ctx, query)
	case PathBlogDetail:
		data, status, err = s.blogDetail(ctx, query)
	case PathSearch:
		data, err = s.search(ctx, query)
	default:
		data, status, err = s.notFound()
	}
	if err != nil {
		return http.StatusInternalServerError, err
	}

	data.SiteName = s.opts.SiteName
	data.Links = s.links
	if data.Title == "" {
		data.Title = s.opts.SiteName
	}

	if err := s.layout.ExecuteTemplate(w, "layout", data); err != nil {
		return http.StatusInternalServerError, fmt.Errorf("error rendering layout: %w", err)
	}
	return status, nil
}

func (s *Server) pageOptions(path string) storefront.PageOptions {
	return storefront.PageOptions{
		Logger:    s.logger,
		Templates: s.templates,
		SiteName:  s.opts.SiteName,
		PageSize:  s.opts.PageSize,
		Path:      path,
	}
}

func (s *Server) homePage(ctx context.Context) (pageData, error) {
	featured := storefront.NewMemorySurface()
	latest := storefront.NewMemorySurface()

	page := storefront.NewHomePage(s.loader, storefront.HomeSurfaces{
		FeaturedProducts: featured,
		LatestBlogs:      latest,
	}, s.pageOptions(PathHome))
	if err := page.Load(ctx); err != nil {
		return pageData{}, err
	}

	return pageData{
		Active: "home",
		Title:  page.Title(),
		Home: &homeView{
			Featured: featured.Content(),
			Latest:   latest.Content(),
		},
	}, nil
}

func (s *Server) productList(ctx context.Context, query url.Values) (pageData, error) {
	surfaces, view := newListSurfaces()
	page := storefront.NewProductListPage(s.loader, surfaces, s.pageOptions(s.links.Products))
	if err := applyListQuery(ctx, page, query); err != nil {
		return pageData{}, err
	}

	view.fill(page.Filter(), page.State(), strings.TrimSpace(query.Get("q")))
	view.Filters = !s.opts.HideFilters
	view.Kind = "products"
	view.Heading = "Our Products"
	view.Placeholder = "Search products..."
	view.EmptyMessage = "No products match your search."
	return pageData{Active: "products", Title: "Products - " + s.opts.SiteName, List: view}, nil
}

func (s *Server) blogList(ctx context.Context, query url.Values) (pageData, error) {
	surfaces, view := newListSurfaces()
	page := storefront.NewBlogListPage(s.loader, surfaces, s.pageOptions(s.links.Blogs))
	if err := applyListQuery(ctx, page, query); err != nil {
		return pageData{}, err
	}

	view.fill(page.Filter(), page.State(), strings.TrimSpace(query.Get("q")))
	view.Filters = !s.opts.HideFilters
	view.Kind = "blogs"
	view.Heading = "Our Blog"
	view.Placeholder = "Search articles..."
	view.EmptyMessage = "No articles match your search."
	return pageData{Active: "blogs", Title: "Blog - " + s.opts.SiteName, List: view}, nil
}

type listController interface {
	Load(ctx context.Context) error
	SelectCategory(slug string) error
	Search(text string) error
	SetPage(page int) error
}

func applyListQuery(ctx context.Context, page listController, query url.Values) error {
	if err := page.Load(ctx); err != nil {
		return err
	}
	if category := query.Get("category"); category != "" {
		if err := page.SelectCategory(category); err != nil {
			return err
		}
	}
	if q := strings.TrimSpace(query.Get("q")); q != "" {
		if err := page.Search(q); err != nil {
			return err
		}
	}
	if n, err := strconv.Atoi(query.Get("page")); err == nil && n > 1 {
		return page.SetPage(n)
	}
	return nil
}

func (s *Server) productDetail(ctx context.Context, query url.Values) (pageData, int, error) {
	content := storefront.NewMemorySurface()
	related := storefront.NewMemorySurface()

	page := storefront.NewProductDetailPage(s.loader, storefront.DetailSurfaces{Content: content, Related: related}, s.pageOptions(""))
	if err := page.Load(ctx, query); err != nil {
		return pageData{}, 0, err
	}

	return detailData(page.State(), page.Title(), "products", "Related Products", content, related)
}

func (s *Server) blogDetail(ctx context.Context, query url.Values) (pageData, int, error) {
	content := storefront.NewMemorySurface()
	related := storefront.NewMemorySurface()

	page := storefront.NewBlogDetailPage(s.loader, storefront.DetailSurfaces{Content: content, Related: related}, s.pageOptions(""))
	if err := page.Load(ctx, query); err != nil {
		return pageData{}, 0, err
	}

	return detailData(page.State(), page.Title(), "blogs", "Related Articles", content, related)
}

func detailData(state storefront.PageState, title, active, relatedHeading string, content, related *storefront.MemorySurface) (pageData, int, error) {
	status := http.StatusOK
	if state == storefront.PageNotFound {
		status = http.StatusNotFound
	}

	view := &detailView{
		Content:        content.Content(),
		Related:        related.Content(),
		RelatedHeading: relatedHeading,
		Found:          state == storefront.PageReady,
	}
	return pageData{Active: active, Title: title, Detail: view}, status, nil
}

func (s *Server) notFound() (pageData, int, error) {
	markup, err := s.templates.Execute(storefront.TemplateNotFound, "Page not found.")
	if err != nil {
		return pageData{}, 0, err
	}
	return pageData{
		Title:  "Not Found - " + s.opts.SiteName,
		Detail: &detailView{Content: markup},
	}, http.StatusNotFound, nil
}
