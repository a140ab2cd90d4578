package storefront

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Template names of the per-record and state fragments.
const (
	TemplateProductCard    = "product-card"
	TemplateProductSlide   = "product-slide"
	TemplateProductRelated = "product-related"
	TemplateProductDetail  = "product-detail"
	TemplateBlogCard       = "blog-card"
	TemplateBlogHomeCard   = "blog-home-card"
	TemplateBlogRelated    = "blog-related"
	TemplateBlogDetail     = "blog-detail"
	TemplateCategoryButton = "category-button"
	TemplateNotFound       = "not-found"
	TemplateNoRelated      = "no-related"
	TemplateSuggestions    = "suggestions"
	TemplatePagination     = "pagination"
)

// Links builds the URLs rendered into fragments.
type Links struct {
	Products   string              // Products is the products list URL.
	Blogs      string              // Blogs is the blog list URL.
	ProductURL func(id int) string // ProductURL returns the detail URL of a product.
	BlogURL    func(id int) string // BlogURL returns the detail URL of a blog post.
}

// DefaultLinks returns the links served by the storefront HTTP server.
func DefaultLinks() Links {
	return Links{
		Products:   "/products",
		Blogs:      "/blogs",
		ProductURL: func(id int) string { return fmt.Sprintf("/products/detail?id=%d", id) },
		BlogURL:    func(id int) string { return fmt.Sprintf("/blogs/detail?id=%d", id) },
	}
}

// StaticLinks returns links for a pre-rendered site where every detail page is its own file.
func StaticLinks() Links {
	return Links{
		Products:   "/products/",
		Blogs:      "/blogs/",
		ProductURL: func(id int) string { return fmt.Sprintf("/products/%d.html", id) },
		BlogURL:    func(id int) string { return fmt.Sprintf("/blogs/%d.html", id) },
	}
}

// TemplateOptions configures a template set.
type TemplateOptions struct {
	Links    Links  // Links is used for every rendered href. Default is DefaultLinks.
	SiteName string // SiteName is shown when a blog post has no author. Default is DefaultSiteName.
}

// Templates is the parsed set of fragment templates. It is safe for concurrent use.
type Templates struct {
	links Links
	tmpl  *template.Template
}

// ugcPolicy sanitizes blog bodies, which are authored as HTML.
var ugcPolicy = bluemonday.UGCPolicy()

// NewTemplates parses the embedded fragment templates.
func NewTemplates(opts TemplateOptions) (*Templates, error) {
	defaults := DefaultLinks()
	if opts.Links.ProductURL == nil {
		opts.Links.ProductURL = defaults.ProductURL
	}
	if opts.Links.BlogURL == nil {
		opts.Links.BlogURL = defaults.BlogURL
	}
	if opts.Links.Products == "" {
		opts.Links.Products = defaults.Products
	}
	if opts.Links.Blogs == "" {
		opts.Links.Blogs = defaults.Blogs
	}
	if opts.SiteName == "" {
		opts.SiteName = DefaultSiteName
	}

	funcMap := template.FuncMap{
		"productURL":  opts.Links.ProductURL,
		"blogURL":     opts.Links.BlogURL,
		"productsURL": func() string { return opts.Links.Products },
		"blogsURL":    func() string { return opts.Links.Blogs },
		"siteName":    func() string { return opts.SiteName },
		"nl2br":       nl2br,
		"sanitize":    sanitizeHTML,
	}

	tmpl, err := template.New("_root").Funcs(funcMap).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Templates{links: opts.Links, tmpl: tmpl}, nil
}

// MustTemplates is like NewTemplates but panics on error.
func MustTemplates(opts TemplateOptions) *Templates {
	t, err := NewTemplates(opts)
	if err != nil {
		panic(err)
	}
	return t
}

// Links returns the links the templates were built with.
func (t *Templates) Links() Links {
	return t.links
}

// Execute renders the named fragment with data.
func (t *Templates) Execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := t.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("error rendering %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// nl2br escapes s and turns its line breaks into <br> elements.
func nl2br(s string) template.HTML {
	escaped := template.HTMLEscapeString(strings.ReplaceAll(s, "\r\n", "\n"))
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

func sanitizeHTML(s string) template.HTML {
	return template.HTML(ugcPolicy.Sanitize(s))
}
