package storefront

import (
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
)

// PageState is the lifecycle state of a page controller.
type PageState int

const (
	PageLoading PageState = iota
	PageReady
	PageEmpty
	PageNotFound
)

// String returns the name of the state.
func (ps PageState) String() string {
	switch ps {
	case PageLoading:
		return "loading"
	case PageReady:
		return "ready"
	case PageEmpty:
		return "empty"
	case PageNotFound:
		return "not_found"
	default:
		return fmt.Sprintf("PageState(%d)", int(ps))
	}
}

// PageOptions configures a page controller.
type PageOptions struct {
	Logger    *slog.Logger // Logger reports degraded loads. Default is the Loader's logger.
	Templates *Templates   // Templates renders fragments. Default is a set built with DefaultLinks.
	SiteName  string       // SiteName is used in page titles. Default is DefaultSiteName.
	PageSize  int          // PageSize enables pagination of list pages. Zero renders the whole view.
	Path      string       // Path is the list page URL used for pagination links.
}

func (opts PageOptions) withDefaults(loader *Loader) PageOptions {
	if opts.Logger == nil {
		opts.Logger = loader.Logger()
	}
	if opts.SiteName == "" {
		opts.SiteName = DefaultSiteName
	}
	if opts.Templates == nil {
		opts.Templates = MustTemplates(TemplateOptions{SiteName: opts.SiteName})
	}
	return opts
}

// ParseID reads the decimal record id from the "id" query parameter. A missing, non-integer or
// non-positive id returns ErrMissingIdentifier.
func ParseID(query url.Values) (int, error) {
	raw := strings.TrimSpace(query.Get("id"))
	if raw == "" {
		return 0, ErrMissingIdentifier
	}

	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrMissingIdentifier, raw)
	}
	return id, nil
}
