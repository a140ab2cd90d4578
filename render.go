package storefront

import (
	"html/template"
	"net/url"
	"strconv"
	"strings"
	"sync"
)

// Surface is a target whose displayed content can be replaced wholesale.
type Surface interface {
	Replace(markup template.HTML) error
}

// Indicator is a target that is either shown or hidden, such as a "no results" element.
type Indicator interface {
	SetVisible(visible bool) error
}

// MemorySurface is a Surface and Indicator that keeps its content in memory. It starts visible
// and empty.
type MemorySurface struct {
	content  template.HTML
	hidden   bool
	mu       sync.RWMutex
	replaced int
}

// NewMemorySurface creates an empty, visible MemorySurface.
func NewMemorySurface() *MemorySurface {
	return &MemorySurface{}
}

// Replace sets the content.
func (ms *MemorySurface) Replace(markup template.HTML) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.content = markup
	ms.replaced++
	return nil
}

// SetVisible shows or hides the surface.
func (ms *MemorySurface) SetVisible(visible bool) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.hidden = !visible
	return nil
}

// Content returns the current content.
func (ms *MemorySurface) Content() template.HTML {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.content
}

// Visible returns true unless the surface was hidden.
func (ms *MemorySurface) Visible() bool {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return !ms.hidden
}

// Replaced returns how many times the content was replaced.
func (ms *MemorySurface) Replaced() int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.replaced
}

// ListRenderer renders a view of records into a container, one fragment per record.
type ListRenderer[T any] struct {
	Container Surface    // Container receives the concatenated fragments.
	Empty     Indicator  // Empty is shown when the view is empty. Optional.
	Templates *Templates // Templates holds the per-record template.
	Template  string     // Template is the name of the per-record template.
}

// Render replaces the container content with one fragment per record, in view order. An empty
// view clears the container and shows the Empty indicator. Rendering the same view again produces
// the same markup.
func (lr *ListRenderer[T]) Render(view []T) (template.HTML, error) {
	if lr.Container == nil {
		return "", ErrNilSurface
	}

	if len(view) == 0 {
		if err := lr.Container.Replace(""); err != nil {
			return "", err
		}
		if lr.Empty != nil {
			if err := lr.Empty.SetVisible(true); err != nil {
				return "", err
			}
		}
		return "", nil
	}

	markup, err := lr.Markup(view)
	if err != nil {
		return "", err
	}

	if lr.Empty != nil {
		if err := lr.Empty.SetVisible(false); err != nil {
			return "", err
		}
	}

	if err := lr.Container.Replace(markup); err != nil {
		return "", err
	}
	return markup, nil
}

// Markup renders the fragments of view without touching any surface.
func (lr *ListRenderer[T]) Markup(view []T) (template.HTML, error) {
	var sb strings.Builder
	for _, record := range view {
		fragment, err := lr.Templates.Execute(lr.Template, record)
		if err != nil {
			return "", err
		}
		sb.WriteString(string(fragment))
	}
	return template.HTML(sb.String()), nil
}

// CategoryButton is the view model of one category filter button.
type CategoryButton struct {
	Slug   string
	Name   string
	Count  int
	Active bool
}

// Suggestion is the view model of one "did you mean" entry.
type Suggestion struct {
	Heading string
	URL     string
}

// PaginationView is the view model of the pagination links of a list page.
type PaginationView struct {
	TotalPages  int
	CurrentPage int
	PrevPage    int
	NextPage    int
	HasPrev     bool
	HasNext     bool
	path        string
	query       url.Values
}

// NewPaginationView builds pagination links for p. The links keep the given query parameters and
// set the page parameter.
func NewPaginationView[T any](p Paginator[T], path string, query url.Values) PaginationView {
	return PaginationView{
		TotalPages:  p.TotalPages,
		CurrentPage: p.CurrentPage,
		PrevPage:    p.PrevPage,
		NextPage:    p.NextPage,
		HasPrev:     p.HasPrev,
		HasNext:     p.HasNext,
		path:        path,
		query:       query,
	}
}

// Pages returns the page numbers 1..TotalPages.
func (pv PaginationView) Pages() []int {
	pages := make([]int, pv.TotalPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// Href returns the link to page.
func (pv PaginationView) Href(page int) string {
	q := url.Values{}
	for k, v := range pv.query {
		q[k] = v
	}
	q.Set("page", strconv.Itoa(page))
	return pv.path + "?" + q.Encode()
}
