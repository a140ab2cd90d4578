package storefront

// DefaultPageSize is the number of records shown per list page.
const DefaultPageSize = 9

// Paginator is a struct that holds one page of a filtered view together with the total number of
// pages, the current page, the next and previous pages, the page size, whether there are more
// pages and whether the page has any items.
type Paginator[T any] struct {
	TotalPages  int
	CurrentPage int
	NextPage    int
	PrevPage    int
	PageSize    int
	HasNext     bool
	HasPrev     bool
	HasItems    bool
	TotalItems  int
	Items       []T
}

// NewPaginator returns the page of view numbered currentPage. Out of range pages are clamped to
// the first or last page, so a stale page number never yields an empty page for a non-empty view.
func NewPaginator[T any](view []T, currentPage, pageSize int) Paginator[T] {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	total := len(view)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if currentPage < 1 {
		currentPage = 1
	}
	if currentPage > totalPages {
		currentPage = totalPages
	}

	start := (currentPage - 1) * pageSize
	end := min(start+pageSize, total)
	items := view[start:end]

	nextPage := min(currentPage+1, totalPages)
	prevPage := max(currentPage-1, 1)

	return Paginator[T]{
		TotalPages:  totalPages,
		CurrentPage: currentPage,
		NextPage:    nextPage,
		PrevPage:    prevPage,
		PageSize:    pageSize,
		HasNext:     currentPage < totalPages,
		HasPrev:     currentPage > 1,
		HasItems:    len(items) > 0,
		TotalItems:  total,
		Items:       items,
	}
}
