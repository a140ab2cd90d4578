package storefront

import (
	"slices"
	"strings"
)

// CategoryAll is the category selection that matches every record.
const CategoryAll = "all"

// FilterState is the category and search selection of a list page.
type FilterState struct {
	SelectedCategory string // SelectedCategory is CategoryAll or a category slug. Empty means CategoryAll.
	SearchQuery      string // SearchQuery is a lowercased substring matched against heading and blurb.
}

// NewFilterState returns the state of a freshly opened list page.
func NewFilterState() FilterState {
	return FilterState{SelectedCategory: CategoryAll}
}

// AllCategories returns true if no category is selected.
func (fs FilterState) AllCategories() bool {
	return fs.SelectedCategory == "" || fs.SelectedCategory == CategoryAll
}

// Matches returns true if r satisfies both the category and the search selection.
func (fs FilterState) Matches(r Record) bool {
	if !fs.AllCategories() && r.CategorySlug() != fs.SelectedCategory {
		return false
	}

	if fs.SearchQuery == "" {
		return true
	}

	query := strings.ToLower(fs.SearchQuery)
	return strings.Contains(strings.ToLower(r.Heading()), query) ||
		strings.Contains(strings.ToLower(r.Blurb()), query)
}

// FilterController holds the filter state of one list page and recomputes its view in full on
// every state change.
type FilterController[T Record] struct {
	all   []T
	order func(a, b T) int
	state FilterState
	view  []T
}

// FilterOption configures a FilterController.
type FilterOption[T Record] func(*FilterController[T])

// WithOrder sorts every recomputed view stably with cmp.
func WithOrder[T Record](cmp func(a, b T) int) FilterOption[T] {
	return func(fc *FilterController[T]) {
		fc.order = cmp
	}
}

// NewestFirst orders records by publish date, newest first.
func NewestFirst[T Record](a, b T) int {
	return compareTime(b.PublishedTime(), a.PublishedTime())
}

// NewFilterController creates a controller over collection with the initial state and computes
// the initial view.
func NewFilterController[T Record](collection []T, opts ...FilterOption[T]) *FilterController[T] {
	fc := &FilterController[T]{
		all:   collection,
		state: NewFilterState(),
	}

	for _, opt := range opts {
		opt(fc)
	}

	fc.Recompute()
	return fc
}

// SelectCategory sets the selected category and recomputes the view.
func (fc *FilterController[T]) SelectCategory(slug string) []T {
	fc.state.SelectedCategory = slug
	return fc.Recompute()
}

// SetQuery stores the lowercased query and recomputes the view.
func (fc *FilterController[T]) SetQuery(text string) []T {
	fc.state.SearchQuery = strings.ToLower(text)
	return fc.Recompute()
}

// Recompute rebuilds the view from the full collection.
func (fc *FilterController[T]) Recompute() []T {
	view := filterRecords(fc.all, fc.state)
	if fc.order != nil {
		slices.SortStableFunc(view, fc.order)
	}
	fc.view = view
	return view
}

// View returns the current filtered view.
func (fc *FilterController[T]) View() []T {
	return fc.view
}

// State returns the current filter state.
func (fc *FilterController[T]) State() FilterState {
	return fc.state
}

// All returns the full collection.
func (fc *FilterController[T]) All() []T {
	return fc.all
}

func filterRecords[T Record](collection []T, state FilterState) []T {
	result := make([]T, 0, len(collection))
	for _, r := range collection {
		if state.Matches(r) {
			result = append(result, r)
		}
	}
	return result
}
