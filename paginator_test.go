package storefront_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ddeep01/storefront"
)

func TestNewPaginator(t *testing.T) {
	view := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name     string
		page     int
		size     int
		want     []int
		current  int
		total    int
		hasNext  bool
		hasPrev  bool
		nextPage int
		prevPage int
	}{
		{name: "first page", page: 1, size: 3, want: []int{1, 2, 3}, current: 1, total: 3, hasNext: true, nextPage: 2, prevPage: 1},
		{name: "middle page", page: 2, size: 3, want: []int{4, 5, 6}, current: 2, total: 3, hasNext: true, hasPrev: true, nextPage: 3, prevPage: 1},
		{name: "last page", page: 3, size: 3, want: []int{7}, current: 3, total: 3, hasPrev: true, nextPage: 3, prevPage: 2},
		{name: "page past the end is clamped", page: 9, size: 3, want: []int{7}, current: 3, total: 3, hasPrev: true, nextPage: 3, prevPage: 2},
		{name: "page zero is clamped", page: 0, size: 3, want: []int{1, 2, 3}, current: 1, total: 3, hasNext: true, nextPage: 2, prevPage: 1},
		{name: "default page size", page: 1, size: 0, want: view, current: 1, total: 1, nextPage: 1, prevPage: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := storefront.NewPaginator(view, tt.page, tt.size)

			assert.Equal(t, tt.want, p.Items)
			assert.Equal(t, tt.current, p.CurrentPage)
			assert.Equal(t, tt.total, p.TotalPages)
			assert.Equal(t, tt.hasNext, p.HasNext)
			assert.Equal(t, tt.hasPrev, p.HasPrev)
			assert.Equal(t, tt.nextPage, p.NextPage)
			assert.Equal(t, tt.prevPage, p.PrevPage)
			assert.Equal(t, len(view), p.TotalItems)
			assert.True(t, p.HasItems)
		})
	}
}

func TestNewPaginator_Empty(t *testing.T) {
	p := storefront.NewPaginator([]string{}, 3, 5)

	assert.Equal(t, 1, p.TotalPages)
	assert.Equal(t, 1, p.CurrentPage)
	assert.False(t, p.HasItems)
	assert.Empty(t, p.Items)
	assert.Equal(t, []int{1}, storefront.NewPaginationView(p, "/products", nil).Pages())
}

func TestPaginationView_Pages(t *testing.T) {
	p := storefront.NewPaginator(make([]int, 10), 1, 4)
	assert.Equal(t, []int{1, 2, 3}, storefront.NewPaginationView(p, "/products", nil).Pages())
}
