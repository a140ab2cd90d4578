package storefront_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ddeep01/storefront"
)

func TestFilterState_Matches(t *testing.T) {
	product := storefront.Product{ID: 1, Name: "Basmati Rice", Category: "Rice", Description: "Aged two years"}

	tests := []struct {
		name  string
		state storefront.FilterState
		want  bool
	}{
		{name: "initial state", state: storefront.NewFilterState(), want: true},
		{name: "empty category means all", state: storefront.FilterState{}, want: true},
		{name: "matching category", state: storefront.FilterState{SelectedCategory: "rice"}, want: true},
		{name: "other category", state: storefront.FilterState{SelectedCategory: "spices"}, want: false},
		{name: "category is matched by slug", state: storefront.FilterState{SelectedCategory: "Rice"}, want: false},
		{name: "heading match", state: storefront.FilterState{SelectedCategory: "all", SearchQuery: "basmati"}, want: true},
		{name: "blurb match", state: storefront.FilterState{SelectedCategory: "all", SearchQuery: "aged"}, want: true},
		{name: "query is case-insensitive", state: storefront.FilterState{SelectedCategory: "all", SearchQuery: "BASMATI"}, want: true},
		{name: "no match", state: storefront.FilterState{SelectedCategory: "all", SearchQuery: "turmeric"}, want: false},
		{name: "both must hold", state: storefront.FilterState{SelectedCategory: "spices", SearchQuery: "basmati"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.Matches(product))
		})
	}
}

func TestFilterController(t *testing.T) {
	products := mustProducts(t)
	fc := storefront.NewFilterController(products)

	assert.Equal(t, storefront.NewFilterState(), fc.State())
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(fc.View()))

	assert.Equal(t, []int{1, 2, 4}, ids(fc.SelectCategory("rice")))
	assert.Equal(t, []int{1}, ids(fc.SetQuery("Basmati")))
	assert.Equal(t, "basmati", fc.State().SearchQuery)

	// The query survives a category change.
	assert.Equal(t, []int{1}, ids(fc.SelectCategory(storefront.CategoryAll)))
	assert.Empty(t, fc.SelectCategory("spices"))

	assert.Equal(t, []int{3, 5}, ids(fc.SetQuery("")))
	assert.Len(t, fc.All(), 5)
}

func TestFilterController_Idempotent(t *testing.T) {
	fc := storefront.NewFilterController(mustProducts(t))

	first := fc.SetQuery("rice")
	second := fc.SetQuery("rice")
	assert.Equal(t, first, second)
	assert.Equal(t, first, fc.Recompute())
}

func TestFilterController_ViewIsSubset(t *testing.T) {
	products := mustProducts(t)
	fc := storefront.NewFilterController(products)

	for _, category := range []string{"all", "rice", "spices", "pulses"} {
		for _, query := range []string{"", "rice", "a", "zzz"} {
			fc.SelectCategory(category)
			view := fc.SetQuery(query)
			state := fc.State()

			for _, p := range view {
				assert.True(t, state.Matches(p))
			}
			for _, p := range products {
				if state.Matches(p) {
					assert.Contains(t, view, p)
				}
			}
		}
	}
}

func TestFilterController_NewestFirst(t *testing.T) {
	fc := storefront.NewFilterController(mustBlogs(t), storefront.WithOrder(storefront.NewestFirst[storefront.BlogPost]))

	assert.Equal(t, []int{2, 3, 1}, ids(fc.View()))
	assert.Equal(t, []int{3, 1}, ids(fc.SelectCategory("export")))
}
