package storefront_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ddeep01/storefront"
)

func TestSuggest(t *testing.T) {
	products := mustProducts(t)

	tests := []struct {
		name  string
		query string
		limit int
		want  []int
	}{
		{name: "misspelled query", query: "basmti", limit: 3, want: []int{1}},
		{name: "case-insensitive", query: "TURMERIC", limit: 3, want: []int{3}},
		{name: "no close match", query: "xyz", limit: 3, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(storefront.Suggest(products, tt.query, tt.limit)))
		})
	}

	assert.Nil(t, storefront.Suggest(products, " ", 3))
	assert.Nil(t, storefront.Suggest(products, "rice", 0))
	assert.Len(t, storefront.Suggest(products, "rice", 2), 2)
}
