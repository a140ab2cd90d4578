package storefront_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ddeep01/storefront"
)

func TestResourceKey_IsValid(t *testing.T) {
	tests := []struct {
		key  storefront.ResourceKey
		want bool
	}{
		{key: storefront.ResourceProducts, want: true},
		{key: storefront.ResourceBlogs, want: true},
		{key: storefront.ResourceCategories, want: true},
		{key: storefront.ResourceBlogCategories, want: true},
		{key: "orders.json", want: false},
		{key: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.IsValid())
		})
	}
}

func TestDefaultResources(t *testing.T) {
	assert.Equal(t,
		[]string{"products.json", "blogs.json", "categories.json", "blog-categories.json"},
		storefront.DefaultResources().Strings(),
	)
}
