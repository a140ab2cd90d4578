package storefront_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ddeep01/storefront"
)

const testProducts = `[
	{"id": 1, "name": "Basmati Rice", "category": "Rice", "short_description": "Long grain", "description": "Premium basmati from Punjab", "is_featured": true},
	{"id": 2, "name": "Jasmine Rice", "category": "Rice", "short_description": "Fragrant", "description": "Soft aromatic rice"},
	{"id": 3, "name": "Turmeric Powder", "category": "Spices", "short_description": "Ground", "description": "Bright yellow spice", "is_featured": true},
	{"id": 4, "name": "Sona Masoori", "category": "Rice", "short_description": "Medium grain", "description": "Light and aromatic"},
	{"id": 5, "name": "Red Chilli", "category": "Spices", "short_description": "Whole", "description": "Hot chilli"}
]`

const testBlogs = `[
	{"id": 1, "title": "Rice Export Trends", "category": "Export", "excerpt": "What moved in 2024", "content": "<p>Trends</p>", "publish_date": "2024-01-01T00:00:00"},
	{"id": 2, "title": "Basmati Grading", "category": "Quality", "excerpt": "How grain length is graded", "content": "<p>Grading</p>", "publish_date": "2024-03-01T00:00:00"},
	{"id": 3, "title": "Packaging Options", "category": "Export", "excerpt": "Bags and cartons", "content": "<p>Bags</p>", "publish_date": "2024-02-01T00:00:00"}
]`

const testCategories = `[{"id": 1, "name": "Rice", "slug": "rice"}, {"id": 2, "name": "Spices"}]`

const testBlogCategories = `[{"id": 1, "name": "Export"}, {"id": 2, "name": "Quality"}]`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestStore returns a document store holding the given documents.
func newTestStore(t *testing.T, docs map[string]string) *storefront.MemoryDocumentStore {
	t.Helper()

	store := storefront.NewMemoryDocumentStore()
	for key, doc := range docs {
		require.NoError(t, store.Put(context.Background(), key, []byte(doc)))
	}
	return store
}

// newTestLoader returns a loader over the standard test documents.
func newTestLoader(t *testing.T) *storefront.Loader {
	t.Helper()

	store := newTestStore(t, map[string]string{
		"products.json":        testProducts,
		"blogs.json":           testBlogs,
		"categories.json":      testCategories,
		"blog-categories.json": testBlogCategories,
	})

	loader, err := storefront.NewLoader(storefront.LoaderOptions{
		Fetcher: storefront.StoreFetcher(store),
		Logger:  discardLogger(),
	})
	require.NoError(t, err)
	return loader
}

func mustProducts(t *testing.T) []storefront.Product {
	t.Helper()

	products, err := newTestLoader(t).Products(context.Background())
	require.NoError(t, err)
	return products
}

func mustBlogs(t *testing.T) []storefront.BlogPost {
	t.Helper()

	blogs, err := newTestLoader(t).Blogs(context.Background())
	require.NoError(t, err)
	return blogs
}

func ids[T storefront.Record](records []T) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.RecordID()
	}
	return out
}
