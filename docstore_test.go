package storefront_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddeep01/storefront"
)

func TestMemoryDocumentStore(t *testing.T) {
	store := storefront.NewMemoryDocumentStore()
	ctx := context.Background()
	require.NoError(t, store.Init())
	defer store.Close()

	doc := []byte(`[{"id":1}]`)
	require.NoError(t, store.Put(ctx, "products.json", doc))

	// The store keeps its own copy.
	doc[0] = '{'
	got, err := store.Get(ctx, "products.json")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(got))

	got[0] = '{'
	again, err := store.Get(ctx, "products.json")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(again))

	require.NoError(t, store.Put(ctx, "blogs.json", []byte(`[]`)))
	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"blogs.json", "products.json"}, keys)

	require.NoError(t, store.Delete(ctx, "blogs.json"))
	assert.ErrorIs(t, store.Delete(ctx, "blogs.json"), storefront.ErrDocumentNotFound)

	_, err = store.Get(ctx, "blogs.json")
	assert.ErrorIs(t, err, storefront.ErrDocumentNotFound)
}

func TestMirror(t *testing.T) {
	src := newTestStore(t, map[string]string{
		"products.json":   testProducts,
		"categories.json": testCategories,
		"broken.json":     `[{"id":`,
	})
	ctx := context.Background()

	t.Run("copies every key", func(t *testing.T) {
		dst := storefront.NewMemoryDocumentStore()

		counts, err := storefront.Mirror(ctx, storefront.StoreFetcher(src), dst, "products.json", "categories.json")
		require.NoError(t, err)
		assert.Equal(t, map[string]int{
			"products.json":   len(testProducts),
			"categories.json": len(testCategories),
		}, counts)

		doc, err := dst.Get(ctx, "products.json")
		require.NoError(t, err)
		assert.JSONEq(t, testProducts, string(doc))
	})

	t.Run("rejects invalid json", func(t *testing.T) {
		dst := storefront.NewMemoryDocumentStore()

		_, err := storefront.Mirror(ctx, storefront.StoreFetcher(src), dst, "products.json", "broken.json")
		assert.ErrorIs(t, err, storefront.ErrInvalidDocument)

		keys, err := dst.Keys(ctx)
		require.NoError(t, err)
		assert.Empty(t, keys, "nothing is stored when any document fails")
	})

	t.Run("missing document", func(t *testing.T) {
		_, err := storefront.Mirror(ctx, storefront.StoreFetcher(src), storefront.NewMemoryDocumentStore(), "blogs.json")
		assert.True(t, errors.Is(err, storefront.ErrDocumentNotFound))
	})
}
