package bboltstore_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddeep01/storefront"
	"github.com/ddeep01/storefront/bboltstore"
)

func setupStore(t *testing.T) *bboltstore.BBoltStore {
	t.Helper()

	store := bboltstore.New(t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, store.Init())
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

var _ storefront.DocumentStore = (*bboltstore.BBoltStore)(nil)

func TestBBoltStore_PutGet(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "products.json", []byte(`[{"id":1}]`)))

	doc, err := store.Get(ctx, "products.json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(doc))

	updated, err := store.Updated("products.json")
	require.NoError(t, err)
	assert.False(t, updated.IsZero())

	require.NoError(t, store.Put(ctx, "products.json", []byte(`[]`)))
	doc, err = store.Get(ctx, "products.json")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(doc))
}

func TestBBoltStore_GetMissing(t *testing.T) {
	store := setupStore(t)

	_, err := store.Get(context.Background(), "blogs.json")
	assert.ErrorIs(t, err, storefront.ErrDocumentNotFound)
}

func TestBBoltStore_DeleteAndKeys(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	for _, key := range []string{"products.json", "blogs.json", "categories.json"} {
		require.NoError(t, store.Put(ctx, key, []byte(`[]`)))
	}

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"blogs.json", "categories.json", "products.json"}, keys)

	require.NoError(t, store.Delete(ctx, "blogs.json"))
	assert.ErrorIs(t, store.Delete(ctx, "blogs.json"), storefront.ErrDocumentNotFound)

	keys, err = store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"categories.json", "products.json"}, keys)
}

func TestBBoltStore_Clear(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "products.json", []byte(`[]`)))
	require.NoError(t, store.Clear())

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestBBoltStore_AsFetcher(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "products.json", []byte(`[{"id":7,"name":"Basmati Rice"}]`)))

	loader, err := storefront.NewLoader(storefront.LoaderOptions{
		Fetcher: storefront.StoreFetcher(store),
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	products, err := loader.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Basmati Rice", products[0].Name)
}
