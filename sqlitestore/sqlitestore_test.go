package sqlitestore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddeep01/storefront"
	"github.com/ddeep01/storefront/sqlitestore"
)

var _ storefront.DocumentStore = (*sqlitestore.SQLiteStore)(nil)

func setupTestEnvironment(t *testing.T) *sqlitestore.SQLiteStore {
	t.Helper()

	db, err := sqlitestore.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	store, err := sqlitestore.NewSQLiteStore(db, "snapshots")
	require.NoError(t, err)
	require.NoError(t, store.Init())

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func TestNewSQLiteStore_TableName(t *testing.T) {
	tests := []struct {
		name      string
		tableName string
		wantErr   bool
	}{
		{name: "default", tableName: ""},
		{name: "plain", tableName: "documents_v2"},
		{name: "injection", tableName: "docs; DROP TABLE x", wantErr: true},
		{name: "leading digit", tableName: "1docs", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sqlitestore.NewSQLiteStore(nil, tt.tableName)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSQLiteStore_PutGet(t *testing.T) {
	store := setupTestEnvironment(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "blogs.json", []byte(`[{"id":1,"title":"Rice"}]`)))

	doc, err := store.Get(ctx, "blogs.json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"title":"Rice"}]`, string(doc))

	require.NoError(t, store.Put(ctx, "blogs.json", []byte(`[]`)))
	doc, err = store.Get(ctx, "blogs.json")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(doc))
}

func TestSQLiteStore_Missing(t *testing.T) {
	store := setupTestEnvironment(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "products.json")
	assert.ErrorIs(t, err, storefront.ErrDocumentNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "products.json"), storefront.ErrDocumentNotFound)
}

func TestSQLiteStore_Keys(t *testing.T) {
	store := setupTestEnvironment(t)
	ctx := context.Background()

	for _, key := range []string{"products.json", "blogs.json"} {
		require.NoError(t, store.Put(ctx, key, []byte(`[]`)))
	}

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"blogs.json", "products.json"}, keys)

	require.NoError(t, store.Delete(ctx, "blogs.json"))
	keys, err = store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"products.json"}, keys)
}

func TestSQLiteStore_Mirror(t *testing.T) {
	store := setupTestEnvironment(t)
	ctx := context.Background()

	src := storefront.NewMemoryDocumentStore()
	require.NoError(t, src.Put(ctx, "categories.json", []byte(`[{"id":1,"name":"Rice"}]`)))

	counts, err := storefront.Mirror(ctx, storefront.StoreFetcher(src), store, "categories.json")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"categories.json": 24}, counts)

	doc, err := store.Get(ctx, "categories.json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"name":"Rice"}]`, string(doc))
}
