package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DocumentStore persists raw documents by key. It backs offline snapshots of a site's data.
type DocumentStore interface {
	// Init initializes the store, such as creating the necessary tables or buckets.
	Init() error
	// Close closes the store.
	Close() error
	// Put creates or replaces a document.
	Put(ctx context.Context, key string, doc []byte) error
	// Get returns a document. It returns ErrDocumentNotFound if the key is unknown.
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete removes a document. It returns ErrDocumentNotFound if the key is unknown.
	Delete(ctx context.Context, key string) error
	// Keys returns the stored keys in ascending order.
	Keys(ctx context.Context) ([]string, error)
}

// MemoryDocumentStore implements DocumentStore using in-memory storage
type MemoryDocumentStore struct {
	docs map[string][]byte
	mu   sync.RWMutex
}

// NewMemoryDocumentStore creates a new MemoryDocumentStore
func NewMemoryDocumentStore() *MemoryDocumentStore {
	return &MemoryDocumentStore{
		docs: make(map[string][]byte),
	}
}

// Init initializes the store
func (m *MemoryDocumentStore) Init() error {
	return nil
}

// Close closes the store
func (m *MemoryDocumentStore) Close() error {
	return nil
}

// Put stores a copy of doc under key
func (m *MemoryDocumentStore) Put(_ context.Context, key string, doc []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.docs[key] = slices.Clone(doc)
	return nil
}

// Get retrieves a copy of the document stored under key
func (m *MemoryDocumentStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, key)
	}
	return slices.Clone(doc), nil
}

// Delete removes the document stored under key
func (m *MemoryDocumentStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.docs[key]; !ok {
		return fmt.Errorf("%w: %s", ErrDocumentNotFound, key)
	}
	delete(m.docs, key)
	return nil
}

// Keys returns the stored keys in ascending order
func (m *MemoryDocumentStore) Keys(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.docs))
	for key := range m.docs {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys, nil
}

// Mirror fetches every key from src concurrently and stores the documents in dst. Documents that
// are not valid JSON are rejected. It returns the number of bytes stored per key.
func Mirror(ctx context.Context, src Fetcher, dst DocumentStore, keys ...string) (map[string]int, error) {
	docs := make([][]byte, len(keys))

	g, gctx := errgroup.WithContext(ctx)
	for i, key := range keys {
		g.Go(func() error {
			doc, err := src.Fetch(gctx, key)
			if err != nil {
				return fmt.Errorf("error fetching %s: %w", key, err)
			}
			if !json.Valid(doc) {
				return fmt.Errorf("%w: %s", ErrInvalidDocument, key)
			}
			docs[i] = doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(keys))
	for i, key := range keys {
		if err := dst.Put(ctx, key, docs[i]); err != nil {
			return counts, fmt.Errorf("error storing %s: %w", key, err)
		}
		counts[key] = len(docs[i])
	}

	return counts, nil
}
