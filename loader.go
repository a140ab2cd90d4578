package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Loader fetches JSON documents once and memoizes them by key for the lifetime of the Loader.
// Concurrent first loads of the same key share a single fetch. Failed loads are not cached, so a
// later call retries.
type Loader struct {
	cache   map[string]*cacheEntry
	fetcher Fetcher
	group   singleflight.Group
	logger  *slog.Logger
	mu      sync.RWMutex
	timeout time.Duration
}

// LoaderOptions is a struct for configuring a new Loader.
type LoaderOptions struct {
	Fetcher Fetcher       // Fetcher retrieves documents by key. Required.
	Logger  *slog.Logger  // Logger is used to report failed loads. Default is a debug logger to stderr.
	Timeout time.Duration // Timeout bounds a single fetch. Zero means no timeout.
}

type cacheEntry struct {
	raw   json.RawMessage
	value any
}

// NewLoader creates a Loader with the provided options.
func NewLoader(opts LoaderOptions) (*Loader, error) {
	if opts.Fetcher == nil {
		return nil, ErrNilFetcher
	}

	if opts.Logger == nil {
		opts.Logger = defaultLogger()
	}

	return &Loader{
		cache:   make(map[string]*cacheEntry),
		fetcher: opts.Fetcher,
		logger:  opts.Logger,
		timeout: opts.Timeout,
	}, nil
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr,
		&slog.HandlerOptions{
			AddSource: false,
			Level:     slog.LevelDebug,
		}))
}

// Load returns the document stored under key decoded as T. The first call for a key fetches and
// decodes the document; later calls return the cached value without fetching again. Callers
// must treat the returned value as read-only.
func Load[T any](ctx context.Context, l *Loader, key string) (T, error) {
	var zero T

	entry, err := l.load(ctx, key, func(raw []byte) (any, error) {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return v, nil
	})
	if err != nil {
		return zero, err
	}

	if v, ok := entry.value.(T); ok {
		return v, nil
	}

	// The cached value was decoded for a different type; decode the cached bytes again.
	var v T
	if err := json.Unmarshal(entry.raw, &v); err != nil {
		return zero, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, key, err)
	}
	return v, nil
}

// Products loads products.json.
func (l *Loader) Products(ctx context.Context) ([]Product, error) {
	return Load[[]Product](ctx, l, ResourceProducts.String())
}

// Blogs loads blogs.json.
func (l *Loader) Blogs(ctx context.Context) ([]BlogPost, error) {
	return Load[[]BlogPost](ctx, l, ResourceBlogs.String())
}

// Categories loads categories.json.
func (l *Loader) Categories(ctx context.Context) ([]Category, error) {
	return Load[[]Category](ctx, l, ResourceCategories.String())
}

// BlogCategories loads blog-categories.json.
func (l *Loader) BlogCategories(ctx context.Context) ([]Category, error) {
	return Load[[]Category](ctx, l, ResourceBlogCategories.String())
}

// Cached returns true if the document stored under key has been loaded successfully.
func (l *Loader) Cached(key string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, ok := l.cache[key]
	return ok
}

// Logger returns the logger used by the Loader.
func (l *Loader) Logger() *slog.Logger {
	return l.logger
}

func (l *Loader) cached(key string) *cacheEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cache[key]
}

func (l *Loader) load(ctx context.Context, key string, decode func([]byte) (any, error)) (*cacheEntry, error) {
	if entry := l.cached(key); entry != nil {
		return entry, nil
	}

	// The shared fetch must outlive any single caller, so it only inherits the caller's values.
	fetchCtx := context.WithoutCancel(ctx)
	ch := l.group.DoChan(key, func() (any, error) {
		if entry := l.cached(key); entry != nil {
			return entry, nil
		}

		entry, err := l.fetch(fetchCtx, key, decode)
		if err != nil {
			l.logger.Error("failed to load document",
				slog.String("key", key),
				slog.String("error", err.Error()))
			return nil, err
		}

		l.mu.Lock()
		l.cache[key] = entry
		l.mu.Unlock()

		l.logger.Debug("loaded document", slog.String("key", key), slog.Int("bytes", len(entry.raw)))
		return entry, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*cacheEntry), nil
	}
}

func (l *Loader) fetch(ctx context.Context, key string, decode func([]byte) (any, error)) (*cacheEntry, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	raw, err := l.fetcher.Fetch(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("error fetching %s: %w", key, err)
	}

	value, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, key, err)
	}

	return &cacheEntry{raw: json.RawMessage(raw), value: value}, nil
}
