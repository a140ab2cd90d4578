package storefront

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
)

// Fetcher retrieves the raw bytes of a document by key.
type Fetcher interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, key string) ([]byte, error)

// Fetch calls f(ctx, key).
func (f FetcherFunc) Fetch(ctx context.Context, key string) ([]byte, error) {
	return f(ctx, key)
}

// HTTPFetcher fetches documents relative to a base URL, e.g. https://example.com/data/.
type HTTPFetcher struct {
	baseURL *url.URL
	client  *http.Client
}

// NewHTTPFetcher creates an HTTPFetcher. A nil client uses http.DefaultClient.
func NewHTTPFetcher(baseURL string, client *http.Client) (*HTTPFetcher, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}

	if client == nil {
		client = http.DefaultClient
	}

	return &HTTPFetcher{baseURL: u, client: client}, nil
}

// Fetch performs a single GET request for key. Non-2xx responses return ErrUnexpectedStatus.
func (hf *HTTPFetcher) Fetch(ctx context.Context, key string) ([]byte, error) {
	ref, err := url.Parse(strings.TrimPrefix(key, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid key %q: %w", key, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, hf.baseURL.ResolveReference(ref).String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := hf.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %w: %s", ErrUnexpectedStatus, ErrDocumentNotFound, resp.Status)
		}
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

// FSFetcher reads documents from a file system, such as the data/ directory of a static site.
type FSFetcher struct {
	fsys fs.FS
}

// NewFSFetcher creates an FSFetcher over fsys.
func NewFSFetcher(fsys fs.FS) *FSFetcher {
	return &FSFetcher{fsys: fsys}
}

// NewDirFetcher creates an FSFetcher rooted at dir on the local file system.
func NewDirFetcher(dir string) *FSFetcher {
	return NewFSFetcher(os.DirFS(dir))
}

// Fetch reads the file named key.
func (ff *FSFetcher) Fetch(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := path.Clean(strings.TrimPrefix(key, "/"))
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidResource, key)
	}

	data, err := fs.ReadFile(ff.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, key)
		}
		return nil, err
	}

	return data, nil
}

// StoreFetcher reads documents from a DocumentStore snapshot.
func StoreFetcher(store DocumentStore) Fetcher {
	return FetcherFunc(func(ctx context.Context, key string) ([]byte, error) {
		return store.Get(ctx, key)
	})
}
