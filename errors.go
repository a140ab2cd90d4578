package storefront

import "errors"

var (
	ErrNilFetcher        = errors.New("fetcher is required")
	ErrDocumentNotFound  = errors.New("document not found")
	ErrInvalidDocument   = errors.New("invalid json document")
	ErrUnexpectedStatus  = errors.New("unexpected response status")
	ErrMissingIdentifier = errors.New("missing or invalid record id")
	ErrRecordNotFound    = errors.New("record not found")
	ErrInvalidResource   = errors.New("invalid resource key")
	ErrNilSurface        = errors.New("surface is required")

	ErrInvalidFrontmatter     = errors.New("invalid frontmatter")
	ErrMissingPostContent     = errors.New("post content is required")
	ErrPostExists             = errors.New("post already exists")
	ErrUnsupportedFrontmatter = errors.New("unsupported frontmatter format")
)
