package searchindex

import (
	"context"
	"fmt"
	"html"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/sync/errgroup"

	"github.com/ddeep01/storefront"
)

// Kind is the type of an indexed record.
type Kind string

const (
	KindAny     Kind = ""
	KindProduct Kind = "product"
	KindBlog    Kind = "blog"
)

// DefaultLimit is the number of hits returned when no limit is given.
const DefaultLimit = 10

// ParseKind returns the kind named by s. Unknown names return KindAny.
func ParseKind(s string) Kind {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindProduct, "products":
		return KindProduct
	case KindBlog, "blogs":
		return KindBlog
	default:
		return KindAny
	}
}

// Hit is one search result.
type Hit struct {
	Kind    Kind
	ID      int
	Heading string
	Score   float64
}

type document struct {
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	Category string `json:"category"`
}

// Index is an in-memory full-text index over products and blog posts.
type Index struct {
	index  bleve.Index
	logger *slog.Logger
	strict *bluemonday.Policy
}

// New creates an empty in-memory index.
func New(logger *slog.Logger) (*Index, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	index, err := bleve.NewMemOnly(defineBleveMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create bleve index: %w", err)
	}

	return &Index{
		index:  index,
		logger: logger,
		strict: bluemonday.StrictPolicy(),
	}, nil
}

// Build creates an index holding every product and blog post the loader provides. A collection
// that fails to load is logged and left out.
func Build(ctx context.Context, loader *storefront.Loader, logger *slog.Logger) (*Index, error) {
	ix, err := New(logger)
	if err != nil {
		return nil, err
	}

	var (
		products []storefront.Product
		blogs    []storefront.BlogPost
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if products, err = loader.Products(gctx); err != nil {
			ix.logger.Warn("products not indexed", slog.String("error", err.Error()))
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if blogs, err = loader.Blogs(gctx); err != nil {
			ix.logger.Warn("blogs not indexed", slog.String("error", err.Error()))
		}
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		_ = ix.Close()
		return nil, err
	}

	if err := ix.IndexProducts(products); err != nil {
		_ = ix.Close()
		return nil, err
	}
	if err := ix.IndexBlogs(blogs); err != nil {
		_ = ix.Close()
		return nil, err
	}
	return ix, nil
}

// IndexProducts adds or replaces products in the index.
func (ix *Index) IndexProducts(products []storefront.Product) error {
	batch := ix.index.NewBatch()
	for _, p := range products {
		doc := document{
			Kind:     string(KindProduct),
			Title:    p.Name,
			Body:     strings.Join([]string{p.ShortDescription, p.Description, p.AdditionalSpecs}, "\n"),
			Category: p.Category,
		}
		if err := batch.Index(docID(KindProduct, p.ID), doc); err != nil {
			return fmt.Errorf("failed to index product %d: %w", p.ID, err)
		}
	}
	return ix.commit(batch, KindProduct)
}

// IndexBlogs adds or replaces blog posts in the index. Markup is stripped from the content.
func (ix *Index) IndexBlogs(posts []storefront.BlogPost) error {
	batch := ix.index.NewBatch()
	for _, b := range posts {
		doc := document{
			Kind:     string(KindBlog),
			Title:    b.Title,
			Body:     b.Excerpt + "\n" + html.UnescapeString(ix.strict.Sanitize(b.Content)),
			Category: b.Category,
		}
		if err := batch.Index(docID(KindBlog, b.ID), doc); err != nil {
			return fmt.Errorf("failed to index blog %d: %w", b.ID, err)
		}
	}
	return ix.commit(batch, KindBlog)
}

func (ix *Index) commit(batch *bleve.Batch, kind Kind) error {
	size := batch.Size()
	if err := ix.index.Batch(batch); err != nil {
		return fmt.Errorf("failed to index %s records: %w", kind, err)
	}
	ix.logger.Debug("indexed records", slog.String("kind", string(kind)), slog.Int("count", size))
	return nil
}

// Search returns up to limit hits for text, best match first. KindAny searches every kind.
func (ix *Index) Search(ctx context.Context, text string, kind Kind, limit int) ([]Hit, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	request := bleve.NewSearchRequestOptions(ix.searchQuery(text, kind), limit, 0, false)
	request.Fields = []string{"title"}

	result, err := ix.index.SearchInContext(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("error searching for %q: %w", text, err)
	}

	hits := make([]Hit, 0, len(result.Hits))
	for _, match := range result.Hits {
		hitKind, id, ok := parseDocID(match.ID)
		if !ok {
			ix.logger.Warn("skipping unknown document", slog.String("id", match.ID))
			continue
		}
		heading, _ := match.Fields["title"].(string)
		hits = append(hits, Hit{Kind: hitKind, ID: id, Heading: heading, Score: match.Score})
	}
	return hits, nil
}

// Count returns the number of indexed records.
func (ix *Index) Count() (uint64, error) {
	return ix.index.DocCount()
}

// Close releases the index.
func (ix *Index) Close() error {
	return ix.index.Close()
}

func (ix *Index) searchQuery(text string, kind Kind) query.Query {
	title := bleve.NewMatchQuery(text)
	title.SetField("title")
	title.SetBoost(2)

	body := bleve.NewMatchQuery(text)
	body.SetField("body")

	category := bleve.NewMatchQuery(text)
	category.SetField("category")

	prefix := bleve.NewPrefixQuery(strings.ToLower(text))
	prefix.SetField("title")

	match := bleve.NewDisjunctionQuery(title, body, category, prefix)
	if kind == KindAny {
		return match
	}

	kindQuery := bleve.NewTermQuery(string(kind))
	kindQuery.SetField("kind")
	return bleve.NewConjunctionQuery(match, kindQuery)
}

func defineBleveMapping() *mapping.IndexMappingImpl {
	indexMapping := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()

	kindField := bleve.NewKeywordFieldMapping()
	kindField.IncludeInAll = false
	docMapping.AddFieldMappingsAt("kind", kindField)

	titleField := bleve.NewTextFieldMapping()
	titleField.Store = true
	docMapping.AddFieldMappingsAt("title", titleField)
	docMapping.AddFieldMappingsAt("body", bleve.NewTextFieldMapping())
	docMapping.AddFieldMappingsAt("category", bleve.NewTextFieldMapping())

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

func docID(kind Kind, id int) string {
	return string(kind) + ":" + strconv.Itoa(id)
}

func parseDocID(id string) (Kind, int, bool) {
	kind, raw, ok := strings.Cut(id, ":")
	if !ok {
		return KindAny, 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return KindAny, 0, false
	}
	return Kind(kind), n, true
}
