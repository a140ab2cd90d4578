package storefront

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"go.abhg.dev/goldmark/frontmatter"
)

// BlogFrontmatter is the frontmatter of a markdown blog post.
type BlogFrontmatter struct {
	ID              int       `yaml:"id,omitempty" toml:"id,omitempty"`
	Title           string    `yaml:"title,omitempty" toml:"title,omitempty"`
	Category        string    `yaml:"category,omitempty" toml:"category,omitempty"`
	CategorySlug    string    `yaml:"category_slug,omitempty" toml:"category_slug,omitempty"`
	Author          string    `yaml:"author,omitempty" toml:"author,omitempty"`
	Excerpt         string    `yaml:"excerpt,omitempty" toml:"excerpt,omitempty"`
	FeaturedImage   string    `yaml:"featured_image,omitempty" toml:"featured_image,omitempty"`
	Featured        bool      `yaml:"featured,omitempty" toml:"featured,omitempty"`
	Published       time.Time `yaml:"published,omitempty" toml:"published,omitempty"`
	MetaTitle       string    `yaml:"meta_title,omitempty" toml:"meta_title,omitempty"`
	MetaDescription string    `yaml:"meta_description,omitempty" toml:"meta_description,omitempty"`
	MetaKeywords    string    `yaml:"meta_keywords,omitempty" toml:"meta_keywords,omitempty"`
}

// Validate reports frontmatter that cannot become a blog post.
func (fm *BlogFrontmatter) Validate() error {
	if strings.TrimSpace(fm.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidFrontmatter)
	}
	if fm.ID < 0 {
		return fmt.Errorf("%w: id %d is negative", ErrInvalidFrontmatter, fm.ID)
	}
	return nil
}

// MarkdownParserFunc converts a markdown document into a blog post.
type MarkdownParserFunc func(input []byte) (BlogPost, error)

// DefaultMarkdownParser returns a MarkdownParserFunc that uses goldmark with the following extensions:
// - GFM
// - Typographer
// - Frontmatter (YAML between --- or TOML between +++)
// Raw HTML in the markdown is kept; it is sanitized when a post is rendered.
func DefaultMarkdownParser() MarkdownParserFunc {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
			&frontmatter.Extender{},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	return func(input []byte) (BlogPost, error) {
		return MarkdownToBlogPost(md, input)
	}
}

// MarkdownToBlogPost converts markdown content to a BlogPost. Posts without frontmatter only get
// their content set.
func MarkdownToBlogPost(md goldmark.Markdown, content []byte) (BlogPost, error) {
	var buf bytes.Buffer
	ctx := parser.NewContext()
	if err := md.Convert(content, &buf, parser.WithContext(ctx)); err != nil {
		return BlogPost{}, fmt.Errorf("failed to convert markdown: %w", err)
	}

	post := BlogPost{Content: buf.String()}

	data := frontmatter.Get(ctx)
	if data == nil {
		return post, nil
	}

	var meta BlogFrontmatter
	if err := data.Decode(&meta); err != nil {
		return post, fmt.Errorf("%w: %w", ErrInvalidFrontmatter, err)
	}

	post.ID = meta.ID
	post.Title = meta.Title
	post.Category = meta.Category
	post.CategoryKey = meta.CategorySlug
	post.Author = meta.Author
	post.Excerpt = meta.Excerpt
	post.FeaturedImage = meta.FeaturedImage
	post.Featured = meta.Featured
	post.PublishDate = Timestamp{meta.Published}
	post.MetaTitle = meta.MetaTitle
	post.MetaDescription = meta.MetaDescription
	post.MetaKeywords = meta.MetaKeywords
	return post, nil
}

// ReadBlogFile reads a markdown post from fsys. The slug comes from the file name and a
// 2006-01-02 date prefix in the name is used when the frontmatter has no publish date.
func ReadBlogFile(fsys fs.FS, markdownParser MarkdownParserFunc, name string) (BlogPost, error) {
	content, err := fs.ReadFile(fsys, name)
	if err != nil {
		return BlogPost{}, fmt.Errorf("failed to read file: %w", err)
	}

	post, err := markdownParser(content)
	if err != nil {
		return BlogPost{}, fmt.Errorf("failed to convert %s: %w", name, err)
	}

	slugPath := SlugifyPath(name)
	if slugPath.FileTime != nil && !post.HasPublished() {
		post.PublishDate = Timestamp{*slugPath.FileTime}
	}

	post.Slug = slugPath.Slug
	if post.Title == "" {
		return BlogPost{}, fmt.Errorf("%w: %s has no title", ErrInvalidFrontmatter, name)
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = post.PublishDate
	}
	return post, nil
}

// ImportBlogs reads every .md file under root in fsys. Posts without an id are numbered after the
// highest id found. The result is ordered newest first.
func ImportBlogs(fsys fs.FS, root string, markdownParser MarkdownParserFunc) ([]BlogPost, error) {
	if markdownParser == nil {
		markdownParser = DefaultMarkdownParser()
	}

	var posts []BlogPost
	err := fs.WalkDir(fsys, root, func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(name) != ".md" {
			return nil
		}

		post, err := ReadBlogFile(fsys, markdownParser, name)
		if err != nil {
			return err
		}
		posts = append(posts, post)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to import blogs: %w", err)
	}

	// Walk order is lexical, so numbering is stable across runs.
	nextID := 0
	seen := make(map[int]string, len(posts))
	for _, post := range posts {
		if post.ID == 0 {
			continue
		}
		if slug, ok := seen[post.ID]; ok {
			return nil, fmt.Errorf("%w: id %d used by %s and %s", ErrInvalidFrontmatter, post.ID, slug, post.Slug)
		}
		seen[post.ID] = post.Slug
		nextID = max(nextID, post.ID)
	}
	for i := range posts {
		if posts[i].ID == 0 {
			nextID++
			posts[i].ID = nextID
		}
	}

	return SortNewestFirst(posts), nil
}
