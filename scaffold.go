package storefront

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FrontmatterFormat is the frontmatter syntax of a markdown post.
type FrontmatterFormat string

const (
	FrontmatterTOML FrontmatterFormat = "toml"
	FrontmatterYAML FrontmatterFormat = "yaml"
)

// GenerateFrontmatter encodes meta in the given format, without delimiters.
func GenerateFrontmatter(meta BlogFrontmatter, format FrontmatterFormat) (string, error) {
	var frontmatter strings.Builder

	switch format {
	case FrontmatterYAML:
		yamlData, err := yaml.Marshal(meta)
		if err != nil {
			return "", fmt.Errorf("failed to marshal YAML frontmatter: %w", err)
		}
		frontmatter.Write(yamlData)

	case FrontmatterTOML:
		encoder := toml.NewEncoder(&frontmatter)
		if err := encoder.Encode(meta); err != nil {
			return "", fmt.Errorf("failed to marshal TOML frontmatter: %w", err)
		}

	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFrontmatter, format)
	}

	return frontmatter.String(), nil
}

// NewPostDocument returns a markdown document made of meta as frontmatter followed by content.
func NewPostDocument(meta BlogFrontmatter, content string, format FrontmatterFormat) ([]byte, error) {
	if err := meta.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrMissingPostContent
	}

	frontmatter, err := GenerateFrontmatter(meta, format)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch format {
	case FrontmatterYAML:
		fmt.Fprintf(&buf, "---\n%s---\n\n%s", frontmatter, content)
	case FrontmatterTOML:
		fmt.Fprintf(&buf, "+++\n%s+++\n\n%s", frontmatter, content)
	}
	if !strings.HasSuffix(content, "\n") {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// PostFileName returns the file name of a new post: the publish date followed by the slugified
// title, e.g. 2024-03-01-basmati-export-guide.md.
func PostFileName(meta BlogFrontmatter) string {
	published := meta.Published
	if published.IsZero() {
		published = time.Now()
	}
	return published.Format(time.DateOnly) + "-" + Slugify(meta.Title) + ".md"
}

// CreatePost writes a new markdown post into dir and returns its path. If the file already exists,
// ErrPostExists is returned along with the path.
func CreatePost(dir string, meta BlogFrontmatter, content string, format FrontmatterFormat) (string, error) {
	document, err := NewPostDocument(meta, content, format)
	if err != nil {
		return "", err
	}

	filePath := filepath.Join(dir, PostFileName(meta))
	if _, err := os.Stat(filePath); err == nil {
		return filePath, ErrPostExists
	} else if !errors.Is(err, fs.ErrNotExist) {
		return filePath, fmt.Errorf("failed to stat file: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(filePath, document, 0644); err != nil {
		return filePath, fmt.Errorf("failed to write file: %w", err)
	}
	return filePath, nil
}
