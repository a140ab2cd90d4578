package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ddeep01/storefront"
	"github.com/ddeep01/storefront/internal/config"
)

var (
	flagPostsDir string
	flagBlogsOut string
)

var importBlogsCmd = &cobra.Command{
	Use:   "import-blogs",
	Short: "Compile markdown posts into blogs.json",
	Long: `Read every markdown post (YAML or TOML frontmatter) under the posts directory and write
them to blogs.json, newest first. A 2006-01-02- file name prefix is used as the publish date
when the frontmatter has none.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		postsDir := cfg.Site.PostsDir
		if flagPostsDir != "" {
			postsDir = flagPostsDir
		}
		out := flagBlogsOut
		if out == "" {
			out = filepath.Join(cfg.Source.Dir, storefront.ResourceBlogs.String())
		}

		posts, err := storefront.ImportBlogs(os.DirFS(postsDir), ".", nil)
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(posts, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding blogs: %w", err)
		}

		if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		if err := os.WriteFile(out, append(data, '\n'), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d post(s) into %s.\n", len(posts), out)
		return nil
	},
}

var (
	flagPostTitle    string
	flagPostCategory string
	flagPostAuthor   string
	flagPostExcerpt  string
	flagPostImage    string
	flagPostFeatured bool
	flagPostFormat   string
)

var newPostCmd = &cobra.Command{
	Use:   "new-post",
	Short: "Create a markdown post with frontmatter",
	Long: `Create <posts dir>/<date>-<slug>.md. The body is read from standard input when it is not
a terminal, otherwise a placeholder is written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		postsDir := cfg.Site.PostsDir
		if flagPostsDir != "" {
			postsDir = flagPostsDir
		}
		format := storefront.FrontmatterFormat(strings.ToLower(cfg.Site.Frontmatter))
		if flagPostFormat != "" {
			format = storefront.FrontmatterFormat(strings.ToLower(flagPostFormat))
		}

		content, err := readBody(cmd.InOrStdin())
		if err != nil {
			return err
		}

		meta := storefront.BlogFrontmatter{
			Title:         flagPostTitle,
			Category:      flagPostCategory,
			Author:        flagPostAuthor,
			Excerpt:       flagPostExcerpt,
			FeaturedImage: flagPostImage,
			Featured:      flagPostFeatured,
			Published:     time.Now().UTC().Truncate(time.Second),
		}

		path, err := storefront.CreatePost(postsDir, meta, content, format)
		if errors.Is(err, storefront.ErrPostExists) {
			return fmt.Errorf("%s already exists", path)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
		return nil
	},
}

func init() {
	importBlogsCmd.Flags().StringVar(&flagPostsDir, "posts", "", "markdown posts directory (overrides site.posts_dir)")
	importBlogsCmd.Flags().StringVar(&flagBlogsOut, "out", "", "output file (default <source.dir>/blogs.json)")

	newPostCmd.Flags().StringVar(&flagPostsDir, "posts", "", "markdown posts directory (overrides site.posts_dir)")
	newPostCmd.Flags().StringVar(&flagPostTitle, "title", "", "post title")
	newPostCmd.Flags().StringVar(&flagPostCategory, "category", "", "category name")
	newPostCmd.Flags().StringVar(&flagPostAuthor, "author", "", "author name")
	newPostCmd.Flags().StringVar(&flagPostExcerpt, "excerpt", "", "short summary shown on cards")
	newPostCmd.Flags().StringVar(&flagPostImage, "image", "", "featured image URL")
	newPostCmd.Flags().BoolVar(&flagPostFeatured, "featured", false, "mark the post as featured")
	newPostCmd.Flags().StringVar(&flagPostFormat, "format", "", "frontmatter format: yaml or toml (overrides site.frontmatter)")
	_ = newPostCmd.MarkFlagRequired("title")
}

func readBody(in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok {
		if stat, err := f.Stat(); err == nil && stat.Mode()&os.ModeCharDevice != 0 {
			return "Write your post here.\n", nil
		}
	}

	body, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("reading post body: %w", err)
	}
	if strings.TrimSpace(string(body)) == "" {
		return "Write your post here.\n", nil
	}
	return string(body), nil
}
