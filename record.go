package storefront

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultSiteName is appended to detail page titles.
	DefaultSiteName = "Patel Universal Traders"

	shortDateLayout = "Jan 2, 2006"
	longDateLayout  = "January 2, 2006"
)

// Record is the part of a Product or BlogPost that the filter, accessors and page controllers
// work with.
type Record interface {
	RecordID() int
	Heading() string
	Blurb() string
	CategoryName() string
	CategorySlug() string
	IsFeatured() bool
	PublishedTime() time.Time
}

// Category is an entry of categories.json or blog-categories.json.
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Order       int    `json:"order"`
}

// Key returns the category slug, derived from the name when the document has none.
func (c Category) Key() string {
	if c.Slug != "" {
		return c.Slug
	}
	return Slugify(c.Name)
}

// HasImage returns true if the category has an image.
func (c Category) HasImage() bool {
	return c.Image != ""
}

// Spec is a labelled product specification.
type Spec struct {
	Label string
	Value string
}

// Product is an entry of products.json.
type Product struct {
	ID               int      `json:"id"`
	Name             string   `json:"name"`
	Slug             string   `json:"slug"`
	CategoryID       int      `json:"category_id"`
	Category         string   `json:"category"`
	CategoryKey      string   `json:"category_slug"`
	ShortDescription string   `json:"short_description"`
	Description      string   `json:"description"`
	Images           []string `json:"images"`
	MainImage        string   `json:"main_image"`
	GrainLength      string   `json:"grain_length"`
	Purity           string   `json:"purity"`
	Moisture         string   `json:"moisture"`
	BrokenGrains     string   `json:"broken_grains"`
	PackagingOptions string   `json:"packaging_options"`
	AdditionalSpecs  string   `json:"additional_specs"`
	SpecSheet        string   `json:"spec_sheet"`
	MetaTitle        string   `json:"meta_title"`
	MetaDescription  string   `json:"meta_description"`
	MetaKeywords     string   `json:"meta_keywords"`
	Featured         bool     `json:"is_featured"`
	Order            int      `json:"order"`
}

func (p Product) RecordID() int { return p.ID }
func (p Product) Heading() string { return p.Name }
func (p Product) Blurb() string { return p.Description }
func (p Product) CategoryName() string { return p.Category }
func (p Product) IsFeatured() bool { return p.Featured }
func (p Product) PublishedTime() time.Time { return time.Time{} }

// CategorySlug returns category_slug, or the slugified category name when it is absent.
func (p Product) CategorySlug() string {
	return categorySlug(p.CategoryKey, p.Category)
}

// HasCategory returns true if the product names a category.
func (p Product) HasCategory() bool {
	return p.Category != ""
}

// HasMainImage returns true if the product has a main image.
func (p Product) HasMainImage() bool {
	return p.MainImage != ""
}

// Gallery returns the non-empty gallery images.
func (p Product) Gallery() []string {
	images := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		if strings.TrimSpace(img) != "" {
			images = append(images, img)
		}
	}
	return images
}

// HasGallery returns true if the product has at least one gallery image.
func (p Product) HasGallery() bool {
	return len(p.Gallery()) > 0
}

// HasAdditionalSpecs returns true if the product has free-form specifications.
func (p Product) HasAdditionalSpecs() bool {
	return strings.TrimSpace(p.AdditionalSpecs) != ""
}

// HasSpecSheet returns true if a spec sheet can be downloaded.
func (p Product) HasSpecSheet() bool {
	return p.SpecSheet != ""
}

// Specifications returns the known specifications in display order, skipping absent ones.
func (p Product) Specifications() []Spec {
	candidates := []Spec{
		{Label: "Grain Length", Value: p.GrainLength},
		{Label: "Purity", Value: p.Purity},
		{Label: "Moisture", Value: p.Moisture},
		{Label: "Broken Grains", Value: p.BrokenGrains},
		{Label: "Packaging", Value: p.PackagingOptions},
	}

	specs := make([]Spec, 0, len(candidates))
	for _, spec := range candidates {
		if spec.Value != "" {
			specs = append(specs, spec)
		}
	}
	return specs
}

// BlogPost is an entry of blogs.json.
type BlogPost struct {
	ID              int       `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	CategoryID      int       `json:"category_id"`
	Category        string    `json:"category"`
	CategoryKey     string    `json:"category_slug"`
	Author          string    `json:"author"`
	Excerpt         string    `json:"excerpt"`
	Content         string    `json:"content"`
	FeaturedImage   string    `json:"featured_image"`
	MetaTitle       string    `json:"meta_title"`
	MetaDescription string    `json:"meta_description"`
	MetaKeywords    string    `json:"meta_keywords"`
	Featured        bool      `json:"is_featured"`
	PublishDate     Timestamp `json:"publish_date"`
	CreatedAt       Timestamp `json:"created_at"`
	UpdatedAt       Timestamp `json:"updated_at"`
	ViewsCount      int       `json:"views_count"`
}

func (b BlogPost) RecordID() int { return b.ID }
func (b BlogPost) Heading() string { return b.Title }
func (b BlogPost) Blurb() string { return b.Excerpt }
func (b BlogPost) CategoryName() string { return b.Category }
func (b BlogPost) IsFeatured() bool { return b.Featured }
func (b BlogPost) PublishedTime() time.Time { return b.PublishDate.Time }

// CategorySlug returns category_slug, or the slugified category name when it is absent.
func (b BlogPost) CategorySlug() string {
	return categorySlug(b.CategoryKey, b.Category)
}

// HasCategory returns true if the post names a category.
func (b BlogPost) HasCategory() bool {
	return b.Category != ""
}

// HasFeaturedImage returns true if the post has a featured image.
func (b BlogPost) HasFeaturedImage() bool {
	return b.FeaturedImage != ""
}

// HasAuthor returns true if the post names an author.
func (b BlogPost) HasAuthor() bool {
	return b.Author != ""
}

// HasContent returns true if the post has a body.
func (b BlogPost) HasContent() bool {
	return strings.TrimSpace(b.Content) != ""
}

// HasViews returns true if the post has a non-zero view count.
func (b BlogPost) HasViews() bool {
	return b.ViewsCount > 0
}

// HasPublished returns true if the post has a publish date.
func (b BlogPost) HasPublished() bool {
	return !b.PublishDate.IsZero()
}

// PublishedDate returns the publish date in the format Jan 2, 2006
func (b BlogPost) PublishedDate() string {
	if !b.HasPublished() {
		return ""
	}
	return b.PublishDate.Format(shortDateLayout)
}

// PublishedDateLong returns the publish date in the format January 2, 2006
func (b BlogPost) PublishedDateLong() string {
	if !b.HasPublished() {
		return ""
	}
	return b.PublishDate.Format(longDateLayout)
}

// PageTitle returns the document title used for a record's detail page.
func PageTitle(r Record, siteName string) string {
	if siteName == "" {
		siteName = DefaultSiteName
	}
	return fmt.Sprintf("%s - %s", r.Heading(), siteName)
}

func categorySlug(explicit, name string) string {
	if explicit != "" {
		return explicit
	}
	if name == "" {
		return ""
	}
	return Slugify(name)
}
