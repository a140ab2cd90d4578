package storefront

import "slices"

// ResourceKey names a static JSON document. It is the cache key used by the Loader and the
// path handed to a Fetcher.
type ResourceKey string

// ResourceKeys is a slice of ResourceKey.
type ResourceKeys []ResourceKey

const (
	ResourceProducts       ResourceKey = "products.json"
	ResourceBlogs          ResourceKey = "blogs.json"
	ResourceCategories     ResourceKey = "categories.json"
	ResourceBlogCategories ResourceKey = "blog-categories.json"
)

// String returns the string representation of the ResourceKey.
func (rk ResourceKey) String() string {
	return string(rk)
}

// IsValid returns true if the ResourceKey is one of the default resources.
func (rk ResourceKey) IsValid() bool {
	return DefaultResources().Has(string(rk))
}

// Has returns true if the key is in the list.
func (rks ResourceKeys) Has(key string) bool {
	return slices.Contains(rks, ResourceKey(key))
}

// Strings returns the keys as plain strings.
func (rks ResourceKeys) Strings() []string {
	out := make([]string, len(rks))
	for i, rk := range rks {
		out[i] = rk.String()
	}
	return out
}

// DefaultResources returns the documents a storefront site is built from.
func DefaultResources() ResourceKeys {
	return ResourceKeys{
		ResourceProducts,
		ResourceBlogs,
		ResourceCategories,
		ResourceBlogCategories,
	}
}
