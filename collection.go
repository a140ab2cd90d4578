package storefront

import (
	"slices"
	"time"
)

const (
	FeaturedProductsLimit = 6
	LatestBlogsLimit      = 3
	RelatedLimit          = 3
)

// Featured returns up to limit featured records in source order.
func Featured[T Record](collection []T, limit int) []T {
	result := make([]T, 0, min(max(limit, 0), len(collection)))
	if limit <= 0 {
		return result
	}

	for _, r := range collection {
		if !r.IsFeatured() {
			continue
		}
		result = append(result, r)
		if len(result) == limit {
			break
		}
	}
	return result
}

// Latest returns up to limit records ordered by publish date, newest first. Records with equal
// dates keep their relative input order. The input is not modified.
func Latest[T Record](collection []T, limit int) []T {
	if limit <= 0 {
		return []T{}
	}

	sorted := SortNewestFirst(collection)
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// SortNewestFirst returns a copy of collection stably sorted by publish date, newest first.
// Records without a publish date sort last.
func SortNewestFirst[T Record](collection []T) []T {
	sorted := slices.Clone(collection)
	if sorted == nil {
		sorted = []T{}
	}
	slices.SortStableFunc(sorted, func(a, b T) int {
		return compareTime(b.PublishedTime(), a.PublishedTime())
	})
	return sorted
}

// FindByID returns the record with the given id.
func FindByID[T Record](collection []T, id int) (T, bool) {
	for _, r := range collection {
		if r.RecordID() == id {
			return r, true
		}
	}

	var zero T
	return zero, false
}

// Related returns up to limit records sharing the category of record, excluding record itself,
// in source order.
func Related[T Record](collection []T, record T, limit int) []T {
	result := make([]T, 0, max(limit, 0))
	if limit <= 0 {
		return result
	}

	slug := record.CategorySlug()
	for _, r := range collection {
		if r.RecordID() == record.RecordID() || r.CategorySlug() != slug {
			continue
		}
		result = append(result, r)
		if len(result) == limit {
			break
		}
	}
	return result
}

// CategoryCount is the number of records filed under a category slug.
type CategoryCount struct {
	Slug  string
	Name  string
	Count int
}

// CategoryCounts counts records per category slug, in order of first appearance. Records without
// a category are skipped.
func CategoryCounts[T Record](collection []T) []CategoryCount {
	index := make(map[string]int)
	var counts []CategoryCount

	for _, r := range collection {
		slug := r.CategorySlug()
		if slug == "" {
			continue
		}
		if i, ok := index[slug]; ok {
			counts[i].Count++
			continue
		}
		index[slug] = len(counts)
		counts = append(counts, CategoryCount{Slug: slug, Name: r.CategoryName(), Count: 1})
	}

	return counts
}

// compareTime compares two time.Time values
func compareTime(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}
