package storefront

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Suggest returns up to limit records whose heading fuzzily matches query, best match first. It
// is used to offer alternatives when a search yields no results.
func Suggest[T Record](collection []T, query string, limit int) []T {
	query = strings.TrimSpace(query)
	if query == "" || limit <= 0 || len(collection) == 0 {
		return nil
	}

	headings := make([]string, len(collection))
	for i, r := range collection {
		headings[i] = r.Heading()
	}

	ranks := fuzzy.RankFindNormalizedFold(query, headings)
	sort.Stable(ranks)

	suggestions := make([]T, 0, min(limit, len(ranks)))
	for _, rank := range ranks {
		suggestions = append(suggestions, collection[rank.OriginalIndex])
		if len(suggestions) == limit {
			break
		}
	}
	return suggestions
}
