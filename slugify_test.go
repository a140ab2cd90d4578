package storefront_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ddeep01/storefront"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "basmati-rice", storefront.Slugify("Basmati Rice"))
	assert.Equal(t, "non-basmati", storefront.Slugify("Non-Basmati"))
	assert.Equal(t, "rice-and-grains", storefront.Slugify("Rice & Grains"))
}

func TestSlugifyPath(t *testing.T) {
	fileTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name                 string
		filePath             string
		expectedSlug         string
		expectedFileTimePath string
		expectedFileTime     *time.Time
	}{
		{
			name:                 "Path with date in directory should not parse the date",
			filePath:             "posts/2024-01-01/my-post.md",
			expectedSlug:         "my-post",
			expectedFileTimePath: "",
			expectedFileTime:     nil,
		},
		{
			name:                 "Path with date in file name should parse the date",
			filePath:             "posts/2024-01-01-my-post.md",
			expectedSlug:         "my-post",
			expectedFileTimePath: "2024-01-01",
			expectedFileTime:     &fileTime,
		},
		{
			name:                 "Path with index.md file",
			filePath:             "posts/harvest-report/index.md",
			expectedSlug:         "harvest-report",
			expectedFileTimePath: "",
			expectedFileTime:     nil,
		},
		{
			name:                 "Edge case with empty path",
			filePath:             "",
			expectedSlug:         "",
			expectedFileTimePath: "",
			expectedFileTime:     nil,
		},
		{
			name:                 "Edge case with non-date prefix",
			filePath:             "abcd-ef-gh-my-post.md",
			expectedSlug:         "abcd-ef-gh-my-post",
			expectedFileTimePath: "",
			expectedFileTime:     nil,
		},
		{
			name:                 "Non-slugified name with date prefix",
			filePath:             "2024-01-01-Rice Export Trends & Outlook.md",
			expectedSlug:         "rice-export-trends-and-outlook",
			expectedFileTimePath: "2024-01-01",
			expectedFileTime:     &fileTime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slugPath := storefront.SlugifyPath(tt.filePath)
			assert.Equal(t, tt.expectedSlug, slugPath.Slug)
			assert.Equal(t, tt.expectedFileTime, slugPath.FileTime)
			assert.Equal(t, tt.expectedFileTimePath, slugPath.FileTimePath)
		})
	}
}
