package storefront

import (
	"path"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

// Slugify returns the URL-safe form of a category or record name.
func Slugify(name string) string {
	return slug.Make(name)
}

// SlugPath is the slug of a markdown source file together with the date found in its name.
type SlugPath struct {
	Slug         string
	FileTimePath string
	FileTime     *time.Time
}

func hasFileTimeInSlug(name string) bool {
	return len(name) > 11 && name[4] == '-' && name[7] == '-' && name[10] == '-'
}

// SlugifyPath turns the path of a markdown post into a slug.
// - The directory part and the extension are dropped.
// - If the file name starts with a 2006-01-02 date, the date is extracted and removed from the slug.
// - A trailing "index" file name uses its directory name instead.
// - The remaining name is slugified with the slug package.
func SlugifyPath(filePath string) SlugPath {
	if filePath == "" {
		return SlugPath{}
	}

	filePath = strings.ReplaceAll(strings.TrimSpace(filePath), "\\", "/")
	name := strings.TrimSuffix(path.Base(filePath), path.Ext(filePath))
	if name == "index" {
		name = path.Base(path.Dir(filePath))
	}

	var fileTime *time.Time
	fileTimePath := ""
	if hasFileTimeInSlug(name) {
		if parsed, err := time.Parse(time.DateOnly, name[:10]); err == nil {
			fileTime = &parsed
			fileTimePath = name[:10]
			name = name[11:]
		}
	}

	return SlugPath{
		Slug:         slug.Make(name),
		FileTimePath: fileTimePath,
		FileTime:     fileTime,
	}
}
