// ABOUTME: Loads posts from the site's _posts directory.
// ABOUTME: Reads dated filenames and front matter into models.Post values.

package site

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/harper/tagpages/internal/models"
)

// postFilename matches YYYY-MM-DD-slug.ext post files.
var postFilename = regexp.MustCompile(`^(\d{4}-\d{1,2}-\d{1,2})-(.+)\.(md|markdown|html)$`)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05 -07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// LoadPosts walks the posts directory and returns every published post,
// ordered by date then path. Files without front matter or without a dated
// name are not posts and are ignored. A missing posts directory yields none.
func LoadPosts(cfg *Config) ([]*models.Post, error) {
	root := cfg.PostsPath()
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}

	var posts []*models.Post
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		post, err := readPost(cfg.Source, path)
		if err != nil {
			return err
		}
		if post != nil {
			posts = append(posts, post)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].Date.Equal(posts[j].Date) {
			return posts[i].Date.Before(posts[j].Date)
		}
		return posts[i].Path < posts[j].Path
	})
	return posts, nil
}

// readPost returns nil, nil for files that are not published posts.
func readPost(source, path string) (*models.Post, error) {
	m := postFilename.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return nil, nil
	}
	date, err := time.Parse("2006-1-2", m[1])
	if err != nil {
		return nil, nil //nolint:nilerr // Not a real date, so not a post
	}

	data, err := os.ReadFile(path) //nolint:gosec // Walked from the site source
	if err != nil {
		return nil, err
	}

	fm, ok, err := parseFrontMatter(data)
	if err != nil {
		return nil, fmt.Errorf("parse front matter of %s: %w", path, err)
	}
	if !ok {
		return nil, nil
	}
	if fm.Published != nil && !*fm.Published {
		return nil, nil
	}

	if fm.Date != "" {
		if d, ok := parseDate(fm.Date); ok {
			date = d
		}
	}

	title := fm.Title
	if title == "" {
		title = titleize(m[2])
	}

	rel, err := filepath.Rel(source, path)
	if err != nil {
		rel = path
	}

	return models.NewPost(filepath.ToSlash(rel), title, date, fm.tags()...), nil
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// titleize turns "hello-world" into "Hello World".
func titleize(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
