// ABOUTME: Tag model and slug derivation for tag index pages.
// ABOUTME: Keeps the authored name verbatim next to its path-safe slug.

package models

import (
	"regexp"
	"strings"
)

// nonSlugChars matches everything outside ASCII word characters and hyphen.
var nonSlugChars = regexp.MustCompile(`[^\w-]`)

// Tag pairs an authored tag name with the slug its page lives under.
type Tag struct {
	Name string
	Slug string
}

func NewTag(name string) *Tag {
	return &Tag{
		Name: name,
		Slug: Slugify(name),
	}
}

// Slugify derives the directory name for a tag: lowercase, trimmed, every
// space turned into a hyphen, then anything but [A-Za-z0-9_-] dropped.
// Distinct names can share a slug ("C#" and "C " both give "c").
func Slugify(name string) string {
	s := strings.TrimSpace(strings.ToLower(name))
	s = strings.ReplaceAll(s, " ", "-")
	return nonSlugChars.ReplaceAllString(s, "")
}
