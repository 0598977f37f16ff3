// ABOUTME: Tag listing lookup used when rendering a tag page.
// ABOUTME: Matches the raw tag string a descriptor carries.

package site

import "github.com/harper/tagpages/internal/models"

// PostsWithTag returns every post whose tag list contains tag exactly, each
// post once, in the order given.
func PostsWithTag(posts []*models.Post, tag string) []*models.Post {
	var out []*models.Post
	for _, p := range posts {
		if p != nil && p.HasTag(tag) {
			out = append(out, p)
		}
	}
	return out
}
