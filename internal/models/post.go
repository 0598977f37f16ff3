// ABOUTME: Post model representing one blog post read from _posts.
// ABOUTME: Carries the ordered tag list the tag index builder groups on.

package models

import "time"

// Post is a content item of the site. Path identifies it relative to the
// site source; Tags keeps authoring order and may be nil.
type Post struct {
	Path  string
	Title string
	Date  time.Time
	Tags  []string
}

func NewPost(path, title string, date time.Time, tags ...string) *Post {
	return &Post{
		Path:  path,
		Title: title,
		Date:  date,
		Tags:  tags,
	}
}

// HasTag reports whether the post carries tag verbatim.
func (p *Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
