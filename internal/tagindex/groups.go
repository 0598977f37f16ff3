// ABOUTME: Insertion-ordered grouping of posts by raw tag name.
// ABOUTME: Shared by the builder, the tag listing commands and the MCP server.

package tagindex

import "github.com/harper/tagpages/internal/models"

// Group is every post carrying one tag, in scan order. A post that lists the
// same tag twice appears twice.
type Group struct {
	Name  string
	Posts []*models.Post
}

// Distinct returns the group's posts with repeats removed, order kept.
func (g *Group) Distinct() []*models.Post {
	seen := make(map[*models.Post]bool, len(g.Posts))
	out := make([]*models.Post, 0, len(g.Posts))
	for _, p := range g.Posts {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// Groups keeps tags in first-seen order.
type Groups struct {
	order  []*Group
	byName map[string]*Group
}

// GroupByTag scans posts in order and groups them by their literal tag
// strings. Nil posts and posts without tags contribute nothing.
func GroupByTag(posts []*models.Post) *Groups {
	gs := &Groups{byName: make(map[string]*Group)}
	for _, post := range posts {
		if post == nil {
			continue
		}
		for _, tag := range post.Tags {
			g, ok := gs.byName[tag]
			if !ok {
				g = &Group{Name: tag}
				gs.byName[tag] = g
				gs.order = append(gs.order, g)
			}
			g.Posts = append(g.Posts, post)
		}
	}
	return gs
}

func (gs *Groups) All() []*Group {
	return gs.order
}

func (gs *Groups) Get(name string) (*Group, bool) {
	g, ok := gs.byName[name]
	return g, ok
}

func (gs *Groups) Len() int {
	return len(gs.order)
}
