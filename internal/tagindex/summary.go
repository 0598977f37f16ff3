// ABOUTME: Per-tag summaries for listing tags without writing anything.
// ABOUTME: Flags tags whose slug collides with another tag's.

package tagindex

import "github.com/harper/tagpages/internal/models"

// Summary is one tag as a listing shows it.
type Summary struct {
	Tag       string `json:"tag"`
	Slug      string `json:"slug"`
	PostCount int    `json:"posts"`
	Collides  bool   `json:"collides,omitempty"`
}

// Summarize lists the groups in first-seen order with distinct post counts.
func Summarize(groups *Groups) []Summary {
	bySlug := make(map[string]int, groups.Len())
	out := make([]Summary, 0, groups.Len())
	for _, g := range groups.All() {
		tag := models.NewTag(g.Name)
		bySlug[tag.Slug]++
		out = append(out, Summary{
			Tag:       tag.Name,
			Slug:      tag.Slug,
			PostCount: len(g.Distinct()),
		})
	}
	for i := range out {
		out[i].Collides = bySlug[out[i].Slug] > 1
	}
	return out
}
