// ABOUTME: Tests for tag summaries.
// ABOUTME: Checks counts, ordering and collision flags.

package tagindex

import (
	"testing"

	"github.com/harper/tagpages/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	posts := []*models.Post{
		post("a.md", "Go", "C#", "Go"),
		post("b.md", "Go", "C "),
	}

	got := Summarize(GroupByTag(posts))

	assert.Equal(t, []Summary{
		{Tag: "Go", Slug: "go", PostCount: 2},
		{Tag: "C#", Slug: "c", PostCount: 1, Collides: true},
		{Tag: "C ", Slug: "c", PostCount: 1, Collides: true},
	}, got)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Empty(t, Summarize(GroupByTag(nil)))
}
