// ABOUTME: Tests for the MCP tool and resource logic.
// ABOUTME: Runs against a temporary site and history database.

package mcp

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harper/tagpages/internal/db"
	"github.com/harper/tagpages/internal/models"
	"github.com/harper/tagpages/internal/site"
	"github.com/harper/tagpages/internal/tagindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, history *sql.DB) *Server {
	t.Helper()
	source := t.TempDir()
	posts := map[string]string{
		"2024-01-01-first.md":  "---\ntitle: First\ntags: [Go, C#]\n---\n",
		"2024-01-02-second.md": "---\ntitle: Second\ntags: [Go, C ]\n---\n",
	}
	for name, content := range posts {
		path := filepath.Join(source, "_posts", name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return NewServer(site.DefaultConfig(source), history, nil)
}

func TestListTags(t *testing.T) {
	s := newTestServer(t, nil)

	tags, err := s.listTags()
	require.NoError(t, err)

	require.Len(t, tags, 3)
	assert.Equal(t, "Go", tags[0].Tag)
	assert.Equal(t, 2, tags[0].PostCount)
	assert.True(t, tags[1].Collides)
}

func TestListTagPosts(t *testing.T) {
	s := newTestServer(t, nil)

	posts, err := s.listTagPosts("Go")
	require.NoError(t, err)

	require.Len(t, posts, 2)
	assert.Equal(t, "First", posts[0].Title)
	assert.Equal(t, "2024-01-02", posts[1].Date)

	none, err := s.listTagPosts("go")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestBuildTagPagesRespectsGate(t *testing.T) {
	t.Setenv("JEKYLL_ENV", "development")
	s := newTestServer(t, nil)

	info, err := s.buildTagPages(false)
	require.NoError(t, err)

	assert.True(t, info.Skipped)
	assert.Empty(t, info.Written)
	assert.NoDirExists(t, filepath.Join(s.cfg.Source, "tags"))
}

func TestBuildTagPagesForced(t *testing.T) {
	history, err := db.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = history.Close() })
	s := newTestServer(t, history)

	info, err := s.buildTagPages(true)
	require.NoError(t, err)

	assert.False(t, info.Skipped)
	assert.Len(t, info.Written, 3)
	require.Len(t, info.Collisions, 1)
	assert.Equal(t, "c", info.Collisions[0].Slug)

	builds, err := s.listBuilds(0)
	require.NoError(t, err)
	require.Len(t, builds, 1)
	assert.Equal(t, info.ID, builds[0].ID)
	assert.Equal(t, 3, builds[0].Pages)
}

func TestListBuildsWithoutHistory(t *testing.T) {
	s := newTestServer(t, nil)

	_, err := s.listBuilds(5)
	assert.True(t, errors.Is(err, errNoHistory))
}

func TestReadDescriptor(t *testing.T) {
	s := newTestServer(t, nil)
	_, err := s.buildTagPages(true)
	require.NoError(t, err)

	content, err := s.readDescriptor("tagpages://tag/go")
	require.NoError(t, err)
	assert.Equal(t, "---\nlayout: tag\ntitle: \"Tag: Go\"\ntag: Go\n---\n", content)
}

func TestReadDescriptorWithNonYAMLTagNames(t *testing.T) {
	source := t.TempDir()
	posts := []*models.Post{
		models.NewPost("_posts/2024-01-01-a.md", "A", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "Go: Tips", "[draft"),
	}
	require.NoError(t, tagindex.BuildTagIndexes(posts, source, true))
	s := NewServer(site.DefaultConfig(source), nil, nil)

	content, err := s.readDescriptor("tagpages://tag/go-tips")
	require.NoError(t, err)
	assert.Equal(t, "---\nlayout: tag\ntitle: \"Tag: Go: Tips\"\ntag: Go: Tips\n---\n", content)

	content, err = s.readDescriptor("tagpages://tag/draft")
	require.NoError(t, err)
	assert.Contains(t, content, "tag: [draft\n")
}

func TestReadDescriptorRejectsOtherPages(t *testing.T) {
	s := newTestServer(t, nil)
	path := tagindex.DescriptorPath(s.cfg.Source, "notes")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("# hand written\n"), 0644))

	_, err := s.readDescriptor("tagpages://tag/notes")
	assert.Error(t, err)
}

func TestReadDescriptorRejectsBadURIs(t *testing.T) {
	s := newTestServer(t, nil)

	for _, uri := range []string{
		"other://tag/go",
		"tagpages://tag/",
		"tagpages://tag/../secrets",
		"tagpages://tag/Go",
	} {
		_, err := s.readDescriptor(uri)
		assert.Error(t, err, uri)
	}
}

func TestReadDescriptorMissing(t *testing.T) {
	s := newTestServer(t, nil)

	_, err := s.readDescriptor("tagpages://tag/rust")
	assert.Error(t, err)
}
