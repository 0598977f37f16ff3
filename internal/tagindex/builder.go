// ABOUTME: Tag index builder writing tags/<slug>/index.md per distinct tag.
// ABOUTME: Production-gated, single pass, fails fast on filesystem errors.

package tagindex

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/harper/tagpages/internal/logging"
	"github.com/harper/tagpages/internal/models"
)

const (
	// IndexDir is the directory under the output root holding tag pages.
	IndexDir = "tags"
	// IndexFile is the descriptor written inside each tag directory.
	IndexFile = "index.md"
)

// Written describes one descriptor file produced by a build.
type Written struct {
	Tag       string `json:"tag"`
	Slug      string `json:"slug"`
	Path      string `json:"path"`
	PostCount int    `json:"posts"`
}

// Collision records raw tags that share a slug. Only the last tag's
// descriptor survives on disk.
type Collision struct {
	Slug string   `json:"slug"`
	Tags []string `json:"tags"`
}

// Report is what one Build did.
type Report struct {
	Skipped    bool
	Written    []Written
	Collisions []Collision
}

// Builder emits tag index descriptors.
type Builder struct {
	production bool
	logger     *log.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithProductionMode enables writing. Without it Build is a no-op.
func WithProductionMode(enabled bool) Option {
	return func(b *Builder) {
		b.production = enabled
	}
}

// WithLogger sets where warnings and progress go. The default discards them.
func WithLogger(logger *log.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// NewBuilder returns a Builder with production mode off.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{logger: logging.Discard()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildTagIndexes writes one descriptor per distinct tag in posts under
// outputRoot/tags when productionMode is set.
func BuildTagIndexes(posts []*models.Post, outputRoot string, productionMode bool) error {
	_, err := NewBuilder(WithProductionMode(productionMode)).Build(posts, outputRoot)
	return err
}

// DescriptorPath is where the descriptor for slug lives under outputRoot.
func DescriptorPath(outputRoot, slug string) string {
	return filepath.Join(outputRoot, IndexDir, slug, IndexFile)
}

// Build groups posts by tag and writes the descriptors in first-seen tag
// order. On failure the returned report lists the files written before the
// error; they are left in place.
func (b *Builder) Build(posts []*models.Post, outputRoot string) (*Report, error) {
	report := &Report{}
	if !b.production {
		b.logger.Debug("not a production build, skipping tag pages")
		report.Skipped = true
		return report, nil
	}

	groups := GroupByTag(posts)
	slugOwner := make(map[string]string, groups.Len())
	collisionAt := make(map[string]int)

	for _, g := range groups.All() {
		slug := models.NewTag(g.Name).Slug

		if prev, ok := slugOwner[slug]; ok {
			idx, seen := collisionAt[slug]
			if !seen {
				idx = len(report.Collisions)
				collisionAt[slug] = idx
				report.Collisions = append(report.Collisions, Collision{Slug: slug, Tags: []string{prev}})
			}
			report.Collisions[idx].Tags = append(report.Collisions[idx].Tags, g.Name)
			b.logger.Warn("tag slug collision, earlier page will be overwritten",
				"slug", slug, "previous", prev, "tag", g.Name)
		}
		slugOwner[slug] = g.Name

		if slug == "" {
			b.logger.Warn("tag has an empty slug, writing to the tags root", "tag", g.Name)
		}

		path, err := b.writeDescriptor(outputRoot, g.Name, slug)
		if err != nil {
			return report, err
		}

		count := len(g.Distinct())
		report.Written = append(report.Written, Written{
			Tag:       g.Name,
			Slug:      slug,
			Path:      path,
			PostCount: count,
		})
		b.logger.Debug("wrote tag page", "tag", g.Name, "path", path, "posts", count)
	}

	b.logger.Info("tag pages written", "count", len(report.Written), "collisions", len(report.Collisions))
	return report, nil
}

func (b *Builder) writeDescriptor(outputRoot, tag, slug string) (string, error) {
	tagsDir := filepath.Join(outputRoot, IndexDir)
	if err := ensureDir(tagsDir); err != nil {
		return "", err
	}
	if slug != "" {
		if err := ensureDir(filepath.Join(tagsDir, slug)); err != nil {
			return "", err
		}
	}

	path := DescriptorPath(outputRoot, slug)
	if err := os.WriteFile(path, models.NewTagIndex(tag).Render(), 0644); err != nil {
		return "", fmt.Errorf("write tag page for %q: %w", tag, err)
	}
	return path, nil
}

// ensureDir creates the last path element only; parents must exist. It is
// applied to tags/ and then tags/<slug>/, so a site without a tags directory
// gets one, while a missing output root is still an error.
func ensureDir(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("create tag directory %s: not a directory", path)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat tag directory %s: %w", path, err)
	}
	if err := os.Mkdir(path, 0755); err != nil {
		return fmt.Errorf("create tag directory %s: %w", path, err)
	}
	return nil
}
