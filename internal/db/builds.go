// ABOUTME: Database operations for recorded tag page builds.
// ABOUTME: Provides recording, listing, and prefix lookup of builds.

package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harper/tagpages/internal/models"
)

var (
	ErrBuildNotFound   = errors.New("build not found")
	ErrPrefixTooShort  = errors.New("build ID prefix must be at least 6 characters")
	ErrAmbiguousPrefix = errors.New("build ID prefix is ambiguous")
)

const buildColumns = `id, source, production, skipped, error, started_at, finished_at`

// BuildSummary is a build with the number of descriptors it wrote.
type BuildSummary struct {
	Build    *models.BuildRecord
	TagCount int
}

// RecordBuild stores a build and its tags in one transaction.
func RecordBuild(db *sql.DB, b *models.BuildRecord) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(
		`INSERT INTO builds (`+buildColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.ID.String(), b.Source, b.Production, b.Skipped, b.Error,
		b.StartedAt.UTC(), b.FinishedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert build: %w", err)
	}

	for i, t := range b.Tags {
		_, err := tx.Exec(
			`INSERT INTO build_tags (build_id, position, tag, slug, path, post_count) VALUES (?, ?, ?, ?, ?, ?)`,
			b.ID.String(), i, t.Tag, t.Slug, t.Path, t.PostCount,
		)
		if err != nil {
			return fmt.Errorf("insert build tag %q: %w", t.Tag, err)
		}
	}

	return tx.Commit()
}

func ListBuilds(db *sql.DB, limit int) ([]*BuildSummary, error) {
	rows, err := db.Query(
		`SELECT b.id, b.source, b.production, b.skipped, b.error, b.started_at, b.finished_at,
		        (SELECT COUNT(*) FROM build_tags bt WHERE bt.build_id = b.id)
		 FROM builds b
		 ORDER BY b.started_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var builds []*BuildSummary
	for rows.Next() {
		s := &BuildSummary{Build: &models.BuildRecord{}}
		var idStr string
		if err := rows.Scan(&idStr, &s.Build.Source, &s.Build.Production, &s.Build.Skipped,
			&s.Build.Error, &s.Build.StartedAt, &s.Build.FinishedAt, &s.TagCount); err != nil {
			return nil, err
		}
		if s.Build.ID, err = uuid.Parse(idStr); err != nil {
			return nil, fmt.Errorf("invalid build ID in database: %w", err)
		}
		builds = append(builds, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return builds, nil
}

// GetBuildByPrefix resolves a build from a unique ID prefix and loads its tags.
func GetBuildByPrefix(db *sql.DB, prefix string) (*models.BuildRecord, error) {
	if len(prefix) < 6 {
		return nil, ErrPrefixTooShort
	}

	rows, err := db.Query(
		`SELECT `+buildColumns+` FROM builds WHERE id LIKE ?`,
		prefix+"%",
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var builds []*models.BuildRecord
	for rows.Next() {
		b := &models.BuildRecord{}
		var idStr string
		if err := rows.Scan(&idStr, &b.Source, &b.Production, &b.Skipped, &b.Error, &b.StartedAt, &b.FinishedAt); err != nil {
			return nil, err
		}
		var parseErr error
		b.ID, parseErr = uuid.Parse(idStr)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid build ID in database: %w", parseErr)
		}
		builds = append(builds, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(builds) == 0 {
		return nil, ErrBuildNotFound
	}
	if len(builds) > 1 {
		return nil, fmt.Errorf("%w: %d matches", ErrAmbiguousPrefix, len(builds))
	}

	b := builds[0]
	if b.Tags, err = GetBuildTags(db, b.ID); err != nil {
		return nil, err
	}
	return b, nil
}

// GetBuildTags returns a build's descriptors in the order they were written.
func GetBuildTags(db *sql.DB, buildID uuid.UUID) ([]models.BuildTag, error) {
	rows, err := db.Query(
		`SELECT tag, slug, path, post_count FROM build_tags
		 WHERE build_id = ?
		 ORDER BY position`,
		buildID.String(),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tags []models.BuildTag
	for rows.Next() {
		var t models.BuildTag
		if err := rows.Scan(&t.Tag, &t.Slug, &t.Path, &t.PostCount); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tags, nil
}

// LatestBuild returns the most recent non-skipped build, or ErrBuildNotFound.
func LatestBuild(db *sql.DB) (*models.BuildRecord, error) {
	var idStr string
	err := db.QueryRow(
		`SELECT id FROM builds WHERE skipped = 0 ORDER BY started_at DESC LIMIT 1`,
	).Scan(&idStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBuildNotFound
	}
	if err != nil {
		return nil, err
	}
	return GetBuildByPrefix(db, idStr)
}
