// ABOUTME: BuildRecord model for the tag page build history.
// ABOUTME: One record per build run with the descriptors it wrote.

package models

import (
	"time"

	"github.com/google/uuid"
)

type BuildRecord struct {
	ID         uuid.UUID
	Source     string
	Production bool
	Skipped    bool
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
	Tags       []BuildTag
}

// BuildTag is one descriptor written during a build, in emission order.
type BuildTag struct {
	Tag       string
	Slug      string
	Path      string
	PostCount int
}

func NewBuildRecord(source string, production bool) *BuildRecord {
	return &BuildRecord{
		ID:         uuid.New(),
		Source:     source,
		Production: production,
		StartedAt:  time.Now(),
	}
}

// Finish stamps the end time and keeps err's message, if any.
func (b *BuildRecord) Finish(err error) {
	b.FinishedAt = time.Now()
	if err != nil {
		b.Error = err.Error()
	}
}

func (b *BuildRecord) Succeeded() bool {
	return b.Error == ""
}
