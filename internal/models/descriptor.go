// ABOUTME: TagIndex descriptor written to tags/<slug>/index.md.
// ABOUTME: Renders the fixed three-field front matter and reads it back.

package models

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// TagLayout is the layout every tag index page is rendered with.
const TagLayout = "tag"

const frontMatterDelim = "---\n"

// ErrNoFrontMatter is returned when a descriptor does not open with "---".
var ErrNoFrontMatter = errors.New("missing front matter")

type TagIndex struct {
	Layout string `yaml:"layout"`
	Title  string `yaml:"title"`
	Tag    string `yaml:"tag"`
}

func NewTagIndex(tag string) *TagIndex {
	return &TagIndex{
		Layout: TagLayout,
		Title:  "Tag: " + tag,
		Tag:    tag,
	}
}

// Render returns the file content: layout, title and tag in that order,
// with the tag name written as authored and no body.
func (ti *TagIndex) Render() []byte {
	var buf bytes.Buffer
	buf.WriteString(frontMatterDelim)
	fmt.Fprintf(&buf, "layout: %s\n", ti.Layout)
	fmt.Fprintf(&buf, "title: \"%s\"\n", ti.Title)
	fmt.Fprintf(&buf, "tag: %s\n", ti.Tag)
	buf.WriteString(frontMatterDelim)
	return buf.Bytes()
}

// ParseTagIndex reads a descriptor written by Render. The tag line is taken
// as written, so names that are not valid YAML scalars ("Go: Tips",
// "[draft") read back unchanged.
func ParseTagIndex(data []byte) (*TagIndex, error) {
	rest, ok := bytes.CutPrefix(data, []byte(frontMatterDelim))
	if !ok {
		return nil, ErrNoFrontMatter
	}

	ti := &TagIndex{}
	closed := false
	for _, line := range strings.Split(string(rest), "\n") {
		if line == "---" {
			closed = true
			break
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		value = strings.TrimPrefix(value, " ")
		switch key {
		case "layout":
			ti.Layout = value
		case "title":
			ti.Title = strings.TrimSuffix(strings.TrimPrefix(value, `"`), `"`)
		case "tag":
			ti.Tag = value
		}
	}
	if !closed {
		return nil, ErrNoFrontMatter
	}
	if ti.Layout != TagLayout {
		return nil, fmt.Errorf("not a tag page: layout %q", ti.Layout)
	}
	return ti, nil
}
