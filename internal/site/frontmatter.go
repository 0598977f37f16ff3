// ABOUTME: Front matter extraction and decoding for post files.
// ABOUTME: Accepts tags as a YAML sequence or a whitespace separated string.

package site

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

type frontMatter struct {
	Title     string  `yaml:"title"`
	Date      string  `yaml:"date"`
	Tags      tagList `yaml:"tags"`
	Tag       tagList `yaml:"tag"`
	Published *bool   `yaml:"published"`
}

// tags returns the plural key, falling back to the singular one.
func (fm *frontMatter) tags() []string {
	if fm.Tags != nil {
		return fm.Tags
	}
	return fm.Tag
}

type tagList []string

func (tl *tagList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.ShortTag() == "!!null" {
			*tl = nil
			return nil
		}
		*tl = strings.Fields(value.Value)
		return nil
	case yaml.SequenceNode:
		out := make(tagList, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: tag must be a scalar", item.Line)
			}
			if item.ShortTag() == "!!null" {
				continue
			}
			out = append(out, item.Value)
		}
		*tl = out
		return nil
	default:
		return fmt.Errorf("line %d: tags must be a list or a string", value.Line)
	}
}

// splitFrontMatter returns the YAML between the opening "---" line and the
// next "---" or "..." line. ok is false when the file has no front matter.
func splitFrontMatter(data []byte) (fm []byte, ok bool) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)

	if !scanner.Scan() || strings.TrimRight(scanner.Text(), " \t\r") != "---" {
		return nil, false
	}

	var buf bytes.Buffer
	for scanner.Scan() {
		line := scanner.Text()
		switch strings.TrimRight(line, " \t\r") {
		case "---", "...":
			return buf.Bytes(), true
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return nil, false
}

func parseFrontMatter(data []byte) (*frontMatter, bool, error) {
	raw, ok := splitFrontMatter(data)
	if !ok {
		return nil, false, nil
	}

	fm := &frontMatter{}
	if err := yaml.Unmarshal(raw, fm); err != nil {
		return nil, true, err
	}
	return fm, true, nil
}
