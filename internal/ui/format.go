// ABOUTME: Terminal UI formatting for tagpages output.
// ABOUTME: Uses glamour for markdown and fatih/color for styling.

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/harper/tagpages/internal/models"
)

var (
	faint  = color.New(color.Faint).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

type TagCount struct {
	Name  string
	Slug  string
	Count int
	// Collides marks a slug shared with another tag.
	Collides bool
}

func FormatTagList(tags []TagCount) string {
	var sb strings.Builder

	for _, t := range tags {
		marker := " "
		if t.Collides {
			marker = yellow("!")
		}
		sb.WriteString(fmt.Sprintf("%s %s %s %s\n",
			marker,
			cyan(t.Name),
			faint("tags/"+t.Slug),
			faint(fmt.Sprintf("(%d)", t.Count))))
	}

	return sb.String()
}

func FormatPostListItem(post *models.Post) string {
	return fmt.Sprintf("  %s  %s\n         %s\n",
		faint(post.Date.Format("2006-01-02")),
		bold(post.Title),
		faint(post.Path))
}

// TagListingMarkdown is the listing a tag page presents: the tag title and
// one line per post.
func TagListingMarkdown(tag string, posts []*models.Post) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", models.NewTagIndex(tag).Title))
	if len(posts) == 0 {
		sb.WriteString("_No posts._\n")
		return sb.String()
	}
	for _, p := range posts {
		sb.WriteString(fmt.Sprintf("- **%s** %s `%s`\n", p.Date.Format("2006-01-02"), p.Title, p.Path))
	}
	return sb.String()
}

func FormatMarkdown(content string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fallback to raw content if renderer fails
		return content, nil //nolint:nilerr // Intentional fallback
	}

	out, err := renderer.Render(content)
	if err != nil {
		// Fallback to raw content if rendering fails
		return content, nil //nolint:nilerr // Intentional fallback
	}
	return out, nil
}

func FormatWrittenList(tags []models.BuildTag) string {
	var sb strings.Builder

	for _, t := range tags {
		sb.WriteString(fmt.Sprintf("  %s %s %s\n",
			cyan(t.Tag),
			faint(t.Path),
			faint(fmt.Sprintf("(%d)", t.PostCount))))
	}

	return sb.String()
}

func FormatCollision(slug string, tags []string) string {
	quoted := make([]string, len(tags))
	for i, t := range tags {
		quoted[i] = fmt.Sprintf("%q", t)
	}
	return Warning(fmt.Sprintf("tags %s share slug %q; only %s keeps a page",
		strings.Join(quoted, ", "), slug, quoted[len(quoted)-1]))
}

func FormatBuildListItem(b *models.BuildRecord, tagCount int) string {
	var status string
	switch {
	case !b.Succeeded():
		status = color.RedString("failed")
	case b.Skipped:
		status = yellow("skipped")
	default:
		status = color.GreenString("%d pages", tagCount)
	}

	return fmt.Sprintf("  %s  %s  %s %s\n",
		faint(b.ID.String()[:8]),
		faint(b.StartedAt.Local().Format("2006-01-02 15:04")),
		status,
		faint(b.Source))
}

func FormatBuildHeader(b *models.BuildRecord) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s %s\n", faint("ID:"), faint(b.ID.String())))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Source:"), b.Source))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Started:"), faint(b.StartedAt.Local().Format("2006-01-02 15:04:05"))))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Duration:"), faint(b.FinishedAt.Sub(b.StartedAt).String())))
	sb.WriteString(fmt.Sprintf("%s %t\n", faint("Production:"), b.Production))
	if !b.Succeeded() {
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Error:"), color.RedString(b.Error)))
	}

	sb.WriteString(Separator())
	return sb.String()
}

func Separator() string {
	return faint(strings.Repeat("─", 50)) + "\n"
}

func Success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}

func Warning(msg string) string {
	return color.New(color.FgYellow).Sprint("! ") + msg
}

func Error(msg string) string {
	return color.New(color.FgRed).Sprint("✗ ") + msg
}
