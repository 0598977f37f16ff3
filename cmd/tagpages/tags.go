// ABOUTME: Tags command for inspecting the site's tags.
// ABOUTME: Provides list and show subcommands without writing files.

package main

import (
	"fmt"

	"github.com/harper/tagpages/internal/models"
	"github.com/harper/tagpages/internal/site"
	"github.com/harper/tagpages/internal/tagindex"
	"github.com/harper/tagpages/internal/ui"
	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Inspect tags",
	Long:  `List the site's tags or preview the listing of one tag page.`,
}

var tagsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		posts, err := site.LoadPosts(siteCfg)
		if err != nil {
			return fmt.Errorf("failed to load posts: %w", err)
		}

		summaries := tagindex.Summarize(tagindex.GroupByTag(posts))
		if len(summaries) == 0 {
			fmt.Println("No tags found.")
			return nil
		}

		tagCounts := make([]ui.TagCount, 0, len(summaries))
		for _, s := range summaries {
			tagCounts = append(tagCounts, ui.TagCount{
				Name:     s.Tag,
				Slug:     s.Slug,
				Count:    s.PostCount,
				Collides: s.Collides,
			})
		}
		fmt.Print(ui.FormatTagList(tagCounts))
		return nil
	},
}

var tagsShowCmd = &cobra.Command{
	Use:   "show <tag>",
	Short: "Preview a tag page listing",
	Long:  `Show the posts a tag page lists, matched on the exact tag string.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tag := args[0]
		raw, _ := cmd.Flags().GetBool("raw")
		compact, _ := cmd.Flags().GetBool("compact")

		posts, err := site.LoadPosts(siteCfg)
		if err != nil {
			return fmt.Errorf("failed to load posts: %w", err)
		}

		groups := tagindex.GroupByTag(posts)
		group, ok := groups.Get(tag)
		if !ok {
			fmt.Printf("No posts tagged %q.\n", tag)
			want := models.NewTag(tag)
			for _, g := range groups.All() {
				if models.NewTag(g.Name).Slug == want.Slug {
					fmt.Printf("Did you mean %q?\n", g.Name)
				}
			}
			return nil
		}
		tagged := group.Distinct()

		if compact {
			for _, p := range tagged {
				fmt.Print(ui.FormatPostListItem(p))
			}
			return nil
		}

		md := ui.TagListingMarkdown(tag, tagged)
		if raw {
			fmt.Print(md)
			return nil
		}
		out, _ := ui.FormatMarkdown(md)
		fmt.Print(out)
		return nil
	},
}

func init() {
	tagsShowCmd.Flags().Bool("raw", false, "print markdown without rendering")
	tagsShowCmd.Flags().Bool("compact", false, "print one entry per post instead of the page preview")
	tagsCmd.AddCommand(tagsListCmd)
	tagsCmd.AddCommand(tagsShowCmd)
	rootCmd.AddCommand(tagsCmd)
}
