// ABOUTME: History command for past tag page builds.
// ABOUTME: Lists recorded builds and shows the pages one build wrote.

package main

import (
	"fmt"

	"github.com/harper/tagpages/internal/db"
	"github.com/harper/tagpages/internal/models"
	"github.com/harper/tagpages/internal/ui"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent builds",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		conn, err := openHistory()
		if err != nil {
			return fmt.Errorf("failed to open build history: %w", err)
		}

		builds, err := db.ListBuilds(conn, limit)
		if err != nil {
			return fmt.Errorf("failed to list builds: %w", err)
		}

		if len(builds) == 0 {
			fmt.Println("No builds recorded.")
			return nil
		}

		for _, b := range builds {
			fmt.Print(ui.FormatBuildListItem(b.Build, b.TagCount))
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show [id-prefix]",
	Short: "Show one build",
	Long:  `Show the pages a build wrote. Without an ID, shows the latest build that wrote pages.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openHistory()
		if err != nil {
			return fmt.Errorf("failed to open build history: %w", err)
		}

		var b *models.BuildRecord
		if len(args) == 0 {
			b, err = db.LatestBuild(conn)
		} else {
			b, err = db.GetBuildByPrefix(conn, args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to get build: %w", err)
		}

		fmt.Print(ui.FormatBuildHeader(b))
		if len(b.Tags) == 0 {
			fmt.Println("No pages written.")
			return nil
		}
		fmt.Print(ui.FormatWrittenList(b.Tags))
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "number of builds")
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}
