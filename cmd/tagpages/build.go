// ABOUTME: Build command writing tag index pages for the site.
// ABOUTME: Gated on JEKYLL_ENV=production unless --production is given.

package main

import (
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/harper/tagpages/internal/build"
	"github.com/harper/tagpages/internal/tagindex"
	"github.com/harper/tagpages/internal/ui"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Write tag index pages",
	Long: `Write tags/<slug>/index.md for every tag used by the site's posts.

Nothing is written unless JEKYLL_ENV is exactly "production" or
--production is passed. Existing pages are overwritten; other files in
the tag directories are left alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("production")
		noHistory, _ := cmd.Flags().GetBool("no-history")
		verbose, _ := cmd.Flags().GetBool("verbose")

		var history *sql.DB
		if !noHistory {
			conn, err := openHistory()
			if err != nil {
				logger.Warn("build history unavailable", "path", dbPath, "err", err)
			} else {
				history = conn
			}
		}

		res, err := build.Run(siteCfg, build.Options{
			Production: siteCfg.Production() || force,
			Logger:     logger,
			History:    history,
		})
		if err != nil {
			return fmt.Errorf("failed to build tag pages: %w", err)
		}

		if res.Report.Skipped {
			fmt.Println(ui.Warning(fmt.Sprintf("Not a production build (JEKYLL_ENV=%q), no tag pages written", siteCfg.Env)))
			return nil
		}

		for _, c := range res.Report.Collisions {
			fmt.Println(ui.FormatCollision(c.Slug, c.Tags))
		}
		if verbose {
			fmt.Print(ui.FormatWrittenList(res.Record.Tags))
		}
		if res.HistoryErr != nil {
			fmt.Println(ui.Warning(fmt.Sprintf("Build not recorded: %v", res.HistoryErr)))
		}

		fmt.Println(ui.Success(fmt.Sprintf("Wrote %d tag pages from %d posts to %s",
			len(res.Report.Written), len(res.Posts), filepath.Join(siteCfg.Source, tagindex.IndexDir))))
		return nil
	},
}

func init() {
	buildCmd.Flags().Bool("production", false, "write pages even if JEKYLL_ENV is not production")
	buildCmd.Flags().Bool("no-history", false, "do not record this build")
	buildCmd.Flags().BoolP("verbose", "v", false, "list every page written")
	rootCmd.AddCommand(buildCmd)
}
