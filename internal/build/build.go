// ABOUTME: One tag page build run: load posts, write descriptors, record it.
// ABOUTME: Shared by the build command and the MCP build tool.

package build

import (
	"database/sql"

	"github.com/charmbracelet/log"
	"github.com/harper/tagpages/internal/db"
	"github.com/harper/tagpages/internal/logging"
	"github.com/harper/tagpages/internal/models"
	"github.com/harper/tagpages/internal/site"
	"github.com/harper/tagpages/internal/tagindex"
)

type Options struct {
	// Production enables writing. Callers pass cfg.Production() and any
	// explicit override.
	Production bool
	Logger     *log.Logger
	// History, when set, receives a record of the run.
	History *sql.DB
}

type Result struct {
	Posts  []*models.Post
	Report *tagindex.Report
	Record *models.BuildRecord
	// HistoryErr is set when the run could not be recorded. The build
	// itself is unaffected.
	HistoryErr error
}

// Run builds the tag pages for the site in cfg. The returned Result is
// non-nil even when err is set.
func Run(cfg *site.Config, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	res := &Result{
		Report: &tagindex.Report{},
		Record: models.NewBuildRecord(cfg.Source, opts.Production),
	}
	logger.Debug("starting build", "id", res.Record.ID, "source", cfg.Source, "production", opts.Production)

	err := run(cfg, opts, logger, res)
	res.Record.Finish(err)

	if opts.History != nil {
		if herr := db.RecordBuild(opts.History, res.Record); herr != nil {
			logger.Warn("could not record build", "id", res.Record.ID, "err", herr)
			res.HistoryErr = herr
		}
	}
	return res, err
}

func run(cfg *site.Config, opts Options, logger *log.Logger, res *Result) error {
	// Posts are not even read outside production.
	if !opts.Production {
		logger.Debug("not a production build, skipping tag pages", "env", cfg.Env)
		res.Report.Skipped = true
		res.Record.Skipped = true
		return nil
	}

	posts, err := site.LoadPosts(cfg)
	if err != nil {
		return err
	}
	res.Posts = posts
	logger.Debug("loaded posts", "count", len(posts))

	builder := tagindex.NewBuilder(
		tagindex.WithProductionMode(opts.Production),
		tagindex.WithLogger(logger),
	)
	report, err := builder.Build(posts, cfg.Source)
	if report != nil {
		res.Report = report
		res.Record.Skipped = report.Skipped
		for _, w := range report.Written {
			res.Record.Tags = append(res.Record.Tags, models.BuildTag{
				Tag:       w.Tag,
				Slug:      w.Slug,
				Path:      w.Path,
				PostCount: w.PostCount,
			})
		}
	}
	return err
}
