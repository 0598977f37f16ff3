// ABOUTME: Root command wiring logging, site config and the history database.
// ABOUTME: Subcommands share the loaded config through package globals.

package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/harper/tagpages/internal/db"
	"github.com/harper/tagpages/internal/logging"
	"github.com/harper/tagpages/internal/site"
	"github.com/spf13/cobra"
)

var (
	siteCfg *site.Config
	logger  *log.Logger
	dbConn  *sql.DB
	dbPath  string
)

var rootCmd = &cobra.Command{
	Use:   "tagpages",
	Short: "Generate tag index pages for a Jekyll blog",
	Long: `tagpages groups a blog's posts by tag and writes one
tags/<slug>/index.md page per tag, for the site layout to render.

Pages are only written for production builds (JEKYLL_ENV=production),
so local previews stay fast.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		logCfg := logging.DefaultConfig()
		logCfg.Level = level
		l, err := logging.New(os.Stderr, logCfg)
		if err != nil {
			return err
		}
		logger = l

		source, _ := cmd.Flags().GetString("source")
		cfg, err := site.LoadConfig(source)
		if err != nil {
			return fmt.Errorf("failed to load site config: %w", err)
		}
		siteCfg = cfg
		logger.Debug("loaded site config", "source", cfg.Source, "env", cfg.Env)

		dbPath, _ = cmd.Flags().GetString("db")
		if dbPath == "" {
			dbPath = db.DefaultPath()
		}
		return nil
	},
}

// openHistory opens the build history database on first use.
func openHistory() (*sql.DB, error) {
	if dbConn != nil {
		return dbConn, nil
	}
	conn, err := db.Open(dbPath)
	if err != nil {
		return nil, err
	}
	dbConn = conn
	return dbConn, nil
}

// closeHistory closes the build history database if a command opened it.
func closeHistory() error {
	if dbConn == nil {
		return nil
	}
	err := dbConn.Close()
	dbConn = nil
	return err
}

// Execute runs the root command. The history database is closed whether or
// not the command succeeds.
func Execute() (err error) {
	defer func() {
		if cerr := closeHistory(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close build history: %w", cerr)
		}
	}()
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
	rootCmd.PersistentFlags().StringP("source", "s", ".", "site source directory")
	rootCmd.PersistentFlags().String("db", "", "build history database path (default: XDG data dir)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug|info|warn|error)")
}
