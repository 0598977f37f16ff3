// ABOUTME: Leveled structured logger construction for tagpages.
// ABOUTME: Wraps charmbracelet/log so commands and packages share one setup.

package logging

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Config contains logging configuration.
type Config struct {
	// Level is the minimum level (debug, info, warn, error).
	Level string
	// Prefix is printed before every message.
	Prefix string
	// Timestamps adds a time field to each line.
	Timestamps bool
}

func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Prefix: "tagpages",
	}
}

// New builds a logger writing to w.
func New(w io.Writer, cfg Config) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          cfg.Prefix,
		ReportTimestamp: cfg.Timestamps,
	}), nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
