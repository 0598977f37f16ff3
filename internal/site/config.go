// ABOUTME: Site configuration from _config.yml and the environment.
// ABOUTME: Decides whether this is a production build via JEKYLL_ENV.

package site

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigFile is the site configuration file under the source directory.
	ConfigFile = "_config.yml"
	// ProductionEnv is the only JEKYLL_ENV value that enables tag pages.
	ProductionEnv = "production"
	// PostsDir holds the posts inside the collections directory.
	PostsDir = "_posts"
)

// Config holds the parts of the site configuration tagpages reads.
type Config struct {
	// Source is the site root. Tag pages are written to Source/tags.
	Source string `yaml:"-"`

	Title string `yaml:"title"`

	// CollectionsDir relocates _posts, as Jekyll's collections_dir does.
	CollectionsDir string `yaml:"collections_dir"`

	// Env is the build environment (default: development).
	Env string `yaml:"-" env:"JEKYLL_ENV" envDefault:"development"`
}

func DefaultConfig(source string) *Config {
	return &Config{
		Source: source,
		Env:    "development",
	}
}

// LoadConfig reads source/_config.yml when present, then applies the
// environment. A missing config file is not an error.
func LoadConfig(source string) (*Config, error) {
	cfg := DefaultConfig(source)

	path := filepath.Join(source, ConfigFile)
	data, err := os.ReadFile(path) //nolint:gosec // Site source is chosen by the user
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("read site config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	cfg.Source = source

	return cfg, nil
}

// Production reports whether Env is exactly "production".
func (c *Config) Production() bool {
	return c.Env == ProductionEnv
}

func (c *Config) PostsPath() string {
	return filepath.Join(c.Source, c.CollectionsDir, PostsDir)
}
