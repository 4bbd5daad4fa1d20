// Package config resolves runtime options from defaults, DARSGAH_*
// environment variables and command-line flags, in that order.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/caarlos0/env/v11"
)

const envPrefix = "DARSGAH_"

// Config controls how the viewer loads content and draws itself.
type Config struct {
	ContentPath   string `env:"CONTENT"`
	Book          string `env:"BOOK"`
	Watch         bool   `env:"WATCH"`
	NarrowWidth   int    `env:"NARROW_WIDTH"`
	MarkdownStyle string `env:"STYLE"`
	Language      string `env:"LANG"`
	LogPath       string `env:"LOG"`
	LogLevel      string `env:"LOG_LEVEL"`
	NoAltScreen   bool   `env:"NO_ALT_SCREEN"`
	Check         bool
}

func Default() Config {
	return Config{
		Book:          "tajweed",
		Watch:         true,
		NarrowWidth:   100,
		MarkdownStyle: "dark",
		Language:      "ur",
		LogLevel:      "info",
	}
}

// Load layers environ (KEY=VALUE pairs, usually os.Environ()) and then args
// over the defaults and validates the result.
func Load(args []string, environ []string, output io.Writer) (Config, error) {
	cfg := Default()
	if err := env.ParseWithOptions(&cfg, env.Options{
		Prefix:      envPrefix,
		Environment: env.ToMap(environ),
	}); err != nil {
		return cfg, fmt.Errorf("environment: %w", err)
	}

	fs := flag.NewFlagSet("darsgah", flag.ContinueOnError)
	if output != nil {
		fs.SetOutput(output)
	}
	fs.StringVar(&cfg.ContentPath, "content", cfg.ContentPath, "path to a JSON or YAML content file (default: bundled books)")
	fs.StringVar(&cfg.Book, "book", cfg.Book, "bundled book to open first (tajweed, fiqh)")
	fs.BoolVar(&cfg.Watch, "watch", cfg.Watch, "reload -content when the file changes")
	fs.IntVar(&cfg.NarrowWidth, "narrow-width", cfg.NarrowWidth, "terminal width below which the sidebar auto-hides")
	fs.StringVar(&cfg.MarkdownStyle, "style", cfg.MarkdownStyle, "section style: dark, light, notty or auto")
	fs.StringVar(&cfg.Language, "lang", cfg.Language, "primary display language: ur or en")
	fs.StringVar(&cfg.LogPath, "log", cfg.LogPath, "write logs to this file")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.BoolVar(&cfg.NoAltScreen, "no-alt-screen", cfg.NoAltScreen, "disable the alternate screen buffer")
	fs.BoolVar(&cfg.Check, "check", cfg.Check, "validate content, print a summary and exit")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects unknown enumerated values and fills blanks with defaults.
func (c *Config) Validate() error {
	c.MarkdownStyle = strings.ToLower(strings.TrimSpace(c.MarkdownStyle))
	switch c.MarkdownStyle {
	case "", "dark", "light", "notty", "auto":
	default:
		return fmt.Errorf("invalid style %q", c.MarkdownStyle)
	}
	if c.MarkdownStyle == "" {
		c.MarkdownStyle = "dark"
	}

	c.Language = strings.ToLower(strings.TrimSpace(c.Language))
	switch c.Language {
	case "", "ur", "en":
	default:
		return fmt.Errorf("invalid language %q", c.Language)
	}
	if c.Language == "" {
		c.Language = "ur"
	}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if c.NarrowWidth < 0 {
		return errors.New("narrow-width must not be negative")
	}
	if c.NarrowWidth == 0 {
		c.NarrowWidth = 100
	}

	c.Book = strings.TrimSpace(c.Book)
	if c.ContentPath == "" {
		c.Watch = false
	}
	return nil
}
