// Package cli implements the xenopict command-line interface.
//
// # Commands
//
//   - render: Shade a molecule and write SVG, HTML, PNG or PDF
//   - layout: Generate 2D coordinates for a molecule
//   - colormaps: List the built-in colour maps
//   - serve: Run the HTTP rendering API
//   - cache: Manage the local render cache
//
// # Configuration
//
// Defaults come from $XDG_CONFIG_HOME/xenopict/config.toml (or --config);
// flags override them.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// are passed through context.Context.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/xenopict/pkg/cache"
	"github.com/matzehuels/xenopict/pkg/pipeline"
	"github.com/matzehuels/xenopict/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "xenopict"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any command runs.
	Config *Config

	configPath string
	out        io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: &Config{},
		out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects command output (not logs).
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

// newCache opens the configured cache: Redis when a URL is set, the local
// file cache otherwise.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	ttl := c.Config.Cache.TTL.Duration

	if url := c.Config.Cache.RedisURL; url != "" {
		rc, err := cache.NewRedisCache(ctx, url)
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("using redis cache", "url", redactURL(url))
		return cache.WithMaxTTL(rc, ttl), nil
	}

	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Debug("no cache directory, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return cache.WithMaxTTL(fc, ttl), nil
}

// cacheDir returns the configured cache directory or the XDG default.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

// redactURL strips credentials from a Redis URL for logging.
func redactURL(url string) string {
	scheme, rest, ok := strings.Cut(url, "://")
	if !ok {
		return url
	}
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		rest = rest[at+1:]
	}
	return scheme + "://" + rest
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/xenopict/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/xenopict/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
// An empty string yields nil so that configured formats apply.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// outputPath returns where format is written. A single format goes to
// output when given; otherwise the extension of output (or input) is
// replaced by the format.
func outputPath(output, input, format string, single bool) string {
	if single && output != "" {
		return output
	}
	base := output
	if base == "" {
		base = input
	}
	ext := filepath.Ext(base)
	if ext == ".json" || isFormat(strings.TrimPrefix(ext, ".")) {
		base = strings.TrimSuffix(base, ext)
	}
	return base + "." + format
}

func isFormat(s string) bool {
	switch s {
	case render.FormatSVG, render.FormatHTML, render.FormatPNG, render.FormatPDF:
		return true
	}
	return false
}
