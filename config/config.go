// Package config loads process settings for the taxonomist tools.
//
// Settings are layered, lowest precedence first: built-in defaults, a YAML
// file, TAXONOMIST_ environment variables, then explicit overrides such as
// command-line flags. Nested keys use "__" in environment names, so
// TAXONOMIST_SEARCH__MAX_HITS sets search.max_hits.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/poiesic/taxonomist/search"
)

const (
	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "TAXONOMIST_"

	// DefaultFile is looked up in the working directory when no file is named.
	DefaultFile = "taxonomist.yaml"
)

// Config holds all process settings.
type Config struct {
	Input          string       `koanf:"input"`
	OutputJSON     string       `koanf:"output_json"`
	OutputMarkdown string       `koanf:"output_markdown"`
	Rules          string       `koanf:"rules"`
	DB             string       `koanf:"db"`
	Search         SearchConfig `koanf:"search"`
	Server         ServerConfig `koanf:"server"`

	// File is the config file that was read, if any.
	File string `koanf:"-"`
}

// SearchConfig tunes ranking.
type SearchConfig struct {
	MaxHits         int     `koanf:"max_hits"`
	TableThreshold  float64 `koanf:"table_threshold"`
	ColumnThreshold float64 `koanf:"column_threshold"`
	MaxColumnHits   int     `koanf:"max_column_hits"`
	Workers         int     `koanf:"workers"` // 0 selects the searcher default
}

// ServerConfig tunes the HTTP service.
type ServerConfig struct {
	Addr      string        `koanf:"addr"`
	CacheSize int           `koanf:"cache_size"`
	CacheTTL  time.Duration `koanf:"cache_ttl"`
	Watch     bool          `koanf:"watch"`
}

func defaults() map[string]any {
	return map[string]any{
		"input":                   "metadata.json",
		"output_json":             "taxonomy.json",
		"output_markdown":         "taxonomy.md",
		"rules":                   "",
		"db":                      "",
		"search.max_hits":         search.DefaultMaxHits,
		"search.table_threshold":  search.DefaultTableThreshold,
		"search.column_threshold": search.DefaultColumnThreshold,
		"search.max_column_hits":  search.DefaultMaxColumnHits,
		"search.workers":          0,
		"server.addr":             ":8080",
		"server.cache_size":       256,
		"server.cache_ttl":        "5m",
		"server.watch":            true,
	}
}

// Load reads settings from path (or DefaultFile if present when path is
// empty), the environment, and overrides, keyed by dotted names such as
// "search.max_hits".
func Load(path string, overrides map[string]any) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrConfigUnreadable, path, err)
		}
	}

	// TAXONOMIST_SERVER__CACHE_SIZE -> server.cache_size
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to load overrides: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	cfg.File = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every setting is in range.
func (c *Config) Validate() error {
	s := c.Search
	switch {
	case s.MaxHits < 1:
		return fmt.Errorf("%w: search.max_hits must be positive, got %d", ErrInvalidConfig, s.MaxHits)
	case s.TableThreshold < 0 || s.TableThreshold > 1:
		return fmt.Errorf("%w: search.table_threshold must be within [0, 1], got %g", ErrInvalidConfig, s.TableThreshold)
	case s.ColumnThreshold < 0 || s.ColumnThreshold > 1:
		return fmt.Errorf("%w: search.column_threshold must be within [0, 1], got %g", ErrInvalidConfig, s.ColumnThreshold)
	case s.MaxColumnHits < 0:
		return fmt.Errorf("%w: search.max_column_hits must not be negative, got %d", ErrInvalidConfig, s.MaxColumnHits)
	case s.Workers < 0:
		return fmt.Errorf("%w: search.workers must not be negative, got %d", ErrInvalidConfig, s.Workers)
	case c.Server.CacheSize < 1:
		return fmt.Errorf("%w: server.cache_size must be positive, got %d", ErrInvalidConfig, c.Server.CacheSize)
	case c.Server.CacheTTL < 0:
		return fmt.Errorf("%w: server.cache_ttl must not be negative, got %s", ErrInvalidConfig, c.Server.CacheTTL)
	}
	return nil
}

// SearchOptions converts the search settings to searcher options.
func (c *Config) SearchOptions() []search.Option {
	opts := []search.Option{
		search.WithMaxHits(c.Search.MaxHits),
		search.WithThresholds(c.Search.TableThreshold, c.Search.ColumnThreshold),
		search.WithMaxColumnHits(c.Search.MaxColumnHits),
	}
	if c.Search.Workers > 0 {
		opts = append(opts, search.WithWorkers(c.Search.Workers))
	}
	return opts
}
