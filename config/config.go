// Package config handles the sift configuration file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/montrey/sift/notes"
	"github.com/montrey/sift/search"
	"github.com/montrey/sift/session"
)

// Config represents the sift configuration.
type Config struct {
	// NotesDir is the notes tree to index when no directory is given.
	NotesDir string `toml:"notes_dir"`
	// Limit is the number of results shown (1..100).
	Limit int `toml:"limit"`
	// Threshold is the similarity cutoff in [0,1]; 0 only accepts exact matches.
	Threshold float64 `toml:"threshold"`
	// Algorithm is "approx" or "subsequence".
	Algorithm       string `toml:"algorithm"`
	ExtendedSearch  bool   `toml:"extended_search"`
	IgnoreFieldNorm bool   `toml:"ignore_field_norm"`
	MinMatchLength  int    `toml:"min_match_length"`
	MaxDisplayed    int    `toml:"max_displayed"`
	DebounceMS      int    `toml:"debounce_ms"`
	// Opener runs when a result is opened in a new context. {path} is
	// replaced with the result's file path.
	Opener string `toml:"opener"`
	// Weights maps field names (title, path, tags, headers) to weights.
	Weights map[string]float64 `toml:"weights"`

	Loader LoaderConfig `toml:"loader"`
	Server ServerConfig `toml:"server"`
}

// LoaderConfig filters the notes walk with doublestar globs.
type LoaderConfig struct {
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
	Watch   bool     `toml:"watch"`
}

// ServerConfig configures `sift serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		NotesDir:       ".",
		Limit:          search.DefaultLimit,
		Threshold:      search.DefaultThreshold,
		Algorithm:      string(search.AlgorithmApprox),
		ExtendedSearch: true,
		MinMatchLength: 1,
		MaxDisplayed:   search.DefaultMaxDisplayed,
		DebounceMS:     int(session.DefaultDelay / time.Millisecond),
		Opener:         `xdg-open "{path}"`,
		Server:         ServerConfig{Addr: "127.0.0.1:8080"},
		Loader:         LoaderConfig{Watch: true},
	}
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "sift", "config.toml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "sift", "config.toml")
}

// Load loads the configuration from path, or from the default location when
// path is empty. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return Default(), nil
		}
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration from a specific path. Keys missing from
// the file keep their defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	for _, key := range meta.Undecoded() {
		slog.Warn("unknown config key", "path", path, "key", key.String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and names.
func (c *Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("threshold %v is outside [0,1]", c.Threshold)
	}
	if c.Limit < 1 || c.Limit > search.MaxLimit {
		return fmt.Errorf("limit %d is outside 1..%d", c.Limit, search.MaxLimit)
	}
	if _, err := search.ParseAlgorithm(c.Algorithm); err != nil {
		return err
	}
	if _, err := c.SearchWeights(); err != nil {
		return err
	}
	return nil
}

// SearchWeights returns the configured field weights, or the defaults when
// none are configured.
func (c *Config) SearchWeights() (search.Weights, error) {
	if len(c.Weights) == 0 {
		return search.DefaultWeights(), nil
	}
	w := search.Weights{}
	for name, v := range c.Weights {
		f, ok := search.ParseField(strings.ToLower(name))
		if !ok {
			return nil, fmt.Errorf("unknown weight field %q", name)
		}
		if v < 0 {
			return nil, fmt.Errorf("weight %q: %w", name, search.ErrNegativeWeight)
		}
		w[f] = v
	}
	return w, nil
}

// IndexOptions translates the matching settings for search.BuildIndex.
func (c *Config) IndexOptions() []search.IndexOption {
	algo, err := search.ParseAlgorithm(c.Algorithm)
	if err != nil {
		algo = search.AlgorithmApprox
	}
	return []search.IndexOption{
		search.WithThreshold(c.Threshold),
		search.WithAlgorithm(algo),
		search.WithMinMatchCharLength(c.MinMatchLength),
		search.WithExtendedSearch(c.ExtendedSearch),
		search.WithIgnoreFieldNorm(c.IgnoreFieldNorm),
	}
}

// Debounce returns the delay between the last keystroke and a search.
func (c *Config) Debounce() time.Duration {
	if c.DebounceMS <= 0 {
		return session.DefaultDelay
	}
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// WalkOptions returns the loader filters.
func (c *Config) WalkOptions() notes.WalkOptions {
	return notes.WalkOptions{Include: c.Loader.Include, Exclude: c.Loader.Exclude}
}
