// Package config loads schemadoc configuration.
//
// Configuration is applied in order of increasing precedence:
//  1. Hardcoded defaults
//  2. Project config (.schemadoc.yaml or .schemadoc.yml in the working directory)
//  3. Environment variables (SCHEMADOC_*)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/schemadoc/schemadoc/internal/errors"
)

// Config represents the complete schemadoc configuration.
type Config struct {
	// DocsRoot is the directory containing corpus subdirectories.
	DocsRoot string `yaml:"docs_root"`

	Retrieval RetrievalConfig `yaml:"retrieval"`
	Ranking   RankingConfig   `yaml:"ranking"`

	// LogLevel controls logging verbosity: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// RetrievalConfig configures result selection.
type RetrievalConfig struct {
	// TopK is the maximum number of results returned per query.
	TopK int `yaml:"top_k"`

	// RelevanceThreshold is the minimum score a chunk must reach to be
	// returned as a lexical match.
	RelevanceThreshold float64 `yaml:"relevance_threshold"`

	// ScorerCacheSize bounds the number of per-corpus scorers kept alive.
	ScorerCacheSize int `yaml:"scorer_cache_size"`
}

// RankingConfig configures the scoring backend.
type RankingConfig struct {
	// Backend selects the scorer implementation.
	// Options: "native" (default, exact BM25) or "bleve" (inverted index).
	Backend string `yaml:"backend"`

	// K1 is the BM25 term frequency saturation parameter.
	K1 float64 `yaml:"k1"`

	// B is the BM25 length normalization parameter.
	B float64 `yaml:"b"`
}

// NewConfig creates a configuration with default values.
func NewConfig() *Config {
	return &Config{
		DocsRoot: "docs",
		Retrieval: RetrievalConfig{
			TopK:               5,
			RelevanceThreshold: 0.5,
			ScorerCacheSize:    64,
		},
		Ranking: RankingConfig{
			Backend: "native",
			K1:      1.5,
			B:       0.75,
		},
		LogLevel: "info",
	}
}

// Load loads configuration from the specified directory.
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	if err := cfg.loadFromFile(dir); err != nil {
		return nil, errors.ConfigError("failed to load config file", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, errors.ConfigError("invalid configuration", err)
	}
	return cfg, nil
}

// loadFromFile attempts to load configuration from .schemadoc.yaml or
// .schemadoc.yml. A missing file is fine; defaults apply.
func (c *Config) loadFromFile(dir string) error {
	for _, name := range []string{".schemadoc.yaml", ".schemadoc.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return c.loadYAML(path)
		}
	}
	return nil
}

// loadYAML loads and merges configuration from a YAML file.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	c.mergeWith(&parsed)
	return nil
}

// mergeWith merges non-zero values from other into c.
func (c *Config) mergeWith(other *Config) {
	if other.DocsRoot != "" {
		c.DocsRoot = other.DocsRoot
	}
	if other.Retrieval.TopK != 0 {
		c.Retrieval.TopK = other.Retrieval.TopK
	}
	if other.Retrieval.RelevanceThreshold != 0 {
		c.Retrieval.RelevanceThreshold = other.Retrieval.RelevanceThreshold
	}
	if other.Retrieval.ScorerCacheSize != 0 {
		c.Retrieval.ScorerCacheSize = other.Retrieval.ScorerCacheSize
	}
	if other.Ranking.Backend != "" {
		c.Ranking.Backend = other.Ranking.Backend
	}
	if other.Ranking.K1 != 0 {
		c.Ranking.K1 = other.Ranking.K1
	}
	if other.Ranking.B != 0 {
		c.Ranking.B = other.Ranking.B
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
}

// applyEnvOverrides applies SCHEMADOC_* environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SCHEMADOC_DOCS_ROOT"); v != "" {
		c.DocsRoot = v
	}
	if v := os.Getenv("SCHEMADOC_TOP_K"); v != "" {
		if k, err := strconv.Atoi(v); err == nil && k > 0 {
			c.Retrieval.TopK = k
		}
	}
	// Threshold may legitimately be zero, so any parsable value wins.
	if v := os.Getenv("SCHEMADOC_THRESHOLD"); v != "" {
		if t, err := strconv.ParseFloat(v, 64); err == nil && t >= 0 {
			c.Retrieval.RelevanceThreshold = t
		}
	}
	if v := os.Getenv("SCHEMADOC_RANKING_BACKEND"); v != "" {
		c.Ranking.Backend = v
	}
	if v := os.Getenv("SCHEMADOC_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Validate checks the final configuration for invalid values.
func (c *Config) Validate() error {
	if c.DocsRoot == "" {
		return fmt.Errorf("docs_root must not be empty")
	}
	if c.Retrieval.TopK <= 0 {
		return fmt.Errorf("top_k must be positive, got %d", c.Retrieval.TopK)
	}
	if c.Retrieval.RelevanceThreshold < 0 {
		return fmt.Errorf("relevance_threshold must not be negative, got %f", c.Retrieval.RelevanceThreshold)
	}
	if c.Retrieval.ScorerCacheSize <= 0 {
		return fmt.Errorf("scorer_cache_size must be positive, got %d", c.Retrieval.ScorerCacheSize)
	}
	if c.Ranking.Backend != "native" && c.Ranking.Backend != "bleve" {
		return fmt.Errorf("ranking backend must be \"native\" or \"bleve\", got %q", c.Ranking.Backend)
	}
	if c.Ranking.K1 <= 0 {
		return fmt.Errorf("k1 must be positive, got %f", c.Ranking.K1)
	}
	if c.Ranking.B < 0 || c.Ranking.B > 1 {
		return fmt.Errorf("b must be between 0 and 1, got %f", c.Ranking.B)
	}
	return nil
}
