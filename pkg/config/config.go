// Package config loads mulnet settings from TOML or YAML files.
//
// A config file groups the options of every command. Flags given on the
// command line override the values read here.
//
//	[fold]
//	threshold = 0.2
//	normalize = true
//
//	[compare]
//	ged_timeout = "30s"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//
//	[batch]
//	workers = 8
//
//	[store]
//	target = "mongodb://localhost:27017/mulnet?collection=runs"
//
//	[server]
//	addr = ":8080"
package config

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/mulnet/pkg/errors"
	"github.com/matzehuels/mulnet/pkg/pipeline"
)

// AppName names the config and cache directories.
const AppName = "mulnet"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Server defaults.
const (
	DefaultAddr         = ":8080"
	DefaultReadTimeout  = 30 * time.Second
	DefaultWriteTimeout = 5 * time.Minute
	DefaultMaxBodyBytes = 8 << 20
)

// Config holds every setting.
type Config struct {
	Fold    FoldConfig    `toml:"fold" yaml:"fold"`
	Compare CompareConfig `toml:"compare" yaml:"compare"`
	Cache   CacheConfig   `toml:"cache" yaml:"cache"`
	Batch   BatchConfig   `toml:"batch" yaml:"batch"`
	Store   StoreConfig   `toml:"store" yaml:"store"`
	Server  ServerConfig  `toml:"server" yaml:"server"`

	// Warnings lists settings that were ignored or replaced.
	Warnings []string `toml:"-" yaml:"-"`

	validated bool
}

// FoldConfig selects the folding variant. Both fields unset means strict
// folding.
type FoldConfig struct {
	Threshold *float64 `toml:"threshold" yaml:"threshold"`
	Normalize *bool    `toml:"normalize" yaml:"normalize"`
}

// CompareConfig configures comparisons.
type CompareConfig struct {
	GEDTimeout       time.Duration `toml:"ged_timeout" yaml:"ged_timeout"`
	SkipEditDistance bool          `toml:"skip_edit_distance" yaml:"skip_edit_distance"`
}

// CacheConfig selects and configures the result cache.
type CacheConfig struct {
	Backend  string `toml:"backend" yaml:"backend"`
	Dir      string `toml:"dir" yaml:"dir"`
	RedisURL string `toml:"redis_url" yaml:"redis_url"`
}

// BatchConfig configures batch runs.
type BatchConfig struct {
	Workers int `toml:"workers" yaml:"workers"`
}

// StoreConfig names the default record sink; see store.Open.
type StoreConfig struct {
	Target string `toml:"target" yaml:"target"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr         string        `toml:"addr" yaml:"addr"`
	ReadTimeout  time.Duration `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout" yaml:"write_timeout"`
	MaxBodyBytes int64         `toml:"max_body_bytes" yaml:"max_body_bytes"`
}

// Default returns a validated config with every default applied.
func Default() *Config {
	c := &Config{}
	_ = c.ValidateAndSetDefaults()
	return c
}

// Load reads a TOML (.toml) or YAML (.yaml, .yml) file and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config %s", path)
		}
		return nil, err
	}

	var c Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&c)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
		}
		for _, k := range md.Undecoded() {
			c.Warnings = append(c.Warnings, "unknown setting "+k.String())
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "config %s: unsupported extension (want .toml, .yaml or .yml)", path)
	}

	if err := c.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadDefault loads the file at DefaultPath if it exists and returns the
// defaults otherwise.
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	c, err := Load(path)
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		return Default(), nil
	}
	return c, err
}

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent.
func (c *Config) ValidateAndSetDefaults() error {
	if c.validated {
		return nil
	}

	f := &c.Fold
	if (f.Threshold == nil) != (f.Normalize == nil) {
		c.Warnings = append(c.Warnings, "fold.threshold and fold.normalize must be set together; using strict folding")
		f.Threshold, f.Normalize = nil, nil
	}
	if f.Threshold != nil && (*f.Threshold < 0 || math.IsNaN(*f.Threshold)) {
		return errors.New(errors.ErrCodeInvalidConfig, "fold.threshold must be non-negative, got %v", *f.Threshold)
	}

	if c.Compare.GEDTimeout == 0 {
		c.Compare.GEDTimeout = pipeline.DefaultGEDTimeout
	}

	switch c.Cache.Backend {
	case "":
		c.Cache.Backend = CacheFile
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_url is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend must be one of file, redis, none; got %q", c.Cache.Backend)
	}
	if c.Cache.Dir == "" {
		if dir, err := CacheDir(); err == nil {
			c.Cache.Dir = dir
		}
	}

	if c.Batch.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "batch.workers must not be negative")
	}
	if c.Batch.Workers == 0 {
		c.Batch.Workers = pipeline.DefaultWorkers()
	}

	s := &c.Server
	if s.Addr == "" {
		s.Addr = DefaultAddr
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = DefaultReadTimeout
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = DefaultWriteTimeout
	}
	if s.MaxBodyBytes <= 0 {
		s.MaxBodyBytes = DefaultMaxBodyBytes
	}

	c.validated = true
	return nil
}

// PipelineOptions returns the runner options described by c.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Threshold:        c.Fold.Threshold,
		Normalize:        c.Fold.Normalize,
		GEDTimeout:       c.Compare.GEDTimeout,
		SkipEditDistance: c.Compare.SkipEditDistance,
		Workers:          c.Batch.Workers,
	}
}

// =============================================================================
// Paths
// =============================================================================

// CacheDir returns the cache directory using XDG standard (~/.cache/mulnet/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// DefaultPath returns the config file location (~/.config/mulnet/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}
