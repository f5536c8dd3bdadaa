// Package config loads the gridplace configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/gridplace/config.toml
// (~/.config/gridplace/config.toml when XDG_CONFIG_HOME is unset):
//
//	algorithm = "sequential"
//	seed = 42
//
//	[cache]
//	backend = "file"   # file | redis | mongo | none
//	ttl = "168h"
//	redis_url = "redis://localhost:6379/0"
//	mongo_uri = "mongodb://localhost:27017"
//	mongo_database = "gridplace"
//	mongo_collection = "cache"
//
//	[server]
//	addr = ":8080"
//
// Every key is optional; command-line flags override the file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	gperrors "github.com/matzehuels/gridplace/pkg/errors"
	"github.com/matzehuels/gridplace/pkg/placement"
)

// AppName names the configuration and cache directories.
const AppName = "gridplace"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

var backends = []string{BackendFile, BackendRedis, BackendMongo, BackendNone}

// Config is the decoded configuration file.
type Config struct {
	Algorithm string `toml:"algorithm"`
	Seed      uint64 `toml:"seed"`

	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects and configures the result cache.
type CacheConfig struct {
	Backend string        `toml:"backend"`
	TTL     time.Duration `toml:"ttl"`

	// Dir overrides the file cache directory.
	Dir string `toml:"dir"`

	// Prefix is prepended to every cache key, so deployments sharing one
	// Redis or Mongo store stay apart.
	Prefix string `toml:"prefix"`

	RedisURL        string `toml:"redis_url"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// ServerConfig configures `gridplace serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Algorithm: placement.DefaultAlgorithm,
		Seed:      42,
		Cache: CacheConfig{
			Backend:         BackendFile,
			TTL:             7 * 24 * time.Hour,
			RedisURL:        "redis://localhost:6379/0",
			MongoURI:        "mongodb://localhost:27017",
			MongoDatabase:   AppName,
			MongoCollection: "cache",
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// DefaultPath returns the standard location of the configuration file.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg, err := LoadFile(path)
	if gperrors.Is(err, gperrors.ErrCodeFileNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// LoadFile reads path over the defaults and fails if the file is missing.
// Unknown keys are rejected so that typos do not go unnoticed.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, gperrors.Wrap(gperrors.ErrCodeFileNotFound, err, "config file %s not found", path)
	}
	if err != nil {
		return cfg, gperrors.Wrap(gperrors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, gperrors.New(gperrors.ErrCodeInvalidInput,
			"config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks enumerated values.
func (c Config) Validate() error {
	if c.Algorithm != "" && placement.Title(c.Algorithm) == "" {
		return gperrors.New(gperrors.ErrCodeUnknownAlgorithm,
			"config: unknown algorithm %q (must be one of: %v)", c.Algorithm, placement.Names())
	}
	if !slices.Contains(backends, c.Cache.Backend) {
		return gperrors.New(gperrors.ErrCodeInvalidInput,
			"config: unknown cache backend %q (must be one of: %s)", c.Cache.Backend, strings.Join(backends, ", "))
	}
	if c.Cache.TTL < 0 {
		return gperrors.New(gperrors.ErrCodeInvalidInput, "config: cache ttl must not be negative")
	}
	return nil
}
