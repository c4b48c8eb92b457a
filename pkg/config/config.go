// Package config loads the mindmap configuration file.
//
// The file is TOML and every section is optional:
//
//	[layout]
//	mode = "auto"
//	center_edge = "side"
//	spacing = 1.0
//
//	[layout.gaps]
//	branch = 80
//
//	[cache]
//	backend = "file"   # file, redis or none
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
//	store = "memory"   # memory or mongo
//
// Values missing from the file keep their defaults. Unknown keys are
// reported as warnings rather than errors.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/layout"
)

const (
	appName  = "mindmap"
	fileName = "config.toml"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

// Config is the full configuration file.
type Config struct {
	Layout layout.Options `toml:"layout"`
	Cache  Cache          `toml:"cache"`
	Server Server         `toml:"server"`

	// Warnings collects unknown keys and normalized option values.
	Warnings []string `toml:"-"`
}

// Cache configures layout result caching.
type Cache struct {
	Backend   string `toml:"backend"`
	TTL       string `toml:"ttl"`
	RedisAddr string `toml:"redis_addr"`
	RedisDB   int    `toml:"redis_db"`
	Prefix    string `toml:"prefix"`
}

// Server configures the HTTP API.
type Server struct {
	Addr          string `toml:"addr"`
	Store         string `toml:"store"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Layout: layout.DefaultOptions(),
		Cache: Cache{
			Backend:   CacheFile,
			TTL:       "24h",
			RedisAddr: "localhost:6379",
			Prefix:    appName,
		},
		Server: Server{
			Addr:          ":8080",
			Store:         StoreMemory,
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: appName,
		},
	}
}

// TTLDuration parses the cache TTL. Empty or invalid values yield 24h.
func (c Cache) TTLDuration() time.Duration {
	d, err := time.ParseDuration(c.TTL)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// Load reads the file at path on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	for _, key := range md.Undecoded() {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("unknown config key %q", key.String()))
	}
	cfg.Warnings = append(cfg.Warnings, cfg.Normalize()...)
	return cfg, nil
}

// Normalize applies layout option fallbacks and validates backend names.
func (c *Config) Normalize() []string {
	warnings := c.Layout.Normalize()
	switch c.Cache.Backend {
	case CacheFile, CacheRedis, CacheNone:
	default:
		warnings = append(warnings, fmt.Sprintf("unknown cache backend %q, using %q", c.Cache.Backend, CacheFile))
		c.Cache.Backend = CacheFile
	}
	switch c.Server.Store {
	case StoreMemory, StoreMongo:
	default:
		warnings = append(warnings, fmt.Sprintf("unknown store %q, using %q", c.Server.Store, StoreMemory))
		c.Server.Store = StoreMemory
	}
	return warnings
}

// Resolve returns the configuration for an explicit path, the discovered
// default file, or the built-in defaults, in that order.
func Resolve(explicit string) (*Config, string, error) {
	if explicit != "" {
		cfg, err := Load(explicit)
		return cfg, explicit, err
	}
	path, err := Path()
	if err != nil {
		return Default(), "", nil
	}
	if _, err := os.Stat(path); err != nil {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Path returns the default config file location using the XDG standard
// (~/.config/mindmap/config.toml).
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Write encodes cfg as TOML.
func Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// WriteFile writes cfg to path, creating parent directories. It refuses to
// overwrite an existing file unless force is set.
func WriteFile(path string, cfg *Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New(errors.ErrCodeInvalidPath, "%s already exists", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(f, cfg)
}
