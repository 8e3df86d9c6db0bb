// Package config loads bpmnlayout settings from TOML or YAML files.
//
// A file only needs the keys it changes; everything else keeps the value of
// [Default]:
//
//	[layout]
//	strategy = "grid"
//	horizontal_spacing = 150
//
//	[layout.sizes.userTask]
//	width = 120
//	height = 90
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "12h"
package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/bpmnlayout/pkg/errors"
	"github.com/matzehuels/bpmnlayout/pkg/layout"
)

// Cache backends.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// File is the full configuration.
type File struct {
	Layout layout.Config `toml:"layout" yaml:"layout"`
	Cache  Cache         `toml:"cache" yaml:"cache"`
	Server Server        `toml:"server" yaml:"server"`
}

// Cache configures layout caching.
type Cache struct {
	Backend string `toml:"backend" yaml:"backend"`
	// Dir is the file cache root. Empty means the per-user cache directory.
	Dir      string        `toml:"dir" yaml:"dir"`
	RedisURL string        `toml:"redis_url" yaml:"redis_url"`
	Prefix   string        `toml:"prefix" yaml:"prefix"`
	TTL      time.Duration `toml:"ttl" yaml:"ttl"`
}

// Server configures the HTTP API.
type Server struct {
	Addr         string        `toml:"addr" yaml:"addr"`
	MaxBodyBytes int64         `toml:"max_body_bytes" yaml:"max_body_bytes"`
	Timeout      time.Duration `toml:"timeout" yaml:"timeout"`
}

// Default returns the built-in configuration.
func Default() File {
	return File{
		Layout: layout.DefaultConfig(),
		Cache: Cache{
			Backend: BackendFile,
			TTL:     24 * time.Hour,
		},
		Server: Server{
			Addr:         ":8080",
			MaxBodyBytes: 10 << 20,
			Timeout:      30 * time.Second,
		},
	}
}

// Load reads path on top of [Default]. The format follows the extension:
// .toml, .yaml or .yml. Unknown keys are rejected.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "config %s", path)
		}
		return File{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes data in the format named by ext on top of [Default].
func Parse(data []byte, ext string) (File, error) {
	f := Default()
	switch strings.ToLower(ext) {
	case ".toml":
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return File{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "decode TOML config")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return File{}, errs.New(errs.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return File{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "decode YAML config")
		}
	default:
		return File{}, errs.New(errs.ErrCodeInvalidConfig, "unsupported config format %q (want .toml, .yaml or .yml)", ext)
	}

	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// Validate checks every section.
func (f File) Validate() error {
	if err := f.Layout.Validate(); err != nil {
		return err
	}
	switch f.Cache.Backend {
	case BackendNone, BackendFile:
	case BackendRedis:
		if f.Cache.RedisURL == "" {
			return errs.New(errs.ErrCodeInvalidConfig, "cache.redis_url is required for the redis backend")
		}
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "unknown cache backend %q", f.Cache.Backend)
	}
	if f.Cache.TTL < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	if f.Server.MaxBodyBytes <= 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "server.max_body_bytes must be positive")
	}
	return nil
}
