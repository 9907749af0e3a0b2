package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/xenopict/pkg/errors"
	"github.com/matzehuels/xenopict/pkg/pipeline"
)

// defaultAddr is the listen address of "serve" when none is configured.
const defaultAddr = "localhost:8080"

// Config is the contents of config.toml. Pipeline options sit at the top
// level; flags given on the command line override them.
//
//	colormap = "xenosite_bwr"
//	scale = 24
//	formats = ["svg", "png"]
//
//	[cache]
//	redis_url = "redis://localhost:6379/0"
//	ttl = "72h"
//
//	[server]
//	addr = ":8080"
type Config struct {
	pipeline.Options

	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects and tunes the cache backend.
type CacheConfig struct {
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
	TTL      duration `toml:"ttl"`
}

// ServerConfig configures "serve".
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// duration decodes TOML strings such as "36h".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// loadConfig reads the config file at path. An empty path means the
// default location, which may be missing; an explicit path must exist.
func loadConfig(path string) (*Config, error) {
	cfg := &Config{}
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "config file %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// addr returns the configured listen address.
func (c *Config) addr() string {
	if c.Server.Addr != "" {
		return c.Server.Addr
	}
	return defaultAddr
}
