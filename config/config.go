// Package config loads the service configuration from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v2"
)

const (
	DefaultConfigPath = "config.yaml"
	DefaultModelDir   = "./models"
	DefaultPort       = 8080
	DefaultTimeout    = 30 * time.Second
	DefaultCacheSize  = 256

	EnvModelDir = "HEALTHMETRICS_MODEL_DIR"
	EnvPort     = "HEALTHMETRICS_PORT"
	EnvLogLevel = "HEALTHMETRICS_LOG_LEVEL"
)

type Config struct {
	Models struct {
		Dir   string `yaml:"dir"`
		Watch bool   `yaml:"watch"`
	} `yaml:"models"`
	Http struct {
		Port           int           `yaml:"port"`
		Timeout        time.Duration `yaml:"timeout"`
		AllowedOrigins []string      `yaml:"allowed_origins"`
	} `yaml:"http"`
	Log struct {
		Level      string `yaml:"level"`
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
	} `yaml:"log"`
	Cache struct {
		Size int `yaml:"size"`
	} `yaml:"cache"`
	History struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"history"`
}

func Default() *Config {
	var c Config
	c.Models.Dir = DefaultModelDir
	c.Http.Port = DefaultPort
	c.Http.Timeout = DefaultTimeout
	c.Http.AllowedOrigins = []string{"*"}
	c.Log.Level = "info"
	c.Log.MaxSizeMB = 100
	c.Log.MaxBackups = 3
	c.Log.MaxAgeDays = 28
	c.Cache.Size = DefaultCacheSize
	c.History.Path = "./data/history.db"
	return &c
}

// Load reads path on top of Default and then applies environment overrides.
// A missing file is only tolerated for DefaultConfigPath.
func Load(path string) (*Config, error) {
	config := Default()

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(config); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && path == DefaultConfigPath:
	default:
		return nil, err
	}

	if err := config.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if dir, ok := lookup(EnvModelDir); ok && dir != "" {
		c.Models.Dir = dir
	}
	if level, ok := lookup(EnvLogLevel); ok && level != "" {
		c.Log.Level = level
	}
	if port, ok := lookup(EnvPort); ok && port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPort, err)
		}
		c.Http.Port = p
	}
	return nil
}

func (c *Config) Validate() error {
	var errs error
	if c.Models.Dir == "" {
		errs = multierr.Append(errs, ErrEmptyModelDir)
	}
	if c.Http.Port < 1 || c.Http.Port > 65535 {
		errs = multierr.Append(errs, ErrInvalidPort)
	}
	if c.Cache.Size < 0 {
		errs = multierr.Append(errs, ErrInvalidCacheSize)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = multierr.Append(errs, ErrInvalidLogLevel)
	}
	if c.History.Enabled && c.History.Path == "" {
		errs = multierr.Append(errs, ErrEmptyHistoryPath)
	}
	return errs
}
