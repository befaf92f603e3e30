// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration of helios: the service
// endpoints, the projection policy and the local asset and logging
// settings. Configuration files are TOML or YAML, chosen by extension,
// and are applied over [Config.Defaults].
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/helioviewer-project/helios/helioviewer"
	"github.com/helioviewer-project/helios/logx"
	"github.com/helioviewer-project/helios/projection"
)

// Config is the configuration of helios.
type Config struct {

	// HelioviewerURL is the base URL of the Helioviewer API.
	HelioviewerURL string `toml:"helioviewer_url" yaml:"helioviewer_url"`

	// HeliosAPIURL is the base URL of the Helios event API.
	HeliosAPIURL string `toml:"helios_api_url" yaml:"helios_api_url"`

	// PlaneSources are the source ids whose images are projected onto
	// a flat plane instead of a hemisphere.
	PlaneSources []int `toml:"plane_sources" yaml:"plane_sources"`

	// EnableFeaturesAndEvents enables the Helioviewer event queries.
	EnableFeaturesAndEvents bool `toml:"enable_features_and_events" yaml:"enable_features_and_events"`

	// AssetDir is a directory to load models from instead of the
	// embedded assets. A leading ~ is expanded to the home directory.
	AssetDir string `toml:"asset_dir,omitempty" yaml:"asset_dir,omitempty"`

	// HTTPTimeout is the timeout of each request.
	HTTPTimeout Duration `toml:"http_timeout" yaml:"http_timeout"`

	// CacheTTL is how long query results are cached.
	CacheTTL Duration `toml:"cache_ttl" yaml:"cache_ttl"`

	// MaxConcurrent limits the concurrent requests of range queries.
	MaxConcurrent int `toml:"max_concurrent" yaml:"max_concurrent"`

	// ImageScale is the scale, in arcseconds per pixel, at which
	// textures are downloaded.
	ImageScale float64 `toml:"image_scale" yaml:"image_scale"`

	// LogLevel is the level of log messages: debug, info, warn or error.
	LogLevel string `toml:"log_level" yaml:"log_level"`
}

// Defaults sets the default values of the configuration.
func (c *Config) Defaults() {
	hc := helioviewer.DefaultConfig()
	c.HelioviewerURL = hc.HelioviewerURL
	c.HeliosAPIURL = hc.HeliosAPIURL
	c.PlaneSources = []int{4, 5}
	c.EnableFeaturesAndEvents = false
	c.AssetDir = ""
	c.HTTPTimeout = Duration(hc.Timeout)
	c.CacheTTL = Duration(hc.CacheTTL)
	c.MaxConcurrent = hc.MaxConcurrent
	c.ImageScale = 4.8
	c.LogLevel = "warn"
}

// New returns a new configuration with default values.
func New() *Config {
	c := &Config{}
	c.Defaults()
	return c
}

// Validate returns an error if the configuration cannot be used.
func (c *Config) Validate() error {
	if c.HelioviewerURL == "" {
		return fmt.Errorf("config: helioviewer_url is empty")
	}
	if c.HeliosAPIURL == "" {
		return fmt.Errorf("config: helios_api_url is empty")
	}
	if c.HTTPTimeout < 0 || c.CacheTTL < 0 {
		return fmt.Errorf("config: durations must not be negative")
	}
	if c.ImageScale <= 0 {
		return fmt.Errorf("config: image_scale must be > 0, got %g", c.ImageScale)
	}
	if _, ok := logx.LevelFromString(c.LogLevel); !ok {
		return fmt.Errorf("config: invalid log_level %q", c.LogLevel)
	}
	return nil
}

// ExpandPaths expands a leading ~ in the path settings.
func (c *Config) ExpandPaths() error {
	if c.AssetDir == "" {
		return nil
	}
	dir, err := homedir.Expand(c.AssetDir)
	if err != nil {
		return fmt.Errorf("config: expanding asset_dir: %w", err)
	}
	c.AssetDir = dir
	return nil
}

// Helioviewer returns the client configuration.
func (c *Config) Helioviewer() helioviewer.Config {
	return helioviewer.Config{
		HelioviewerURL:          c.HelioviewerURL,
		HeliosAPIURL:            c.HeliosAPIURL,
		EnableFeaturesAndEvents: c.EnableFeaturesAndEvents,
		Timeout:                 time.Duration(c.HTTPTimeout),
		CacheTTL:                time.Duration(c.CacheTTL),
		MaxConcurrent:           c.MaxConcurrent,
	}
}

// Planes returns the plane sources.
func (c *Config) Planes() projection.PlaneSources {
	return projection.PlaneSources(c.PlaneSources)
}

// Level returns the log level, or [slog.LevelWarn] if it is invalid.
func (c *Config) Level() slog.Level {
	lvl, _ := logx.LevelFromString(c.LogLevel)
	return lvl
}

// Duration is a [time.Duration] that is written as a string such
// as "30s" in configuration files.
type Duration time.Duration

func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}
