// Package runtimeconfig collects the handful of tunables that describe
// arena growth and decode depth into one struct, fillable from CLI
// flags (via cliargs) or a YAML file — the same two-source pattern
// ssargent-freyjadb's config package uses for FreyjaDB's server
// config, adapted to this module's own tunables. This package only
// holds the values; it does not apply them to arena or codec, and the
// arena keeps its fixed MinBlockSize/MaxBlockSize clamp.
package runtimeconfig

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/tablecodec/pbcore/arena"
	"github.com/tablecodec/pbcore/cliargs"
	"github.com/tablecodec/pbcore/codec"
)

// Config holds the tunables a pbcore process needs at startup.
type Config struct {
	StackDepth       int    `yaml:"stack_depth"`
	InitialBlockSize int    `yaml:"initial_block_size"`
	MaxBlockSize     int    `yaml:"max_block_size"`
	LogLevel         string `yaml:"log_level"`
}

// Default returns the built-in tunables, matching the arena package's
// own defaults and codec's DefaultStackDepth.
func Default() *Config {
	return &Config{
		StackDepth:       codec.DefaultStackDepth,
		InitialBlockSize: arena.MinBlockSize,
		MaxBlockSize:     arena.MaxBlockSize,
		LogLevel:         "info",
	}
}

// Load reads a YAML config file, starting from Default() so a partial
// file only overrides the fields it mentions.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "runtimeconfig: read %s", path)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "runtimeconfig: parse %s", path)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "runtimeconfig: marshal")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "runtimeconfig: write %s", path)
	}
	return nil
}

// ApplyArgs overlays any of -stack-depth, -initial-block-size,
// -max-block-size, -log-level present in a, onto cfg.
func ApplyArgs(cfg *Config, a *cliargs.Args) {
	cfg.StackDepth = a.IntDefault("stack-depth", cfg.StackDepth)
	cfg.InitialBlockSize = a.IntDefault("initial-block-size", cfg.InitialBlockSize)
	cfg.MaxBlockSize = a.IntDefault("max-block-size", cfg.MaxBlockSize)
	cfg.LogLevel = a.StringDefault("log-level", cfg.LogLevel)
}

// FromArgs builds a Config from -config=<path> (if present, as the
// base) layered with any individual flag overrides.
func FromArgs(a *cliargs.Args) (*Config, error) {
	cfg := Default()
	if path, ok := a.String("config"); ok {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	ApplyArgs(cfg, a)
	return cfg, nil
}
