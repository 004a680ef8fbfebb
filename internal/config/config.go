// Package config loads latextools settings from a TOML or YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvVar names environment variable with path to the config file.
const EnvVar = "LATEXTOOLS_CONFIG"

// Config holds the complete tool configuration
type Config struct {
	Log     LogConfig     `toml:"log" yaml:"log"`
	Figures FiguresConfig `toml:"figures" yaml:"figures"`
	Xrefs   XrefsConfig   `toml:"xrefs" yaml:"xrefs"`
	HTML    HTMLConfig    `toml:"html" yaml:"html"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`   // debug, info, warn or error
	Format string `toml:"format" yaml:"format"` // text or json
}

// FiguresConfig holds settings of collect-figures
type FiguresConfig struct {
	Pattern      string   `toml:"pattern" yaml:"pattern"` // copy name without extension, {num} is the figure number
	Environments []string `toml:"environments" yaml:"environments"`
	RequireLabel bool     `toml:"require_label" yaml:"require_label"`
}

// XrefsConfig holds settings of freeze-xrefs
type XrefsConfig struct {
	KeepRefs bool   `toml:"keep_refs" yaml:"keep_refs"`
	Suffix   string `toml:"suffix" yaml:"suffix"` // added to the name of the frozen copy
}

// HTMLConfig holds extra command to tag mappings, eg. "\\textsc" = "<span class=\"sc\">"
type HTMLConfig struct {
	Tags map[string]string `toml:"tags" yaml:"tags"`
}

// Default returns configuration used when there is no config file.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file, or a YAML file if path ends with .yaml or .yml.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes configuration, ext selects the format (".yaml", ".yml" or TOML otherwise).
func Parse(data []byte, ext string) (*Config, error) {
	var cfg Config

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	default:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, err
		}
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Discover loads configuration from explicit path, LATEXTOOLS_CONFIG or one of default locations. Default
// configuration is returned if no file is found.
func Discover(path string) (*Config, string, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}

	if path != "" {
		cfg, err := Load(path)
		return cfg, path, err
	}

	for _, p := range []string{"latextools.toml", ".latextools.toml", "latextools.yaml", ".latextools.yaml"} {
		if _, err := os.Stat(p); err == nil {
			cfg, err := Load(p)
			return cfg, p, err
		}
	}

	return Default(), "", nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Figures.Pattern == "" {
		c.Figures.Pattern = "Fig{num}"
	}
	if len(c.Figures.Environments) == 0 {
		c.Figures.Environments = []string{"figure", "figure*"}
	}
	if c.Xrefs.Suffix == "" {
		c.Xrefs.Suffix = "-xrfrozen"
	}
}

func (c *Config) validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %#v", c.Log.Level)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %#v", c.Log.Format)
	}

	for name := range c.HTML.Tags {
		if !strings.HasPrefix(name, "\\") {
			return fmt.Errorf("html tag mapping for %#v: command name must start with a backslash", name)
		}
	}

	if strings.ContainsAny(c.Figures.Pattern, "/\\") {
		return errors.New("figure pattern must not contain path separators")
	}

	return nil
}
