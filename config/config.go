// Package config loads export settings from YAML or TOML files.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ByLCY/mindexport/errors"
	"github.com/ByLCY/mindexport/export"
	"github.com/ByLCY/mindexport/fonts"
	"github.com/ByLCY/mindexport/layout"
	canvasrenderer "github.com/ByLCY/mindexport/renderer/canvas"
)

// Config holds the settings of an export run.
type Config struct {
	// Theme name: "dark" (or "vs-dark") selects the dark theme, anything else light.
	Theme string `yaml:"theme" toml:"theme"`
	// Format is svg, png or pdf.
	Format string `yaml:"format" toml:"format"`
	// Scale is the PNG pixel density.
	Scale int `yaml:"scale" toml:"scale"`
	// Padding around measured bounds, in px.
	Padding int `yaml:"padding" toml:"padding"`
	// Minify shrinks SVG output.
	Minify bool `yaml:"minify" toml:"minify"`
	// Name is the output file stem.
	Name string `yaml:"name" toml:"name"`
	// OutputDir receives exported files.
	OutputDir string `yaml:"output_dir" toml:"output_dir"`
	// Fonts maps a weight (regular, medium, bold) to a TTF/OTF path.
	Fonts map[string]string `yaml:"fonts,omitempty" toml:"fonts,omitempty"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Theme:     "light",
		Format:    "svg",
		Scale:     canvasrenderer.DefaultScale,
		Padding:   layout.DefaultPadding,
		Name:      export.DefaultName,
		OutputDir: ".",
	}
}

// Load reads a configuration file on top of the defaults. The format follows
// the extension: .yaml/.yml or .toml.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config")
	}
	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "config %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads path, or returns the defaults when path is empty or
// does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Save writes the configuration in the format matching path's extension.
func (c *Config) Save(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(c)
		data = buf.Bytes()
	default:
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks value ranges and the output format.
func (c *Config) Validate() error {
	if _, err := export.ParseTarget(c.Format, c.Scale); err != nil {
		return err
	}
	if c.Scale < 1 || c.Scale > canvasrenderer.MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be between 1 and %d, got %d", canvasrenderer.MaxScale, c.Scale)
	}
	if c.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "padding must not be negative, got %d", c.Padding)
	}
	for weight := range c.Fonts {
		switch strings.ToLower(weight) {
		case fonts.Regular, fonts.Medium, fonts.Bold:
		default:
			return errors.New(errors.ErrCodeInvalidInput, "unknown font weight %q (want regular, medium or bold)", weight)
		}
	}
	return nil
}

// Target returns the export target selected by Format and Scale.
func (c *Config) Target() (export.Target, error) {
	return export.ParseTarget(c.Format, c.Scale)
}

// FontOptions turns the font paths into renderer options.
func (c *Config) FontOptions() canvasrenderer.Options {
	if len(c.Fonts) == 0 {
		return canvasrenderer.Options{}
	}
	res := make(map[string]canvasrenderer.Resource, len(c.Fonts))
	for weight, path := range c.Fonts {
		res[strings.ToLower(weight)] = canvasrenderer.Resource{Path: path}
	}
	return canvasrenderer.Options{Fonts: res}
}
