// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for parabola.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.parabola/config.toml
//   - ~/.parabola/config.json
//   - Built-in defaults
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/parabola/internal/util"
)

// CurrentVersion is the config schema version written by Save.
const CurrentVersion = "1"

// Renderer names accepted by plot.renderer.
const (
	RendererAuto = "auto"
	RendererTUI  = "tui"
	RendererText = "text"
	RendererPNG  = "png"
	RendererNone = "none"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete parabola configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Plot configuration
	Plot PlotConfig `toml:"plot" json:"plot"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`

	// Log configuration
	Log LogConfig `toml:"log" json:"log"`
}

// PlotConfig controls sampling and rendering of the chart.
type PlotConfig struct {
	// XMin is the left end of the sampled domain
	XMin float64 `toml:"x_min" json:"x_min"`
	// XMax is the right end of the sampled domain
	XMax float64 `toml:"x_max" json:"x_max"`
	// Points is the number of samples; values below 2 are rejected when plotting
	Points int `toml:"points" json:"points"`
	// Renderer is one of "auto", "tui", "text", "png", "none"
	Renderer string `toml:"renderer" json:"renderer"`
	// Output is the PNG file path
	Output string `toml:"output" json:"output"`
	// Width is the PNG width in pixels
	Width int `toml:"width" json:"width"`
	// Height is the PNG height in pixels
	Height int `toml:"height" json:"height"`
}

// UIConfig contains terminal presentation settings.
type UIConfig struct {
	// Language is "auto", "en" or "pt-BR"
	Language string `toml:"language" json:"language"`
	// Color enables coloured terminal output
	Color bool `toml:"color" json:"color"`
}

// LogConfig contains diagnostic logging settings.
type LogConfig struct {
	// Level is "debug", "info", "warn" or "error"
	Level string `toml:"level" json:"level"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Plot: PlotConfig{
			XMin:     -10,
			XMax:     10,
			Points:   400,
			Renderer: RendererAuto,
			Output:   "parabola.png",
			Width:    800,
			Height:   500,
		},
		UI: UIConfig{
			Language: "auto",
			Color:    true,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the parabola configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".parabola"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// FindConfigFile returns the config file Load would read, TOML first.
// ok is false when neither file exists.
func FindConfigFile() (path string, ok bool) {
	for _, fn := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		p, err := fn()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(p); statErr == nil {
			return p, true
		}
	}
	return "", false
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	if path, ok := FindConfigFile(); ok {
		return LoadFromPath(path)
	}
	cfg := Default()
	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg. Keys absent from the file keep
// their current values.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return fillDefaults(cfg)
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return fillDefaults(cfg)
}

// LoadFromPath loads configuration from a specific file path with full
// validation. Files ending in .json are read as JSON, anything else as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(strings.ToLower(path), ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// finish applies env overrides, migration, defaults and validation.
func (c *Config) finish() error {
	c.ApplyEnvOverrides()
	if err := c.Migrate(); err != nil {
		return fmt.Errorf("config migration failed: %w", err)
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// fillDefaults fills in any missing values with defaults. An explicit zero
// points value is kept so the plot step can report it.
func fillDefaults(cfg *Config) error {
	defaults := Default()

	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}
	if cfg.Plot.Renderer == "" {
		cfg.Plot.Renderer = defaults.Plot.Renderer
	}
	if cfg.Plot.Output == "" {
		cfg.Plot.Output = defaults.Plot.Output
	}
	if cfg.Plot.Width == 0 {
		cfg.Plot.Width = defaults.Plot.Width
	}
	if cfg.Plot.Height == 0 {
		cfg.Plot.Height = defaults.Plot.Height
	}
	if cfg.UI.Language == "" {
		cfg.UI.Language = defaults.UI.Language
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// SaveTOML writes the configuration to path with 0600 permissions,
// creating the parent directory when needed.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# parabola configuration file")
	fmt.Fprintln(&buf, "# Generated by parabola - edit with care")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// EncodeTOML returns the configuration as TOML text.
func (c *Config) EncodeTOML() (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.String(), nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// ValidRenderers lists the accepted plot.renderer values.
var ValidRenderers = []string{RendererAuto, RendererTUI, RendererText, RendererPNG, RendererNone}

// ValidLanguages lists the accepted ui.language values.
var ValidLanguages = []string{"auto", "en", "pt-BR"}

// ValidLogLevels lists the accepted log.level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// maxImageSide bounds the PNG size.
const maxImageSide = 10000

// Validate validates the configuration and returns any errors.
// plot.points is not checked here; the grapher rejects values below 2 when
// a plot is requested.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if !containsFold(ValidRenderers, c.Plot.Renderer) {
		errs = append(errs, ValidationError{
			Field:   "plot.renderer",
			Message: fmt.Sprintf("must be one of %s, got %q", strings.Join(ValidRenderers, ", "), c.Plot.Renderer),
		})
	}
	if math.IsNaN(c.Plot.XMin) || math.IsInf(c.Plot.XMin, 0) {
		errs = append(errs, ValidationError{Field: "plot.x_min", Message: "must be a finite number"})
	}
	if math.IsNaN(c.Plot.XMax) || math.IsInf(c.Plot.XMax, 0) {
		errs = append(errs, ValidationError{Field: "plot.x_max", Message: "must be a finite number"})
	}
	if c.Plot.Width <= 0 || c.Plot.Width > maxImageSide {
		errs = append(errs, ValidationError{
			Field:   "plot.width",
			Message: fmt.Sprintf("must be between 1 and %d, got %d", maxImageSide, c.Plot.Width),
		})
	}
	if c.Plot.Height <= 0 || c.Plot.Height > maxImageSide {
		errs = append(errs, ValidationError{
			Field:   "plot.height",
			Message: fmt.Sprintf("must be between 1 and %d, got %d", maxImageSide, c.Plot.Height),
		})
	}
	if !containsFold(ValidLanguages, c.UI.Language) {
		errs = append(errs, ValidationError{
			Field:   "ui.language",
			Message: fmt.Sprintf("must be one of %s, got %q", strings.Join(ValidLanguages, ", "), c.UI.Language),
		})
	}
	if !containsFold(ValidLogLevels, c.Log.Level) {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("must be one of %s, got %q", strings.Join(ValidLogLevels, ", "), c.Log.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func containsFold(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

// SetDefaults normalizes case and fills values left empty by callers that
// build a Config by hand.
func (c *Config) SetDefaults() {
	_ = fillDefaults(c)
	c.Plot.Renderer = strings.ToLower(strings.TrimSpace(c.Plot.Renderer))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	for _, lang := range ValidLanguages {
		if strings.EqualFold(lang, c.UI.Language) {
			c.UI.Language = lang
		}
	}
}

// Migrate handles migration from old configuration values to new ones.
func (c *Config) Migrate() error {
	// "window" and "gui" were the names of the interactive renderer.
	switch strings.ToLower(c.Plot.Renderer) {
	case "window", "gui":
		c.Plot.Renderer = RendererTUI
	case "file", "image":
		c.Plot.Renderer = RendererPNG
	}
	switch strings.ToLower(c.UI.Language) {
	case "pt", "pt_br", "pt-br":
		c.UI.Language = "pt-BR"
	case "en-us", "en_us":
		c.UI.Language = "en"
	}
	if c.Log.Level == "warning" {
		c.Log.Level = "warn"
	}
	c.Version = CurrentVersion
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - PARABOLA_RENDERER: overrides plot.renderer
//   - PARABOLA_OUTPUT: overrides plot.output
//   - PARABOLA_POINTS: overrides plot.points
//   - PARABOLA_X_MIN: overrides plot.x_min
//   - PARABOLA_X_MAX: overrides plot.x_max
//   - PARABOLA_LANG: overrides ui.language
//   - PARABOLA_LOG_LEVEL: overrides log.level
//   - NO_COLOR: any non-empty value disables ui.color
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("PARABOLA_RENDERER"); v != "" {
		c.Plot.Renderer = v
	}
	if v := os.Getenv("PARABOLA_OUTPUT"); v != "" {
		c.Plot.Output = v
	}
	if v := os.Getenv("PARABOLA_POINTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Plot.Points = n
		} else {
			fmt.Fprintf(os.Stderr, "Warning: ignoring PARABOLA_POINTS=%q: %v\n", v, err)
		}
	}
	if v := os.Getenv("PARABOLA_X_MIN"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Plot.XMin = f
		} else {
			fmt.Fprintf(os.Stderr, "Warning: ignoring PARABOLA_X_MIN=%q: %v\n", v, err)
		}
	}
	if v := os.Getenv("PARABOLA_X_MAX"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Plot.XMax = f
		} else {
			fmt.Fprintf(os.Stderr, "Warning: ignoring PARABOLA_X_MAX=%q: %v\n", v, err)
		}
	}
	if v := os.Getenv("PARABOLA_LANG"); v != "" {
		c.UI.Language = v
	}
	if v := os.Getenv("PARABOLA_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if os.Getenv("NO_COLOR") != "" {
		c.UI.Color = false
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "plot.x_min").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "plot.points").
// String values are converted to the field's type.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

// lookup walks the struct along the dot-separated key.
func (c *Config) lookup(key string) (reflect.Value, error) {
	if strings.TrimSpace(key) == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			if field.Kind() == reflect.Struct {
				return reflect.Value{}, fmt.Errorf("field '%s' is a section, not a value", key)
			}
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Float64:
			floatVal, err := util.ParseFloat(strVal)
			if err != nil {
				return fmt.Errorf("invalid float value: %v", err)
			}
			field.SetFloat(floatVal)
			return nil
		case reflect.Bool:
			boolVal, err := util.ParseBool(strVal)
			if err != nil {
				return fmt.Errorf("invalid boolean value: %v", err)
			}
			field.SetBool(boolVal)
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) && val.Kind() != reflect.String {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"plot.x_min",
		"plot.x_max",
		"plot.points",
		"plot.renderer",
		"plot.output",
		"plot.width",
		"plot.height",
		"ui.language",
		"ui.color",
		"log.level",
	}
}
