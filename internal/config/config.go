/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package config loads the user configuration for the snapguide tools: snapping
// thresholds per axis and strategy, the match tolerance and logging. It is
// persisted as YAML in the user scope; environment variables are read-only
// overrides applied at load time.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	applog "snapguide/internal/log"
	"snapguide/internal/snap"
)

// CurrentVersion is bumped when the file layout changes incompatibly.
const CurrentVersion = 1

type LoggingConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format string `yaml:"format" validate:"omitempty,oneof=console json"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// Options converts the logging section for log.Init.
func (l LoggingConfig) Options() applog.Options {
	return applog.Options{Level: l.Level, Format: l.Format, AddSource: l.Source, File: l.File}
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version" validate:"gte=0"`
	Snap          snap.Config   `yaml:"snap"`
	Tolerance     float64       `yaml:"tolerance" validate:"gte=0"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: CurrentVersion,
		Snap:          snap.DefaultConfig(),
		Tolerance:     0.5,
		Logging:       LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvTolerance       = "SNAP_TOLERANCE"
	EnvThreshold       = "SNAP_THRESHOLD" // applies to every strategy on both axes
	EnvDisableGuides   = "SNAP_DISABLE_GUIDES"
	EnvDisableGeometry = "SNAP_DISABLE_GEOMETRY"
	EnvDisableSpacing  = "SNAP_DISABLE_SPACING"
	EnvLogLevel        = applog.EnvLevel
	EnvLogFormat       = applog.EnvFormat
	EnvLogSource       = applog.EnvSource
	EnvLogFile         = applog.EnvFile
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "SnapGuide")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "SnapGuide")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "snapguide")
		} else {
			base = filepath.Join(os.Getenv("HOME"), ".config", "snapguide")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file if present. See LoadFile.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return Defaults(), err
	}
	return LoadFile(path)
}

// LoadFile starts from Defaults, overlays the YAML file at path (a missing
// file is not an error), applies environment overrides and validates.
func LoadFile(path string) (AppConfig, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		// decoded over the defaults so absent keys keep their default
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		normalize(&cfg)
	case !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	applyEnvOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes cfg as YAML to path, creating parent directories.
func Save(cfg AppConfig, path string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Validate checks value ranges (thresholds and tolerance must not be negative).
func (c AppConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func normalize(c *AppConfig) {
	if c.ConfigVersion == 0 {
		c.ConfigVersion = CurrentVersion
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.File = strings.TrimSpace(c.Logging.File)
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvTolerance)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Tolerance = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvThreshold)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			eachStrategy(&cfg.Snap, func(_ string, s *snap.Strategy) { s.Threshold = f })
		}
	}
	disabled := map[string]bool{
		"guides":   parseBool(os.Getenv(EnvDisableGuides)),
		"geometry": parseBool(os.Getenv(EnvDisableGeometry)),
		"spacing":  parseBool(os.Getenv(EnvDisableSpacing)),
	}
	eachStrategy(&cfg.Snap, func(name string, s *snap.Strategy) {
		if disabled[name] {
			s.Enabled = false
		}
	})

	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

func eachStrategy(c *snap.Config, fn func(name string, s *snap.Strategy)) {
	for _, ax := range []*snap.AxisConfig{&c.X, &c.Y} {
		fn("guides", &ax.Guides)
		fn("geometry", &ax.Geometry)
		fn("spacing", &ax.Spacing)
	}
}

func parseBool(v string) bool {
	lv := strings.ToLower(strings.TrimSpace(v))
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	env := map[string]string{
		"tolerance":      EnvTolerance,
		"snap.threshold": EnvThreshold,
		"snap.guides":    EnvDisableGuides,
		"snap.geometry":  EnvDisableGeometry,
		"snap.spacing":   EnvDisableSpacing,
		"logging.level":  EnvLogLevel,
		"logging.format": EnvLogFormat,
		"logging.source": EnvLogSource,
		"logging.file":   EnvLogFile,
	}[key]
	if env != "" && os.Getenv(env) != "" {
		return env, true
	}
	return "", false
}
