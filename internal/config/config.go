// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"

	"github.com/Sharlene98/dose/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete DOSE shell configuration.
type Config struct {
	// Shell behaviour
	Shell ShellConfig `toml:"shell"`

	// Simulation logging store
	Store StoreConfig `toml:"store"`

	// Diagnostic log
	Log LogConfig `toml:"log"`

	// Terminal rendering
	UI UIConfig `toml:"ui"`
}

// ShellConfig contains settings for the interactive command loop.
type ShellConfig struct {
	// Name is shown in the prompt as "<Name>:<count> > "
	Name string `toml:"name"`
	// UnsafeExec enables the py command (unsandboxed statement evaluation)
	UnsafeExec bool `toml:"unsafe_exec"`
	// EvalTimeout bounds a single py statement
	EvalTimeout Duration `toml:"eval_timeout"`
	// HistoryFile persists line-editor history between runs ("" disables it)
	HistoryFile string `toml:"history_file"`
	// MarkdownHelp renders help text through glamour on colour terminals
	MarkdownHelp bool `toml:"markdown_help"`
}

// StoreConfig contains settings for the SQLite logging store.
type StoreConfig struct {
	// BusyTimeoutMs is passed to SQLite as PRAGMA busy_timeout
	BusyTimeoutMs int `toml:"busy_timeout_ms"`
	// Watch reports writes to the connected database made by other processes
	Watch bool `toml:"watch"`
	// WatchDebounce coalesces bursts of write events
	WatchDebounce Duration `toml:"watch_debounce"`
}

// LogConfig contains diagnostic logging settings.
type LogConfig struct {
	// File is the JSON log destination; "-" disables logging
	File string `toml:"file"`
	// Level is one of debug, info, warn, error
	Level string `toml:"level"`
}

// UIConfig contains terminal rendering settings.
type UIConfig struct {
	// Color is one of auto, always, never
	Color string `toml:"color"`
}

// Duration wraps time.Duration so it can be written as "5s" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrapf(err, "invalid duration %q", string(text))
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Shell: ShellConfig{
			Name:         "DOSE",
			UnsafeExec:   false,
			EvalTimeout:  Duration{10 * time.Second},
			HistoryFile:  defaultPath("history"),
			MarkdownHelp: true,
		},
		Store: StoreConfig{
			BusyTimeoutMs: 5000,
			Watch:         true,
			WatchDebounce: Duration{250 * time.Millisecond},
		},
		Log: LogConfig{
			File:  defaultPath("dose.log"),
			Level: "info",
		},
		UI: UIConfig{
			Color: "auto",
		},
	}
}

// defaultPath returns name inside the config directory, or "" if the home
// directory cannot be determined.
func defaultPath(name string) string {
	dir, err := ConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, name)
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the DOSE configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "could not determine home directory")
	}
	return filepath.Join(home, ".dose"), nil
}

// ConfigPath returns the path to the default TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureDir creates the parent directory of path if needed.
func EnsureDir(path string) error {
	if path == "" || path == "-" {
		return nil
	}
	return os.MkdirAll(filepath.Dir(path), 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads the configuration from path. An empty path means the default
// location; a missing default file yields the built-in defaults. Environment
// overrides are applied after the file and before validation.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := ConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, err
		}
	} else if explicit {
		return nil, errors.Wrapf(err, "config file %s", path)
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file on top of cfg.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return errors.Wrap(err, "failed to decode TOML file")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return errors.Newf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// SaveTOML writes cfg to path, creating the parent directory. The file is
// replaced atomically.
func SaveTOML(cfg *Config, path string) error {
	return util.AtomicWriteFile(path, 0644, func(w io.Writer) error {
		fmt.Fprintln(w, "# DOSE shell configuration file")
		fmt.Fprintln(w, "")
		if err := toml.NewEncoder(w).Encode(cfg); err != nil {
			return errors.Wrap(err, "failed to encode config")
		}
		return nil
	})
}

// SetDefaults fills zero values that would otherwise break the shell.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Shell.Name == "" {
		c.Shell.Name = defaults.Shell.Name
	}
	if c.Shell.EvalTimeout.Duration == 0 {
		c.Shell.EvalTimeout = defaults.Shell.EvalTimeout
	}
	if c.Store.BusyTimeoutMs == 0 {
		c.Store.BusyTimeoutMs = defaults.Store.BusyTimeoutMs
	}
	if c.Store.WatchDebounce.Duration == 0 {
		c.Store.WatchDebounce = defaults.Store.WatchDebounce
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.UI.Color == "" {
		c.UI.Color = defaults.UI.Color
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides.
//
// Supported environment variables:
//   - DOSE_SHELL_NAME: overrides shell.name
//   - DOSE_UNSAFE_EXEC: "1" or "true" enables py
//   - DOSE_HISTORY_FILE: overrides shell.history_file
//   - DOSE_LOG_FILE: overrides log.file
//   - DOSE_LOG_LEVEL: overrides log.level
//   - DOSE_STORE_WATCH: "1"/"true" or "0"/"false"
//   - NO_COLOR: forces ui.color = never
func (c *Config) ApplyEnvOverrides() {
	if name := os.Getenv("DOSE_SHELL_NAME"); name != "" {
		c.Shell.Name = name
	}
	if v := os.Getenv("DOSE_UNSAFE_EXEC"); v != "" {
		c.Shell.UnsafeExec = parseBool(v)
	}
	if v, ok := os.LookupEnv("DOSE_HISTORY_FILE"); ok {
		c.Shell.HistoryFile = v
	}
	if v := os.Getenv("DOSE_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("DOSE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("DOSE_STORE_WATCH"); v != "" {
		c.Store.Watch = parseBool(v)
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		c.UI.Color = "never"
	}
}

func parseBool(v string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	return err == nil && b
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
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns every problem found.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if strings.ContainsAny(c.Shell.Name, " \t\r\n:") {
		errs = append(errs, ValidationError{
			Field:   "shell.name",
			Message: fmt.Sprintf("must not contain whitespace or ':', got %q", c.Shell.Name),
		})
	}
	if c.Shell.EvalTimeout.Duration < 0 {
		errs = append(errs, ValidationError{
			Field:   "shell.eval_timeout",
			Message: "cannot be negative",
		})
	}
	if c.Store.BusyTimeoutMs < 0 {
		errs = append(errs, ValidationError{
			Field:   "store.busy_timeout_ms",
			Message: fmt.Sprintf("cannot be negative, got %d", c.Store.BusyTimeoutMs),
		})
	}
	if c.Store.WatchDebounce.Duration < 0 {
		errs = append(errs, ValidationError{
			Field:   "store.watch_debounce",
			Message: "cannot be negative",
		})
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}

	validColors := map[string]bool{"auto": true, "always": true, "never": true}
	if !validColors[strings.ToLower(c.UI.Color)] {
		errs = append(errs, ValidationError{
			Field:   "ui.color",
			Message: fmt.Sprintf("invalid color mode '%s', must be one of: auto, always, never", c.UI.Color),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
