// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DOSE_SHELL_NAME", "DOSE_UNSAFE_EXEC", "DOSE_HISTORY_FILE",
		"DOSE_LOG_FILE", "DOSE_LOG_LEVEL", "DOSE_STORE_WATCH", "NO_COLOR",
	} {
		if v, ok := os.LookupEnv(key); ok {
			require.NoError(t, os.Unsetenv(key))
			t.Cleanup(func() { os.Setenv(key, v) })
		}
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "DOSE", cfg.Shell.Name)
	assert.False(t, cfg.Shell.UnsafeExec, "py must be disabled by default")
	assert.Equal(t, 10*time.Second, cfg.Shell.EvalTimeout.Duration)
	assert.Equal(t, 5000, cfg.Store.BusyTimeoutMs)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "auto", cfg.UI.Color)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_ExplicitFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[shell]
name = "EVO"
unsafe_exec = true
eval_timeout = "2s"

[store]
watch = false

[log]
file = "-"
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "EVO", cfg.Shell.Name)
	assert.True(t, cfg.Shell.UnsafeExec)
	assert.Equal(t, 2*time.Second, cfg.Shell.EvalTimeout.Duration)
	assert.False(t, cfg.Store.Watch)
	assert.Equal(t, "-", cfg.Log.File)
	assert.Equal(t, "debug", cfg.Log.Level)
	// untouched keys keep their defaults
	assert.Equal(t, 5000, cfg.Store.BusyTimeoutMs)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestLoad_UnknownKey(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[shell]\nprompt = \"x\"\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shell.prompt")
}

func TestLoad_InvalidValues(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[shell]
name = "has space"

[log]
level = "loud"

[ui]
color = "rainbow"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := Load(path)
	require.Error(t, err)

	var verrs ValidateErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 3)
}

func TestApplyEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DOSE_SHELL_NAME", "LAB")
	t.Setenv("DOSE_UNSAFE_EXEC", "true")
	t.Setenv("DOSE_LOG_LEVEL", "warn")
	t.Setenv("DOSE_STORE_WATCH", "0")
	t.Setenv("NO_COLOR", "")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "LAB", cfg.Shell.Name)
	assert.True(t, cfg.Shell.UnsafeExec)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.False(t, cfg.Store.Watch)
	assert.Equal(t, "never", cfg.UI.Color)
}

func TestSetDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()

	assert.Equal(t, "DOSE", cfg.Shell.Name)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "auto", cfg.UI.Color)
	assert.NotZero(t, cfg.Store.WatchDebounce.Duration)
}

func TestSaveTOML_RoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Shell.Name = "ROUND"
	cfg.Shell.EvalTimeout = Duration{3 * time.Second}
	require.NoError(t, SaveTOML(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ROUND", loaded.Shell.Name)
	assert.Equal(t, 3*time.Second, loaded.Shell.EvalTimeout.Duration)
}
