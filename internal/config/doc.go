// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the DOSE shell.
//
// Configuration is TOML, layered as built-in defaults, then the config file,
// then DOSE_* environment variables, then command-line flags (applied by the
// caller).
//
// # Key Types
//
//   - Config: Main configuration structure
//   - ShellConfig: Prompt name, py gating, line history
//   - StoreConfig: SQLite logging store behaviour
//   - LogConfig: Diagnostic log destination and level
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Shell.Name)
package config
