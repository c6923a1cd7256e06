// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util holds small file helpers shared by the DOSE packages.
//
// AtomicWriteFile is used for files the shell rewrites wholesale (the TOML
// configuration and the line-editor history) so that a crash never leaves
// them half written. Session saves append instead and do not use it.
package util
