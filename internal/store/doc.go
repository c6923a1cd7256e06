// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store implements the simulation logging database on SQLite.
//
// The shell only reads from the store (connect, list simulations). The
// report functions are the write side used by a simulation run that logs
// into the same file.
//
// # Key Types
//
//   - Connector: Owns the open database
//   - Cursor: Query handle passed to ListSimulations
//   - Simulation: One recorded run (start time, name)
//   - Watcher: fsnotify-based change notification for the database file
//
// # Usage
//
//	conn, cur, err := store.Connect(ctx, "/data/sim.db")
//	if err != nil {
//	    return err
//	}
//	defer conn.Close()
//
//	sims, err := store.ListSimulations(ctx, cur)
package store
