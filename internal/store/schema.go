// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

const (
	// SchemaVersion tracks the logging database schema version
	SchemaVersion = 1
)

// Schema is the SQLite layout shared by the shell and the simulation engine.
const Schema = `
-- Metadata table for schema version
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
) WITHOUT ROWID;

-- One row per simulation run, keyed by its start time
CREATE TABLE IF NOT EXISTS simulations (
    start_time TEXT PRIMARY KEY,
    simulation_name TEXT NOT NULL,
    simulation_id TEXT NOT NULL UNIQUE
);

-- Run parameters as key/value text
CREATE TABLE IF NOT EXISTS parameters (
    start_time TEXT NOT NULL,
    key TEXT NOT NULL,
    value TEXT,
    PRIMARY KEY (start_time, key),
    FOREIGN KEY(start_time) REFERENCES simulations(start_time) ON DELETE CASCADE
);

-- Per-generation organism snapshots
CREATE TABLE IF NOT EXISTS organisms (
    start_time TEXT NOT NULL,
    generation INTEGER NOT NULL,
    population TEXT NOT NULL,
    identity TEXT NOT NULL,
    genome TEXT,
    fitness REAL,
    location TEXT,
    deme TEXT,
    FOREIGN KEY(start_time) REFERENCES simulations(start_time) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_organisms_run ON organisms(start_time, generation);

-- Per-generation ecosystem cell snapshots
CREATE TABLE IF NOT EXISTS world (
    start_time TEXT NOT NULL,
    generation INTEGER NOT NULL,
    x INTEGER NOT NULL,
    y INTEGER NOT NULL,
    z INTEGER NOT NULL,
    local TEXT,
    FOREIGN KEY(start_time) REFERENCES simulations(start_time) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_world_run ON world(start_time, generation);
`

// InitMetadata seeds the metadata table.
const InitMetadata = `
INSERT OR IGNORE INTO metadata (key, value) VALUES ('schema_version', '1');
`
