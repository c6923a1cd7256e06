// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrClosed is returned when a connector or cursor is used after Close.
	ErrClosed = errors.New("database connection closed")
	// ErrNoCursor is returned when a query is issued without a cursor.
	ErrNoCursor = errors.New("no database cursor")
)

// =============================================================================
// OPTIONS
// =============================================================================

// Option configures Connect.
type Option func(*options)

type options struct {
	busyTimeout time.Duration
	logger      *zap.Logger
}

// WithBusyTimeout sets how long SQLite waits on a locked database.
func WithBusyTimeout(d time.Duration) Option {
	return func(o *options) { o.busyTimeout = d }
}

// WithLogger attaches a diagnostic logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// =============================================================================
// CONNECTOR / CURSOR
// =============================================================================

// Connector owns an open logging database.
type Connector struct {
	db     *sql.DB
	path   string
	logger *zap.Logger

	mu     sync.Mutex
	closed bool
}

// Cursor is the query handle paired with a Connector.
type Cursor struct {
	conn *Connector
}

// Connect opens (creating if needed) the logging database at path and
// returns its connector and cursor.
func Connect(ctx context.Context, path string, opts ...Option) (*Connector, *Cursor, error) {
	o := options{busyTimeout: 5 * time.Second, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	if path == "" {
		return nil, nil, errors.New("database path cannot be empty")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, errors.Wrap(err, "failed to create database directory")
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open database")
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		fmt.Sprintf("PRAGMA busy_timeout=%d", o.busyTimeout.Milliseconds()),
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, nil, errors.Wrapf(err, "failed to set pragma %q", pragma)
		}
	}

	if _, err := db.ExecContext(ctx, Schema); err != nil {
		db.Close()
		return nil, nil, errors.Wrap(err, "failed to initialize schema")
	}
	if _, err := db.ExecContext(ctx, InitMetadata); err != nil {
		db.Close()
		return nil, nil, errors.Wrap(err, "failed to initialize metadata")
	}

	conn := &Connector{db: db, path: path, logger: o.logger}
	o.logger.Debug("logging database connected", zap.String("path", path))
	return conn, &Cursor{conn: conn}, nil
}

// Path returns the database file path.
func (c *Connector) Path() string {
	return c.path
}

// String renders the connector for the environment listing.
func (c *Connector) String() string {
	if c == nil {
		return "<nil>"
	}
	return fmt.Sprintf("<sqlite connector %s>", c.path)
}

// Cursor returns a fresh cursor on this connector.
func (c *Connector) Cursor() *Cursor {
	return &Cursor{conn: c}
}

// Close releases the database. Calling Close twice is a no-op.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.logger.Debug("logging database closed", zap.String("path", c.path))
	return c.db.Close()
}

func (c *Connector) handle() (*sql.DB, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, errors.Wrapf(ErrClosed, "%s", c.path)
	}
	return c.db, nil
}

// String renders the cursor for the environment listing.
func (cur *Cursor) String() string {
	if cur == nil || cur.conn == nil {
		return "<nil>"
	}
	return fmt.Sprintf("<sqlite cursor %s>", cur.conn.path)
}

// Connector returns the connector this cursor queries.
func (cur *Cursor) Connector() *Connector {
	return cur.conn
}

// =============================================================================
// QUERIES
// =============================================================================

// Simulation is one recorded run.
type Simulation struct {
	StartTime string
	Name      string
}

// String renders the run as [<start_time>, <name>].
func (s Simulation) String() string {
	return "[" + s.StartTime + ", " + s.Name + "]"
}

// ListSimulations returns every recorded run ordered by start time.
func ListSimulations(ctx context.Context, cur *Cursor) ([]Simulation, error) {
	if cur == nil || cur.conn == nil {
		return nil, ErrNoCursor
	}
	db, err := cur.conn.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		"SELECT start_time, simulation_name FROM simulations ORDER BY start_time")
	if err != nil {
		return nil, errors.Wrap(err, "failed to list simulations")
	}
	defer rows.Close()

	var sims []Simulation
	for rows.Next() {
		var s Simulation
		if err := rows.Scan(&s.StartTime, &s.Name); err != nil {
			return nil, errors.Wrap(err, "failed to scan simulation")
		}
		sims = append(sims, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate simulations")
	}
	return sims, nil
}
