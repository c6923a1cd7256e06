// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"context"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Organism is one individual in a population snapshot.
type Organism struct {
	Identity string
	Genome   string
	Fitness  float64
	Location string
	Deme     string
}

// Cell is one ecosystem cell in a world snapshot.
type Cell struct {
	X, Y, Z int
	Local   string
}

// RecordSimulation registers a run and its parameters, returning the run id.
func (c *Connector) RecordSimulation(ctx context.Context, startTime, name string, params map[string]string) (uuid.UUID, error) {
	db, err := c.handle()
	if err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO simulations (start_time, simulation_name, simulation_id) VALUES (?, ?, ?)",
		startTime, name, id.String()); err != nil {
		return uuid.Nil, errors.Wrapf(err, "failed to record simulation %q", name)
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO parameters (start_time, key, value) VALUES (?, ?, ?)",
			startTime, k, params[k]); err != nil {
			return uuid.Nil, errors.Wrapf(err, "failed to record parameter %q", k)
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to commit simulation")
	}
	c.logger.Info("simulation recorded",
		zap.String("start_time", startTime),
		zap.String("name", name),
		zap.Stringer("id", id))
	return id, nil
}

// ReportPopulation writes one generation of a population.
func (c *Connector) ReportPopulation(ctx context.Context, startTime string, generation int, population string, organisms []Organism) error {
	db, err := c.handle()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO organisms (start_time, generation, population, identity, genome, fitness, location, deme)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "failed to prepare organism insert")
	}
	defer stmt.Close()

	for _, org := range organisms {
		if _, err := stmt.ExecContext(ctx, startTime, generation, population,
			org.Identity, org.Genome, org.Fitness, org.Location, org.Deme); err != nil {
			return errors.Wrapf(err, "failed to report organism %q", org.Identity)
		}
	}
	return errors.Wrap(tx.Commit(), "failed to commit population report")
}

// ReportWorld writes one generation of the ecosystem.
func (c *Connector) ReportWorld(ctx context.Context, startTime string, generation int, cells []Cell) error {
	db, err := c.handle()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO world (start_time, generation, x, y, z, local) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return errors.Wrap(err, "failed to prepare world insert")
	}
	defer stmt.Close()

	for _, cell := range cells {
		if _, err := stmt.ExecContext(ctx, startTime, generation, cell.X, cell.Y, cell.Z, cell.Local); err != nil {
			return errors.Wrapf(err, "failed to report cell (%d, %d, %d)", cell.X, cell.Y, cell.Z)
		}
	}
	return errors.Wrap(tx.Commit(), "failed to commit world report")
}

// CountOrganisms returns how many organism rows a run has at generation.
func (c *Connector) CountOrganisms(ctx context.Context, startTime string, generation int) (int, error) {
	db, err := c.handle()
	if err != nil {
		return 0, err
	}
	var n int
	err = db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM organisms WHERE start_time = ? AND generation = ?",
		startTime, generation).Scan(&n)
	if err != nil {
		return 0, errors.Wrap(err, "failed to count organisms")
	}
	return n, nil
}
