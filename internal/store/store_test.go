// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func openTemp(t *testing.T) (*Connector, *Cursor, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sim.db")
	conn, cur, err := Connect(context.Background(), path,
		WithBusyTimeout(time.Second), WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn, cur, path
}

func TestConnect_CreatesDatabase(t *testing.T) {
	conn, cur, path := openTemp(t)

	_, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, path, conn.Path())
	assert.Same(t, conn, cur.Connector())
	assert.Contains(t, conn.String(), path)
	assert.Contains(t, cur.String(), "cursor")

	sims, err := ListSimulations(context.Background(), cur)
	require.NoError(t, err)
	assert.Empty(t, sims)
}

func TestConnect_EmptyPath(t *testing.T) {
	_, _, err := Connect(context.Background(), "")
	require.Error(t, err)
}

func TestRecordAndListSimulations(t *testing.T) {
	ctx := context.Background()
	conn, cur, _ := openTemp(t)

	id, err := conn.RecordSimulation(ctx, "2013-05-02 10:00:00", "second run",
		map[string]string{"population_size": "100"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	_, err = conn.RecordSimulation(ctx, "2013-05-01 09:00:00", "first run", nil)
	require.NoError(t, err)

	sims, err := ListSimulations(ctx, cur)
	require.NoError(t, err)

	want := []Simulation{
		{StartTime: "2013-05-01 09:00:00", Name: "first run"},
		{StartTime: "2013-05-02 10:00:00", Name: "second run"},
	}
	if diff := cmp.Diff(want, sims); diff != "" {
		t.Errorf("ListSimulations() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "[2013-05-01 09:00:00, first run]", sims[0].String())
}

func TestRecordSimulation_DuplicateStartTime(t *testing.T) {
	ctx := context.Background()
	conn, _, _ := openTemp(t)

	_, err := conn.RecordSimulation(ctx, "t0", "a", nil)
	require.NoError(t, err)
	_, err = conn.RecordSimulation(ctx, "t0", "b", nil)
	require.Error(t, err)
}

func TestReports(t *testing.T) {
	ctx := context.Background()
	conn, _, _ := openTemp(t)

	_, err := conn.RecordSimulation(ctx, "t0", "run", nil)
	require.NoError(t, err)

	orgs := []Organism{
		{Identity: "a1", Genome: "0101", Fitness: 0.5, Location: "(0, 0, 0)", Deme: "default"},
		{Identity: "a2", Genome: "1100", Fitness: 0.75, Location: "(0, 0, 0)", Deme: "default"},
	}
	require.NoError(t, conn.ReportPopulation(ctx, "t0", 1, "pop_01", orgs))
	require.NoError(t, conn.ReportWorld(ctx, "t0", 1, []Cell{{X: 0, Y: 0, Z: 0, Local: "{}"}}))

	n, err := conn.CountOrganisms(ctx, "t0", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// foreign keys are enforced
	err = conn.ReportWorld(ctx, "missing", 1, []Cell{{}})
	require.Error(t, err)
}

func TestClosedConnector(t *testing.T) {
	conn, cur, _ := openTemp(t)
	require.NoError(t, conn.Close())
	require.NoError(t, conn.Close())

	_, err := ListSimulations(context.Background(), cur)
	assert.True(t, errors.Is(err, ErrClosed))

	_, err = ListSimulations(context.Background(), nil)
	assert.True(t, errors.Is(err, ErrNoCursor))
}

func TestWatcher_DetectsWrites(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	path := filepath.Join(dir, "sim.db")
	require.NoError(t, os.WriteFile(path, []byte("seed"), 0644))

	w, err := NewWatcher(path, 20*time.Millisecond, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, w.Start())

	assert.False(t, w.Changed())

	// unrelated files are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644))
	time.Sleep(100 * time.Millisecond)
	assert.False(t, w.Changed())

	require.NoError(t, os.WriteFile(path, []byte("update"), 0644))
	assert.Eventually(t, w.Changed, 2*time.Second, 10*time.Millisecond)

	// the flag is cleared once read
	assert.False(t, w.Changed())

	require.NoError(t, w.Close())
}
