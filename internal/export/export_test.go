// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sharlene98/dose/internal/session"
)

var start = time.Date(2013, 5, 1, 9, 30, 0, 0, time.UTC)

func newSession(t *testing.T, cwd string, lines ...string) *session.Session {
	t.Helper()
	sess := session.New(cwd, start)
	for _, line := range lines {
		require.NoError(t, sess.Record(sess.NextSeq(), line))
	}
	return sess
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"history", ModeHistory, false},
		{"WORKSPACE", ModeWorkspace, false},
		{"everything", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			assert.True(t, errors.Is(err, ErrUnknownMode))
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHistoryExporter(t *testing.T) {
	sess := newSession(t, "/work", "help", "show history")

	var buf bytes.Buffer
	require.NoError(t, HistoryExporter{}.Export(&buf, sess))

	want := strings.Join([]string{
		"Date time stamp of current session: 2013-05-01T09:30:00.000000Z",
		"Command | 1 | help",
		"Command | 2 | show history",
		Separator,
	}, "\n") + "\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("history export mismatch (-want +got):\n%s", diff)
	}
}

func TestWorkspaceExporter(t *testing.T) {
	sess := newSession(t, "/work", "help nope", "show history 1", "credits")
	require.NoError(t, sess.RecordResult(1, "nope is not a valid command; hence, no help is available."))
	require.NoError(t, sess.RecordResult(2, "help nope"))

	var buf bytes.Buffer
	require.NoError(t, WorkspaceExporter{}.Export(&buf, sess))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	// header + 8 environment + 3 commands + 2 data + separator
	require.Len(t, lines, 1+len(session.Fields)+3+2+1)

	assert.Equal(t, "Environment | command_count | 0", lines[1])
	assert.Equal(t, "Environment | cwd | /work", lines[2])
	assert.Equal(t, "Environment | database_file | <unset>", lines[5])

	tail := lines[1+len(session.Fields):]
	want := []string{
		"Command | 1 | help nope",
		"Data | 1 | nope is not a valid command; hence, no help is available.",
		"Command | 2 | show history 1",
		"Data | 2 | help nope",
		"Command | 3 | credits",
		Separator,
	}
	if diff := cmp.Diff(want, tail); diff != "" {
		t.Errorf("workspace body mismatch (-want +got):\n%s", diff)
	}
}

func TestAppendToFile_Appends(t *testing.T) {
	dir := t.TempDir()
	sess := newSession(t, dir, "help", "list", "save history Out.TXT")

	path, err := AppendToFile(sess, For(ModeHistory), "Out.TXT")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Out.TXT"), path)

	_, err = AppendToFile(sess, For(ModeHistory), "Out.TXT")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	// two blocks of header + 3 lines + separator
	assert.Len(t, lines, 2*(1+3+1))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm()&0644)
}

func TestAppendToFile_DefaultName(t *testing.T) {
	dir := t.TempDir()
	sess := newSession(t, dir, "save workspace")

	path, err := AppendToFile(sess, For(ModeWorkspace), "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "saved.2013-05-01T09:30:00.000000Z.txt"), path)
	assert.FileExists(t, path)
}

func TestAppendToFile_OpenFailure(t *testing.T) {
	sess := newSession(t, filepath.Join(t.TempDir(), "missing-dir"), "save history")

	_, err := AppendToFile(sess, For(ModeHistory), "x.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
