// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/Sharlene98/dose/internal/session"
)

// Separator terminates every saved block.
var Separator = strings.Repeat("=", 35)

// ErrUnknownMode is returned by ParseMode for anything but history/workspace.
var ErrUnknownMode = errors.New("unknown save mode")

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter writes one saved block for a session.
type Exporter interface {
	// Export writes the block, header through separator, to w.
	Export(w io.Writer, sess *session.Session) error

	// Mode returns the save option that selects this exporter.
	Mode() Mode
}

// Mode selects what a save writes.
type Mode string

const (
	// ModeHistory writes the header, the history and the separator.
	ModeHistory Mode = "history"
	// ModeWorkspace also writes the environment and recorded data.
	ModeWorkspace Mode = "workspace"
)

// ParseMode matches s case-insensitively against the known modes.
func ParseMode(s string) (Mode, error) {
	switch {
	case strings.EqualFold(s, string(ModeHistory)):
		return ModeHistory, nil
	case strings.EqualFold(s, string(ModeWorkspace)):
		return ModeWorkspace, nil
	default:
		return "", errors.Wrapf(ErrUnknownMode, "%q", s)
	}
}

// For returns the exporter for mode.
func For(mode Mode) Exporter {
	if mode == ModeWorkspace {
		return WorkspaceExporter{}
	}
	return HistoryExporter{}
}

// =============================================================================
// EXPORTERS
// =============================================================================

// HistoryExporter writes the command history.
type HistoryExporter struct{}

// Mode implements Exporter.
func (HistoryExporter) Mode() Mode { return ModeHistory }

// Export implements Exporter.
func (HistoryExporter) Export(w io.Writer, sess *session.Session) error {
	bw := &lineWriter{w: w}
	bw.header(sess)
	for _, e := range sess.History().Entries() {
		bw.record("Command", strconv.Itoa(e.Seq), e.Text)
	}
	bw.line(Separator)
	return bw.err
}

// WorkspaceExporter writes environment, history and data.
type WorkspaceExporter struct{}

// Mode implements Exporter.
func (WorkspaceExporter) Mode() Mode { return ModeWorkspace }

// Export implements Exporter.
func (WorkspaceExporter) Export(w io.Writer, sess *session.Session) error {
	bw := &lineWriter{w: w}
	bw.header(sess)
	for _, e := range sess.Environment().Entries() {
		bw.record("Environment", string(e.Key), session.Format(e.Value))
	}
	for _, e := range sess.History().Entries() {
		n := strconv.Itoa(e.Seq)
		bw.record("Command", n, e.Text)
		if v, ok := sess.Results().Get(e.Seq); ok {
			bw.record("Data", n, session.Format(v))
		}
	}
	bw.line(Separator)
	return bw.err
}

// lineWriter stops at the first write error and keeps it.
type lineWriter struct {
	w   io.Writer
	err error
}

func (lw *lineWriter) line(s string) {
	if lw.err != nil {
		return
	}
	_, lw.err = io.WriteString(lw.w, s+"\n")
}

func (lw *lineWriter) record(kind, key, value string) {
	lw.line(kind + " | " + key + " | " + value)
}

func (lw *lineWriter) header(sess *session.Session) {
	lw.line("Date time stamp of current session: " + session.FormatTime(sess.StartingTime()))
}

// =============================================================================
// FILE OUTPUT
// =============================================================================

// DefaultFilename is used when save is given no file name.
func DefaultFilename(sess *session.Session) string {
	return fmt.Sprintf("saved.%s.txt", session.FormatTime(sess.StartingTime()))
}

// AppendToFile appends one block to <cwd>/<filename> and returns the path.
// The file is created with mode 0644 when missing and is always closed.
// A failed write leaves whatever was already appended in place.
func AppendToFile(sess *session.Session, exporter Exporter, filename string) (path string, err error) {
	if filename == "" {
		filename = DefaultFilename(sess)
	}
	path = filepath.Join(sess.Cwd(), filename)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return path, errors.Wrapf(err, "open %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()

	if err := exporter.Export(f, sess); err != nil {
		return path, errors.Wrapf(err, "write %s", path)
	}
	return path, nil
}
