// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"
	"github.com/mattn/go-runewidth"

	"github.com/Sharlene98/dose/internal/commands"
	"github.com/Sharlene98/dose/internal/store"
)

// MarkdownAuto selects glamour's dark or light style from the terminal
// background.
const MarkdownAuto = "auto"

// startTimeWidth fits the start_time format YYYY-MM-DD-HH-MM-SS plus padding.
const startTimeWidth = 22

// TerminalRenderer renders handler output for a color terminal.
type TerminalRenderer struct {
	width    int
	markdown *glamour.TermRenderer // nil renders help as plain text
}

var _ commands.Renderer = (*TerminalRenderer)(nil)

// NewTerminalRenderer creates a renderer for a terminal width columns wide.
// markdownStyle is a glamour style name, MarkdownAuto, or "" to keep help
// pages as plain text.
func NewTerminalRenderer(width int, markdownStyle string) (*TerminalRenderer, error) {
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	r := &TerminalRenderer{width: width}
	if markdownStyle == "" {
		return r, nil
	}

	styleOpt := glamour.WithStylePath(markdownStyle)
	if markdownStyle == MarkdownAuto {
		styleOpt = glamour.WithAutoStyle()
	}
	md, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width-4))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create markdown renderer")
	}
	r.markdown = md
	return r, nil
}

// Help implements commands.Renderer.
func (r *TerminalRenderer) Help(plain, markdown string) string {
	if r.markdown == nil || markdown == "" {
		return plain
	}
	out, err := r.markdown.Render(markdown)
	if err != nil {
		return plain
	}
	return strings.TrimRight(out, "\n")
}

// Simulations implements commands.Renderer as a two-column table.
func (r *TerminalRenderer) Simulations(sims []store.Simulation) string {
	if len(sims) == 0 {
		return ""
	}

	nameWidth := r.width - startTimeWidth - 4
	rows := make([]table.Row, len(sims))
	for i, s := range sims {
		rows[i] = table.Row{s.StartTime, runewidth.Truncate(s.Name, nameWidth-2, "…")}
	}

	styles := table.DefaultStyles()
	styles.Header = TableHeaderStyle
	styles.Cell = TableCellStyle
	styles.Selected = lipgloss.NewStyle()

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Start time", Width: startTimeWidth - 2},
			{Title: "Simulation", Width: nameWidth - 2},
		}),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
		table.WithStyles(styles),
	)

	lines := strings.Split(t.View(), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// Statement implements commands.Renderer with Go syntax highlighting.
func (r *TerminalRenderer) Statement(src string) string {
	var sb strings.Builder
	if err := quick.Highlight(&sb, src, "go", "terminal256", "monokai"); err != nil {
		return DimStyle.Render(">>> " + src)
	}
	return DimStyle.Render(">>> ") + sb.String()
}

// Error implements commands.Renderer.
func (r *TerminalRenderer) Error(msg string) string {
	return ErrorStyle.Render(msg)
}

// Notice implements commands.Renderer.
func (r *TerminalRenderer) Notice(msg string) string {
	return NoticeStyle.Render(msg)
}
