// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// ApplyColorProfile configures lipgloss for the color decision. Called once
// at startup, before anything is rendered.
func ApplyColorProfile(enabled bool) {
	lipgloss.SetColorProfile(GetColorProfile(enabled))
}

// =============================================================================
// SHARED STYLES
// =============================================================================

var (
	// ErrorStyle is used for error lines
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	// NoticeStyle is used for informational lines between prompts
	NoticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // Yellow/Orange

	// DimStyle is used for echoed statements and hints
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242")) // Dim gray

	// TableHeaderStyle is used for table column titles
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("255")).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240")).
				BorderBottom(true).
				Padding(0, 1)

	// TableCellStyle is used for table cells
	TableCellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)
)
