// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// =============================================================================
// PARSE RESULT
// =============================================================================

// ParseResult contains the result of parsing one input line.
type ParseResult struct {
	// Line is the trimmed input exactly as typed; it is what history records
	Line string

	// Token is the first word as typed
	Token string

	// CommandName is Token case-folded
	CommandName string

	// Args is the trimmed remainder, case preserved
	Args string

	// Command is the matched command (nil if not found)
	Command *Command
}

// Empty reports whether the line had no content.
func (r ParseResult) Empty() bool {
	return r.Line == ""
}

// =============================================================================
// PARSER
// =============================================================================

// Parser splits input lines into command and argument string.
type Parser struct {
	registry *Registry
	fold     cases.Caser
}

// NewParser creates a new parser with the given registry.
func NewParser(registry *Registry) *Parser {
	return &Parser{registry: registry, fold: cases.Fold()}
}

// Parse parses one raw input line. Only the command token is case-folded.
func (p *Parser) Parse(input string) ParseResult {
	line := strings.TrimSpace(input)
	result := ParseResult{Line: line}
	if line == "" {
		return result
	}

	token, rest := splitFirst(line)
	result.Token = token
	result.CommandName = p.fold.String(token)
	result.Args = strings.TrimSpace(rest)
	if p.registry != nil {
		result.Command = p.registry.Get(result.CommandName)
	}
	return result
}

// splitFirst splits s at the first run of whitespace.
func splitFirst(s string) (string, string) {
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}

// Fields splits an argument string on whitespace.
func Fields(args string) []string {
	return strings.Fields(args)
}

// IsOption reports whether word names option, ignoring case.
func IsOption(word, option string) bool {
	return strings.EqualFold(word, option)
}
