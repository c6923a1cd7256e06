// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"
)

// =============================================================================
// COMPLETER
// =============================================================================

// Completer answers prefix queries against the registry. It holds no
// session state.
type Completer struct {
	registry *Registry
}

// NewCompleter creates a new completer with the given registry.
func NewCompleter(registry *Registry) *Completer {
	return &Completer{registry: registry}
}

// Complete returns the index-th command name, in registration order, that
// starts with prefix. ok is false once index passes the last match.
func (c *Completer) Complete(prefix string, index int) (name string, ok bool) {
	if index < 0 {
		return "", false
	}
	for _, candidate := range c.registry.Names() {
		if !strings.HasPrefix(candidate, prefix) {
			continue
		}
		if index == 0 {
			return candidate, true
		}
		index--
	}
	return "", false
}

// Candidates returns every command name matching prefix, in order.
func (c *Completer) Candidates(prefix string) []string {
	var out []string
	for i := 0; ; i++ {
		name, ok := c.Complete(prefix, i)
		if !ok {
			return out
		}
		out = append(out, name)
	}
}

// CompleteLine returns whole-line completions for a line editor. The first
// word completes to command names; the second to the command's option
// keywords (or command names for help).
func (c *Completer) CompleteLine(line string) []string {
	trimmed := strings.TrimLeft(line, " \t")
	lead := line[:len(line)-len(trimmed)]

	token, rest := splitFirst(trimmed)
	if rest == "" && !strings.HasSuffix(trimmed, " ") {
		var out []string
		for _, name := range c.Candidates(strings.ToLower(token)) {
			out = append(out, lead+name)
		}
		return out
	}

	cmd := c.registry.Get(strings.ToLower(token))
	if cmd == nil {
		return nil
	}
	args := strings.TrimLeft(rest, " \t")
	if strings.ContainsAny(args, " \t") {
		return nil
	}

	options := cmd.OptionNames()
	if cmd.Name == "help" {
		options = c.registry.Names()
	}

	var out []string
	for _, opt := range options {
		if strings.HasPrefix(opt, strings.ToLower(args)) {
			out = append(out, lead+token+" "+opt)
		}
	}
	return out
}
