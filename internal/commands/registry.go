// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Handler executes one command. args is the trimmed argument string with its
// case preserved; seq is the sequence number of the input line.
type Handler interface {
	Execute(ctx *Context, args string, seq int) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx *Context, args string, seq int) error

// Execute implements Handler.
func (f HandlerFunc) Execute(ctx *Context, args string, seq int) error {
	return f(ctx, args, seq)
}

// Command is an immutable command definition.
type Command struct {
	// Name is the command token (e.g., "connectdb")
	Name string

	// Usage shows argument syntax (e.g., "connectdb <options> <file name>")
	Usage string

	// Params documents the placeholders in Usage, one per line
	Params []string

	// Description is a one-paragraph summary
	Description string

	// Prerequisite is shown as "Pre-requisite(s)"
	Prerequisite string

	// Options documents each option keyword
	Options []OptionDoc

	// Handler is invoked by the dispatcher
	Handler Handler

	// Plain commands (copyright, credits, license) have no help page;
	// asking for their help runs them instead.
	Plain bool
}

// OptionDoc documents one option keyword.
type OptionDoc struct {
	Name string
	Text string
}

// OptionNames returns the first word of every documented option, without
// duplicates, for argument completion.
func (c *Command) OptionNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, opt := range c.Options {
		word := strings.Fields(opt.Name)
		if len(word) == 0 || seen[word[0]] {
			continue
		}
		seen[word[0]] = true
		names = append(names, word[0])
	}
	return names
}

// HelpText renders the command's plain-text help page.
func (c *Command) HelpText() string {
	var sb strings.Builder
	sb.WriteString("Command: " + c.Usage + "\n")
	for _, p := range c.Params {
		sb.WriteString("    " + p + "\n")
	}
	sb.WriteString("Description: " + c.Description + "\n")
	sb.WriteString("Pre-requisite(s): " + c.prerequisite() + "\n")
	for _, opt := range c.Options {
		sb.WriteString("\n<options> = " + opt.Name + "\n")
		sb.WriteString("    " + opt.Text + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// HelpMarkdown renders the same help page as markdown.
func (c *Command) HelpMarkdown() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", c.Name)
	fmt.Fprintf(&sb, "```\n%s\n", c.Usage)
	for _, p := range c.Params {
		fmt.Fprintf(&sb, "    %s\n", p)
	}
	sb.WriteString("```\n\n")
	fmt.Fprintf(&sb, "%s\n\n", c.Description)
	fmt.Fprintf(&sb, "**Pre-requisite(s):** %s\n", c.prerequisite())
	if len(c.Options) > 0 {
		sb.WriteString("\n| Option | Meaning |\n|---|---|\n")
		for _, opt := range c.Options {
			fmt.Fprintf(&sb, "| `%s` | %s |\n", opt.Name, opt.Text)
		}
	}
	return sb.String()
}

func (c *Command) prerequisite() string {
	if c.Prerequisite == "" {
		return "None"
	}
	return c.Prerequisite
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds the fixed command table in registration order.
type Registry struct {
	ordered  []*Command
	commands map[string]*Command
}

// NewRegistry creates a registry with all built-in commands.
func NewRegistry() *Registry {
	r := newEmptyRegistry()
	for _, cmd := range builtins() {
		if err := r.Register(cmd); err != nil {
			panic(err)
		}
	}
	return r
}

func newEmptyRegistry() *Registry {
	return &Registry{commands: make(map[string]*Command)}
}

// Register adds a command. Names must be unique and lower case.
func (r *Registry) Register(cmd *Command) error {
	if cmd == nil || cmd.Name == "" || cmd.Handler == nil {
		return errors.New("command needs a name and a handler")
	}
	if cmd.Name != strings.ToLower(cmd.Name) {
		return errors.Newf("command name %q must be lower case", cmd.Name)
	}
	if _, exists := r.commands[cmd.Name]; exists {
		return errors.Newf("command %q already registered", cmd.Name)
	}
	r.commands[cmd.Name] = cmd
	r.ordered = append(r.ordered, cmd)
	return nil
}

// Get retrieves a command by exact name.
func (r *Registry) Get(name string) *Command {
	return r.commands[name]
}

// All returns all commands in registration order.
func (r *Registry) All() []*Command {
	out := make([]*Command, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Names returns all command names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.ordered))
	for i, cmd := range r.ordered {
		names[i] = cmd.Name
	}
	return names
}

// IndexText renders the command index shown by a bare help.
func (r *Registry) IndexText() string {
	var sb strings.Builder
	sb.WriteString("List of available commands:\n")
	for i, name := range r.Names() {
		if i > 0 && i%4 == 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%-20s", name))
	}
	sb.WriteString("\n\nType help <command> for more help (if any)")

	lines := strings.Split(sb.String(), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return strings.Join(lines, "\n")
}

// IndexMarkdown renders the command index as a markdown table.
func (r *Registry) IndexMarkdown() string {
	var sb strings.Builder
	sb.WriteString("## Available commands\n\n| Command | Description |\n|---|---|\n")
	for _, cmd := range r.ordered {
		fmt.Fprintf(&sb, "| `%s` | %s |\n", cmd.Usage, cmd.Description)
	}
	sb.WriteString("\nType `help <command>` for more help (if any).\n")
	return sb.String()
}
