// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// REGISTRY TESTS
// =============================================================================

func TestRegistry_Order(t *testing.T) {
	r := NewRegistry()

	want := []string{"connectdb", "copyright", "credits", "help", "license",
		"list", "py", "quit", "save", "show"}
	if diff := cmp.Diff(want, r.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, r.All(), len(want))
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	noop := HandlerFunc(func(*Context, string, int) error { return nil })

	assert.Error(t, r.Register(&Command{Name: "help", Handler: noop}), "duplicate")
	assert.Error(t, r.Register(&Command{Name: "Loud", Handler: noop}), "upper case")
	assert.Error(t, r.Register(&Command{Name: "nohandler"}))
	assert.NoError(t, r.Register(&Command{Name: "extra", Handler: noop}))

	assert.NotNil(t, r.Get("extra"))
	assert.Nil(t, r.Get("missing"))
	assert.Equal(t, "extra", r.Names()[len(r.Names())-1])
}

func TestRegistry_IndexText(t *testing.T) {
	text := NewRegistry().IndexText()
	lines := strings.Split(text, "\n")

	assert.Equal(t, "List of available commands:", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "connectdb"))
	assert.Contains(t, lines[1], "help")
	assert.True(t, strings.HasPrefix(lines[3], "save"))
	assert.Equal(t, "Type help <command> for more help (if any)", lines[len(lines)-1])
}

func TestCommand_HelpText(t *testing.T) {
	cmd := NewRegistry().Get("connectdb")
	text := cmd.HelpText()

	assert.True(t, strings.HasPrefix(text, "Command: connectdb <options> <file name>"))
	assert.Contains(t, text, "Pre-requisite(s): None")
	assert.Contains(t, text, "<options> = cwd")
	assert.Contains(t, cmd.HelpMarkdown(), "## connectdb")

	assert.Equal(t, []string{"data", "environment", "history"}, NewRegistry().Get("show").OptionNames())
}

// =============================================================================
// PARSER TESTS
// =============================================================================

func TestParser_Parse(t *testing.T) {
	p := NewParser(NewRegistry())

	tests := []struct {
		input       string
		line        string
		commandName string
		args        string
		known       bool
	}{
		{"help", "help", "help", "", true},
		{"  HELP   copyright  ", "HELP   copyright", "help", "copyright", true},
		{"save history Out.TXT", "save history Out.TXT", "save", "history Out.TXT", true},
		{"Show\tHistory 3", "Show\tHistory 3", "show", "History 3", true},
		{"unknownxyz", "unknownxyz", "unknownxyz", "", false},
		{"py x := \"MiXeD\"", "py x := \"MiXeD\"", "py", "x := \"MiXeD\"", true},
	}

	for _, tc := range tests {
		got := p.Parse(tc.input)
		if got.Line != tc.line {
			t.Errorf("Parse(%q).Line = %q, want %q", tc.input, got.Line, tc.line)
		}
		if got.CommandName != tc.commandName {
			t.Errorf("Parse(%q).CommandName = %q, want %q", tc.input, got.CommandName, tc.commandName)
		}
		if got.Args != tc.args {
			t.Errorf("Parse(%q).Args = %q, want %q", tc.input, got.Args, tc.args)
		}
		if (got.Command != nil) != tc.known {
			t.Errorf("Parse(%q).Command found = %v, want %v", tc.input, got.Command != nil, tc.known)
		}
	}
}

func TestParser_Empty(t *testing.T) {
	p := NewParser(NewRegistry())
	for _, input := range []string{"", "   ", "\t\n"} {
		assert.True(t, p.Parse(input).Empty(), "input %q", input)
	}
}

// =============================================================================
// COMPLETER TESTS
// =============================================================================

func TestCompleter_Complete(t *testing.T) {
	c := NewCompleter(NewRegistry())

	tests := []struct {
		prefix string
		index  int
		want   string
		ok     bool
	}{
		{"s", 0, "save", true},
		{"s", 1, "show", true},
		{"s", 2, "", false},
		{"", 0, "connectdb", true},
		{"c", 2, "credits", true},
		{"c", 3, "", false},
		{"q", 0, "quit", true},
		{"x", 0, "", false},
		{"s", -1, "", false},
	}

	for _, tc := range tests {
		got, ok := c.Complete(tc.prefix, tc.index)
		if got != tc.want || ok != tc.ok {
			t.Errorf("Complete(%q, %d) = (%q, %v), want (%q, %v)", tc.prefix, tc.index, got, ok, tc.want, tc.ok)
		}
	}
}

func TestCompleter_CompleteLine(t *testing.T) {
	c := NewCompleter(NewRegistry())

	tests := []struct {
		line string
		want []string
	}{
		{"sh", []string{"show"}},
		{"C", []string{"connectdb", "copyright", "credits"}},
		{"show h", []string{"show history"}},
		{"connectdb ", []string{"connectdb absolute", "connectdb cwd"}},
		{"help co", []string{"help connectdb", "help copyright"}},
		{"save history f", nil},
		{"nope x", nil},
	}

	for _, tc := range tests {
		got := c.CompleteLine(tc.line)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("CompleteLine(%q) mismatch (-want +got):\n%s", tc.line, diff)
		}
	}
}

func TestCompleter_Candidates(t *testing.T) {
	c := NewCompleter(NewRegistry())
	assert.Equal(t, []string{"license", "list"}, c.Candidates("li"))
	assert.Nil(t, c.Candidates("z"))
}

// =============================================================================
// ERROR TESTS
// =============================================================================

func TestNewRuntimeError(t *testing.T) {
	err := NewResourceError("save", "/x", assert.AnError)
	rt := NewRuntimeError(err)
	require.NotNil(t, rt)

	// kind names the root cause
	assert.Equal(t, "*errors.errorString", rt.Kind)
	assert.Equal(t, err.Error(), rt.Args)
	assert.NotEmpty(t, rt.Frames)
	assert.LessOrEqual(t, len(rt.Frames), MaxFrames)
	assert.Same(t, rt, NewRuntimeError(rt))

	lines := rt.Lines()
	assert.Equal(t, rt.Kind, lines[0])
	assert.Equal(t, rt.Args, lines[1])
}
