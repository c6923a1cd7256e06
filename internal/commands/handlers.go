// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Sharlene98/dose/internal/eval"
	"github.com/Sharlene98/dose/internal/export"
	"github.com/Sharlene98/dose/internal/session"
	"github.com/Sharlene98/dose/internal/store"
)

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

// builtins returns the command table in registration order.
func builtins() []*Command {
	return []*Command{
		{
			Name:  "connectdb",
			Usage: "connectdb <options> <file name>",
			Params: []string{
				"<options> = {absolute | cwd}",
				"<file name> = File name for simulation logging database. If the database",
				"              file is not found, it will be created.",
			},
			Description: "Establish connection to a simulation logging database.",
			Options: []OptionDoc{
				{Name: "absolute", Text: "Defines absolute file path for <file name> to simulation logging database."},
				{Name: "cwd", Text: "Defines relative file path for <file name> to simulation logging database. " +
					"<file name> will be prefixed with current working directory in the format of " +
					"<current working directory>/<file name>"},
			},
			Handler: HandlerFunc(handleConnectDB),
		},
		{
			Name:        "copyright",
			Usage:       "copyright",
			Description: "Display the copyright notice.",
			Handler:     HandlerFunc(handleCopyright),
			Plain:       true,
		},
		{
			Name:        "credits",
			Usage:       "credits",
			Description: "Display the project team.",
			Handler:     HandlerFunc(handleCredits),
			Plain:       true,
		},
		{
			Name:        "help",
			Usage:       "help [command]",
			Params:      []string{"[command] = Name of a command to describe"},
			Description: "List the available commands, or describe one command.",
			Handler:     HandlerFunc(handleHelp),
		},
		{
			Name:        "license",
			Usage:       "license",
			Description: "Display the license terms.",
			Handler:     HandlerFunc(handleLicense),
			Plain:       true,
		},
		{
			Name:         "list",
			Usage:        "list <options>",
			Params:       []string{"<options> = {simulations}"},
			Description:  "Display information about simulations logged in the simulation logging database.",
			Prerequisite: "Requires connection to a simulation logging database (using connectdb command)",
			Options: []OptionDoc{
				{Name: "simulations", Text: "List all simulations in the simulation logging database, in the format of " +
					"[<starting time of simulation>, <simulation name>]"},
			},
			Handler: HandlerFunc(handleList),
		},
		{
			Name:  "py",
			Usage: "py <go statement>",
			Params: []string{
				"<go statement> = any complete Go statement or expression in a single line",
				"                 (not for multi-line statements, such as loops)",
			},
			Description:  "Execute an arbitrary single-line Go statement. The value of an expression is printed and kept as data.",
			Prerequisite: "Unsafe execution enabled (--unsafe or shell.unsafe_exec = true)",
			Handler:      HandlerFunc(handlePy),
		},
		{
			Name:        "quit",
			Usage:       "quit",
			Description: "Terminate this application.",
			Handler:     HandlerFunc(handleQuit),
		},
		{
			Name:  "save",
			Usage: "save <options> <file name>",
			Params: []string{
				"<options> = {history | workspace}",
				"<file name> = File name for output. The file will be in current working",
				"              directory",
			},
			Description: "To save history or data into a text file.",
			Options: []OptionDoc{
				{Name: "history", Text: "Writes out history of the current session into <file name>"},
				{Name: "workspace", Text: "Writes out the entire workspace (history, data, environment) of the " +
					"current session into <file name>"},
			},
			Handler: HandlerFunc(handleSave),
		},
		{
			Name:        "show",
			Usage:       "show <options>",
			Params:      []string{"<options> = {environment | history | history <item> | data | data <item>}"},
			Description: "Display internal variables.",
			Options: []OptionDoc{
				{Name: "data", Text: "Display all results/data in the current session, in the format of " +
					"Count = <command number> | Data = <data/results in text format>"},
				{Name: "data <item>", Text: "Display only specific result/data, where <item> is the command number"},
				{Name: "environment", Text: "Display all environmental variables in DOSE command shell as one line " +
					"per environmental variable."},
				{Name: "history", Text: "Display all history in the current session, in the format of " +
					"Count = <command number> | Command = <command string>"},
				{Name: "history <item>", Text: "Display only specific historical command, where <item> is the command number"},
			},
			Handler: HandlerFunc(handleShow),
		},
	}
}

func invalidOption(command, option string) string {
	return fmt.Sprintf("%s is not a valid option. Type help %s for more information", option, command)
}

func printHelp(ctx *Context, cmd *Command) {
	ctx.Println(ctx.Render.Help(cmd.HelpText(), cmd.HelpMarkdown()))
}

// =============================================================================
// CONNECTDB
// =============================================================================

func handleConnectDB(ctx *Context, args string, seq int) error {
	fields := Fields(args)
	if len(fields) != 2 {
		return NewUserInputError("connectdb",
			fmt.Sprintf("Error: 2 options needed; %d provided", len(fields)), true)
	}

	var path string
	switch {
	case IsOption(fields[0], "absolute"):
		path = fields[1]
	case IsOption(fields[0], "cwd"):
		path = ctx.Session.Cwd() + string(os.PathSeparator) + fields[1]
	default:
		return NewUserInputError("connectdb", invalidOption("connectdb", fields[0]), true)
	}

	conn, cur, err := store.Connect(ctx.Ctx, path,
		store.WithBusyTimeout(ctx.Settings.BusyTimeout),
		store.WithLogger(ctx.Logger))
	if err != nil {
		return NewResourceError("connectdb", path, err)
	}

	// replace any previous connection only once the new one is open
	if err := ctx.closeStore(); err != nil {
		ctx.Logger.Warn("failed to close previous database", zap.Error(err))
	}

	env := ctx.Session.Environment()
	for field, value := range map[session.Field]any{
		session.FieldDatabaseFile:      path,
		session.FieldDatabaseConnector: conn,
		session.FieldDatabaseCursor:    cur,
	} {
		if err := env.Set(field, value); err != nil {
			conn.Close()
			return err
		}
	}

	if ctx.Settings.Watch {
		ctx.startWatcher(path)
	}
	ctx.Logger.Info("database connected", zap.Int("seq", seq), zap.String("path", path))
	return nil
}

func (c *Context) startWatcher(path string) {
	w, err := store.NewWatcher(path, c.Settings.WatchDebounce, c.Logger)
	if err != nil {
		c.Logger.Warn("database watcher unavailable", zap.Error(err))
		return
	}
	if err := w.Start(); err != nil {
		w.Close()
		c.Logger.Warn("database watcher unavailable", zap.Error(err))
		return
	}
	c.watcher = w
}

func (c *Context) closeStore() error {
	var err error
	if c.watcher != nil {
		err = c.watcher.Close()
		c.watcher = nil
	}
	if conn := c.Connector(); conn != nil {
		if cerr := conn.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// =============================================================================
// FIXED TEXT
// =============================================================================

func handleCopyright(ctx *Context, _ string, _ int) error {
	ctx.Printf("\n%s\n\n", CopyrightText)
	return nil
}

func handleCredits(ctx *Context, _ string, _ int) error {
	ctx.Printf("\n%s\n\n", CreditsText)
	return nil
}

func handleLicense(ctx *Context, _ string, _ int) error {
	ctx.Printf("\n%s\n\n", LicenseText)
	return nil
}

func handleQuit(ctx *Context, _ string, _ int) error {
	ctx.Println(Farewell(ctx.Now(), ctx.quote()))
	ctx.quit = true
	return nil
}

// =============================================================================
// HELP
// =============================================================================

func handleHelp(ctx *Context, args string, seq int) error {
	name := strings.TrimSpace(args)
	if name == "" || IsOption(name, "help") {
		ctx.Println(ctx.Render.Help(ctx.Registry.IndexText(), ctx.Registry.IndexMarkdown()))
		return nil
	}

	cmd := ctx.Registry.Get(strings.ToLower(name))
	if cmd == nil {
		txt := name + " is not a valid command; hence, no help is available."
		if err := ctx.Session.RecordResult(seq, txt); err != nil {
			return err
		}
		ctx.Println(txt)
		return nil
	}
	if cmd.Plain {
		return cmd.Handler.Execute(ctx, "", seq)
	}
	printHelp(ctx, cmd)
	return nil
}

// =============================================================================
// LIST
// =============================================================================

func handleList(ctx *Context, args string, seq int) error {
	if args == "" {
		printHelp(ctx, ctx.Registry.Get("list"))
		return nil
	}
	if !IsOption(args, "simulations") {
		return NewUserInputError("list", invalidOption("list", args), false)
	}

	cur := ctx.Cursor()
	if cur == nil {
		return NewUserInputError("list",
			"Error: No database connected. Type help connectdb for more information", false)
	}

	sims, err := store.ListSimulations(ctx.Ctx, cur)
	if err != nil {
		return NewResourceError("list", ctx.Session.Environment().String(session.FieldDatabaseFile), err)
	}
	if err := ctx.Session.RecordResult(seq, sims); err != nil {
		return err
	}
	if len(sims) > 0 {
		ctx.Println(ctx.Render.Simulations(sims))
	}
	return nil
}

// =============================================================================
// PY
// =============================================================================

func handlePy(ctx *Context, args string, seq int) error {
	if !ctx.Settings.UnsafeExec {
		return NewUserInputError("py",
			"Error: py is disabled. Restart with --unsafe or set shell.unsafe_exec = true", false)
	}
	if args == "" {
		return NewUserInputError("py", "Error: No statement provided", true)
	}

	if ctx.evaluator == nil {
		ev, err := eval.New(ctx.Out, ctx.Out, ctx.Settings.EvalTimeout)
		if err != nil {
			return err
		}
		ctx.evaluator = ev
	}

	if highlighted := ctx.Render.Statement(args); highlighted != "" {
		ctx.Println(highlighted)
	}

	res, err := ctx.evaluator.Eval(ctx.Ctx, args)
	ctx.Logger.Debug("py evaluated", zap.Int("seq", seq), zap.Duration("elapsed", res.Elapsed), zap.Error(err))
	if err != nil {
		return err
	}
	if res.HasValue {
		if err := ctx.Session.RecordResult(seq, res.Value); err != nil {
			return err
		}
		ctx.Println(session.Format(res.Value))
	}
	return nil
}

// =============================================================================
// SAVE
// =============================================================================

func handleSave(ctx *Context, args string, seq int) error {
	if args == "" {
		return NewUserInputError("save", "Error: No options provided", true)
	}

	option, filename := splitFirst(args)
	filename = strings.TrimSpace(filename)

	mode, err := export.ParseMode(option)
	if err != nil {
		txt := invalidOption("save", option)
		if err := ctx.Session.RecordResult(seq, txt); err != nil {
			return err
		}
		ctx.Println(txt)
		return nil
	}

	path, err := export.AppendToFile(ctx.Session, export.For(mode), filename)
	if err != nil {
		return NewResourceError("save", path, err)
	}
	ctx.Logger.Info("session saved", zap.Int("seq", seq), zap.String("mode", string(mode)), zap.String("path", path))
	return nil
}

// =============================================================================
// SHOW
// =============================================================================

func handleShow(ctx *Context, args string, seq int) error {
	if args == "" {
		return NewUserInputError("show", "Error: No options provided", true)
	}

	sess := ctx.Session
	fields := Fields(args)
	option := strings.ToLower(fields[0])

	switch {
	case option == "environment" && len(fields) == 1:
		snap := sess.Environment().Snapshot()
		if err := sess.RecordResult(seq, snap); err != nil {
			return err
		}
		ctx.Println("Environment variables:")
		for _, e := range snap {
			ctx.Printf("%s = %s\n", e.Key, session.Format(e.Value))
		}
		return nil

	case option == "history" && len(fields) == 1:
		snap := sess.History().Snapshot()
		if err := sess.RecordResult(seq, snap); err != nil {
			return err
		}
		for _, e := range snap {
			ctx.Printf("Count = %d | Command = %s\n", e.Seq, e.Text)
		}
		return nil

	case option == "history" && len(fields) == 2:
		n, err := parseItem(fields[1])
		if err != nil {
			return err
		}
		text, ok := sess.History().Get(n)
		if !ok {
			return NewUserInputError("show", fmt.Sprintf("Error: No history for command %d", n), false)
		}
		if err := sess.RecordResult(seq, text); err != nil {
			return err
		}
		ctx.Printf("Count = %d | Command = %s\n", n, text)
		return nil

	case option == "data" && len(fields) == 1:
		snap := sess.Results().Snapshot()
		if err := sess.RecordResult(seq, snap); err != nil {
			return err
		}
		for _, e := range snap {
			ctx.Printf("Count = %d | Data = %s\n", e.Seq, session.Format(e.Value))
		}
		return nil

	case option == "data" && len(fields) == 2:
		n, err := parseItem(fields[1])
		if err != nil {
			return err
		}
		v, ok := sess.Results().Get(n)
		if !ok {
			return NewUserInputError("show", fmt.Sprintf("Error: No data for command %d", n), false)
		}
		if err := sess.RecordResult(seq, v); err != nil {
			return err
		}
		ctx.Printf("Count = %d | Data = %s\n", n, session.Format(v))
		return nil
	}

	txt := invalidOption("show", args)
	if err := sess.RecordResult(seq, txt); err != nil {
		return err
	}
	ctx.Println(txt)
	return nil
}

func parseItem(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, NewUserInputError("show", fmt.Sprintf("Error: %s is not a valid command number", s), false)
	}
	return n, nil
}
