// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands implements the DOSE command set and its dispatcher.
//
// # Key Types
//
//   - Registry: Fixed command table, in registration order
//   - Parser: Splits a line into command token and argument string
//   - Completer: Prefix completion over command names
//   - Dispatcher: Runs one line inside a failure boundary
//   - Context: What a handler sees (session, output, renderer, settings)
//
// # Commands
//
//	connectdb {absolute|cwd} <file>
//	copyright
//	credits
//	help [command]
//	license
//	list simulations
//	py <statement>
//	quit
//	save {history|workspace} [file]
//	show {environment|history|history <n>|data|data <n>}
//
// # Usage
//
//	reg := commands.NewRegistry()
//	ctx := commands.NewContext(sess, reg, os.Stdout)
//	d := commands.NewDispatcher(ctx)
//	for !d.Dispatch(readLine()).Quit {
//	}
//
// # Errors
//
// Handlers return *UserInputError, *ResourceError or any other error; the
// dispatcher reports the first two and converts everything else, panics
// included, into a *RuntimeExecutionError stored in the result log.
package commands
