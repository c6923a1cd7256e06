// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates the shell ended through quit
	ExitSuccess = 0
	// ExitGeneralError indicates a startup or terminal failure
	ExitGeneralError = 1
	// ExitUsageError indicates invalid flags or arguments
	ExitUsageError = 2
)

// =============================================================================
// STARTUP ERRORS
// =============================================================================

// StartupError is a failure before the first prompt.
type StartupError struct {
	Stage string // e.g. "config", "logging", "terminal"
	Err   error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

func startupError(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &StartupError{Stage: stage, Err: err}
}

// ExitCode maps an error returned by the root command to a process status.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var serr *StartupError
	if errors.As(err, &serr) {
		return ExitGeneralError
	}
	return ExitUsageError
}
