// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and execution for parabola.
//
// The solve command reads three coefficients, prints the roots of
// a·x² + b·x + c = 0 and hands the parabola to a renderer from the render
// package. A zero leading coefficient is reported with a localized message
// and ends the run without a plot.
//
// # Key Types
//
//   - Command: Enumeration of the available commands
//   - Args: Parsed command-line arguments with global and command-specific flags
//   - Streams: The input and output streams a command uses
//   - JSONResponse: Envelope for --json output
//
// # Usage
//
// Parse and execute commands:
//
//	cmd, args, err := cli.Parse()
//	if err == nil {
//	    err = cli.Run(ctx, cmd, args, cli.StdStreams())
//	}
//
// # Commands Overview
//
//   - solve: Solve and plot (default when no command word is given)
//   - config: show, get, set, path and init
//   - version: Version information
//   - help: Usage
//
// All commands support the --json flag.
package cli
