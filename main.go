// parabola - Quadratic equation solver and plotter.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jeranaias/parabola/internal/cli"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	// Parse CLI arguments
	cmd, args, err := cli.Parse()
	if err != nil {
		cli.DisplayError(errorStream(args.JSON), err, args.JSON)
		os.Exit(cli.GetExitCode(err))
	}

	// Ctrl+C cancels the plot or the watch loop.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Run(ctx, cmd, args, cli.StdStreams()); err != nil {
		stop()
		cli.DisplayError(errorStream(args.JSON), err, args.JSON)
		os.Exit(cli.GetExitCode(err))
	}
}

// errorStream is stdout in JSON mode, so scripts read one document, and
// stderr otherwise.
func errorStream(jsonMode bool) *os.File {
	if jsonMode {
		return os.Stdout
	}
	return os.Stderr
}
