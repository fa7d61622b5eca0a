// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command routing for parabola.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/jeranaias/parabola/internal/util"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdSolve Command = iota
	CmdConfig
	CmdVersion
	CmdHelp
)

// String returns the command name used in JSON envelopes and logs.
func (c Command) String() string {
	switch c {
	case CmdSolve:
		return "solve"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	JSON       bool
	Verbose    bool
	Quiet      bool
	Lang       string
	ConfigPath string

	// Plot flags; nil means "use the configured value"
	Renderer string
	Output   string
	XMin     *float64
	XMax     *float64
	Points   *int
	NoPlot   bool
	Watch    bool

	// Coefficients given on the command line, in a, b, c order.
	// Empty when they must be prompted for.
	Coefficients []string

	// Command-specific
	Subcommand string
	ConfigKey  string
	ConfigVal  string
	Force      bool

	// Raw args (remaining after the command word)
	Raw []string
}

// boolFlagNames are the flags that never take a value.
var boolFlagNames = []string{
	"json", "verbose", "v", "quiet", "q", "no-plot", "watch", "force", "help", "h", "version",
}

// stringFlagNames are the flags that take a value.
var stringFlagNames = []string{
	"lang", "config", "renderer", "output", "o", "x-min", "x-max", "points", "a", "b", "c",
}

const usageText = `parabola - quadratic equation solver and plotter

Solves a·x² + b·x + c = 0, prints both roots (real or complex) and plots
the parabola.

Usage:
  parabola [flags]                 Prompt for a, b and c, then solve and plot
  parabola [flags] A B C           Solve with the given coefficients
  parabola solve [flags] [A B C]   Same as above
  parabola config [show]           Show the effective configuration
  parabola config get KEY          Print one setting (e.g. plot.points)
  parabola config set KEY VALUE    Change a setting in the config file
  parabola config path             Print the config file path
  parabola config init [--force]   Write a config file with the defaults
  parabola version                 Show version information
  parabola help                    Show this help

Flags:
  --a, --b, --c N       Coefficients (alternative to positional A B C)
  --x-min N             Left end of the plotted domain (default -10)
  --x-max N             Right end of the plotted domain (default 10)
  --points N            Number of samples, at least 2 (default 400)
  --renderer NAME       auto, tui, text, png or none (default auto)
  -o, --output FILE     PNG output path (default parabola.png)
  --no-plot             Print the roots only
  --watch               Re-plot when the config file changes
  --lang LANG           auto, en or pt-BR (default auto)
  --config FILE         Read settings from FILE instead of ~/.parabola
  --json                Print results as JSON
  -q, --quiet           Print only the roots
  -v, --verbose         Print diagnostics and debug logs to stderr

Environment:
  PARABOLA_RENDERER, PARABOLA_OUTPUT, PARABOLA_POINTS, PARABOLA_X_MIN,
  PARABOLA_X_MAX, PARABOLA_LANG, PARABOLA_LOG_LEVEL, NO_COLOR

Examples:
  parabola 1 -3 2
  parabola --renderer png -o roots.png 1 0 1
  parabola --json --no-plot 2 4 -6
`

// PrintUsage writes the plain usage text.
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}

// PrintVersion writes version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "parabola %s (commit %s, built %s, %s %s/%s)\n",
		Version, GitCommit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Parse parses os.Args.
func Parse() (Command, Args, error) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses the given arguments into a command and its options.
func ParseArgs(argv []string) (Command, Args, error) {
	p := NewArgParser(argv, boolFlagNames...)

	args, err := parseGlobalFlags(p)
	if err != nil {
		return CmdHelp, args, err
	}
	if p.BoolFlag("help") || p.BoolFlag("h") {
		return CmdHelp, args, nil
	}
	if p.BoolFlag("version") {
		return CmdVersion, args, nil
	}

	positional := p.PositionalFrom(0)
	cmd := CmdSolve
	if len(positional) > 0 {
		switch strings.ToLower(positional[0]) {
		case "solve":
			positional = positional[1:]
		case "config":
			cmd = CmdConfig
			positional = positional[1:]
		case "version":
			return CmdVersion, args, nil
		case "help":
			return CmdHelp, args, nil
		}
	}
	args.Raw = positional

	switch cmd {
	case CmdConfig:
		parseConfigArgs(&args, positional)
		return cmd, args, nil
	default:
		err := parseSolveArgs(&args, p, positional)
		return cmd, args, err
	}
}

// Run executes cmd with the given streams.
func Run(ctx context.Context, cmd Command, args Args, s Streams) error {
	switch cmd {
	case CmdSolve:
		return HandleSolve(ctx, args, s)
	case CmdConfig:
		return HandleConfig(args, s)
	case CmdVersion:
		return HandleVersion(args, s)
	default:
		return HandleHelp(s)
	}
}

// parseGlobalFlags reads the flags shared by every command.
func parseGlobalFlags(p *ArgParser) (Args, error) {
	args := Args{
		JSON:       p.BoolFlag("json"),
		Verbose:    p.BoolFlag("verbose") || p.BoolFlag("v"),
		Quiet:      p.BoolFlag("quiet") || p.BoolFlag("q"),
		Lang:       p.Flag("lang"),
		ConfigPath: p.Flag("config"),
		Renderer:   strings.ToLower(p.Flag("renderer")),
		Output:     p.FlagOrDefault("output", p.Flag("o")),
		NoPlot:     p.BoolFlag("no-plot"),
		Watch:      p.BoolFlag("watch"),
		Force:      p.BoolFlag("force"),
	}

	if err := checkKnownFlags(p); err != nil {
		return args, err
	}

	if v := p.Flag("x-min"); v != "" {
		f, err := util.ParseFloat(v)
		if err != nil {
			return args, NewValidationErrorWithExample("x-min", v, "must be a number", "--x-min -5")
		}
		args.XMin = &f
	}
	if v := p.Flag("x-max"); v != "" {
		f, err := util.ParseFloat(v)
		if err != nil {
			return args, NewValidationErrorWithExample("x-max", v, "must be a number", "--x-max 5")
		}
		args.XMax = &f
	}
	if v := p.Flag("points"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return args, NewValidationErrorWithExample("points", v, "must be an integer", "--points 200")
		}
		args.Points = &n
	}
	return args, nil
}

// checkKnownFlags rejects flags parabola does not define, and string flags
// given without a value.
func checkKnownFlags(p *ArgParser) error {
	known := make(map[string]bool)
	for _, n := range boolFlagNames {
		known[n] = true
	}
	takesValue := make(map[string]bool)
	for _, n := range stringFlagNames {
		known[n] = true
		takesValue[n] = true
	}

	names := p.FlagNames()
	sort.Strings(names)
	for _, name := range names {
		if !known[name] {
			if guess := SuggestFlag(name); guess != "" {
				return NewValidationErrorWithExample("flag", "--"+name, "unknown flag", "--"+guess)
			}
			return NewValidationErrorWithExample("flag", "--"+name, "unknown flag", "parabola help")
		}
		if takesValue[name] && p.Flag(name) == "" {
			return ErrMissingArgument("--"+name, "--"+name+" VALUE")
		}
	}
	return nil
}

// parseSolveArgs collects the coefficients from positionals or --a/--b/--c.
func parseSolveArgs(args *Args, p *ArgParser, positional []string) error {
	named := []string{p.Flag("a"), p.Flag("b"), p.Flag("c")}
	anyNamed := named[0] != "" || named[1] != "" || named[2] != ""

	switch {
	case anyNamed && len(positional) > 0:
		return NewValidationErrorWithExample("coefficients", strings.Join(positional, " "),
			"give coefficients either as A B C or with --a/--b/--c, not both", "parabola 1 -3 2")
	case anyNamed:
		for i, v := range named {
			if v == "" {
				return ErrMissingArgument("--"+string(rune('a'+i)), "parabola --a 1 --b -3 --c 2")
			}
		}
		args.Coefficients = named
	case len(positional) == 0:
		// Prompt for them.
	case len(positional) == 3:
		args.Coefficients = append([]string(nil), positional...)
	default:
		return NewValidationErrorWithExample("coefficients", strings.Join(positional, " "),
			fmt.Sprintf("expected 3 values, got %d", len(positional)), "parabola 1 -3 2")
	}
	return nil
}

// parseConfigArgs parses "config" subcommands.
func parseConfigArgs(args *Args, remaining []string) {
	if len(remaining) > 0 {
		args.Subcommand = strings.ToLower(remaining[0])
	}
	if len(remaining) > 1 {
		args.ConfigKey = remaining[1]
	}
	if len(remaining) > 2 {
		args.ConfigVal = strings.Join(remaining[2:], " ")
	}
}
