// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// help.go - Help and version commands.
//
// USABILITY: On a terminal the help page is rendered as markdown with
// glamour. Piped output gets the plain usage text.

package cli

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# parabola

Solves **a·x² + b·x + c = 0**, prints both roots (real or complex) and plots
the parabola.

## Usage

| Command | Description |
|---|---|
| ` + "`parabola [flags]`" + ` | Prompt for a, b and c, then solve and plot |
| ` + "`parabola [flags] A B C`" + ` | Solve with the given coefficients |
| ` + "`parabola config [show]`" + ` | Show the effective configuration |
| ` + "`parabola config get KEY`" + ` | Print one setting |
| ` + "`parabola config set KEY VALUE`" + ` | Change a setting in the config file |
| ` + "`parabola config path`" + ` | Print the config file path |
| ` + "`parabola config init [--force]`" + ` | Write a config file with the defaults |
| ` + "`parabola version`" + ` | Show version information |

## Plot flags

- ` + "`--x-min N`, `--x-max N`" + `: plotted domain (default -10 to 10)
- ` + "`--points N`" + `: number of samples, at least 2 (default 400)
- ` + "`--renderer NAME`" + `: auto, tui, text, png or none
- ` + "`-o, --output FILE`" + `: PNG output path (default parabola.png)
- ` + "`--no-plot`" + `: print the roots only
- ` + "`--watch`" + `: re-plot when the config file changes

## Output flags

- ` + "`--lang LANG`" + `: auto, en or pt-BR
- ` + "`--config FILE`" + `: read settings from FILE
- ` + "`--json`" + `: print results as JSON
- ` + "`-q, --quiet`" + `: print only the roots
- ` + "`-v, --verbose`" + `: debug logs on stderr

## Examples

` + "```sh" + `
parabola 1 -3 2
parabola --renderer png -o roots.png 1 0 1
parabola --json --no-plot 2 4 -6
` + "```" + `
`

// HandleHelp prints the help page.
func HandleHelp(s Streams) error {
	if !isTerminalWriter(s.Out) || !ColorsEnabled() {
		PrintUsage(s.Out)
		return nil
	}

	width, _ := terminalSize(s.Out)
	if width > 100 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		PrintUsage(s.Out)
		return nil
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		PrintUsage(s.Out)
		return nil
	}
	fmt.Fprint(s.Out, out)
	return nil
}

// HandleVersion prints version information.
func HandleVersion(args Args, s Streams) error {
	if args.JSON {
		return NewJSONResponse(CmdVersion.String(), VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}).PrintTo(s.Out)
	}
	PrintVersion(s.Out)
	return nil
}
