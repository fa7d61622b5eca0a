// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line interface parsing and execution.
//
// This test file covers argument parsing, the solve flow end to end against
// in-memory streams, and the config command.
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jeranaias/parabola/internal/config"
	"github.com/jeranaias/parabola/internal/grapher"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// isolate points HOME at a temp dir and clears every variable that changes
// settings or language.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	for _, name := range []string{
		"PARABOLA_RENDERER", "PARABOLA_OUTPUT", "PARABOLA_POINTS",
		"PARABOLA_X_MIN", "PARABOLA_X_MAX", "PARABOLA_LANG",
		"PARABOLA_LOG_LEVEL", "NO_COLOR", "LC_ALL", "LC_MESSAGES", "LANG",
	} {
		t.Setenv(name, "")
	}
	return home
}

// syncBuffer is a bytes.Buffer safe for a writer and a polling reader.
type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

type result struct {
	out string
	err string
}

// run parses argv and executes it with stdin set to input.
func run(t *testing.T, input string, argv ...string) (result, error) {
	t.Helper()
	cmd, args, err := ParseArgs(argv)
	if err != nil {
		return result{}, err
	}
	var out, errOut bytes.Buffer
	s := Streams{In: strings.NewReader(input), Out: &out, Err: &errOut}
	err = Run(context.Background(), cmd, args, s)
	return result{out: out.String(), err: errOut.String()}, err
}

// =============================================================================
// ARG PARSER TESTS (args.go)
// =============================================================================

func TestArgParser_BasicParsing(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		bools    []string
		wantPos  []string
		validate func(*testing.T, *ArgParser)
	}{
		{
			name:    "negative numbers are positional",
			args:    []string{"1", "-3", "2"},
			wantPos: []string{"1", "-3", "2"},
		},
		{
			name:    "decimal comma negative",
			args:    []string{"-2,5", "-.5", "0"},
			wantPos: []string{"-2,5", "-.5", "0"},
		},
		{
			name:    "flag with negative value",
			args:    []string{"--x-min", "-5", "1", "0", "-4"},
			wantPos: []string{"1", "0", "-4"},
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("x-min") != "-5" {
					t.Errorf("Flag(x-min) = %q, want %q", p.Flag("x-min"), "-5")
				}
			},
		},
		{
			name:    "flag with equals",
			args:    []string{"--points=50", "1", "2", "3"},
			wantPos: []string{"1", "2", "3"},
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("points") != "50" {
					t.Errorf("Flag(points) = %q, want %q", p.Flag("points"), "50")
				}
			},
		},
		{
			name:    "boolean flag does not consume value",
			args:    []string{"--json", "1", "2", "3"},
			bools:   []string{"json"},
			wantPos: []string{"1", "2", "3"},
			validate: func(t *testing.T, p *ArgParser) {
				if !p.BoolFlag("json") {
					t.Error("BoolFlag(json) should be true")
				}
			},
		},
		{
			name:    "double dash ends flags",
			args:    []string{"--quiet", "--", "--x", "2"},
			bools:   []string{"quiet"},
			wantPos: []string{"--x", "2"},
		},
		{
			name:    "command word stays positional",
			args:    []string{"config", "get", "plot.points"},
			wantPos: []string{"config", "get", "plot.points"},
		},
		{
			name:    "short flag takes a value",
			args:    []string{"-o", "a.png", "--watch"},
			bools:   []string{"watch"},
			wantPos: []string{},
			validate: func(t *testing.T, p *ArgParser) {
				if got := p.FlagOrDefault("output", p.Flag("o")); got != "a.png" {
					t.Errorf("FlagOrDefault(output) = %q, want a.png", got)
				}
				if !p.BoolFlag("watch") {
					t.Error("BoolFlag(watch) should be true")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewArgParser(tt.args, tt.bools...)
			got := p.PositionalFrom(0)
			if strings.Join(got, " ") != strings.Join(tt.wantPos, " ") {
				t.Errorf("positional = %q, want %q", got, tt.wantPos)
			}
			if tt.validate != nil {
				tt.validate(t, p)
			}
		})
	}
}

// =============================================================================
// PARSE TESTS (cli.go)
// =============================================================================

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name   string
		argv   []string
		cmd    Command
		coeffs []string
		check  func(*testing.T, Args)
	}{
		{name: "no args prompts", argv: nil, cmd: CmdSolve},
		{name: "positional", argv: []string{"1", "-3", "2"}, cmd: CmdSolve, coeffs: []string{"1", "-3", "2"}},
		{name: "solve word", argv: []string{"solve", "2", "4", "-6"}, cmd: CmdSolve, coeffs: []string{"2", "4", "-6"}},
		{
			name:   "named coefficients",
			argv:   []string{"--a", "1", "--b", "-3", "--c=2"},
			cmd:    CmdSolve,
			coeffs: []string{"1", "-3", "2"},
		},
		{
			name:   "plot flags",
			argv:   []string{"--x-min", "-5", "--x-max", "5", "--points", "50", "--renderer", "PNG", "-o", "out.png", "1", "0", "-4"},
			cmd:    CmdSolve,
			coeffs: []string{"1", "0", "-4"},
			check: func(t *testing.T, a Args) {
				require.NotNil(t, a.XMin)
				require.Equal(t, -5.0, *a.XMin)
				require.Equal(t, 5.0, *a.XMax)
				require.Equal(t, 50, *a.Points)
				require.Equal(t, "png", a.Renderer)
				require.Equal(t, "out.png", a.Output)
			},
		},
		{
			name:   "global switches",
			argv:   []string{"--json", "-q", "-v", "--no-plot", "--lang", "pt-BR", "1", "2", "1"},
			cmd:    CmdSolve,
			coeffs: []string{"1", "2", "1"},
			check: func(t *testing.T, a Args) {
				require.True(t, a.JSON)
				require.True(t, a.Quiet)
				require.True(t, a.Verbose)
				require.True(t, a.NoPlot)
				require.Equal(t, "pt-BR", a.Lang)
				require.Nil(t, a.Points)
			},
		},
		{
			name: "config set",
			argv: []string{"config", "set", "plot.x_min", "-2"},
			cmd:  CmdConfig,
			check: func(t *testing.T, a Args) {
				require.Equal(t, "set", a.Subcommand)
				require.Equal(t, "plot.x_min", a.ConfigKey)
				require.Equal(t, "-2", a.ConfigVal)
			},
		},
		{name: "version word", argv: []string{"version"}, cmd: CmdVersion},
		{name: "version flag", argv: []string{"--version"}, cmd: CmdVersion},
		{name: "help word", argv: []string{"help"}, cmd: CmdHelp},
		{name: "short help", argv: []string{"-h"}, cmd: CmdHelp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args, err := ParseArgs(tt.argv)
			require.NoError(t, err)
			require.Equal(t, tt.cmd, cmd)
			if tt.cmd == CmdSolve {
				require.Equal(t, len(tt.coeffs), len(args.Coefficients))
				for i := range tt.coeffs {
					require.Equal(t, tt.coeffs[i], args.Coefficients[i])
				}
			}
			if tt.check != nil {
				tt.check(t, args)
			}
		})
	}
}

func TestParseArgs_Errors(t *testing.T) {
	tests := []struct {
		name string
		argv []string
	}{
		{"two coefficients", []string{"1", "2"}},
		{"four coefficients", []string{"1", "2", "3", "4"}},
		{"mixed forms", []string{"--a", "1", "1", "2", "3"}},
		{"partial named", []string{"--a", "1", "--b", "2"}},
		{"unknown flag", []string{"--colour", "1", "2", "3"}},
		{"missing value", []string{"1", "2", "3", "--renderer"}},
		{"bad points", []string{"--points", "many", "1", "2", "3"}},
		{"bad bound", []string{"--x-min", "left", "1", "2", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseArgs(tt.argv)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, ExitUsageError, GetExitCode(err))
		})
	}
}

// =============================================================================
// SOLVE TESTS (solve.go)
// =============================================================================

func TestSolve_RealRoots(t *testing.T) {
	isolate(t)
	res, err := run(t, "", "--no-plot", "--lang", "en", "1", "-3", "2")
	require.NoError(t, err)
	require.Contains(t, res.out, "Quadratic Equation System")
	require.Contains(t, res.out, "Roots: 2 and 1\n")
	require.Contains(t, res.out, "Discriminant: 1 (two distinct real roots)")
	require.Contains(t, res.out, "Vertex: (1.5, -0.25)")
}

func TestSolve_QuietOutputs(t *testing.T) {
	isolate(t)
	tests := []struct {
		name string
		argv []string
		want string
	}{
		{"complex", []string{"1", "0", "1"}, "Roots: 0+1i and 0-1i\n"},
		{"repeated", []string{"1", "2", "1"}, "Roots: -1 and -1\n"},
		{"negative leading", []string{"-1", "0", "4"}, "Roots: -2 and 2\n"},
		{"decimal comma", []string{"2", "-5", "3,25"}, "Roots: 1.25+0.25i and 1.25-0.25i\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			argv := append([]string{"--no-plot", "-q", "--lang", "en"}, tt.argv...)
			res, err := run(t, "", argv...)
			require.NoError(t, err)
			require.Equal(t, tt.want, res.out)
		})
	}
}

func TestSolve_Portuguese(t *testing.T) {
	isolate(t)
	res, err := run(t, "", "--no-plot", "-q", "--lang", "pt-BR", "1", "-3", "2")
	require.NoError(t, err)
	require.Equal(t, "Raízes: 2 e 1\n", res.out)
}

func TestSolve_PromptsForCoefficients(t *testing.T) {
	isolate(t)
	res, err := run(t, "1\n-3\n2\n", "--no-plot", "--lang", "en")
	require.NoError(t, err)
	require.Contains(t, res.out, "Enter the value of a: ")
	require.Contains(t, res.out, "Enter the value of c: ")
	require.Contains(t, res.out, "Roots: 2 and 1")
}

func TestSolve_InputErrors(t *testing.T) {
	isolate(t)

	_, err := run(t, "1\nabc\n", "--no-plot", "--lang", "en")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "b", verr.Field)
	require.Equal(t, ExitUsageError, GetExitCode(err))

	_, err = run(t, "1\n", "--no-plot", "--lang", "en")
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = run(t, "", "--no-plot", "1", "inf", "2")
	require.ErrorAs(t, err, &verr)
}

func TestSolve_LeadingZeroReportsAndSkipsPlot(t *testing.T) {
	isolate(t)
	png := filepath.Join(t.TempDir(), "chart.png")

	res, err := run(t, "", "--renderer", "png", "-o", png, "--lang", "en", "0", "2", "1")
	require.NoError(t, err)
	require.Contains(t, res.out, "Error: The coefficient 'a' cannot be zero in a second-degree equation.")
	require.NotContains(t, res.out, "Roots")
	_, statErr := os.Stat(png)
	require.True(t, os.IsNotExist(statErr), "no chart is drawn when a is zero")

	res, err = run(t, "", "--no-plot", "--lang", "pt-BR", "0", "1", "1")
	require.NoError(t, err)
	require.Contains(t, res.out, "Erro: O coeficiente 'a' não pode ser zero em uma equação do segundo grau.")
}

func TestSolve_JSON(t *testing.T) {
	isolate(t)
	res, err := run(t, "", "--json", "--no-plot", "1", "-3", "2")
	require.NoError(t, err)

	var resp struct {
		Success bool      `json:"success"`
		Command string    `json:"command"`
		Data    SolveData `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.out), &resp))
	require.True(t, resp.Success)
	require.Equal(t, "solve", resp.Command)
	require.Equal(t, 1.0, resp.Data.Discriminant)
	require.Equal(t, "two_real", resp.Data.Nature)
	require.Len(t, resp.Data.Roots, 2)
	require.Equal(t, 2.0, resp.Data.Roots[0].Real)
	require.Equal(t, 1.0, resp.Data.Roots[1].Real)
	require.Nil(t, resp.Data.Plot)
	require.Equal(t, "y = 1x² + -3x + 2", resp.Data.Equation.Legend)
}

func TestSolve_JSONLeadingZero(t *testing.T) {
	isolate(t)
	res, err := run(t, "", "--json", "--no-plot", "--lang", "en", "0", "1", "1")
	require.NoError(t, err)

	var resp struct {
		Success bool      `json:"success"`
		Error   *string   `json:"error"`
		Data    SolveData `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.out), &resp))
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	require.Contains(t, *resp.Error, "cannot be zero")

	// The discriminant is defined for any coefficients; only the roots are not.
	require.Equal(t, 1.0, resp.Data.Discriminant)
	require.Empty(t, resp.Data.Roots)
	require.NotContains(t, res.out, `"nature"`)
}

func TestSolve_NoNegativeZero(t *testing.T) {
	isolate(t)
	res, err := run(t, "", "--no-plot", "--lang", "en", "1", "0", "1")
	require.NoError(t, err)
	require.Contains(t, res.out, "Roots: 0+1i and 0-1i\n")
	require.Contains(t, res.out, "Vertex: (0, 1)")

	res, err = run(t, "", "--json", "--no-plot", "1", "0", "1")
	require.NoError(t, err)
	require.NotContains(t, res.out, `": -0`)

	var resp struct {
		Data SolveData `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.out), &resp))
	require.Len(t, resp.Data.Roots, 2)
	for _, r := range resp.Data.Roots {
		require.False(t, math.Signbit(r.Real), "root %s", r.Text)
	}
	require.NotNil(t, resp.Data.Vertex)
	require.False(t, math.Signbit(resp.Data.Vertex.X))
}

func TestSolve_TextRendererAlsoSavesPNG(t *testing.T) {
	isolate(t)
	png := filepath.Join(t.TempDir(), "screen.png")

	res, err := run(t, "", "--renderer", "text", "-o", png, "--points", "50", "--lang", "en", "1", "-3", "2")
	require.NoError(t, err)
	require.Contains(t, res.out, "Quadratic Equation Graph")
	require.Contains(t, res.out, "Chart saved to "+png)

	data, err := os.ReadFile(png)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestSolve_JSONReportsSavedOutput(t *testing.T) {
	isolate(t)
	png := filepath.Join(t.TempDir(), "side.png")

	res, err := run(t, "", "--json", "--renderer", "text", "-o", png, "--points", "20", "1", "-3", "2")
	require.NoError(t, err)

	var resp struct {
		Data SolveData `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.out), &resp))
	require.NotNil(t, resp.Data.Plot)
	require.Equal(t, "text", resp.Data.Plot.Renderer)
	require.Equal(t, png, resp.Data.Plot.Output)
	require.FileExists(t, png)
}

func TestSolve_PNGRenderer(t *testing.T) {
	isolate(t)
	png := filepath.Join(t.TempDir(), "roots.png")

	res, err := run(t, "", "--renderer", "png", "-o", png, "--points", "50", "--lang", "en", "1", "-3", "2")
	require.NoError(t, err)
	require.Contains(t, res.out, "Chart saved to "+png)

	data, err := os.ReadFile(png)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestSolve_AutoRendererIsPNGWithoutTerminal(t *testing.T) {
	isolate(t)
	s := Streams{In: strings.NewReader(""), Out: &bytes.Buffer{}, Err: &bytes.Buffer{}}
	require.Equal(t, config.RendererPNG, resolveRenderer(config.RendererAuto, s, false))
	require.Equal(t, config.RendererText, resolveRenderer(config.RendererText, s, false))
}

func TestSolve_TextRenderer(t *testing.T) {
	isolate(t)
	res, err := run(t, "", "--renderer", "text", "-q", "--lang", "en", "1", "-3", "2")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(res.out, "Roots: 2 and 1\n"))
	require.Contains(t, res.out, "Quadratic Equation Graph")
	require.Contains(t, res.out, "y = 1x² + -3x + 2")
}

func TestSolve_TooFewPointsFailsAfterRoots(t *testing.T) {
	isolate(t)
	res, err := run(t, "", "--renderer", "text", "--points", "1", "--lang", "en", "1", "-3", "2")
	require.Error(t, err)
	require.ErrorIs(t, err, grapher.ErrInsufficientSamplePoints)
	require.Equal(t, ExitGeneralError, GetExitCode(err))
	require.Contains(t, res.out, "Roots: 2 and 1")

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	require.Equal(t, "plot", cmdErr.Action)

	// Without a plot the sample count never matters.
	_, err = run(t, "", "--no-plot", "--points", "1", "1", "-3", "2")
	require.NoError(t, err)
}

func TestSolve_InvalidRendererFlag(t *testing.T) {
	isolate(t)
	_, err := run(t, "", "--renderer", "window", "1", "2", "3")
	require.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestSolve_BadConfigFile(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".parabola")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[plot]\nrenderer = \"nope\"\n"), 0600))

	_, err := run(t, "", "1", "2", "3")
	require.Error(t, err)
	require.Equal(t, ExitConfigError, GetExitCode(err))
}

func TestSolve_ConfigFileSetsDomain(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "parabola.toml")
	require.NoError(t, os.WriteFile(path, []byte("[plot]\nrenderer = \"none\"\n[ui]\nlanguage = \"pt-BR\"\n"), 0600))

	res, err := run(t, "", "--config", path, "-q", "1", "-3", "2")
	require.NoError(t, err)
	require.Equal(t, "Raízes: 2 e 1\n", res.out)
}

func TestSolve_WatchRedrawsOnConfigChange(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "parabola.toml")
	require.NoError(t, os.WriteFile(path, []byte("[plot]\npoints = 40\n"), 0600))

	cmd, args, err := ParseArgs([]string{"--config", path, "--watch", "--renderer", "text", "--lang", "en", "1", "0", "-4"})
	require.NoError(t, err)

	out, errOut := &syncBuffer{}, &syncBuffer{}
	s := Streams{In: strings.NewReader(""), Out: out, Err: errOut}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- Run(ctx, cmd, args, s) }()

	waitFor := func(buf *syncBuffer, text string) {
		t.Helper()
		deadline := time.Now().Add(5 * time.Second)
		for !strings.Contains(buf.String(), text) {
			if time.Now().After(deadline) {
				t.Fatalf("timed out waiting for %q", text)
			}
			time.Sleep(10 * time.Millisecond)
		}
	}

	waitFor(out, "Quadratic Equation Graph")
	require.NoError(t, os.WriteFile(path, []byte("[plot]\npoints = 20\nx_min = -3\nx_max = 3\n"), 0600))
	waitFor(errOut, "configuration reloaded")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
	require.GreaterOrEqual(t, strings.Count(out.String(), "Quadratic Equation Graph"), 2)
}

// =============================================================================
// CONFIG COMMAND TESTS (config_cmd.go)
// =============================================================================

func TestConfig_SetGetInit(t *testing.T) {
	home := isolate(t)

	res, err := run(t, "", "config", "set", "plot.points", "120")
	require.NoError(t, err)
	require.Contains(t, res.out, "plot.points = 120")

	path := filepath.Join(home, ".parabola", "config.toml")
	_, err = os.Stat(path)
	require.NoError(t, err)

	res, err = run(t, "", "config", "get", "plot.points")
	require.NoError(t, err)
	require.Equal(t, "120\n", res.out)

	res, err = run(t, "", "config", "set", "plot.x_min", "-2,5")
	require.NoError(t, err)
	res, err = run(t, "", "config", "get", "plot.x_min")
	require.NoError(t, err)
	require.Equal(t, "-2.5\n", res.out)

	res, err = run(t, "", "config", "path")
	require.NoError(t, err)
	require.Equal(t, path+"\n", res.out)

	_, err = run(t, "", "config", "init")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = run(t, "", "config", "init", "--force")
	require.NoError(t, err)
	res, err = run(t, "", "config", "get", "plot.points")
	require.NoError(t, err)
	require.Equal(t, "400\n", res.out)
}

func TestConfig_Errors(t *testing.T) {
	isolate(t)

	_, err := run(t, "", "config", "get", "plot.colour")
	require.Equal(t, ExitNotFoundError, GetExitCode(err))

	_, err = run(t, "", "config", "set", "plot.points", "lots")
	require.Equal(t, ExitUsageError, GetExitCode(err))

	_, err = run(t, "", "config", "set", "plot.renderer", "gnuplot")
	require.Equal(t, ExitConfigError, GetExitCode(err))

	_, err = run(t, "", "config", "get")
	require.Equal(t, ExitUsageError, GetExitCode(err))

	_, err = run(t, "", "config", "frobnicate")
	require.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestConfig_ShowJSON(t *testing.T) {
	isolate(t)
	res, err := run(t, "", "--json", "--points", "77", "config", "show")
	require.NoError(t, err)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Exists bool          `json:"exists"`
			Config config.Config `json:"config"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.out), &resp))
	require.True(t, resp.Success)
	require.False(t, resp.Data.Exists)
	require.Equal(t, 77, resp.Data.Config.Plot.Points)
}

func TestConfig_ShowTOML(t *testing.T) {
	isolate(t)
	res, err := run(t, "", "config")
	require.NoError(t, err)
	require.Contains(t, res.out, "[plot]")
	require.Contains(t, res.out, "points = 400")
}

// =============================================================================
// HELP, VERSION AND ERRORS
// =============================================================================

func TestHelpAndVersion(t *testing.T) {
	isolate(t)

	res, err := run(t, "", "help")
	require.NoError(t, err)
	require.Contains(t, res.out, "Usage:")

	res, err = run(t, "", "version")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(res.out, "parabola "+Version))

	res, err = run(t, "", "--json", "version")
	require.NoError(t, err)
	var resp struct {
		Data VersionData `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.out), &resp))
	require.Equal(t, Version, resp.Data.Version)
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"validation", NewValidationError("a", "x", "bad"), ExitUsageError},
		{"not found", NewNotFoundError("config key", "x"), ExitNotFoundError},
		{"config keyword", errors.New("load config: boom"), ExitConfigError},
		{"cancelled", context.Canceled, ExitInterrupted},
		{"interrupted", interruptedError{msg: "entrada interrompida"}, ExitInterrupted},
		{"wrapped command", NewCommandError("solve", "plot", "x", grapher.ErrInsufficientSamplePoints), ExitGeneralError},
		{"generic", errors.New("boom"), ExitGeneralError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestDisplayError(t *testing.T) {
	var buf bytes.Buffer
	DisplayError(&buf, NewValidationErrorWithExample("points", "1", "too small", "--points 2"), false)
	require.Contains(t, buf.String(), "[ERROR] invalid points: too small (got: 1)")

	buf.Reset()
	DisplayError(&buf, NewValidationError("a", "x", "not a number"), true)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, "validation_error", out["error_type"])
	require.Equal(t, false, out["success"])

	buf.Reset()
	DisplayError(&buf, nil, false)
	require.Empty(t, buf.String())
}
