// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// solve.go - The solve command: read coefficients, print roots, plot.
//
// Flow:
//   - Load settings (file, environment, flags)
//   - Read a, b and c from arguments or prompts
//   - Print both roots, or a localized error when a is zero
//   - Hand the parabola to the configured renderer

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/parabola/internal/config"
	"github.com/jeranaias/parabola/internal/equation"
	"github.com/jeranaias/parabola/internal/grapher"
	"github.com/jeranaias/parabola/internal/i18n"
	"github.com/jeranaias/parabola/internal/render"
	"github.com/jeranaias/parabola/internal/util"
)

// Streams are the standard streams a command reads and writes.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns the process streams.
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// =============================================================================
// SETTINGS
// =============================================================================

// loadSettings loads the config file named by --config, or the default one,
// and applies command line overrides.
func loadSettings(args Args) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if args.ConfigPath != "" {
		cfg, err = config.LoadFromPath(args.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := applyFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags copies flag values over cfg. Flags win over the file and the
// environment.
func applyFlags(cfg *config.Config, args Args) error {
	if args.Renderer != "" {
		if !isValidRenderer(args.Renderer) {
			return NewValidationErrorWithExample("renderer", args.Renderer,
				"must be one of auto, tui, text, png, none", "--renderer png")
		}
		cfg.Plot.Renderer = args.Renderer
	}
	if args.NoPlot {
		cfg.Plot.Renderer = config.RendererNone
	}
	if args.Output != "" {
		if err := validateOutputPath(args.Output); err != nil {
			return err
		}
		cfg.Plot.Output = args.Output
	}
	if args.XMin != nil {
		cfg.Plot.XMin = *args.XMin
	}
	if args.XMax != nil {
		cfg.Plot.XMax = *args.XMax
	}
	if args.Points != nil {
		cfg.Plot.Points = *args.Points
	}
	if args.Lang != "" {
		cfg.UI.Language = args.Lang
	}
	return nil
}

func isValidRenderer(name string) bool {
	for _, r := range config.ValidRenderers {
		if r == name {
			return true
		}
	}
	return false
}

// =============================================================================
// SOLVE COMMAND
// =============================================================================

// HandleSolve runs the solve command.
//
// A zero leading coefficient is reported on the output and is not an error:
// the run ends without plotting and HandleSolve returns nil.
func HandleSolve(ctx context.Context, args Args, s Streams) error {
	cfg, err := loadSettings(args)
	if err != nil {
		return err
	}
	if !cfg.UI.Color {
		ForceColorsEnabled(false)
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	logger := newLogger(s.Err, cfg.Log.Level, args.Verbose)
	installLogger(logger)

	pr := i18n.NewPrinter(cfg.UI.Language)
	logger.Debug("SETTINGS",
		"language", pr.Tag().String(), "renderer", cfg.Plot.Renderer,
		"x_min", cfg.Plot.XMin, "x_max", cfg.Plot.XMax, "points", cfg.Plot.Points)

	if !args.JSON && !args.Quiet {
		fmt.Fprintln(s.Out, RenderConditional(TitleStyle, pr.Sprintf(i18n.KeyBanner)))
	}

	coeffs, err := readCoefficients(args.Coefficients, func() Prompter {
		return newPrompter(s, args.JSON)
	}, pr)
	if err != nil {
		return err
	}

	eq := equation.New(coeffs[0], coeffs[1], coeffs[2])
	roots, err := eq.Roots()
	if errors.Is(err, equation.ErrInvalidLeadingCoefficient) {
		logger.Info("SOLVE", "a", eq.A, "b", eq.B, "c", eq.C, "error", err)
		return reportLeadingZero(s.Out, pr, eq, args.JSON)
	}
	if err != nil {
		return err
	}
	logger.Info("SOLVE", "a", eq.A, "b", eq.B, "c", eq.C,
		"discriminant", roots.Discriminant, "nature", roots.Nature().String())

	data := newSolveData(eq, roots)
	if !args.JSON {
		printSolution(s.Out, pr, eq, roots, args.Quiet)
	}

	plot, err := plotEquation(ctx, cfg, args, s, pr, eq, logger)
	if err != nil {
		return err
	}
	if args.JSON {
		data.Plot = plot
		return NewJSONResponse(CmdSolve.String(), data).PrintTo(s.Out)
	}
	return nil
}

// reportLeadingZero prints the localized a == 0 message.
func reportLeadingZero(w io.Writer, pr *i18n.Printer, eq equation.Equation, jsonMode bool) error {
	msg := pr.Sprintf(i18n.KeyLeadingZero)
	if jsonMode {
		resp := NewJSONErrorResponseStr(CmdSolve.String(), msg)
		resp.Data = SolveData{
			Equation:     newEquationInfo(eq),
			Discriminant: util.NormalizeZero(eq.Discriminant()),
			Roots:        []RootInfo{},
		}
		return resp.PrintTo(w)
	}
	fmt.Fprintln(w, RenderConditional(ErrorStyle, pr.Sprintf(i18n.KeyError, msg)))
	return nil
}

// printSolution writes the roots line and, unless quiet, a short analysis.
func printSolution(w io.Writer, pr *i18n.Printer, eq equation.Equation, roots equation.Roots, quiet bool) {
	line := pr.Sprintf(i18n.KeyRoots, equation.FormatRoot(roots.First), equation.FormatRoot(roots.Second))
	fmt.Fprintln(w, RenderConditional(SuccessStyle, line))
	if quiet {
		return
	}

	fmt.Fprintf(w, "%s%s (%s)\n",
		RenderLabel(pr.Sprintf(i18n.KeyDiscriminant)),
		RenderConditional(ValueStyle, util.FloatToString(roots.Discriminant)),
		RenderConditional(DimStyle, pr.Sprintf(natureKey(roots.Nature()))))
	if x, y, ok := eq.Vertex(); ok {
		fmt.Fprintf(w, "%s%s\n",
			RenderLabel(pr.Sprintf(i18n.KeyVertex)),
			RenderConditional(ValueStyle, fmt.Sprintf("(%s, %s)", util.FloatToString(x), util.FloatToString(y))))
	}
}

func natureKey(n equation.Nature) string {
	switch n {
	case equation.TwoReal:
		return i18n.KeyNatureTwoReal
	case equation.RepeatedReal:
		return i18n.KeyNatureRepeated
	default:
		return i18n.KeyNatureComplex
	}
}

func newEquationInfo(eq equation.Equation) EquationInfo {
	return EquationInfo{
		A:      util.NormalizeZero(eq.A),
		B:      util.NormalizeZero(eq.B),
		C:      util.NormalizeZero(eq.C),
		Legend: eq.String(),
	}
}

func newSolveData(eq equation.Equation, roots equation.Roots) SolveData {
	data := SolveData{
		Equation:     newEquationInfo(eq),
		Discriminant: util.NormalizeZero(roots.Discriminant),
		Nature:       roots.Nature().String(),
	}
	for _, z := range roots.Pair() {
		data.Roots = append(data.Roots, RootInfo{
			Real: util.NormalizeZero(real(z)),
			Imag: util.NormalizeZero(imag(z)),
			Text: equation.FormatRoot(z),
		})
	}
	if x, y, ok := eq.Vertex(); ok {
		data.Vertex = &PointInfo{X: util.NormalizeZero(x), Y: util.NormalizeZero(y)}
	}
	return data
}

// =============================================================================
// PLOTTING
// =============================================================================

// resolveRenderer turns "auto" into a concrete renderer name.
// The viewer needs a terminal on both ends and is never chosen in JSON mode.
func resolveRenderer(name string, s Streams, jsonMode bool) string {
	if name != config.RendererAuto {
		return name
	}
	if !jsonMode && isTerminalReader(s.In) && isTerminalWriter(s.Out) {
		return config.RendererTUI
	}
	return config.RendererPNG
}

// buildRenderer creates the renderer for kind. The viewer is also returned
// on its own so --watch can feed it updates.
func buildRenderer(kind string, cfg *config.Config, s Streams, pr *i18n.Printer, jsonMode bool) (grapher.Renderer, *render.Viewer) {
	switch kind {
	case config.RendererPNG:
		return render.NewPNG(cfg.Plot.Output, cfg.Plot.Width, cfg.Plot.Height), nil
	case config.RendererText:
		w := s.Out
		if jsonMode {
			w = s.Err
		}
		t := render.NewText(w)
		if isTerminalWriter(w) {
			cols, rows := terminalSize(w)
			t.Width = cols
			if rows-2 < t.Height {
				t.Height = rows - 2
			}
			if ColorsEnabled() {
				t.Styles = render.DefaultTextStyles()
			}
		}
		return t, nil
	case config.RendererTUI:
		v := render.NewViewer()
		v.In = s.In
		v.Out = s.Out
		if !ColorsEnabled() {
			v.Styles = render.PlainTextStyles()
		}
		v.Keys.Quit = key.NewBinding(
			key.WithKeys(v.Keys.Quit.Keys()...),
			key.WithHelp("q/esc", pr.Sprintf(i18n.KeyViewerHelp)),
		)
		return v, v
	default:
		return render.Nop{}, nil
	}
}

// plotOptions reads the sampled domain from cfg.
func plotOptions(cfg *config.Config) grapher.Options {
	return grapher.Options{XMin: cfg.Plot.XMin, XMax: cfg.Plot.XMax, Points: cfg.Plot.Points}
}

// plotEquation draws eq with the configured renderer. It returns nil info
// when plotting is disabled.
func plotEquation(ctx context.Context, cfg *config.Config, args Args, s Streams, pr *i18n.Printer, eq equation.Equation, logger *slog.Logger) (*PlotInfo, error) {
	kind := resolveRenderer(cfg.Plot.Renderer, s, args.JSON)
	if kind == config.RendererNone {
		return nil, nil
	}

	opts := plotOptions(cfg)
	info := &PlotInfo{Renderer: kind, XMin: opts.XMin, XMax: opts.XMax, Points: opts.Points}

	r, viewer := buildRenderer(kind, cfg, s, pr, args.JSON)

	// An explicit --output with an on-screen renderer also saves the chart.
	// The file is written first so it exists while the viewer blocks.
	var save grapher.Renderer
	if args.Output != "" && (kind == config.RendererTUI || kind == config.RendererText) {
		save = render.NewPNG(cfg.Plot.Output, cfg.Plot.Width, cfg.Plot.Height)
		r = render.Multi{save, r}
	}
	saved := kind == config.RendererPNG || save != nil
	if saved {
		info.Output = cfg.Plot.Output
	}

	labels := grapher.DefaultLabels()
	labels.Title = pr.Sprintf(i18n.KeyChartTitle)
	g := grapher.New(eq, r, grapher.WithLabels(labels))

	var err error
	if args.Watch {
		err = watchAndPlot(ctx, g, r, viewer, save, opts, args, s, pr, logger)
	} else {
		err = g.Plot(ctx, opts)
	}
	if err != nil {
		return info, plotError(err, pr)
	}

	if saved && !args.JSON && !args.Quiet {
		fmt.Fprintln(s.Out, RenderConditional(DimStyle, pr.Sprintf(i18n.KeyChartSaved, cfg.Plot.Output)))
	}
	return info, nil
}

// plotError wraps a plotting failure for display.
func plotError(err error, pr *i18n.Printer) error {
	switch {
	case errors.Is(err, grapher.ErrInsufficientSamplePoints):
		return NewCommandError(CmdSolve.String(), "plot", pr.Sprintf(i18n.KeyInsufficient), err)
	case errors.Is(err, context.Canceled), errors.Is(err, render.ErrNoDisplay):
		return err
	default:
		return NewCommandError(CmdSolve.String(), "plot", "could not render the chart", err)
	}
}

// =============================================================================
// WATCH MODE
// =============================================================================

// watchPath picks the file --watch follows.
func watchPath(args Args) (string, error) {
	if args.ConfigPath != "" {
		return args.ConfigPath, nil
	}
	if path, ok := config.FindConfigFile(); ok {
		return path, nil
	}
	return config.ConfigPathTOML()
}

// watchAndPlot renders once, then again every time the config file changes.
// The viewer swaps charts in place; other renderers redraw until ctx ends.
// save, when not nil, also receives every chart the viewer shows.
func watchAndPlot(ctx context.Context, g *grapher.Grapher, r grapher.Renderer, viewer *render.Viewer, save grapher.Renderer, opts grapher.Options, args Args, s Streams, pr *i18n.Printer, logger *slog.Logger) error {
	path, err := watchPath(args)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return NewCommandError(CmdSolve.String(), "watch", "cannot create "+filepath.Dir(path), err)
	}

	first, err := g.Chart(opts)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reloads, err := config.Watch(ctx, path, config.DefaultDebounce)
	if err != nil {
		return NewCommandError(CmdSolve.String(), "watch", "cannot watch "+path, err)
	}
	logger.Info("WATCH", "path", path)

	if viewer != nil {
		if save != nil {
			if err := save.Render(ctx, first); err != nil {
				return err
			}
		}
		updates := make(chan *grapher.Chart)
		viewer.Updates = updates
		go func() {
			defer close(updates)
			for rl := range reloads {
				// Nothing is written to the terminal while the viewer owns it.
				c, ok := chartFromReload(rl, g, args, nil, logger)
				if !ok {
					continue
				}
				if save != nil {
					if err := save.Render(ctx, c); err != nil {
						logger.Warn("PLOT_SAVE", "error", err)
					}
				}
				select {
				case updates <- c:
				case <-ctx.Done():
					return
				}
			}
		}()
		return viewer.Render(ctx, first)
	}

	if err := r.Render(ctx, first); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case rl, ok := <-reloads:
			if !ok {
				return nil
			}
			c, ok := chartFromReload(rl, g, args, s.Err, logger)
			if !ok {
				continue
			}
			if err := r.Render(ctx, c); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			if !args.Quiet {
				fmt.Fprintln(s.Err, RenderConditional(DimStyle, pr.Sprintf(i18n.KeyConfigReloaded)))
			}
		}
	}
}

// chartFromReload rebuilds the chart from a reloaded config. Flags still
// win over the file. Bad reloads are logged, written to report when it is
// not nil, and skipped.
func chartFromReload(rl config.Reload, g *grapher.Grapher, args Args, report io.Writer, logger *slog.Logger) (*grapher.Chart, bool) {
	warn := func(err error) {
		logger.Warn("CONFIG_RELOAD", "error", err)
		if report != nil {
			fmt.Fprintln(report, RenderConditional(WarningStyle, "[WARN] "+err.Error()))
		}
	}
	if rl.Err != nil {
		warn(rl.Err)
		return nil, false
	}
	cfg := rl.Config
	if err := applyFlags(cfg, args); err != nil {
		return nil, false
	}
	opts := plotOptions(cfg)
	c, err := g.Chart(opts)
	if err != nil {
		warn(err)
		return nil, false
	}
	logger.Info("CONFIG_RELOAD", "x_min", opts.XMin, "x_max", opts.XMax, "points", opts.Points)
	return c, true
}
