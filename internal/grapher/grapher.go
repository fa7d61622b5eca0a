// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// grapher.go - Sampling a quadratic over a domain and handing it to a renderer.
package grapher

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jeranaias/parabola/internal/equation"
)

// ErrInsufficientSamplePoints is returned when fewer than two sample points
// are requested; the step size is undefined below two.
var ErrInsufficientSamplePoints = errors.New("the number of points must be at least 2")

// =============================================================================
// OPTIONS
// =============================================================================

const (
	// DefaultXMin is the left end of the default domain.
	DefaultXMin = -10.0
	// DefaultXMax is the right end of the default domain.
	DefaultXMax = 10.0
	// DefaultPoints is the default number of samples.
	DefaultPoints = 400
	// MinPoints is the smallest usable number of samples.
	MinPoints = 2
)

// Options controls the sampled domain.
// XMin > XMax is accepted and yields a decreasing x sequence.
type Options struct {
	XMin   float64
	XMax   float64
	Points int
}

// DefaultOptions returns the domain [-10, 10] sampled at 400 points.
func DefaultOptions() Options {
	return Options{XMin: DefaultXMin, XMax: DefaultXMax, Points: DefaultPoints}
}

// Step returns the distance between consecutive x values.
func (o Options) Step() (float64, error) {
	if o.Points < MinPoints {
		return 0, fmt.Errorf("%w (got %d)", ErrInsufficientSamplePoints, o.Points)
	}
	return (o.XMax - o.XMin) / float64(o.Points-1), nil
}

// =============================================================================
// LABELS
// =============================================================================

// Labels holds the text placed around a chart.
type Labels struct {
	Title  string
	XLabel string
	YLabel string
}

// DefaultLabels returns the English chart labels.
func DefaultLabels() Labels {
	return Labels{
		Title:  "Quadratic Equation Graph",
		XLabel: "x",
		YLabel: "y",
	}
}

// =============================================================================
// RENDERER PORT
// =============================================================================

// Renderer draws a chart. Render is synchronous: interactive renderers block
// until the display is dismissed, headless ones return once output is written.
type Renderer interface {
	Render(ctx context.Context, c *Chart) error
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(ctx context.Context, c *Chart) error

// Render calls f(ctx, c).
func (f RendererFunc) Render(ctx context.Context, c *Chart) error {
	return f(ctx, c)
}

// =============================================================================
// GRAPHER
// =============================================================================

// Grapher produces charts for one equation. It keeps its own copy of the
// equation and never modifies it.
type Grapher struct {
	eq       equation.Equation
	renderer Renderer
	labels   Labels
}

// Option configures a Grapher.
type Option func(*Grapher)

// WithLabels overrides the default chart labels.
func WithLabels(l Labels) Option {
	return func(g *Grapher) {
		g.labels = l
	}
}

// New creates a Grapher for eq that renders through r.
func New(eq equation.Equation, r Renderer, opts ...Option) *Grapher {
	g := &Grapher{
		eq:       eq,
		renderer: r,
		labels:   DefaultLabels(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Equation returns the equation being graphed.
func (g *Grapher) Equation() equation.Equation {
	return g.eq
}

// Sample evaluates the equation at opts.Points evenly spaced x values from
// opts.XMin to opts.XMax, both endpoints included.
func (g *Grapher) Sample(opts Options) (*Series, error) {
	step, err := opts.Step()
	if err != nil {
		return nil, err
	}

	s := &Series{
		X: make([]float64, opts.Points),
		Y: make([]float64, opts.Points),
	}
	for i := 0; i < opts.Points; i++ {
		x := opts.XMin + float64(i)*step
		s.X[i] = x
		s.Y[i] = g.eq.ValueAt(x)
	}

	Logger().Debug("SAMPLE",
		"x_min", opts.XMin, "x_max", opts.XMax, "points", opts.Points, "step", step)
	return s, nil
}

// Chart samples the equation and attaches labels and decorations.
func (g *Grapher) Chart(opts Options) (*Chart, error) {
	series, err := g.Sample(opts)
	if err != nil {
		return nil, err
	}
	return &Chart{
		Title:          g.labels.Title,
		XLabel:         g.labels.XLabel,
		YLabel:         g.labels.YLabel,
		Legend:         g.eq.String(),
		Equation:       g.eq,
		Domain:         opts,
		Series:         series,
		HorizontalAxis: true,
		VerticalAxis:   true,
		Grid:           true,
	}, nil
}

// Plot builds the chart for opts and hands it to the renderer.
func (g *Grapher) Plot(ctx context.Context, opts Options) error {
	c, err := g.Chart(opts)
	if err != nil {
		return err
	}
	if g.renderer == nil {
		return errors.New("grapher: no renderer configured")
	}
	if err := g.renderer.Render(ctx, c); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	Logger().Info("PLOT_RENDERED", "legend", c.Legend, "points", c.Series.Len())
	return nil
}

// =============================================================================
// SERIES
// =============================================================================

// Series is a materialized sample sequence. X and Y always have equal length.
type Series struct {
	X []float64
	Y []float64
}

// Len returns the number of (x, y) pairs.
func (s *Series) Len() int {
	return len(s.X)
}

// XY returns the pair at index i.
func (s *Series) XY(i int) (float64, float64) {
	return s.X[i], s.Y[i]
}

// Bounds returns the extent of the finite samples. ok is false when there
// are none.
func (s *Series) Bounds() (minX, maxX, minY, maxY float64, ok bool) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for i := range s.X {
		x, y := s.X[i], s.Y[i]
		if !isFinite(x) || !isFinite(y) {
			continue
		}
		ok = true
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}
	return minX, maxX, minY, maxY, ok
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// =============================================================================
// CHART
// =============================================================================

// Chart is everything a renderer needs to draw one plot.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	Legend string

	Equation equation.Equation
	Domain   Options
	Series   *Series

	// HorizontalAxis draws the line y = 0.
	HorizontalAxis bool
	// VerticalAxis draws the line x = 0.
	VerticalAxis bool
	// Grid draws a dashed grid overlay.
	Grid bool
}

// Viewport returns the data rectangle a renderer should map to its surface.
// Degenerate extents are widened by one unit so the mapping stays defined.
func (c *Chart) Viewport() (minX, maxX, minY, maxY float64) {
	minX, maxX, minY, maxY, ok := c.Series.Bounds()
	if !ok {
		return -1, 1, -1, 1
	}
	if c.HorizontalAxis {
		minY = math.Min(minY, 0)
		maxY = math.Max(maxY, 0)
	}
	if maxX-minX == 0 {
		minX, maxX = minX-1, maxX+1
	}
	if maxY-minY == 0 {
		minY, maxY = minY-1, maxY+1
	}
	return minX, maxX, minY, maxY
}
