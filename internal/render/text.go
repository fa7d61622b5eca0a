// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// text.go - Character-cell chart rendering for terminals and plain writers.
package render

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/parabola/internal/grapher"
)

const (
	// DefaultTextWidth is the chart width in columns when none is given.
	DefaultTextWidth = 80
	// DefaultTextHeight is the chart height in rows when none is given.
	DefaultTextHeight = 24

	minTextWidth  = 30
	minTextHeight = 10
)

// Cell glyphs.
const (
	glyphCurve    = '•'
	glyphHAxis    = '─'
	glyphVAxis    = '│'
	glyphOrigin   = '┼'
	glyphGrid     = '·'
	glyphFrameV   = '┤'
	glyphFrameH   = '┬'
	glyphFrameBL  = '└'
	glyphFrameBar = '─'
	glyphLegend   = "──"
)

// cellKind selects the style of a cell.
type cellKind int

const (
	cellEmpty cellKind = iota
	cellGrid
	cellAxis
	cellCurve
	cellFrame
)

// TextStyles colours the parts of a text chart.
type TextStyles struct {
	Title  lipgloss.Style
	Label  lipgloss.Style
	Curve  lipgloss.Style
	Axis   lipgloss.Style
	Grid   lipgloss.Style
	Frame  lipgloss.Style
	Legend lipgloss.Style
}

// DefaultTextStyles returns the chart palette.
func DefaultTextStyles() TextStyles {
	return TextStyles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Label:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Curve:  lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true),
		Axis:   lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		Grid:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Frame:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Legend: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
}

// PlainTextStyles returns styles that add no escape sequences.
func PlainTextStyles() TextStyles {
	plain := lipgloss.NewStyle()
	return TextStyles{
		Title: plain, Label: plain, Curve: plain, Axis: plain,
		Grid: plain, Frame: plain, Legend: plain,
	}
}

// Text draws charts as character cells.
type Text struct {
	W      io.Writer
	Width  int
	Height int
	Styles TextStyles
}

// NewText creates a text renderer writing plain characters to w.
func NewText(w io.Writer) *Text {
	return &Text{
		W:      w,
		Width:  DefaultTextWidth,
		Height: DefaultTextHeight,
		Styles: PlainTextStyles(),
	}
}

// Render writes the drawn chart to t.W.
func (t *Text) Render(ctx context.Context, c *grapher.Chart) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := io.WriteString(t.W, t.Draw(c)+"\n"); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return nil
}

// Draw returns the chart as lines of text at the renderer's size.
func (t *Text) Draw(c *grapher.Chart) string {
	width := clampMin(t.Width, DefaultTextWidth, minTextWidth)
	height := clampMin(t.Height, DefaultTextHeight, minTextHeight)
	return drawText(c, width, height, t.Styles)
}

func clampMin(v, def, min int) int {
	if v <= 0 {
		v = def
	}
	if v < min {
		v = min
	}
	return v
}

// canvas is a grid of cells addressed as [row][col].
type canvas struct {
	cols, rows int
	runes      [][]rune
	kinds      [][]cellKind
}

func newCanvas(cols, rows int) *canvas {
	cv := &canvas{cols: cols, rows: rows}
	cv.runes = make([][]rune, rows)
	cv.kinds = make([][]cellKind, rows)
	for r := range cv.runes {
		cv.runes[r] = []rune(strings.Repeat(" ", cols))
		cv.kinds[r] = make([]cellKind, cols)
	}
	return cv
}

// set writes a cell unless a higher priority kind already holds it.
func (cv *canvas) set(col, row int, r rune, k cellKind) {
	if col < 0 || col >= cv.cols || row < 0 || row >= cv.rows {
		return
	}
	if cv.kinds[row][col] > k {
		return
	}
	cv.runes[row][col] = r
	cv.kinds[row][col] = k
}

// line plots a straight segment between two cells.
func (cv *canvas) line(c0, r0, c1, r1 int, r rune, k cellKind) {
	dc, dr := abs(c1-c0), -abs(r1-r0)
	sc, sr := sign(c1-c0), sign(r1-r0)
	e := dc + dr
	for {
		cv.set(c0, r0, r, k)
		if c0 == c1 && r0 == r1 {
			return
		}
		e2 := 2 * e
		if e2 >= dr {
			e += dr
			c0 += sc
		}
		if e2 <= dc {
			e += dc
			r0 += sr
		}
	}
}

// render joins the canvas rows, styling runs of equal kind.
func (cv *canvas) render(row int, st TextStyles) string {
	var b strings.Builder
	start := 0
	for col := 1; col <= cv.cols; col++ {
		if col < cv.cols && cv.kinds[row][col] == cv.kinds[row][start] {
			continue
		}
		b.WriteString(styleFor(cv.kinds[row][start], st).Render(string(cv.runes[row][start:col])))
		start = col
	}
	return b.String()
}

func styleFor(k cellKind, st TextStyles) lipgloss.Style {
	switch k {
	case cellGrid:
		return st.Grid
	case cellAxis:
		return st.Axis
	case cellCurve:
		return st.Curve
	case cellFrame:
		return st.Frame
	default:
		return lipgloss.NewStyle()
	}
}

// drawText lays out title, y tick gutter, plot area, x ticks, x label and
// legend within width x height cells.
func drawText(c *grapher.Chart, width, height int, st TextStyles) string {
	minX, maxX, minY, maxY := c.Viewport()
	yTicks := niceTicks(minY, maxY, 5)
	xTicks := niceTicks(minX, maxX, 7)

	gutter := 0
	for _, y := range yTicks {
		gutter = max(gutter, runewidth.StringWidth(tickLabel(y)))
	}
	gutter++ // frame column

	cols := width - gutter
	// title, x tick row, x tick labels, x label, legend
	rows := height - 5
	fr := frame{
		minX: minX, maxX: maxX, minY: minY, maxY: maxY,
		left: 0, top: 0, width: float64(cols - 1), height: float64(rows - 1),
	}
	cell := func(x, y float64) (int, int) {
		return int(math.Round(fr.px(x))), int(math.Round(fr.py(y)))
	}

	cv := newCanvas(cols, rows)
	if c.Grid {
		for _, x := range xTicks {
			col, _ := cell(x, 0)
			for row := 0; row < rows; row += 2 {
				cv.set(col, row, glyphGrid, cellGrid)
			}
		}
		for _, y := range yTicks {
			_, row := cell(0, y)
			for col := 0; col < cols; col += 2 {
				cv.set(col, row, glyphGrid, cellGrid)
			}
		}
	}
	axisRow, axisCol := -1, -1
	if c.HorizontalAxis && fr.containsY(0) {
		_, axisRow = cell(0, 0)
		for col := 0; col < cols; col++ {
			cv.set(col, axisRow, glyphHAxis, cellAxis)
		}
	}
	if c.VerticalAxis && fr.containsX(0) {
		axisCol, _ = cell(0, 0)
		for row := 0; row < rows; row++ {
			cv.set(axisCol, row, glyphVAxis, cellAxis)
		}
	}
	if axisRow >= 0 && axisCol >= 0 {
		cv.set(axisCol, axisRow, glyphOrigin, cellAxis)
	}

	prevOK := false
	var pc, pr int
	for i := 0; i < c.Series.Len(); i++ {
		x, y := c.Series.XY(i)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			prevOK = false
			continue
		}
		col, row := cell(x, y)
		if prevOK {
			cv.line(pc, pr, col, row, glyphCurve, cellCurve)
		} else {
			cv.set(col, row, glyphCurve, cellCurve)
		}
		pc, pr, prevOK = col, row, true
	}

	var out []string
	out = append(out, st.Title.Render(center(c.Title, width)))

	// Plot rows with the y tick gutter.
	yLabelAt := make(map[int]string, len(yTicks))
	for _, y := range yTicks {
		_, row := cell(0, y)
		yLabelAt[row] = tickLabel(y)
	}
	for row := 0; row < rows; row++ {
		label, tick := yLabelAt[row]
		frameGlyph := string(glyphVAxis)
		if tick {
			frameGlyph = string(glyphFrameV)
		}
		left := st.Label.Render(padLeft(label, gutter-1)) + st.Frame.Render(frameGlyph)
		out = append(out, left+cv.render(row, st))
	}

	// Bottom frame with tick marks, then the tick labels underneath.
	bottom := []rune(strings.Repeat(string(glyphFrameBar), cols))
	labels := []rune(strings.Repeat(" ", cols))
	for _, x := range xTicks {
		col, _ := cell(x, 0)
		if col < 0 || col >= cols {
			continue
		}
		bottom[col] = glyphFrameH
		text := []rune(tickLabel(x))
		startCol := col - len(text)/2
		if startCol < 0 || startCol+len(text) > cols {
			continue
		}
		// Keep one blank column between neighbouring labels.
		lo, hi := max(startCol-1, 0), min(startCol+len(text)+1, cols)
		if strings.TrimSpace(string(labels[lo:hi])) == "" {
			copy(labels[startCol:], text)
		}
	}
	out = append(out, strings.Repeat(" ", gutter-1)+st.Frame.Render(string(glyphFrameBL)+string(bottom)))
	out = append(out, strings.Repeat(" ", gutter)+st.Label.Render(string(labels)))
	out = append(out, st.Label.Render(center(c.XLabel, width)))

	yHint := c.YLabel + " ↑"
	legend := ""
	if c.Legend != "" {
		avail := max(width-gutter-runewidth.StringWidth(glyphLegend)-3-runewidth.StringWidth(yHint), 1)
		legend = st.Curve.Render(glyphLegend) + " " +
			st.Legend.Render(runewidth.Truncate(c.Legend, avail, "…")) + "  "
	}
	out = append(out, strings.Repeat(" ", gutter)+legend+st.Label.Render(yHint))

	return strings.Join(out, "\n")
}

// center pads s on both sides to occupy width display columns.
func center(s string, width int) string {
	s = runewidth.Truncate(s, width, "…")
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad/2) + s + strings.Repeat(" ", pad-pad/2)
}

// padLeft right-aligns s in width display columns.
func padLeft(s string, width int) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
