// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// png.go - Headless chart rendering to a PNG file with gogpu/gg.
package render

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/jeranaias/parabola/internal/grapher"
	"github.com/jeranaias/parabola/internal/util"
)

const (
	// DefaultPNGWidth and DefaultPNGHeight match an 8x5 inch figure at 100 dpi.
	DefaultPNGWidth  = 800
	DefaultPNGHeight = 500

	// DefaultPNGPath is where charts go when no output path is configured.
	DefaultPNGPath = "parabola.png"
)

// Chart colours.
var (
	curveColor  = gg.Hex("#1f77b4")
	axisColor   = gg.Black
	gridColor   = gg.RGBA2(0.5, 0.5, 0.5, 0.5)
	frameColor  = gg.RGB(0.2, 0.2, 0.2)
	legendFill  = gg.RGBA2(1, 1, 1, 0.85)
	legendFrame = gg.RGB(0.8, 0.8, 0.8)
)

// fontSource is parsed once and shared by every PNG render.
var (
	fontSource     *text.FontSource
	fontSourceErr  error
	fontSourceOnce sync.Once
)

func loadFont() (*text.FontSource, error) {
	fontSourceOnce.Do(func() {
		fontSource, fontSourceErr = text.NewFontSource(goregular.TTF)
	})
	return fontSource, fontSourceErr
}

// PNG renders charts to an image file.
type PNG struct {
	Path   string
	Width  int
	Height int
}

// NewPNG creates a PNG renderer. Zero sizes fall back to 800x500 and an
// empty path to parabola.png.
func NewPNG(path string, width, height int) *PNG {
	if path == "" {
		path = DefaultPNGPath
	}
	if width <= 0 {
		width = DefaultPNGWidth
	}
	if height <= 0 {
		height = DefaultPNGHeight
	}
	return &PNG{Path: path, Width: width, Height: height}
}

// Render draws the chart and writes it to p.Path atomically.
func (p *PNG) Render(ctx context.Context, c *grapher.Chart) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := p.Encode(c)
	if err != nil {
		return err
	}
	if err := util.AtomicWriteFile(p.Path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", p.Path, err)
	}
	grapher.Logger().Info("PNG_WRITTEN", "path", p.Path, "bytes", len(data))
	return nil
}

// Encode draws the chart and returns the PNG bytes.
func (p *PNG) Encode(c *grapher.Chart) ([]byte, error) {
	src, err := loadFont()
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}

	w, h := float64(p.Width), float64(p.Height)
	dc := gg.NewContext(p.Width, p.Height)
	defer func() {
		if cerr := dc.Close(); cerr != nil {
			grapher.Logger().Warn("PNG_CONTEXT_CLOSE", "error", cerr)
		}
	}()
	dc.ClearWithColor(gg.White)

	// Plot area inside margins for title, tick labels and axis labels.
	const (
		marginLeft   = 70.0
		marginRight  = 25.0
		marginTop    = 50.0
		marginBottom = 60.0
	)
	fr := newFrame(c, marginLeft, marginTop, w-marginLeft-marginRight, h-marginTop-marginBottom)
	xTicks := niceTicks(fr.minX, fr.maxX, 9)
	yTicks := niceTicks(fr.minY, fr.maxY, 7)

	if c.Grid {
		if err := drawGrid(dc, fr, xTicks, yTicks); err != nil {
			return nil, err
		}
	}
	if err := drawAxes(dc, fr, c); err != nil {
		return nil, err
	}
	if err := drawCurve(dc, fr, c.Series); err != nil {
		return nil, err
	}

	dc.SetColor(frameColor.Color())
	dc.SetLineWidth(1)
	dc.DrawRectangle(fr.left, fr.top, fr.width, fr.height)
	if err := dc.Stroke(); err != nil {
		return nil, err
	}

	body := src.Face(12)
	dc.SetFont(body)
	dc.SetColor(gg.Black.Color())
	for _, x := range xTicks {
		dc.DrawStringAnchored(tickLabel(x), fr.px(x), fr.top+fr.height+6, 0.5, 1)
	}
	for _, y := range yTicks {
		dc.DrawStringAnchored(tickLabel(y), fr.left-8, fr.py(y), 1, 0.35)
	}

	dc.SetFont(src.Face(14))
	dc.DrawStringAnchored(c.XLabel, fr.left+fr.width/2, h-14, 0.5, 0)
	dc.DrawStringAnchored(c.YLabel, 18, fr.top+fr.height/2, 0.5, 0.35)

	dc.SetFont(src.Face(16))
	dc.DrawStringAnchored(c.Title, w/2, marginTop/2, 0.5, 0.35)

	if c.Legend != "" {
		dc.SetFont(body)
		if err := drawLegend(dc, fr, c.Legend); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// drawGrid strokes the dashed grid at tick positions.
func drawGrid(dc *gg.Context, fr frame, xTicks, yTicks []float64) error {
	dc.SetColor(gridColor.Color())
	dc.SetLineWidth(1)
	dc.SetDash(4, 4)
	defer dc.ClearDash()

	for _, x := range xTicks {
		dc.DrawLine(fr.px(x), fr.top, fr.px(x), fr.top+fr.height)
	}
	for _, y := range yTicks {
		dc.DrawLine(fr.left, fr.py(y), fr.left+fr.width, fr.py(y))
	}
	return dc.Stroke()
}

// drawAxes strokes y = 0 and x = 0 when they fall inside the viewport.
func drawAxes(dc *gg.Context, fr frame, c *grapher.Chart) error {
	dc.SetColor(axisColor.Color())
	dc.SetLineWidth(0.8)
	drawn := false
	if c.HorizontalAxis && fr.containsY(0) {
		dc.DrawLine(fr.left, fr.py(0), fr.left+fr.width, fr.py(0))
		drawn = true
	}
	if c.VerticalAxis && fr.containsX(0) {
		dc.DrawLine(fr.px(0), fr.top, fr.px(0), fr.top+fr.height)
		drawn = true
	}
	if !drawn {
		return nil
	}
	return dc.Stroke()
}

// drawCurve strokes the sampled parabola, breaking the path at non-finite
// samples.
func drawCurve(dc *gg.Context, fr frame, s *grapher.Series) error {
	dc.SetColor(curveColor.Color())
	dc.SetLineWidth(1.5)
	pen := false
	for i := 0; i < s.Len(); i++ {
		x, y := s.XY(i)
		if math.IsNaN(y) || math.IsInf(y, 0) || math.IsNaN(x) || math.IsInf(x, 0) {
			pen = false
			continue
		}
		if pen {
			dc.LineTo(fr.px(x), fr.py(y))
		} else {
			dc.MoveTo(fr.px(x), fr.py(y))
			pen = true
		}
	}
	return dc.Stroke()
}

// drawLegend boxes a line sample and the label in the upper left corner.
func drawLegend(dc *gg.Context, fr frame, label string) error {
	tw, th := dc.MeasureString(label)
	const pad, swatch = 8.0, 24.0
	x, y := fr.left+10, fr.top+10
	bw, bh := pad*3+swatch+tw, th+pad*2

	dc.SetColor(legendFill.Color())
	dc.DrawRectangle(x, y, bw, bh)
	if err := dc.Fill(); err != nil {
		return err
	}
	dc.SetColor(legendFrame.Color())
	dc.SetLineWidth(1)
	dc.DrawRectangle(x, y, bw, bh)
	if err := dc.Stroke(); err != nil {
		return err
	}

	dc.SetColor(curveColor.Color())
	dc.SetLineWidth(1.5)
	dc.DrawLine(x+pad, y+bh/2, x+pad+swatch, y+bh/2)
	if err := dc.Stroke(); err != nil {
		return err
	}

	dc.SetColor(gg.Black.Color())
	dc.DrawStringAnchored(label, x+pad*2+swatch, y+bh/2, 0, 0.35)
	return nil
}
