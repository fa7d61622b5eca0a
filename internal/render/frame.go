// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// frame.go - Mapping chart data onto a rectangular drawing surface.
package render

import (
	"math"
	"strconv"

	"github.com/jeranaias/parabola/internal/grapher"
)

// frame maps data coordinates onto a surface rectangle. Surface y grows
// downwards, data y grows upwards.
type frame struct {
	minX, maxX, minY, maxY float64

	left, top, width, height float64
}

// newFrame fits the chart viewport into the given surface rectangle.
func newFrame(c *grapher.Chart, left, top, width, height float64) frame {
	minX, maxX, minY, maxY := c.Viewport()
	return frame{
		minX: minX, maxX: maxX, minY: minY, maxY: maxY,
		left: left, top: top, width: width, height: height,
	}
}

// px maps a data x to a surface x.
func (f frame) px(x float64) float64 {
	return f.left + (x-f.minX)/(f.maxX-f.minX)*f.width
}

// py maps a data y to a surface y.
func (f frame) py(y float64) float64 {
	return f.top + (f.maxY-y)/(f.maxY-f.minY)*f.height
}

// containsX reports whether x lies inside the horizontal data range.
func (f frame) containsX(x float64) bool {
	return x >= f.minX && x <= f.maxX
}

// containsY reports whether y lies inside the vertical data range.
func (f frame) containsY(y float64) bool {
	return y >= f.minY && y <= f.maxY
}

// niceTicks returns roughly n evenly spaced round values covering [lo, hi],
// using steps of 1, 2 or 5 times a power of ten.
func niceTicks(lo, hi float64, n int) []float64 {
	if n < 2 || !(hi > lo) || math.IsInf(hi-lo, 0) {
		return nil
	}
	raw := (hi - lo) / float64(n-1)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	step := mag
	for _, m := range []float64{1, 2, 5, 10} {
		step = m * mag
		if step >= raw {
			break
		}
	}

	// Round to the step's precision so labels read "0.6", not "0.6000000000000001".
	scale := math.Pow(10, math.Max(0, -math.Floor(math.Log10(step))))
	first := math.Ceil(lo / step)
	var ticks []float64
	for i := 0.0; ; i++ {
		v := (first + i) * step
		if v > hi+step*1e-9 {
			break
		}
		ticks = append(ticks, math.Round(v*scale)/scale)
	}
	return ticks
}

// tickLabel formats a tick value compactly.
func tickLabel(v float64) string {
	if math.Abs(v) < 1e-12 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}
