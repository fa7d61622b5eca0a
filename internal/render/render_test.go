// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/parabola/internal/equation"
	"github.com/jeranaias/parabola/internal/grapher"
)

func testChart(t *testing.T, a, b, c float64, opts grapher.Options) *grapher.Chart {
	t.Helper()
	ch, err := grapher.New(equation.New(a, b, c), nil).Chart(opts)
	require.NoError(t, err)
	return ch
}

// =============================================================================
// FRAME
// =============================================================================

func TestFrame_MapsCorners(t *testing.T) {
	ch := testChart(t, 1, 0, 0, grapher.Options{XMin: -2, XMax: 2, Points: 5})
	fr := newFrame(ch, 10, 20, 100, 50)

	require.Equal(t, 10.0, fr.px(-2))
	require.Equal(t, 110.0, fr.px(2))
	require.Equal(t, 70.0, fr.py(0))
	require.Equal(t, 20.0, fr.py(4))
	require.True(t, fr.containsX(0))
	require.False(t, fr.containsY(-1))
}

func TestNiceTicks(t *testing.T) {
	require.Equal(t, []float64{-10, -5, 0, 5, 10}, niceTicks(-10, 10, 5))
	require.Equal(t, []float64{0, 0.2, 0.4, 0.6, 0.8, 1}, niceTicks(0, 1, 6))
	require.Nil(t, niceTicks(1, 1, 5))
	require.Nil(t, niceTicks(0, 1, 1))

	for _, v := range niceTicks(-0.7, 0.9, 7) {
		require.LessOrEqual(t, len(tickLabel(v)), 5, "label %q", tickLabel(v))
	}
}

func TestTickLabel(t *testing.T) {
	require.Equal(t, "0", tickLabel(1e-15))
	require.Equal(t, "2.5", tickLabel(2.5))
	require.Equal(t, "-100", tickLabel(-100))
}

// =============================================================================
// PNG
// =============================================================================

func TestPNG_Defaults(t *testing.T) {
	p := NewPNG("", 0, 0)
	require.Equal(t, DefaultPNGPath, p.Path)
	require.Equal(t, DefaultPNGWidth, p.Width)
	require.Equal(t, DefaultPNGHeight, p.Height)
}

func TestPNG_EncodeProducesImageOfRequestedSize(t *testing.T) {
	ch := testChart(t, 1, -3, 2, grapher.DefaultOptions())
	data, err := NewPNG("", 320, 200).Encode(ch)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 320, img.Bounds().Dx())
	require.Equal(t, 200, img.Bounds().Dy())
}

func TestPNG_RenderWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")
	ch := testChart(t, 1, 0, 1, grapher.Options{XMin: -3, XMax: 3, Points: 50})

	require.NoError(t, NewPNG(path, 200, 120).Render(context.Background(), ch))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")))
}

func TestPNG_RenderHonoursCancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewPNG(path, 0, 0).Render(ctx, testChart(t, 1, 0, 0, grapher.DefaultOptions()))
	require.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))
}

// =============================================================================
// TEXT
// =============================================================================

func TestText_DrawFitsRequestedSize(t *testing.T) {
	ch := testChart(t, 1, -3, 2, grapher.DefaultOptions())
	tr := &Text{Width: 60, Height: 20, Styles: PlainTextStyles()}

	lines := strings.Split(tr.Draw(ch), "\n")
	require.Len(t, lines, 20)
	for i, line := range lines {
		require.LessOrEqual(t, runewidth.StringWidth(line), 60, "line %d: %q", i, line)
	}
}

func TestText_DrawShowsCurveAxesAndLabels(t *testing.T) {
	ch := testChart(t, 1, 0, -4, grapher.Options{XMin: -3, XMax: 3, Points: 61})
	out := (&Text{Width: 70, Height: 22, Styles: PlainTextStyles()}).Draw(ch)

	require.Contains(t, out, grapher.DefaultLabels().Title)
	require.Contains(t, out, "y = 1x² + 0x + -4")
	require.Contains(t, out, string(glyphCurve))
	require.Contains(t, out, string(glyphHAxis))
	require.Contains(t, out, string(glyphVAxis))
	require.Contains(t, out, string(glyphOrigin))
}

func TestText_DrawOmitsAxesOutsideViewport(t *testing.T) {
	// x in [1, 5] never reaches x = 0.
	ch := testChart(t, 1, 0, 0, grapher.Options{XMin: 1, XMax: 5, Points: 20})
	ch.Grid = false
	out := (&Text{Width: 50, Height: 16, Styles: PlainTextStyles()}).Draw(ch)
	require.NotContains(t, out, string(glyphOrigin))
}

func TestText_SmallSizesAreClamped(t *testing.T) {
	ch := testChart(t, 1, 0, 0, grapher.DefaultOptions())
	lines := strings.Split((&Text{Width: 5, Height: 3}).Draw(ch), "\n")
	require.Len(t, lines, minTextHeight)
}

func TestText_RenderWritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	ch := testChart(t, 2, 0, -8, grapher.DefaultOptions())
	require.NoError(t, NewText(&buf).Render(context.Background(), ch))
	require.True(t, strings.HasSuffix(buf.String(), "\n"))
	require.Contains(t, buf.String(), "y = 2x² + 0x + -8")
}

// =============================================================================
// VIEWER
// =============================================================================

func TestViewer_RequiresTerminal(t *testing.T) {
	v := NewViewer()
	v.Out = &bytes.Buffer{}
	err := v.Render(context.Background(), testChart(t, 1, 0, 0, grapher.DefaultOptions()))
	require.ErrorIs(t, err, ErrNoDisplay)
}

func TestViewerModel_QuitKeys(t *testing.T) {
	m := newViewerModel(testChart(t, 1, 0, 0, grapher.DefaultOptions()), PlainTextStyles(), DefaultViewerKeyMap(), nil)
	for _, k := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := m.Update(k)
		require.NotNil(t, cmd, "key %s", k)
		require.Equal(t, tea.Quit(), cmd())
	}
}

func TestViewerModel_ResizeAndView(t *testing.T) {
	m := newViewerModel(testChart(t, 1, -3, 2, grapher.DefaultOptions()), PlainTextStyles(), DefaultViewerKeyMap(), nil)
	next, cmd := m.Update(tea.WindowSizeMsg{Width: 64, Height: 21})
	require.Nil(t, cmd)

	view := next.View()
	lines := strings.Split(view, "\n")
	require.Len(t, lines, 21)
	require.Contains(t, view, "q/esc")
}

func TestViewerModel_ReplacesChartFromUpdates(t *testing.T) {
	updates := make(chan *grapher.Chart, 1)
	first := testChart(t, 1, 0, 0, grapher.DefaultOptions())
	second := testChart(t, 3, 0, 0, grapher.DefaultOptions())

	m := newViewerModel(first, PlainTextStyles(), DefaultViewerKeyMap(), updates)
	cmd := m.Init()
	require.NotNil(t, cmd)

	updates <- second
	msg := cmd()
	next, cmd := m.Update(msg)
	require.NotNil(t, cmd)
	require.Contains(t, next.View(), "y = 3x² + 0x + 0")
	require.Equal(t, 1, next.(viewerModel).reloads)

	close(updates)
	require.Nil(t, cmd())
}

// =============================================================================
// MULTI / NOP
// =============================================================================

func TestMulti_RunsEveryRendererAndJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	var calls int
	count := grapher.RendererFunc(func(context.Context, *grapher.Chart) error {
		calls++
		return nil
	})
	fail := grapher.RendererFunc(func(context.Context, *grapher.Chart) error {
		calls++
		return boom
	})

	err := Multi{fail, nil, count}.Render(context.Background(), testChart(t, 1, 0, 0, grapher.DefaultOptions()))
	require.ErrorIs(t, err, boom)
	require.Equal(t, 2, calls)
}

func TestNop(t *testing.T) {
	require.NoError(t, Nop{}.Render(context.Background(), nil))
}
