// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// viewer.go - Interactive terminal chart window built on bubbletea.
package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/jeranaias/parabola/internal/grapher"
)

// ErrNoDisplay is returned by the viewer when its output is not a terminal.
var ErrNoDisplay = errors.New("no interactive display available")

// =============================================================================
// KEY MAP
// =============================================================================

// ViewerKeyMap defines the viewer's keyboard bindings.
type ViewerKeyMap struct {
	Quit key.Binding
	Help key.Binding
}

// DefaultViewerKeyMap returns the default viewer bindings.
func DefaultViewerKeyMap() ViewerKeyMap {
	return ViewerKeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "close"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k ViewerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// FullHelp implements help.KeyMap.
func (k ViewerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Quit, k.Help}}
}

// =============================================================================
// VIEWER
// =============================================================================

// Viewer shows a chart full screen and blocks until the user closes it.
// Charts received on Updates replace the one on screen.
type Viewer struct {
	In      io.Reader
	Out     io.Writer
	Styles  TextStyles
	Keys    ViewerKeyMap
	Updates <-chan *grapher.Chart

	// AltScreen draws on the alternate screen buffer.
	AltScreen bool
}

// NewViewer creates a viewer on stdin and stdout with the coloured palette.
func NewViewer() *Viewer {
	return &Viewer{
		In:        os.Stdin,
		Out:       os.Stdout,
		Styles:    DefaultTextStyles(),
		Keys:      DefaultViewerKeyMap(),
		AltScreen: true,
	}
}

// Render runs the viewer until it is dismissed or ctx is cancelled.
func (v *Viewer) Render(ctx context.Context, c *grapher.Chart) error {
	if f, ok := v.Out.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		return ErrNoDisplay
	}

	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(v.In),
		tea.WithOutput(v.Out),
	}
	if v.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	p := tea.NewProgram(newViewerModel(c, v.Styles, v.Keys, v.Updates), opts...)
	if _, err := p.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}

// =============================================================================
// MODEL
// =============================================================================

// chartMsg carries a replacement chart from the Updates channel.
type chartMsg struct {
	chart *grapher.Chart
}

// viewerModel is the bubbletea model behind Viewer.
type viewerModel struct {
	chart   *grapher.Chart
	text    *Text
	keys    ViewerKeyMap
	help    help.Model
	updates <-chan *grapher.Chart
	reloads int
}

func newViewerModel(c *grapher.Chart, st TextStyles, keys ViewerKeyMap, updates <-chan *grapher.Chart) viewerModel {
	return viewerModel{
		chart:   c,
		text:    &Text{Width: DefaultTextWidth, Height: DefaultTextHeight, Styles: st},
		keys:    keys,
		help:    help.New(),
		updates: updates,
	}
}

// waitForChart blocks on the updates channel. A closed channel ends the
// subscription without quitting the viewer.
func waitForChart(updates <-chan *grapher.Chart) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := <-updates
		if !ok {
			return nil
		}
		return chartMsg{chart: c}
	}
}

// Init implements tea.Model.
func (m viewerModel) Init() tea.Cmd {
	return waitForChart(m.updates)
}

// Update implements tea.Model.
func (m viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.text.Width = msg.Width
		// One row for the help line.
		m.text.Height = msg.Height - 1
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		return m, nil

	case chartMsg:
		if msg.chart != nil {
			m.chart = msg.chart
			m.reloads++
			grapher.Logger().Debug("VIEWER_RELOAD", "legend", msg.chart.Legend, "reloads", m.reloads)
		}
		return m, waitForChart(m.updates)
	}
	return m, nil
}

// View implements tea.Model.
func (m viewerModel) View() string {
	return m.text.Draw(m.chart) + "\n" + m.help.View(m.keys)
}
