// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render implements the grapher.Renderer port.
//
// # Renderers
//
//   - PNG: rasterizes the chart with github.com/gogpu/gg and writes a PNG file
//   - Text: draws the chart as styled characters on an io.Writer
//   - Viewer: an interactive bubbletea program that shows the text chart and
//     blocks until the user closes it
//   - Multi: renders to several renderers in order
//   - Nop: renders nothing
//
// Renderers share the data-to-surface mapping in frame.go so that the PNG and
// the terminal chart agree on axis placement and tick positions.
package render
