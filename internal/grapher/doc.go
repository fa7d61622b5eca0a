// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package grapher samples a quadratic equation over a domain and hands the
// resulting chart to a rendering collaborator.
//
// Sampling is independent of rendering: Sample and Chart are pure, and Plot
// only adds the call into the injected Renderer.
//
// # Key Types
//
//   - Grapher: binds one equation.Equation to a Renderer
//   - Options: x range and number of sample points (defaults -10, 10, 400)
//   - Series: the materialized (x, y) sample sequence
//   - Chart: a Series plus title, labels, legend and decorations
//   - Renderer: the port implemented by package render
//
// # Usage
//
//	g := grapher.New(equation.New(1, -3, 2), render.NewText(os.Stdout))
//	if err := g.Plot(ctx, grapher.DefaultOptions()); err != nil {
//	    return err
//	}
package grapher
