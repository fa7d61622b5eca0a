// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"context"
	"errors"

	"github.com/jeranaias/parabola/internal/grapher"
)

// Multi renders a chart through several renderers in order. Every renderer
// runs even when an earlier one fails; the errors are joined.
type Multi []grapher.Renderer

// Render implements grapher.Renderer.
func (m Multi) Render(ctx context.Context, c *grapher.Chart) error {
	var errs []error
	for _, r := range m {
		if r == nil {
			continue
		}
		if err := r.Render(ctx, c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop discards charts.
type Nop struct{}

// Render implements grapher.Renderer.
func (Nop) Render(ctx context.Context, _ *grapher.Chart) error {
	return ctx.Err()
}
