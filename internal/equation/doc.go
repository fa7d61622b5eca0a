// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package equation models a second-degree polynomial ax² + bx + c and the
// numeric queries parabola needs from it.
//
// # Key Types
//
//   - Equation: immutable coefficients with Discriminant, Roots and ValueAt
//   - Roots: ordered root pair, always (+√Δ root, −√Δ root)
//   - Nature: classification of the roots by the sign of the discriminant
//
// # Usage
//
//	eq := equation.New(1, -3, 2)
//	roots, err := eq.Roots()
//	if errors.Is(err, equation.ErrInvalidLeadingCoefficient) {
//	    // not a quadratic
//	}
//	fmt.Println(roots) // 2 and 1
package equation
