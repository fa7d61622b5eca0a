// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// equation.go - Quadratic coefficients, discriminant and root formula.
package equation

import (
	"errors"
	"math"
	"strconv"
)

// ErrInvalidLeadingCoefficient is returned by Roots when a == 0. The quadratic
// formula is undefined there; the equation is linear, which is out of scope.
var ErrInvalidLeadingCoefficient = errors.New("the coefficient 'a' cannot be zero in a second-degree equation")

// =============================================================================
// EQUATION
// =============================================================================

// Equation is the polynomial A·x² + B·x + C.
// The zero value and A == 0 are valid values; only Roots rejects A == 0.
type Equation struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
	C float64 `json:"c"`
}

// New returns the equation a·x² + b·x + c.
func New(a, b, c float64) Equation {
	return Equation{A: a, B: b, C: c}
}

// Discriminant returns b² − 4ac.
func (e Equation) Discriminant() float64 {
	return e.B*e.B - 4*e.A*e.C
}

// Roots returns both roots of the equation in the fixed order
// ((−b + s)/(2a), (−b − s)/(2a)), where s = √Δ for Δ ≥ 0 and s = i·√(−Δ)
// for Δ < 0. A repeated root (Δ == 0) is returned twice.
func (e Equation) Roots() (Roots, error) {
	if e.A == 0 {
		return Roots{}, ErrInvalidLeadingCoefficient
	}

	delta := e.Discriminant()
	den := 2 * e.A

	if delta >= 0 {
		s := math.Sqrt(delta)
		return Roots{
			First:        complex((-e.B+s)/den, 0),
			Second:       complex((-e.B-s)/den, 0),
			Discriminant: delta,
		}, nil
	}

	// (−b ± i·√(−Δ)) / 2a, split into parts so the imaginary sign follows a.
	re := -e.B / den
	im := math.Sqrt(-delta) / den
	return Roots{
		First:        complex(re, im),
		Second:       complex(re, -im),
		Discriminant: delta,
	}, nil
}

// ValueAt returns a·x² + b·x + c.
func (e Equation) ValueAt(x float64) float64 {
	return e.A*x*x + e.B*x + e.C
}

// ValueAtComplex evaluates the polynomial at a complex point.
func (e Equation) ValueAtComplex(z complex128) complex128 {
	return complex(e.A, 0)*z*z + complex(e.B, 0)*z + complex(e.C, 0)
}

// Vertex returns the turning point of the parabola.
// ok is false when A == 0 and there is no vertex.
func (e Equation) Vertex() (x, y float64, ok bool) {
	if e.A == 0 {
		return 0, 0, false
	}
	x = -e.B / (2 * e.A)
	return x, e.ValueAt(x), true
}

// Nature classifies the roots by the sign of the discriminant.
func (e Equation) Nature() Nature {
	return natureOf(e.Discriminant())
}

// String renders the equation as a legend label, e.g. "y = 1x² + -3x + 2".
// Coefficients are written as given, signs included.
func (e Equation) String() string {
	return "y = " + formatFloat(e.A) + "x² + " + formatFloat(e.B) + "x + " + formatFloat(e.C)
}

// =============================================================================
// ROOTS
// =============================================================================

// Roots is the ordered root pair of an equation.
// Real roots carry a zero imaginary part.
type Roots struct {
	First        complex128
	Second       complex128
	Discriminant float64
}

// Real reports whether both roots are real.
func (r Roots) Real() bool {
	return r.Discriminant >= 0
}

// Nature classifies the pair.
func (r Roots) Nature() Nature {
	return natureOf(r.Discriminant)
}

// Pair returns the roots as a two element array in their fixed order.
func (r Roots) Pair() [2]complex128 {
	return [2]complex128{r.First, r.Second}
}

// String renders "r1 and r2".
func (r Roots) String() string {
	return FormatRoot(r.First) + " and " + FormatRoot(r.Second)
}

// =============================================================================
// NATURE
// =============================================================================

// Nature describes the roots of an equation.
type Nature int

const (
	// TwoReal is Δ > 0: two distinct real roots.
	TwoReal Nature = iota
	// RepeatedReal is Δ == 0: one real root returned twice.
	RepeatedReal
	// ComplexConjugate is Δ < 0: a complex conjugate pair.
	ComplexConjugate
)

func natureOf(delta float64) Nature {
	switch {
	case delta > 0:
		return TwoReal
	case delta == 0:
		return RepeatedReal
	default:
		return ComplexConjugate
	}
}

// String returns the machine-readable name used in JSON output.
func (n Nature) String() string {
	switch n {
	case TwoReal:
		return "two_real"
	case RepeatedReal:
		return "repeated_real"
	case ComplexConjugate:
		return "complex_conjugate"
	default:
		return "unknown"
	}
}

// =============================================================================
// FORMATTING
// =============================================================================

// FormatRoot renders a root as text. Real values print as plain numbers
// ("2", "-0.5"); complex values print as "re+imi" or "re-imi".
func FormatRoot(z complex128) string {
	re, im := real(z), imag(z)
	if im == 0 {
		return formatFloat(re)
	}
	sign := "+"
	if math.Signbit(im) {
		sign = "-"
	}
	return formatFloat(re) + sign + formatFloat(math.Abs(im)) + "i"
}

// formatFloat uses the shortest representation and folds -0 into 0.
func formatFloat(f float64) string {
	if f == 0 {
		f = 0
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
