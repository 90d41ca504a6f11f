// Package quadrature integrates sampled functions with composite Simpson's
// rule.
//
// Sample count policy:
//
//   - three or more samples: composite Simpson's rule. With an even count the
//     leading odd run of samples is integrated by Simpson's rule and the last
//     interval gets the three point end correction (integrate.Simpsons).
//   - exactly two samples: trapezoidal rule, the only rule the data supports.
//   - fewer than two samples: ErrDegenerateIntegration.
package quadrature

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrDegenerateIntegration is returned when there are too few samples to
	// apply any rule.
	ErrDegenerateIntegration = errors.New("quadrature: degenerate integration")

	// ErrLengthMismatch is returned when abscissae and ordinates differ in length.
	ErrLengthMismatch = errors.New("quadrature: length mismatch")

	// ErrNotIncreasing is returned when abscissae are not strictly increasing.
	ErrNotIncreasing = errors.New("quadrature: abscissae must be strictly increasing")
)

// Rule names the rule Integrate applies for a given number of samples.
type Rule uint8

const (
	None Rule = iota
	Trapezoidal
	Simpson
)

func (r Rule) String() string {
	switch r {
	case Trapezoidal:
		return "trapezoidal"
	case Simpson:
		return "simpson"
	default:
		return "none"
	}
}

// RuleFor reports the rule used for n samples.
func RuleFor(n int) Rule {
	switch {
	case n >= 3:
		return Simpson
	case n == 2:
		return Trapezoidal
	default:
		return None
	}
}

// Integrate approximates the integral of f over x, where f[i] = f(x[i]).
func Integrate(x, f []float64) (float64, error) {
	if len(x) != len(f) {
		return 0, fmt.Errorf("%w: %d abscissae, %d ordinates", ErrLengthMismatch, len(x), len(f))
	}
	for i := 1; i < len(x); i++ {
		if !(x[i] > x[i-1]) {
			return 0, fmt.Errorf("%w: x[%d]=%v, x[%d]=%v", ErrNotIncreasing, i-1, x[i-1], i, x[i])
		}
	}
	switch RuleFor(len(x)) {
	case Simpson:
		return integrate.Simpsons(x, f), nil
	case Trapezoidal:
		return integrate.Trapezoidal(x, f), nil
	default:
		return 0, fmt.Errorf("%w: %d samples", ErrDegenerateIntegration, len(x))
	}
}

// Integrate2D integrates field over the rectangle spanned by u (columns) and
// v (rows). Each column is first integrated over v; only once every column is
// done is the resulting sequence integrated over u.
func Integrate2D(field mat.Matrix, u, v []float64) (float64, error) {
	nr, nc := field.Dims()
	if nr != len(v) || nc != len(u) {
		return 0, fmt.Errorf("%w: field is %dx%d, u has %d, v has %d",
			ErrLengthMismatch, nr, nc, len(u), len(v))
	}

	inner := make([]float64, nc)
	col := make([]float64, nr)
	for j := 0; j < nc; j++ {
		mat.Col(col, j, field)
		s, err := Integrate(v, col)
		if err != nil {
			return 0, fmt.Errorf("column %d: %w", j, err)
		}
		inner[j] = s
	}
	return Integrate(u, inner)
}
