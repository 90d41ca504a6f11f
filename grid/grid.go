package grid

import (
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Grid holds the sampled parameter plane and the embedded coordinate fields.
// Row index i runs over v, column index j runs over u:
//
//	U[i,j] = u[j]   V[i,j] = v[i]   X[i,j] = x(u[j], v[i])
//
// Everything is computed in New and never modified afterwards.
type Grid struct {
	n      int
	domain Domain
	u, v   []float64
	du, dv float64

	uu, vv  *mat.Dense
	x, y, z *mat.Dense
}

// Fields is a snapshot of the coordinate fields handed to consumers such as a
// renderer. It is a private copy; writing to it does not reach the Grid.
type Fields struct {
	X, Y, Z *mat.Dense
}

// NewMobius samples the Möbius strip of radius R and width w on an n x n grid.
func NewMobius(R, w float64, n int) (*Grid, error) {
	if err := ValidateShape(R, w, n); err != nil {
		return nil, err
	}
	return New(Mobius(R), MobiusDomain(w), n)
}

// ValidateShape checks the Möbius shape constants and resolution.
func ValidateShape(R, w float64, n int) error {
	switch {
	case !(R > 0) || math.IsInf(R, 0):
		return fmt.Errorf("%w: radius must be positive and finite, got %v", ErrInvalidShapeParameter, R)
	case !(w > 0) || math.IsInf(w, 0):
		return fmt.Errorf("%w: width must be positive and finite, got %v", ErrInvalidShapeParameter, w)
	case n < 2:
		return fmt.Errorf("%w: resolution must be at least 2, got %d", ErrInvalidShapeParameter, n)
	}
	return nil
}

// New evaluates mapping on an n x n grid spanning domain.
func New(mapping Mapping, domain Domain, n int) (*Grid, error) {
	if mapping == nil {
		return nil, ErrNilMapping
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: resolution must be at least 2, got %d", ErrInvalidShapeParameter, n)
	}
	if err := domain.validate(); err != nil {
		return nil, err
	}

	g := &Grid{
		n:      n,
		domain: domain,
		u:      Span(domain.UMin, domain.UMax, n),
		v:      Span(domain.VMin, domain.VMax, n),
		du:     (domain.UMax - domain.UMin) / float64(n-1),
		dv:     (domain.VMax - domain.VMin) / float64(n-1),
		uu:     mat.NewDense(n, n, nil),
		vv:     mat.NewDense(n, n, nil),
		x:      mat.NewDense(n, n, nil),
		y:      mat.NewDense(n, n, nil),
		z:      mat.NewDense(n, n, nil),
	}

	// Rows are independent, each goroutine writes only its own row.
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < n; i++ {
		i := i
		eg.Go(func() error {
			vi := g.v[i]
			for j, uj := range g.u {
				p := mapping(uj, vi)
				g.uu.Set(i, j, uj)
				g.vv.Set(i, j, vi)
				g.x.Set(i, j, p.X)
				g.y.Set(i, j, p.Y)
				g.z.Set(i, j, p.Z)
			}
			return nil
		})
	}
	// Row workers have no failure path; errgroup is used for SetLimit.
	eg.Wait()
	return g, nil
}

// Span returns n evenly spaced values from lo to hi, both ends included.
func Span(lo, hi float64, n int) []float64 {
	return floats.Span(make([]float64, n), lo, hi)
}

// N is the number of samples along each parameter.
func (g *Grid) N() int { return g.n }

// Domain returns the sampled parameter rectangle.
func (g *Grid) Domain() Domain { return g.domain }

// Spacing returns the uniform step along u and along v.
func (g *Grid) Spacing() (du, dv float64) { return g.du, g.dv }

// USamples returns a copy of the u sequence (column coordinates).
func (g *Grid) USamples() []float64 { return append([]float64(nil), g.u...) }

// VSamples returns a copy of the v sequence (row coordinates).
func (g *Grid) VSamples() []float64 { return append([]float64(nil), g.v...) }

// Mesh returns copies of the U and V parameter fields.
func (g *Grid) Mesh() (U, V *mat.Dense) {
	return mat.DenseCopyOf(g.uu), mat.DenseCopyOf(g.vv)
}

// Fields returns a copy of the coordinate fields.
func (g *Grid) Fields() Fields {
	return Fields{
		X: mat.DenseCopyOf(g.x),
		Y: mat.DenseCopyOf(g.y),
		Z: mat.DenseCopyOf(g.z),
	}
}

// Coordinates exposes the coordinate fields as read-only matrices without
// copying.
func (g *Grid) Coordinates() (X, Y, Z mat.Matrix) {
	return readOnly{g.x}, readOnly{g.y}, readOnly{g.z}
}

// Point returns the embedded point at row i (v) and column j (u).
func (g *Grid) Point(i, j int) r3.Vec {
	return r3.Vec{X: g.x.At(i, j), Y: g.y.At(i, j), Z: g.z.At(i, j)}
}

// readOnly hides the concrete *mat.Dense so consumers cannot write through it.
type readOnly struct {
	m *mat.Dense
}

func (r readOnly) Dims() (int, int) { return r.m.Dims() }
func (r readOnly) At(i, j int) float64 { return r.m.At(i, j) }
func (r readOnly) T() mat.Matrix { return mat.Transpose{Matrix: r} }
