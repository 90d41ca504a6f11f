package surface

import (
	"fmt"
	"strings"

	"github.com/notargets/mobius/gradient"
	"github.com/notargets/mobius/grid"
	"github.com/notargets/mobius/quadrature"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Surface is a sampled parametric surface. The grid and coordinate fields are
// built once by the constructor; derivatives, area and edge length are
// recomputed on every call.
type Surface struct {
	r, w float64 // zero for surfaces built from a custom mapping
	grid *grid.Grid
}

// Derivatives holds the partials of the coordinate fields. Xu is ∂x/∂u
// (varying along columns), Xv is ∂x/∂v (varying along rows).
type Derivatives struct {
	Xu, Yu, Zu *mat.Dense
	Xv, Yv, Zv *mat.Dense
}

// New builds the Möbius strip of radius R and width w sampled n times along
// each parameter. Invalid arguments return an error wrapping
// grid.ErrInvalidShapeParameter and a nil Surface.
func New(R, w float64, n int) (*Surface, error) {
	g, err := grid.NewMobius(R, w, n)
	if err != nil {
		return nil, err
	}
	return &Surface{r: R, w: w, grid: g}, nil
}

// NewFromMapping samples an arbitrary parametric surface.
func NewFromMapping(mapping grid.Mapping, domain grid.Domain, n int) (*Surface, error) {
	g, err := grid.New(mapping, domain, n)
	if err != nil {
		return nil, err
	}
	return &Surface{grid: g}, nil
}

// Radius returns R, or 0 if the surface was built from a custom mapping.
func (s *Surface) Radius() float64 { return s.r }

// Width returns w, or 0 if the surface was built from a custom mapping.
func (s *Surface) Width() float64 { return s.w }

// Grid returns the underlying sampling grid.
func (s *Surface) Grid() *grid.Grid { return s.grid }

// Fields returns a snapshot of the coordinate fields for external consumers.
func (s *Surface) Fields() grid.Fields { return s.grid.Fields() }

// Derivatives computes the six partial derivative fields. The six are
// independent and are computed concurrently.
func (s *Surface) Derivatives() (Derivatives, error) {
	var d Derivatives
	du, dv := s.grid.Spacing()
	X, Y, Z := s.grid.Coordinates()
	jobs := []struct {
		dst  **mat.Dense
		f    mat.Matrix
		h    float64
		axis gradient.Axis
	}{
		{&d.Xu, X, du, gradient.AlongCols},
		{&d.Yu, Y, du, gradient.AlongCols},
		{&d.Zu, Z, du, gradient.AlongCols},
		{&d.Xv, X, dv, gradient.AlongRows},
		{&d.Yv, Y, dv, gradient.AlongRows},
		{&d.Zv, Z, dv, gradient.AlongRows},
	}
	var eg errgroup.Group
	for _, job := range jobs {
		job := job
		eg.Go(func() (err error) {
			*job.dst, err = gradient.Partial(job.f, job.h, job.axis)
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return Derivatives{}, err
	}
	return d, nil
}

// AreaElement returns |r_u x r_v| at every grid point.
func (s *Surface) AreaElement() (*mat.Dense, error) {
	d, err := s.Derivatives()
	if err != nil {
		return nil, err
	}
	return d.AreaElement(), nil
}

// AreaElement evaluates the magnitude of the cross product of the two tangent
// vectors (Xu,Yu,Zu) and (Xv,Yv,Zv) cell by cell.
func (d Derivatives) AreaElement() *mat.Dense {
	nr, nc := d.Xu.Dims()
	dA := mat.NewDense(nr, nc, nil)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			ru := r3.Vec{X: d.Xu.At(i, j), Y: d.Yu.At(i, j), Z: d.Zu.At(i, j)}
			rv := r3.Vec{X: d.Xv.At(i, j), Y: d.Yv.At(i, j), Z: d.Zv.At(i, j)}
			dA.Set(i, j, r3.Norm(r3.Cross(ru, rv)))
		}
	}
	return dA
}

// SurfaceArea integrates the area element over v and then over u with the
// composite Simpson's rule; see package quadrature for the sample count policy.
func (s *Surface) SurfaceArea() (float64, error) {
	dA, err := s.AreaElement()
	if err != nil {
		return 0, err
	}
	area, err := quadrature.Integrate2D(dA, s.grid.USamples(), s.grid.VSamples())
	if err != nil {
		return 0, fmt.Errorf("surface area: %w", err)
	}
	return area, nil
}

// Boundary returns the points of the last sampled row, v = VMax, ordered by u.
func (s *Surface) Boundary() []r3.Vec {
	n := s.grid.N()
	ring := make([]r3.Vec, n)
	for j := range ring {
		ring[j] = s.grid.Point(n-1, j)
	}
	return ring
}

// EdgeLength is the length of the polyline through Boundary. Only the ring at
// v = VMax is measured; on the Möbius strip the v = VMin ring is the other
// half of the same boundary curve and is not included.
func (s *Surface) EdgeLength() float64 {
	ring := s.Boundary()
	var length float64
	for j := 1; j < len(ring); j++ {
		length += r3.Norm(r3.Sub(ring[j], ring[j-1]))
	}
	return length
}

// String returns a summary of the sampled surface.
func (s *Surface) String() string {
	var sb strings.Builder
	dom := s.grid.Domain()
	du, dv := s.grid.Spacing()
	n := s.grid.N()

	sb.WriteString("=== Surface Summary ===\n")
	if s.r > 0 {
		sb.WriteString(fmt.Sprintf("  Mobius strip: R = %g, w = %g\n", s.r, s.w))
	}
	sb.WriteString(fmt.Sprintf("  Resolution: %d x %d (%s rule)\n", n, n, quadrature.RuleFor(n)))
	sb.WriteString(fmt.Sprintf("  u in [%.4f, %.4f], du = %.6g\n", dom.UMin, dom.UMax, du))
	sb.WriteString(fmt.Sprintf("  v in [%.4f, %.4f], dv = %.6g\n", dom.VMin, dom.VMax, dv))

	f := s.grid.Fields()
	for _, c := range []struct {
		name string
		m    *mat.Dense
	}{{"X", f.X}, {"Y", f.Y}, {"Z", f.Z}} {
		data := c.m.RawMatrix().Data
		sb.WriteString(fmt.Sprintf("  %s range: [%.4f, %.4f]\n", c.name, floats.Min(data), floats.Max(data)))
	}
	return sb.String()
}
