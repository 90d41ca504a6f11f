package surface

import (
	"fmt"
	"math"
	"testing"

	"github.com/notargets/mobius/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// Reference values for R = 5, w = 1 from exact partial derivatives
// integrated with a 2000 x 40 panel Simpson rule.
const (
	refArea = 31.4290509762508
	refEdge = 31.4553690175916
)

func TestMobiusReferenceValues(t *testing.T) {
	s, err := New(5, 1, 200)
	require.NoError(t, err)

	area, err := s.SurfaceArea()
	require.NoError(t, err)
	assert.InEpsilon(t, refArea, area, 0.01)
	assert.InEpsilon(t, refEdge, s.EdgeLength(), 0.01)

	// Pinned against an independent implementation of the same scheme.
	assert.InDelta(t, 31.423826007120525, area, 1e-6)
	assert.InDelta(t, 31.454059994746856, s.EdgeLength(), 1e-6)

	// The ring winds once around the centerline radius but sits off it.
	assert.Greater(t, s.EdgeLength(), 2*math.Pi*5)
}

func TestEstimatesConverge(t *testing.T) {
	var areas, edges []float64
	for _, n := range []int{50, 200, 800} {
		s, err := New(5, 1, n)
		require.NoError(t, err)
		a, err := s.SurfaceArea()
		require.NoError(t, err)
		areas = append(areas, a)
		edges = append(edges, s.EdgeLength())
	}
	assert.Less(t, math.Abs(areas[2]-areas[1]), math.Abs(areas[1]-areas[0]))
	assert.Less(t, math.Abs(edges[2]-edges[1]), math.Abs(edges[1]-edges[0]))
	assert.Less(t, math.Abs(areas[2]-refArea), math.Abs(areas[0]-refArea))
	assert.Less(t, math.Abs(edges[2]-refEdge), math.Abs(edges[0]-refEdge))
}

func TestAreaPositiveAndFinite(t *testing.T) {
	cases := []struct {
		R, w float64
		n    int
	}{
		{1, 1, 2},
		{1, 1, 3},
		{5, 1, 4},
		{0.1, 2, 7},
		{10, 0.2, 2},
		{3, 3, 12},
		{5, 1, 51},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("R=%v,w=%v,n=%d", c.R, c.w, c.n), func(t *testing.T) {
			s, err := New(c.R, c.w, c.n)
			require.NoError(t, err)
			area, err := s.SurfaceArea()
			require.NoError(t, err)
			assert.GreaterOrEqual(t, area, 0.0)
			assert.False(t, math.IsNaN(area) || math.IsInf(area, 0))
			if c.n > 2 {
				assert.Greater(t, area, 0.0)
			}
			edge := s.EdgeLength()
			assert.Greater(t, edge, 0.0)
			assert.False(t, math.IsNaN(edge) || math.IsInf(edge, 0))
		})
	}
}

func TestMinimumResolution(t *testing.T) {
	s, err := New(5, 1, 2)
	require.NoError(t, err)

	area, err := s.SurfaceArea()
	require.NoError(t, err)
	assert.InDelta(t, 0, area, 1e-12)

	// Two samples: (R+w/2, 0, 0) at u = 0 and (R-w/2, 0, 0) at u = 2π.
	assert.InDelta(t, 1.0, s.EdgeLength(), 1e-9)
}

func TestInvalidShape(t *testing.T) {
	cases := []struct {
		R, w float64
		n    int
	}{
		{5, 1, 1},
		{5, 0, 200},
		{-1, 1, 200},
	}
	for _, c := range cases {
		s, err := New(c.R, c.w, c.n)
		assert.ErrorIs(t, err, grid.ErrInvalidShapeParameter)
		assert.Nil(t, s)
	}
}

func TestAreaInvariantUnderFullTurnShift(t *testing.T) {
	base, err := New(5, 1, 200)
	require.NoError(t, err)
	want, err := base.SurfaceArea()
	require.NoError(t, err)

	for _, k := range []float64{1, 2, -1} {
		shifted, err := NewFromMapping(grid.Mobius(5), grid.MobiusDomain(1).Shift(k*2*math.Pi), 200)
		require.NoError(t, err)
		got, err := shifted.SurfaceArea()
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-9, "shift by %v turns", k)
	}
}

func TestGenericMappings(t *testing.T) {
	t.Run("plane", func(t *testing.T) {
		plane := func(u, v float64) r3.Vec { return r3.Vec{X: u, Y: v} }
		s, err := NewFromMapping(plane, grid.Domain{UMin: 0, UMax: 2, VMin: 0, VMax: 3}, 6)
		require.NoError(t, err)
		area, err := s.SurfaceArea()
		require.NoError(t, err)
		assert.InDelta(t, 6.0, area, 1e-12)
		// The v = 3 edge runs from (0,3,0) to (2,3,0).
		assert.InDelta(t, 2.0, s.EdgeLength(), 1e-12)
	})

	t.Run("cylinder", func(t *testing.T) {
		a, h := 2.0, 3.0
		cylinder := func(u, v float64) r3.Vec {
			return r3.Vec{X: a * math.Cos(u), Y: a * math.Sin(u), Z: v}
		}
		s, err := NewFromMapping(cylinder, grid.Domain{UMin: 0, UMax: 2 * math.Pi, VMin: 0, VMax: h}, 201)
		require.NoError(t, err)
		area, err := s.SurfaceArea()
		require.NoError(t, err)
		assert.InEpsilon(t, 2*math.Pi*a*h, area, 1e-3)
		assert.InEpsilon(t, 2*math.Pi*a, s.EdgeLength(), 1e-3)
		assert.Zero(t, s.Radius())
	})
}

func TestDerivatives(t *testing.T) {
	n := 21
	s, err := New(5, 1, n)
	require.NoError(t, err)
	d, err := s.Derivatives()
	require.NoError(t, err)

	u := s.Grid().USamples()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			// z is linear in v, so the difference quotient is exact.
			assert.InDelta(t, math.Sin(u[j]/2), d.Zv.At(i, j), 1e-12)
			assert.InDelta(t, math.Cos(u[j]/2)*math.Cos(u[j]), d.Xv.At(i, j), 1e-12)
		}
	}

	// ∂/∂v is a unit vector and ∂/∂u has length close to R, so the area
	// element stays near R everywhere.
	dA := d.AreaElement()
	r, c := dA.Dims()
	assert.Equal(t, n, r)
	assert.Equal(t, n, c)
	for _, v := range dA.RawMatrix().Data {
		assert.InDelta(t, 5.0, v, 0.75)
	}
}

func TestBoundaryIsLastRow(t *testing.T) {
	s, err := New(5, 1, 9)
	require.NoError(t, err)
	ring := s.Boundary()
	require.Len(t, ring, 9)
	assert.InDelta(t, 5.5, ring[0].X, 1e-14)
	assert.InDelta(t, 0, ring[0].Y, 1e-14)
	assert.InDelta(t, 0, ring[0].Z, 1e-14)
	for j, p := range ring {
		assert.Equal(t, s.Grid().Point(8, j), p)
	}
}

func TestFieldsSnapshotDoesNotAffectResults(t *testing.T) {
	s, err := New(5, 1, 30)
	require.NoError(t, err)
	before, err := s.SurfaceArea()
	require.NoError(t, err)
	edge := s.EdgeLength()

	f := s.Fields()
	f.X.Scale(10, f.X)
	f.Z.Zero()

	after, err := s.SurfaceArea()
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, edge, s.EdgeLength())
}

func TestString(t *testing.T) {
	s, err := New(5, 1, 11)
	require.NoError(t, err)
	out := s.String()
	assert.Contains(t, out, "Mobius strip: R = 5, w = 1")
	assert.Contains(t, out, "Resolution: 11 x 11 (simpson rule)")
	assert.Contains(t, out, "X range:")
	assert.Equal(t, 5.0, s.Radius())
	assert.Equal(t, 1.0, s.Width())
}
