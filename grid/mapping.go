package grid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Mapping embeds a point (u,v) of the parameter plane into 3-space.
// Implementations must be pure: the grid evaluates them concurrently.
type Mapping func(u, v float64) r3.Vec

// Domain is the rectangle [UMin,UMax] x [VMin,VMax] sampled by a Grid.
type Domain struct {
	UMin, UMax float64
	VMin, VMax float64
}

// MobiusDomain covers one full turn around the strip, u in [0,2π], across
// the full width, v in [-w/2,w/2].
func MobiusDomain(w float64) Domain {
	return Domain{UMin: 0, UMax: 2 * math.Pi, VMin: -w / 2, VMax: w / 2}
}

// Shift offsets the u interval by du, leaving v untouched.
func (d Domain) Shift(du float64) Domain {
	d.UMin += du
	d.UMax += du
	return d
}

func (d Domain) validate() error {
	for _, b := range []float64{d.UMin, d.UMax, d.VMin, d.VMax} {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return fmt.Errorf("%w: non-finite bound in %+v", ErrInvalidDomain, d)
		}
	}
	if d.UMax <= d.UMin || d.VMax <= d.VMin {
		return fmt.Errorf("%w: %+v", ErrInvalidDomain, d)
	}
	return nil
}

// Mobius returns the Möbius strip of centerline radius R. The width only
// enters through the v interval, see MobiusDomain.
//
//	x = (R + v·cos(u/2))·cos(u)
//	y = (R + v·cos(u/2))·sin(u)
//	z = v·sin(u/2)
//
// The half angle is what flips the lateral direction after one turn in u.
func Mobius(R float64) Mapping {
	return func(u, v float64) r3.Vec {
		half := u / 2
		rho := R + v*math.Cos(half)
		return r3.Vec{
			X: rho * math.Cos(u),
			Y: rho * math.Sin(u),
			Z: v * math.Sin(half),
		}
	}
}
