// Package surface samples a parametric surface and measures it.
//
// A Surface owns a grid.Grid built at construction. From it the package
// derives the six partial derivative fields (package gradient), the area
// element |r_u x r_v|, the surface area by two-stage Simpson quadrature
// (package quadrature, first over v and then over u), and the length of the
// boundary ring at v = VMax.
//
//	s, err := surface.New(5, 1, 200)
//	if err != nil {
//		return err
//	}
//	area, err := s.SurfaceArea()
//	edge := s.EdgeLength()
//
// Rendering is left to callers; Fields hands out a copy of the coordinate
// fields that can be consumed without touching the Surface.
package surface
