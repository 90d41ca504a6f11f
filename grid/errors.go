package grid

import "errors"

var (
	// ErrInvalidShapeParameter is returned when a surface is requested with a
	// non-positive radius or width, or with fewer than two samples per
	// parameter. No grid is produced.
	ErrInvalidShapeParameter = errors.New("grid: invalid shape parameter")

	// ErrInvalidDomain is returned for empty, reversed or non-finite parameter
	// intervals.
	ErrInvalidDomain = errors.New("grid: invalid parameter domain")

	// ErrNilMapping is returned when no coordinate function is supplied.
	ErrNilMapping = errors.New("grid: nil mapping")
)
