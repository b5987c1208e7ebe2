package skytree

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Point is an identified record with an ordered tuple of numeric values.
// For nearest-neighbour queries the values are 2-D spatial coordinates; for
// skyline queries they are attribute values with lower values preferred.
// Points are created once at load time and never mutated.
type Point struct {
	ID     int
	Coords []float64
}

// Dimensions returns the coordinate count shared by all points, or 0 for an
// empty slice. It fails with ErrDimensionMismatch if any two points
// disagree.
func Dimensions(points []Point) (int, error) {
	if len(points) == 0 {
		return 0, nil
	}
	dims := len(points[0].Coords)
	for i, p := range points {
		if len(p.Coords) != dims {
			return 0, fmt.Errorf("skytree: point %d (id %d) has %d coordinates, want %d: %w",
				i, p.ID, len(p.Coords), dims, ErrDimensionMismatch)
		}
	}
	return dims, nil
}

// Euclidean returns the Euclidean (L2) distance between two coordinate
// tuples of equal dimensionality.
func Euclidean(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}
