package skytree

import "math"

// Rect is an axis-aligned minimum bounding rectangle (MBR). Min and Max hold
// the per-dimension low and high bounds, with Min[d] <= Max[d] for every d.
// A single point's rectangle is degenerate: Min == Max.
type Rect struct {
	Min, Max []float64
}

// PointRect returns the degenerate rectangle covering a single location.
func PointRect(coords []float64) Rect {
	lo := make([]float64, len(coords))
	hi := make([]float64, len(coords))
	copy(lo, coords)
	copy(hi, coords)
	return Rect{Min: lo, Max: hi}
}

// Union returns the smallest rectangle containing both r and o: the
// component-wise min/max envelope.
func (r Rect) Union(o Rect) Rect {
	lo := make([]float64, len(r.Min))
	hi := make([]float64, len(r.Max))
	for d := range r.Min {
		lo[d] = math.Min(r.Min[d], o.Min[d])
		hi[d] = math.Max(r.Max[d], o.Max[d])
	}
	return Rect{Min: lo, Max: hi}
}

// Area returns the product of the rectangle's per-dimension extents. It is
// zero for degenerate rectangles and is used only by the split heuristics,
// never for containment tests.
func (r Rect) Area() float64 {
	area := 1.0
	for d := range r.Min {
		area *= r.Max[d] - r.Min[d]
	}
	return area
}

// Enlargement returns the area increase r would need to absorb o.
func (r Rect) Enlargement(o Rect) float64 {
	return r.Union(o).Area() - r.Area()
}

// MinDist returns the Euclidean lower bound from query to the nearest face
// or corner of r, 0 if the query lies inside. No point within r can be
// closer to query than this.
func (r Rect) MinDist(query []float64) float64 {
	var sum float64
	for d := range query {
		var gap float64
		if query[d] < r.Min[d] {
			gap = r.Min[d] - query[d]
		} else if query[d] > r.Max[d] {
			gap = query[d] - r.Max[d]
		}
		sum += gap * gap
	}
	return math.Sqrt(sum)
}

// Overlaps reports whether r and o share any region, boundaries included.
func (r Rect) Overlaps(o Rect) bool {
	for d := range r.Min {
		if r.Min[d] > o.Max[d] || r.Max[d] < o.Min[d] {
			return false
		}
	}
	return true
}

// ContainsPoint reports whether coords lies inside r, boundary inclusive.
func (r Rect) ContainsPoint(coords []float64) bool {
	for d := range coords {
		if coords[d] < r.Min[d] || coords[d] > r.Max[d] {
			return false
		}
	}
	return true
}
