package skytree

// SequentialNearest scans every point and returns the one closest to query,
// with ties going to the earliest point. It is the brute-force correctness
// baseline for RTree.Nearest. ok is false for an empty slice.
func SequentialNearest(points []Point, query []float64) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}
	best := 0
	bestDist := Euclidean(points[0].Coords, query)
	for i := 1; i < len(points); i++ {
		if d := Euclidean(points[i].Coords, query); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return points[best], true
}

// SequentialSkyline compares all pairs and returns the points dominated by
// no other, in insertion order. It is the brute-force correctness baseline
// for RTree.Skyline.
func SequentialSkyline(points []Point) []Point {
	var sky []Point
	for i, p := range points {
		dominated := false
		for j, o := range points {
			if i != j && Dominates(o.Coords, p.Coords) {
				dominated = true
				break
			}
		}
		if !dominated {
			sky = append(sky, p)
		}
	}
	return sky
}
