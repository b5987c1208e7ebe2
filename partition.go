package skytree

import (
	"sort"
	"sync"
)

// strip is one divide-and-conquer partition: a contiguous band of the
// dataset along the first coordinate. index maps each strip point back to
// its position in the original slice for merge-time tie-breaking.
type strip struct {
	points []Point
	index  []int
}

// splitStrips cuts points into k near-equal bands by first coordinate.
// Within a band, points keep their original insertion order, so per-strip
// tie-breaks agree with whole-dataset tie-breaks. Bands may be empty when k
// exceeds the dataset size.
func splitStrips(points []Point, k int) []strip {
	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return points[order[a]].Coords[0] < points[order[b]].Coords[0]
	})

	per := (len(points) + k - 1) / k
	strips := make([]strip, k)
	for s := range strips {
		lo := s * per
		hi := lo + per
		if lo > len(points) {
			lo = len(points)
		}
		if hi > len(points) {
			hi = len(points)
		}
		member := append([]int(nil), order[lo:hi]...)
		sort.Ints(member)
		st := strip{index: member, points: make([]Point, len(member))}
		for i, gi := range member {
			st.points[i] = points[gi]
		}
		strips[s] = st
	}
	return strips
}

// PartitionedRTree is a divide-and-conquer index: the dataset split into
// strips with one R-tree per strip. Queries run independently per strip,
// concurrently when the config allows, and merge partial results with the
// same distance and dominance comparators the single-tree engines use, so
// answers are identical to a single tree over the whole dataset for every
// partition count.
type PartitionedRTree struct {
	points []Point
	strips []strip
	trees  []*RTree
	cfg    Config
}

// BuildPartitioned splits points into cfg.Partitions strips and builds one
// R-tree per strip, in parallel across cfg.Workers goroutines. Validation
// mirrors Build; a partition count below 1 fails with ErrConfiguration.
func BuildPartitioned(points []Point, cfg Config) (*PartitionedRTree, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	if _, err := Dimensions(points); err != nil {
		return nil, err
	}

	strips := splitStrips(points, cfg.Partitions)
	trees := make([]*RTree, len(strips))
	err := forEachStrip(strips, cfg.Workers, func(s int) error {
		tr, err := Build(strips[s].points, cfg)
		trees[s] = tr
		return err
	})
	if err != nil {
		return nil, err
	}
	return &PartitionedRTree{points: points, strips: strips, trees: trees, cfg: cfg}, nil
}

// Len returns the number of indexed points across all strips.
func (pt *PartitionedRTree) Len() int { return len(pt.points) }

// Partitions returns the number of strips.
func (pt *PartitionedRTree) Partitions() int { return len(pt.strips) }

// Nearest runs best-first search in every strip and returns the global
// minimum, with distance ties going to the earliest-inserted point. ok is
// false when the dataset is empty.
func (pt *PartitionedRTree) Nearest(query []float64) (Point, bool) {
	idx, _, ok := pt.nearestEntry(query)
	if !ok {
		return Point{}, false
	}
	return pt.points[idx], true
}

// NearestDistance is Nearest plus the winning exact distance.
func (pt *PartitionedRTree) NearestDistance(query []float64) (Point, float64, bool) {
	idx, dist, ok := pt.nearestEntry(query)
	if !ok {
		return Point{}, 0, false
	}
	return pt.points[idx], dist, true
}

func (pt *PartitionedRTree) nearestEntry(query []float64) (int, float64, bool) {
	type result struct {
		index int
		dist  float64
		ok    bool
	}
	results := make([]result, len(pt.strips))
	_ = forEachStrip(pt.strips, pt.cfg.Workers, func(s int) error {
		if li, dist, ok := pt.trees[s].nearestEntry(query); ok {
			results[s] = result{index: pt.strips[s].index[li], dist: dist, ok: true}
		}
		return nil
	})

	bestIdx, bestDist, found := 0, 0.0, false
	for _, r := range results {
		if !r.ok {
			continue
		}
		if !found || r.dist < bestDist || (r.dist == bestDist && r.index < bestIdx) {
			bestIdx, bestDist, found = r.index, r.dist, true
		}
	}
	return bestIdx, bestDist, found
}

// Skyline computes a local branch-and-bound skyline per strip, then merges:
// one cross-partition dominance pass over the union of the local skylines.
// The merge is mandatory, since a point non-dominated within its own strip
// may still be dominated by a point from another strip. Results come back in
// insertion order.
func (pt *PartitionedRTree) Skyline() []Point {
	locals := make([][]int, len(pt.strips))
	_ = forEachStrip(pt.strips, pt.cfg.Workers, func(s int) error {
		for _, li := range pt.trees[s].skylineIndexes() {
			locals[s] = append(locals[s], pt.strips[s].index[li])
		}
		return nil
	})

	var union []int
	for _, l := range locals {
		union = append(union, l...)
	}
	sort.Ints(union)

	var out []Point
	for _, gi := range union {
		dominated := false
		for _, gj := range union {
			if gi != gj && Dominates(pt.points[gj].Coords, pt.points[gi].Coords) {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, pt.points[gi])
		}
	}
	return out
}

// NearestPartitioned is a one-shot convenience around BuildPartitioned plus
// PartitionedRTree.Nearest.
func NearestPartitioned(points []Point, query []float64, cfg Config) (Point, bool, error) {
	pt, err := BuildPartitioned(points, cfg)
	if err != nil {
		return Point{}, false, err
	}
	p, ok := pt.Nearest(query)
	return p, ok, nil
}

// SkylinePartitioned is a one-shot convenience around BuildPartitioned plus
// PartitionedRTree.Skyline.
func SkylinePartitioned(points []Point, cfg Config) ([]Point, error) {
	pt, err := BuildPartitioned(points, cfg)
	if err != nil {
		return nil, err
	}
	return pt.Skyline(), nil
}

// forEachStrip runs fn once per strip. Strips are chunked across workers
// goroutines; each worker owns a contiguous range, so per-strip result slots
// need no synchronization. Falls back to a plain loop for a single worker or
// a single strip.
func forEachStrip(strips []strip, workers int, fn func(s int) error) error {
	if workers <= 1 || len(strips) <= 1 {
		for s := range strips {
			if err := fn(s); err != nil {
				return err
			}
		}
		return nil
	}

	var wg sync.WaitGroup
	errs := make([]error, len(strips))
	perWorker := (len(strips) + workers - 1) / workers

	for w := 0; w < workers; w++ {
		start := w * perWorker
		end := start + perWorker
		if end > len(strips) {
			end = len(strips)
		}
		if start >= len(strips) {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for s := start; s < end; s++ {
				errs[s] = fn(s)
			}
		}(start, end)
	}

	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
