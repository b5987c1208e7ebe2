package skytree

import (
	"container/heap"
	"math"
)

// Nearest returns the indexed point closest to query by Euclidean distance,
// using best-first search: a min-heap of candidates keyed by the lower-bound
// distance from query to each entry's rectangle. Every remaining queue entry
// has a lower bound at least as large as the first point popped, so the
// search stops there. Ties go to the earliest-inserted point. ok is false
// for an empty tree; that is the caller's "no result" case, not an error.
func (t *RTree) Nearest(query []float64) (Point, bool) {
	idx, _, ok := t.nearestEntry(query)
	if !ok {
		return Point{}, false
	}
	return t.points[idx], true
}

// NearestDistance is Nearest plus the winning exact distance.
func (t *RTree) NearestDistance(query []float64) (Point, float64, bool) {
	idx, dist, ok := t.nearestEntry(query)
	if !ok {
		return Point{}, 0, false
	}
	return t.points[idx], dist, true
}

// nearestEntry runs the best-first search and reports the winner by point
// index so divide-and-conquer merging can break ties on insertion order.
func (t *RTree) nearestEntry(query []float64) (int, float64, bool) {
	if t.Len() == 0 {
		return 0, 0, false
	}

	q := &candidateQueue{}
	best := math.Inf(1) // incumbent exact distance, for pruning
	t.pushCandidates(q, t.root, query, &best)

	for q.Len() > 0 {
		c := heap.Pop(q).(candidate)
		if c.point {
			return c.index, c.dist, true
		}
		if c.dist > best {
			continue // every point below is farther than the incumbent
		}
		t.pushCandidates(q, c.index, query, &best)
	}
	return 0, 0, false
}

// pushCandidates queues a node's children: exact distances for points,
// MinDist lower bounds for child rectangles. Entries strictly beyond the
// incumbent exact distance are pruned; best tightens as point entries are
// seen.
func (t *RTree) pushCandidates(q *candidateQueue, ni int, query []float64, best *float64) {
	n := t.nodes[ni]
	for _, e := range n.entries {
		var c candidate
		if n.leaf {
			c = candidate{dist: Euclidean(t.points[e.child].Coords, query), point: true, index: e.child}
			if c.dist < *best {
				*best = c.dist
			}
		} else {
			c = candidate{dist: e.rect.MinDist(query), index: e.child}
		}
		if c.dist > *best {
			continue
		}
		heap.Push(q, c)
	}
}

// candidate is a search-queue entry: either a node awaiting expansion (dist
// is a lower bound) or a reached point (dist is exact).
type candidate struct {
	dist  float64
	point bool
	index int
}

// candidateQueue is a min-heap of candidates. At equal distance, nodes order
// before points so a rectangle that may hold an equally close
// earlier-inserted point is expanded before any point is accepted; equal
// points order by insertion index.
type candidateQueue []candidate

func (q candidateQueue) Len() int { return len(q) }

func (q candidateQueue) Less(i, j int) bool {
	a, b := q[i], q[j]
	if a.dist != b.dist {
		return a.dist < b.dist
	}
	if a.point != b.point {
		return !a.point
	}
	return a.index < b.index
}

func (q candidateQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *candidateQueue) Push(x interface{}) { *q = append(*q, x.(candidate)) }
func (q *candidateQueue) Pop() interface{} {
	old := *q
	n := len(old)
	c := old[n-1]
	*q = old[:n-1]
	return c
}
