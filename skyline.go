package skytree

import (
	"container/heap"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Dominates reports whether a dominates b: a is no larger in every attribute
// and strictly smaller in at least one, with lower values better in all
// attributes. The relation is irreflexive and asymmetric.
func Dominates(a, b []float64) bool {
	strict := false
	for d := range a {
		if a[d] > b[d] {
			return false
		}
		if a[d] < b[d] {
			strict = true
		}
	}
	return strict
}

// Skyline returns every indexed point not dominated by another indexed
// point, in insertion order. It runs branch-and-bound over the tree: entries
// expand in ascending order of the L1 norm of their rectangle's lower
// corner, and a subtree is discarded as soon as its lower corner is
// dominated by an accepted skyline point, since every point inside is then
// dominated too.
func (t *RTree) Skyline() []Point {
	idxs := t.skylineIndexes()
	out := make([]Point, len(idxs))
	for i, idx := range idxs {
		out[i] = t.points[idx]
	}
	return out
}

// skylineIndexes runs the branch-and-bound search and reports the skyline by
// point index, sorted ascending, so divide-and-conquer merging can work in
// insertion order.
func (t *RTree) skylineIndexes() []int {
	if t.Len() == 0 {
		return nil
	}

	q := &scoreQueue{}
	t.pushScored(q, t.root)

	var sky []int
	for q.Len() > 0 {
		e := heap.Pop(q).(scored)
		if t.dominatedBy(sky, e.corner) {
			continue
		}
		if e.point {
			sky = append(sky, e.index)
			q.dropDominated(t.points[e.index].Coords)
			continue
		}
		t.pushScored(q, e.index)
	}

	sort.Ints(sky)
	return sky
}

// dominatedBy reports whether corner is dominated by any accepted skyline
// point.
func (t *RTree) dominatedBy(sky []int, corner []float64) bool {
	for _, si := range sky {
		if Dominates(t.points[si].Coords, corner) {
			return true
		}
	}
	return false
}

// pushScored queues a node's children keyed by the L1 norm of their
// rectangle's lower corner. Any monotone score works; L1 keeps entries
// closest to the ideal origin expanding first. For leaf entries the lower
// corner is the point itself.
func (t *RTree) pushScored(q *scoreQueue, ni int) {
	n := t.nodes[ni]
	for _, e := range n.entries {
		heap.Push(q, scored{
			score:  floats.Sum(e.rect.Min),
			corner: e.rect.Min,
			point:  n.leaf,
			index:  e.child,
		})
	}
}

// scored is a branch-and-bound queue entry: a node or point plus the lower
// corner its dominance tests use.
type scored struct {
	score  float64
	corner []float64
	point  bool
	index  int
}

// scoreQueue is a min-heap of scored entries. At equal score, nodes order
// before points and points order by insertion index; membership of the final
// skyline does not depend on this, only which dominated entries get pruned
// earliest.
type scoreQueue []scored

func (q scoreQueue) Len() int { return len(q) }

func (q scoreQueue) Less(i, j int) bool {
	a, b := q[i], q[j]
	if a.score != b.score {
		return a.score < b.score
	}
	if a.point != b.point {
		return !a.point
	}
	return a.index < b.index
}

func (q scoreQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *scoreQueue) Push(x interface{}) { *q = append(*q, x.(scored)) }
func (q *scoreQueue) Pop() interface{} {
	old := *q
	n := len(old)
	e := old[n-1]
	*q = old[:n-1]
	return e
}

// dropDominated removes queued entries whose best corner is dominated by a
// newly accepted skyline point, so they are never expanded.
func (q *scoreQueue) dropDominated(coords []float64) {
	kept := (*q)[:0]
	for _, e := range *q {
		if !Dominates(coords, e.corner) {
			kept = append(kept, e)
		}
	}
	*q = kept
	heap.Init(q)
}
