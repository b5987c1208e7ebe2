package skytree

import "math"

// entry is one slot in a node: a bounding rectangle plus either a child node
// index (internal nodes) or a point index (leaves).
type entry struct {
	rect  Rect
	child int
}

type node struct {
	leaf    bool
	entries []entry
}

// RTree is an in-memory R-tree over a static point set. Nodes live in an
// arena addressed by index, so the structure is a strict tree with no
// back-pointers. The tree is built once by Build and is read-only
// afterwards; concurrent queries need no locking.
type RTree struct {
	points     []Point
	nodes      []node
	root       int
	dims       int
	maxEntries int
	minEntries int
}

// Build constructs an R-tree by inserting points one at a time. Each
// insertion descends to the leaf whose rectangle needs the least area
// enlargement, and overflowing nodes split with the quadratic heuristic,
// propagating upward and growing the tree one level at the root. The points
// slice is referenced, not copied; callers must not mutate it afterwards.
//
// Build fails with ErrConfiguration for a fan-out below 2 and with
// ErrDimensionMismatch if point coordinate counts disagree. Both are
// detected before any node is created.
func Build(points []Point, cfg Config) (*RTree, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	dims, err := Dimensions(points)
	if err != nil {
		return nil, err
	}

	t := &RTree{
		points:     points,
		nodes:      []node{{leaf: true}},
		root:       0,
		dims:       dims,
		maxEntries: cfg.MaxEntries,
		minEntries: (cfg.MaxEntries + 1) / 2,
	}
	for i := range points {
		t.insert(i)
	}
	return t, nil
}

// Len returns the number of indexed points.
func (t *RTree) Len() int { return len(t.points) }

// Dims returns the coordinate count shared by all indexed points.
func (t *RTree) Dims() int { return t.dims }

// Search returns, in tree order, every point whose rectangle satisfies the
// predicate. A subtree is skipped when its covering rectangle fails the
// predicate, so the predicate must be monotone over containment: true for a
// rectangle whenever it is true for any rectangle inside it.
func (t *RTree) Search(pred func(Rect) bool) []Point {
	var out []Point
	var walk func(ni int)
	walk = func(ni int) {
		n := t.nodes[ni]
		for _, e := range n.entries {
			if !pred(e.rect) {
				continue
			}
			if n.leaf {
				out = append(out, t.points[e.child])
			} else {
				walk(e.child)
			}
		}
	}
	walk(t.root)
	return out
}

// SearchRect returns every point inside r, boundary inclusive.
func (t *RTree) SearchRect(r Rect) []Point {
	return t.Search(r.Overlaps)
}

// insert adds point pi to the tree, splitting overflowing nodes on the way
// back up the insertion path.
func (t *RTree) insert(pi int) {
	r := PointRect(t.points[pi].Coords)
	path := t.descend(r)
	leaf := path[len(path)-1]
	t.nodes[leaf].entries = append(t.nodes[leaf].entries, entry{rect: r, child: pi})

	pending := -1 // sibling created by a split one level down
	for i := len(path) - 1; i >= 0; i-- {
		ni := path[i]
		if pending != -1 {
			t.nodes[ni].entries = append(t.nodes[ni].entries, entry{rect: t.covering(pending), child: pending})
			pending = -1
		}
		if len(t.nodes[ni].entries) > t.maxEntries {
			pending = t.split(ni)
		}
		if i > 0 {
			t.refreshChild(path[i-1], ni)
		}
	}
	if pending != -1 {
		t.growRoot(pending)
	}
}

// descend returns the node path from the root to the leaf chosen for r.
func (t *RTree) descend(r Rect) []int {
	path := []int{t.root}
	ni := t.root
	for !t.nodes[ni].leaf {
		ni = t.nodes[ni].entries[t.chooseChild(ni, r)].child
		path = append(path, ni)
	}
	return path
}

// chooseChild picks the child entry needing the least area enlargement to
// absorb r, breaking ties by smaller resulting area and then by lowest
// child position.
func (t *RTree) chooseChild(ni int, r Rect) int {
	best := 0
	bestDelta := math.Inf(1)
	bestArea := math.Inf(1)
	for i, e := range t.nodes[ni].entries {
		u := e.rect.Union(r)
		delta := u.Area() - e.rect.Area()
		if delta < bestDelta || (delta == bestDelta && u.Area() < bestArea) {
			best = i
			bestDelta = delta
			bestArea = u.Area()
		}
	}
	return best
}

// covering returns the union of a node's entry rectangles.
func (t *RTree) covering(ni int) Rect {
	entries := t.nodes[ni].entries
	r := entries[0].rect
	for _, e := range entries[1:] {
		r = r.Union(e.rect)
	}
	return r
}

// refreshChild recomputes the parent's stored rectangle for child.
func (t *RTree) refreshChild(parent, child int) {
	for i := range t.nodes[parent].entries {
		if e := &t.nodes[parent].entries[i]; e.child == child {
			e.rect = t.covering(child)
			return
		}
	}
}

// growRoot replaces the root with a new internal node over the old root and
// its split sibling. This is the only way the tree gains a level, so all
// leaves stay at uniform depth.
func (t *RTree) growRoot(sibling int) {
	old := t.root
	t.nodes = append(t.nodes, node{entries: []entry{
		{rect: t.covering(old), child: old},
		{rect: t.covering(sibling), child: sibling},
	}})
	t.root = len(t.nodes) - 1
}

// split divides an overflowing node with the quadratic heuristic: the two
// entries wasting the most area when grouped together become seeds, and each
// remaining entry joins whichever group needs the least enlargement, ties to
// the smaller group. Assignment is forced when a group needs every remaining
// entry to reach the minimum fill. Returns the index of the new sibling.
func (t *RTree) split(ni int) int {
	entries := t.nodes[ni].entries
	s1, s2 := splitSeeds(entries)

	g1 := []entry{entries[s1]}
	g2 := []entry{entries[s2]}
	r1 := entries[s1].rect
	r2 := entries[s2].rect

	rest := make([]entry, 0, len(entries)-2)
	for i, e := range entries {
		if i != s1 && i != s2 {
			rest = append(rest, e)
		}
	}

	for i, e := range rest {
		remaining := len(rest) - i
		switch {
		case len(g1)+remaining <= t.minEntries:
			g1 = append(g1, e)
			r1 = r1.Union(e.rect)
		case len(g2)+remaining <= t.minEntries:
			g2 = append(g2, e)
			r2 = r2.Union(e.rect)
		default:
			d1 := r1.Enlargement(e.rect)
			d2 := r2.Enlargement(e.rect)
			if d1 < d2 || (d1 == d2 && len(g1) <= len(g2)) {
				g1 = append(g1, e)
				r1 = r1.Union(e.rect)
			} else {
				g2 = append(g2, e)
				r2 = r2.Union(e.rect)
			}
		}
	}

	t.nodes[ni].entries = g1
	t.nodes = append(t.nodes, node{leaf: t.nodes[ni].leaf, entries: g2})
	return len(t.nodes) - 1
}

// splitSeeds returns the pair of entries that would waste the most area if
// grouped together: area(union) - area(a) - area(b) is maximal.
func splitSeeds(entries []entry) (int, int) {
	s1, s2 := 0, 1
	worst := math.Inf(-1)
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			waste := entries[i].rect.Union(entries[j].rect).Area() -
				entries[i].rect.Area() - entries[j].rect.Area()
			if waste > worst {
				worst = waste
				s1, s2 = i, j
			}
		}
	}
	return s1, s2
}
