package skytree

import (
	"errors"
	"math/rand"
	"testing"
)

// randomPoints generates a deterministic point set. Coordinates are small
// integers so duplicate positions and exact distance ties occur naturally.
func randomPoints(n, dims int, seed int64) []Point {
	rng := rand.New(rand.NewSource(seed))
	pts := make([]Point, n)
	for i := range pts {
		coords := make([]float64, dims)
		for d := range coords {
			coords[d] = float64(rng.Intn(25))
		}
		pts[i] = Point{ID: i + 1, Coords: coords}
	}
	return pts
}

// checkInvariants verifies the structural R-tree invariants: every stored
// rectangle is exactly the union of its child's rectangles, every non-root
// node holds between minEntries and maxEntries entries, all leaves sit at
// the same depth, and every point appears exactly once.
func checkInvariants(t *testing.T, tr *RTree) {
	t.Helper()

	seen := make(map[int]int)
	leafDepth := -1

	var walk func(ni, depth int)
	walk = func(ni, depth int) {
		n := tr.nodes[ni]
		if ni == tr.root {
			if len(n.entries) > tr.maxEntries {
				t.Errorf("root has %d entries, max is %d", len(n.entries), tr.maxEntries)
			}
		} else if len(n.entries) < tr.minEntries || len(n.entries) > tr.maxEntries {
			t.Errorf("node %d has %d entries, want %d..%d", ni, len(n.entries), tr.minEntries, tr.maxEntries)
		}

		if n.leaf {
			if leafDepth == -1 {
				leafDepth = depth
			} else if depth != leafDepth {
				t.Errorf("leaf %d at depth %d, want uniform depth %d", ni, depth, leafDepth)
			}
			for _, e := range n.entries {
				seen[e.child]++
				for d, c := range tr.points[e.child].Coords {
					if e.rect.Min[d] != c || e.rect.Max[d] != c {
						t.Errorf("leaf entry rect %v does not match point %v", e.rect, tr.points[e.child].Coords)
						break
					}
				}
			}
			return
		}

		for _, e := range n.entries {
			got := tr.covering(e.child)
			for d := range got.Min {
				if got.Min[d] != e.rect.Min[d] || got.Max[d] != e.rect.Max[d] {
					t.Errorf("node %d: stored rect %v, union of children %v", e.child, e.rect, got)
					break
				}
			}
			walk(e.child, depth+1)
		}
	}
	walk(tr.root, 0)

	for i := range tr.points {
		if seen[i] != 1 {
			t.Errorf("point %d appears %d times, want 1", i, seen[i])
		}
	}
}

// --- Construction tests ---

func TestBuild_InvalidFanout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxEntries = 1
	_, err := Build(randomPoints(5, 2, 1), cfg)
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("err = %v, want ErrConfiguration", err)
	}
}

func TestBuild_DimensionMismatch(t *testing.T) {
	points := []Point{
		{ID: 1, Coords: []float64{1, 2}},
		{ID: 2, Coords: []float64{3, 4, 5}},
	}
	_, err := Build(points, DefaultConfig())
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("err = %v, want ErrDimensionMismatch", err)
	}
}

func TestBuild_Empty(t *testing.T) {
	tr, err := Build(nil, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Len() != 0 {
		t.Errorf("Len = %d, want 0", tr.Len())
	}
	if _, ok := tr.Nearest([]float64{0, 0}); ok {
		t.Error("Nearest on empty tree should report no result")
	}
	if sky := tr.Skyline(); len(sky) != 0 {
		t.Errorf("Skyline on empty tree = %v, want empty", sky)
	}
}

func TestBuild_SinglePoint(t *testing.T) {
	points := []Point{{ID: 7, Coords: []float64{3, 4}}}
	tr, err := Build(points, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Len() != 1 || tr.Dims() != 2 {
		t.Errorf("Len = %d, Dims = %d, want 1 and 2", tr.Len(), tr.Dims())
	}
	checkInvariants(t, tr)
}

func TestBuild_InvariantsAcrossSizesAndFanouts(t *testing.T) {
	for _, maxEntries := range []int{2, 3, 4, 8} {
		for _, n := range []int{1, 2, 3, 5, 17, 64, 200} {
			cfg := DefaultConfig()
			cfg.MaxEntries = maxEntries
			tr, err := Build(randomPoints(n, 2, int64(n)*31+int64(maxEntries)), cfg)
			if err != nil {
				t.Fatalf("M=%d n=%d: unexpected error: %v", maxEntries, n, err)
			}
			checkInvariants(t, tr)
		}
	}
}

func TestBuild_InvariantsHigherDimensions(t *testing.T) {
	for _, dims := range []int{3, 5} {
		tr, err := Build(randomPoints(120, dims, int64(dims)), DefaultConfig())
		if err != nil {
			t.Fatalf("dims=%d: unexpected error: %v", dims, err)
		}
		checkInvariants(t, tr)
	}
}

func TestBuild_DuplicatePoints(t *testing.T) {
	points := make([]Point, 30)
	for i := range points {
		points[i] = Point{ID: i, Coords: []float64{5, 5}}
	}
	tr, err := Build(points, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkInvariants(t, tr)
}

// --- Search tests ---

func TestSearchRect(t *testing.T) {
	var points []Point
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			points = append(points, Point{ID: x*5 + y, Coords: []float64{float64(x), float64(y)}})
		}
	}
	tr, err := Build(points, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := tr.SearchRect(Rect{Min: []float64{1, 1}, Max: []float64{2, 3}})
	if len(got) != 6 {
		t.Fatalf("found %d points, want 6", len(got))
	}
	for _, p := range got {
		if p.Coords[0] < 1 || p.Coords[0] > 2 || p.Coords[1] < 1 || p.Coords[1] > 3 {
			t.Errorf("point %v outside the query rect", p.Coords)
		}
	}

	if got := tr.SearchRect(Rect{Min: []float64{10, 10}, Max: []float64{20, 20}}); len(got) != 0 {
		t.Errorf("found %d points outside the data extent, want 0", len(got))
	}
}

func TestSearch_MatchesLinearScan(t *testing.T) {
	points := randomPoints(150, 2, 9)
	tr, err := Build(points, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	query := Rect{Min: []float64{5, 5}, Max: []float64{15, 18}}
	got := make(map[int]bool)
	for _, p := range tr.SearchRect(query) {
		got[p.ID] = true
	}

	want := make(map[int]bool)
	for _, p := range points {
		if query.ContainsPoint(p.Coords) {
			want[p.ID] = true
		}
	}

	if len(got) != len(want) {
		t.Fatalf("found %d points, want %d", len(got), len(want))
	}
	for id := range want {
		if !got[id] {
			t.Errorf("missing point id %d", id)
		}
	}
}
