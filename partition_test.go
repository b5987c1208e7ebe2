package skytree

import (
	"errors"
	"testing"
)

func TestSplitStrips_DisjointAndOrdered(t *testing.T) {
	points := randomPoints(50, 2, 21)
	for _, k := range []int{1, 2, 3, 7, 50, 60} {
		strips := splitStrips(points, k)
		if len(strips) != k {
			t.Fatalf("k=%d: got %d strips", k, len(strips))
		}

		seen := make(map[int]bool)
		total := 0
		for _, s := range strips {
			total += len(s.points)
			for i, gi := range s.index {
				if seen[gi] {
					t.Fatalf("k=%d: point %d in two strips", k, gi)
				}
				seen[gi] = true
				if i > 0 && s.index[i-1] >= gi {
					t.Fatalf("k=%d: strip indexes not in insertion order", k)
				}
				if points[gi].ID != s.points[i].ID {
					t.Fatalf("k=%d: strip point/index disagree", k)
				}
			}
		}
		if total != len(points) {
			t.Fatalf("k=%d: strips cover %d points, want %d", k, total, len(points))
		}
	}
}

func TestBuildPartitioned_InvalidPartitions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Partitions = -1
	_, err := BuildPartitioned(randomPoints(10, 2, 1), cfg)
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("err = %v, want ErrConfiguration", err)
	}
}

func TestBuildPartitioned_DimensionMismatch(t *testing.T) {
	points := []Point{
		{ID: 1, Coords: []float64{1, 2}},
		{ID: 2, Coords: []float64{3}},
	}
	_, err := BuildPartitioned(points, DefaultConfig())
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("err = %v, want ErrDimensionMismatch", err)
	}
}

func TestNearestPartitioned_MatchesSingleTree(t *testing.T) {
	points := randomPoints(80, 2, 13)
	single := mustBuild(t, points, DefaultConfig())
	queries := randomPoints(25, 2, 99)

	for k := 1; k <= len(points); k++ {
		cfg := DefaultConfig()
		cfg.Partitions = k
		pt, err := BuildPartitioned(points, cfg)
		if err != nil {
			t.Fatalf("k=%d: %v", k, err)
		}

		for _, q := range queries {
			got, gotDist, gotOK := pt.NearestDistance(q.Coords)
			want, wantDist, wantOK := single.NearestDistance(q.Coords)
			if gotOK != wantOK || got.ID != want.ID || gotDist != wantDist {
				t.Fatalf("k=%d query %v: got id %d dist %v, want id %d dist %v",
					k, q.Coords, got.ID, gotDist, want.ID, wantDist)
			}
		}
	}
}

func TestSkylinePartitioned_MatchesSingleTree(t *testing.T) {
	points := randomPoints(60, 3, 17)
	want := skylineIDs(mustBuild(t, points, DefaultConfig()).Skyline())

	for k := 1; k <= len(points); k++ {
		cfg := DefaultConfig()
		cfg.Partitions = k
		pt, err := BuildPartitioned(points, cfg)
		if err != nil {
			t.Fatalf("k=%d: %v", k, err)
		}
		if got := skylineIDs(pt.Skyline()); !sameIDs(got, want) {
			t.Fatalf("k=%d: skyline %v, want %v", k, got, want)
		}
	}
}

func TestPartitioned_EmptyDataset(t *testing.T) {
	pt, err := BuildPartitioned(nil, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := pt.Nearest([]float64{0, 0}); ok {
		t.Error("expected no result for an empty dataset")
	}
	if sky := pt.Skyline(); len(sky) != 0 {
		t.Errorf("skyline = %v, want empty", sky)
	}
}

func TestPartitioned_MorePartitionsThanPoints(t *testing.T) {
	points := randomPoints(3, 2, 4)
	cfg := DefaultConfig()
	cfg.Partitions = 10

	p, ok, err := NearestPartitioned(points, []float64{0, 0}, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want, _ := SequentialNearest(points, []float64{0, 0})
	if !ok || p.ID != want.ID {
		t.Errorf("got id %d ok=%v, want id %d", p.ID, ok, want.ID)
	}

	sky, err := SkylinePartitioned(points, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sameIDs(skylineIDs(sky), skylineIDs(SequentialSkyline(points))) {
		t.Errorf("skyline %v, want %v", skylineIDs(sky), skylineIDs(SequentialSkyline(points)))
	}
}

func TestPartitioned_WorkerCountDoesNotChangeResults(t *testing.T) {
	points := randomPoints(100, 2, 29)
	queries := randomPoints(10, 2, 31)

	var baseline []int
	for _, workers := range []int{1, 2, 8} {
		cfg := DefaultConfig()
		cfg.Partitions = 5
		cfg.Workers = workers
		pt, err := BuildPartitioned(points, cfg)
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}

		var ids []int
		for _, q := range queries {
			p, ok := pt.Nearest(q.Coords)
			if !ok {
				t.Fatalf("workers=%d: no result", workers)
			}
			ids = append(ids, p.ID)
		}
		ids = append(ids, skylineIDs(pt.Skyline())...)

		if baseline == nil {
			baseline = ids
		} else if !sameIDs(ids, baseline) {
			t.Errorf("workers=%d: results differ from single-worker run", workers)
		}
	}
}
