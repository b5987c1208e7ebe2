// Package skytree answers two spatial-query problems over static point sets
// with numeric attributes: nearest-neighbour retrieval (the closest point to
// a query location by Euclidean distance) and skyline retrieval (every point
// not dominated by another point when lower attribute values are better).
//
// Both queries run over a from-scratch R-tree. Nearest neighbours use
// best-first search driven by a min-heap of rectangle lower bounds; skylines
// use branch-and-bound with dominance pruning. Both also come in
// divide-and-conquer variants that build one sub-tree per partition, search
// the partitions concurrently, and merge the partial results.
//
// Basic usage:
//
//	points, err := skytree.LoadPoints("facilities.txt")
//	tree, err := skytree.Build(points, skytree.DefaultConfig())
//	nearest, ok := tree.Nearest([]float64{1, 1})
//	skyline := tree.Skyline()
//
// For divide and conquer:
//
//	cfg := skytree.DefaultConfig()
//	cfg.Partitions = 4
//	pt, err := skytree.BuildPartitioned(points, cfg)
//	nearest, ok := pt.Nearest([]float64{1, 1})
//	skyline := pt.Skyline()
//
// The tree is built once and is read-only afterwards; concurrent queries may
// share it without locking. SequentialNearest and SequentialSkyline are
// brute-force baselines kept for correctness comparison.
package skytree
