package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/skytree-dev/skytree"
)

func main() {
	// allow short (-h) help
	kingpin.CommandLine.HelpFlag.Short('h')

	nearestCmd := kingpin.Command("nearest", "finds the nearest facility for each query point")
	nearestMax := nearestCmd.Flag("max-entries", "R-tree fan-out").Default("4").Int()
	nearestParts := nearestCmd.Flag("partitions", "strips for the divide-and-conquer variant").Default("2").Int()
	nearestOut := nearestCmd.Flag("out", "results file").Default("output_nearest.txt").String()
	facilitiesPath := nearestCmd.Arg("facilities", "facility dataset, one 'id x y' record per line").Required().ExistingFile()
	queriesPath := nearestCmd.Arg("queries", "query dataset, one 'id x y' record per line").Required().ExistingFile()

	skylineCmd := kingpin.Command("skyline", "finds the non-dominated points of a city dataset")
	skylineMax := skylineCmd.Flag("max-entries", "R-tree fan-out").Default("4").Int()
	skylineParts := skylineCmd.Flag("partitions", "strips for the divide-and-conquer variant").Default("2").Int()
	skylineOut := skylineCmd.Flag("out", "results file").Default("output_skyline.txt").String()
	citiesPath := skylineCmd.Arg("cities", "city dataset, one 'id attr1 attr2 ...' record per line; lower attribute values are better").Required().ExistingFile()

	kingpin.CommandLine.Help = "Spatial queries over a custom R-tree: best-first nearest neighbour and branch-and-bound skyline."

	switch kingpin.Parse() {
	case "nearest":
		runNearest(*facilitiesPath, *queriesPath, *nearestOut, *nearestMax, *nearestParts)
	case "skyline":
		runSkyline(*citiesPath, *skylineOut, *skylineMax, *skylineParts)
	}
}

func runNearest(facilitiesPath, queriesPath, outPath string, maxEntries, partitions int) {
	facilities, err := skytree.LoadPoints(facilitiesPath)
	kingpin.FatalIfError(err, "loading facilities")
	queries, err := skytree.LoadPoints(queriesPath)
	kingpin.FatalIfError(err, "loading queries")

	fdims, err := skytree.Dimensions(facilities)
	kingpin.FatalIfError(err, "validating facilities")
	qdims, err := skytree.Dimensions(queries)
	kingpin.FatalIfError(err, "validating queries")
	if len(facilities) > 0 && len(queries) > 0 && fdims != qdims {
		kingpin.Fatalf("facilities have %d coordinates but queries have %d", fdims, qdims)
	}

	fmt.Printf("loaded %s facilities and %s queries\n",
		humanize.Comma(int64(len(facilities))), humanize.Comma(int64(len(queries))))

	cfg := skytree.DefaultConfig()
	cfg.MaxEntries = maxEntries
	cfg.Partitions = partitions

	out, err := os.Create(outPath)
	kingpin.FatalIfError(err, "creating %s", outPath)
	defer out.Close()
	w := bufio.NewWriter(out)
	defer w.Flush()

	fmt.Fprintln(w, "Sequential Search Results:")
	start := time.Now()
	for _, q := range queries {
		p, ok := skytree.SequentialNearest(facilities, q.Coords)
		writeMatch(w, q, p, ok)
	}
	seqTime := time.Since(start)
	fmt.Fprintf(w, "Sequential Search Time: %v\n\n", seqTime)

	tree, err := skytree.Build(facilities, cfg)
	kingpin.FatalIfError(err, "building R-tree")

	fmt.Fprintln(w, "Best First Search Results:")
	start = time.Now()
	for _, q := range queries {
		p, ok := tree.Nearest(q.Coords)
		writeMatch(w, q, p, ok)
	}
	bfsTime := time.Since(start)
	fmt.Fprintf(w, "Best First Search Time: %v\n\n", bfsTime)

	pt, err := skytree.BuildPartitioned(facilities, cfg)
	kingpin.FatalIfError(err, "building partitioned R-trees")

	fmt.Fprintln(w, "Divide and Conquer Results:")
	start = time.Now()
	for _, q := range queries {
		p, ok := pt.Nearest(q.Coords)
		writeMatch(w, q, p, ok)
	}
	dcTime := time.Since(start)
	fmt.Fprintf(w, "Divide and Conquer Time: %v\n", dcTime)

	fmt.Printf("sequential %v, best-first %v, divide-and-conquer %v (k=%d)\n",
		seqTime, bfsTime, dcTime, partitions)
	fmt.Printf("results written to %s\n", outPath)
}

func runSkyline(citiesPath, outPath string, maxEntries, partitions int) {
	cities, err := skytree.LoadPoints(citiesPath)
	kingpin.FatalIfError(err, "loading cities")

	fmt.Printf("loaded %s cities\n", humanize.Comma(int64(len(cities))))

	cfg := skytree.DefaultConfig()
	cfg.MaxEntries = maxEntries
	cfg.Partitions = partitions

	out, err := os.Create(outPath)
	kingpin.FatalIfError(err, "creating %s", outPath)
	defer out.Close()
	w := bufio.NewWriter(out)
	defer w.Flush()

	fmt.Fprintln(w, "Sequential Scan Skyline Results:")
	start := time.Now()
	seqSkyline := skytree.SequentialSkyline(cities)
	seqTime := time.Since(start)
	writeSkyline(w, seqSkyline)
	fmt.Fprintf(w, "Sequential Scan Time: %v\n\n", seqTime)

	tree, err := skytree.Build(cities, cfg)
	kingpin.FatalIfError(err, "building R-tree")

	fmt.Fprintln(w, "BBS Skyline Results:")
	start = time.Now()
	bbsSkyline := tree.Skyline()
	bbsTime := time.Since(start)
	writeSkyline(w, bbsSkyline)
	fmt.Fprintf(w, "BBS Time: %v\n\n", bbsTime)

	pt, err := skytree.BuildPartitioned(cities, cfg)
	kingpin.FatalIfError(err, "building partitioned R-trees")

	fmt.Fprintln(w, "BBS Divide and Conquer Skyline Results:")
	start = time.Now()
	dcSkyline := pt.Skyline()
	dcTime := time.Since(start)
	writeSkyline(w, dcSkyline)
	fmt.Fprintf(w, "Divide and Conquer Time: %v\n", dcTime)

	fmt.Printf("skyline has %s of %s points\n",
		humanize.Comma(int64(len(bbsSkyline))), humanize.Comma(int64(len(cities))))
	fmt.Printf("sequential %v, BBS %v, divide-and-conquer %v (k=%d)\n",
		seqTime, bbsTime, dcTime, partitions)
	fmt.Printf("results written to %s\n", outPath)
}

func writeMatch(w *bufio.Writer, query, p skytree.Point, ok bool) {
	if !ok {
		fmt.Fprintf(w, "no result for query %d\n", query.ID)
		return
	}
	fmt.Fprintf(w, "id = %d at (%s) for query %d\n", p.ID, formatCoords(p.Coords, ", "), query.ID)
}

func writeSkyline(w *bufio.Writer, skyline []skytree.Point) {
	for _, p := range skyline {
		fmt.Fprintf(w, "%d %s\n", p.ID, formatCoords(p.Coords, " "))
	}
}

func formatCoords(coords []float64, sep string) string {
	parts := make([]string, len(coords))
	for i, c := range coords {
		parts[i] = fmt.Sprintf("%g", c)
	}
	return strings.Join(parts, sep)
}
