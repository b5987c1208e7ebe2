package skytree

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ReadPoints parses one point per line: an integer id followed by numeric
// coordinates, delimited by whitespace and/or commas. Blank lines are
// skipped. Every record must carry the same coordinate count; disagreement
// fails with ErrDimensionMismatch before any record is returned.
func ReadPoints(r io.Reader) ([]Point, error) {
	var points []Point
	dims := -1
	line := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line++
		fields := strings.FieldsFunc(scanner.Text(), func(c rune) bool {
			return c == ' ' || c == '\t' || c == ','
		})
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return nil, errors.Errorf("skytree: line %d: want id plus at least one coordinate, got %d fields", line, len(fields))
		}

		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, errors.Wrapf(err, "skytree: line %d: bad id %q", line, fields[0])
		}
		coords := make([]float64, len(fields)-1)
		for i, f := range fields[1:] {
			coords[i], err = strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "skytree: line %d: bad coordinate %q", line, f)
			}
		}

		if dims == -1 {
			dims = len(coords)
		} else if len(coords) != dims {
			return nil, fmt.Errorf("skytree: line %d: record has %d coordinates, want %d: %w",
				line, len(coords), dims, ErrDimensionMismatch)
		}
		points = append(points, Point{ID: id, Coords: coords})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "skytree: reading points")
	}
	return points, nil
}

// LoadPoints reads a whitespace- or comma-delimited dataset file.
func LoadPoints(path string) ([]Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "skytree: open dataset")
	}
	defer f.Close()

	points, err := ReadPoints(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return points, nil
}
