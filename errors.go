package skytree

import "errors"

// ErrConfiguration reports an invalid Config: a fan-out below 2 or a
// partition count below 1. Surfaced at build or partition time.
var ErrConfiguration = errors.New("invalid configuration")

// ErrDimensionMismatch reports points whose coordinate counts disagree.
// Surfaced at load or build time, before any index is constructed.
var ErrDimensionMismatch = errors.New("dimension mismatch")
