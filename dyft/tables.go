package dyft

import "trajdyft/errutil"

// BitPositionTable indexes, for each bits-per-level value (1..8, as
// BitPositionTable[bits-1]), the count of packed label values whose
// number of non-zero bits-per-level-wide groups is less than the
// table's column index (so column 1 counts only the all-zero label).
// It is carried over verbatim; no code in this package reads it, and
// ValidateParams checks fixed bounds without consulting it. See
// DESIGN.md for the provenance of this specific table versus the
// Hamming-distance and lookup tables, which are not reproduced here
// (see the doc comment on splitThreshold).
var BitPositionTable = [8][10]int{
	{0, 1, 9, 37, 93, 163, 219, 247, 255, 256},
	{0, 1, 13, 67, 175, 256, 256, 256, 256, 256},
	{0, 1, 15, 64, 64, 64, 64, 64, 64, 64},
	{0, 1, 31, 256, 256, 256, 256, 256, 256, 256},
	{0, 1, 32, 32, 32, 32, 32, 32, 32, 32},
	{0, 1, 64, 64, 64, 64, 64, 64, 64, 64},
	{0, 1, 128, 128, 128, 128, 128, 128, 128, 128},
	{0, 1, 256, 256, 256, 256, 256, 256, 256, 256},
}

// ValidateParams checks the bits-per-level and radius bounds the
// precomputed table was built for: bits in [1, 8], radius in [0, 16].
// Violations are a configuration-construction bug, not a runtime input
// error, so they go through errutil rather than returning an error.
func ValidateParams(bitsPerLevel, radius int) {
	errutil.BugOn(bitsPerLevel < 1 || bitsPerLevel > 8, "dyft: bitsPerLevel out of range: %d", bitsPerLevel)
	errutil.BugOn(radius < 0 || radius >= 17, "dyft: radius out of range: %d", radius)
}

// splitThreshold returns the maximum posting-list size a leaf at the
// given depth may reach before it must be split, for the configured
// radius and bits-per-level. The table this was generated from in the
// reference system is not available in full (see DESIGN.md); this is a
// synthesized replacement with the same shape the original dispatches
// to: a per-depth ceiling that grows with depth (deeper leaves are
// rarer, so can be allowed to grow larger before the cost of splitting
// them is worth paying) and shrinks as the radius grows (a larger
// Hamming radius means more candidates pass verification per query, so
// keeping leaves smaller limits the false-positive fan-out).
func splitThreshold(depth, radius int, inWeight float64) float64 {
	base := 4.0 + float64(depth)*3.0 - float64(radius)*0.75
	if base < 1.0 {
		base = 1.0
	}
	return base * inWeight
}
