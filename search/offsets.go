package search

import "slices"

type patternOffset struct {
	pattern []uint64
	offset  uint64
}

// defaultPrimorialOffsets tabulates, for each constellation pattern with a
// published offset, a residue d mod P such that every d + o is coprime to the
// primorial P. Values come from the prime constellation literature.
var defaultPrimorialOffsets = []patternOffset{
	{[]uint64{0}, 380284918609481},
	{[]uint64{0, 2}, 380284918609481},
	{[]uint64{0, 2, 6}, 380284918609481},
	{[]uint64{0, 4, 6}, 1418575498573},
	{[]uint64{0, 2, 6, 8}, 380284918609481},
	{[]uint64{0, 2, 6, 8, 12}, 380284918609481},
	{[]uint64{0, 4, 6, 10, 12}, 1418575498597},
	{[]uint64{0, 4, 6, 10, 12, 16}, 1091257},
	{[]uint64{0, 2, 6, 8, 12, 18, 20}, 380284918609481},
	{[]uint64{0, 2, 8, 12, 14, 18, 20}, 1418575498589},
	{[]uint64{0, 2, 6, 8, 12, 18, 20, 26}, 380284918609481},
	{[]uint64{0, 2, 6, 12, 14, 20, 24, 26}, 1418575498577},
	{[]uint64{0, 6, 8, 14, 18, 20, 24, 26}, 1418575498583},
	{[]uint64{0, 2, 6, 8, 12, 18, 20, 26, 30}, 380284918609481},
	{[]uint64{0, 2, 6, 12, 14, 20, 24, 26, 30}, 1418575498577},
	{[]uint64{0, 4, 6, 10, 16, 18, 24, 28, 30}, 1418575498573},
	{[]uint64{0, 4, 10, 12, 18, 22, 24, 28, 30}, 1418575498579},
	{[]uint64{0, 2, 6, 8, 12, 18, 20, 26, 30, 32}, 380284918609481},
	{[]uint64{0, 2, 6, 12, 14, 20, 24, 26, 30, 32}, 1418575498577},
	{[]uint64{0, 2, 6, 8, 12, 18, 20, 26, 30, 32, 36}, 380284918609481},
	{[]uint64{0, 4, 6, 10, 16, 18, 24, 28, 30, 34, 36}, 1418575498573},
	{[]uint64{0, 2, 6, 8, 12, 18, 20, 26, 30, 32, 36, 42}, 380284918609481},
	{[]uint64{0, 6, 10, 12, 16, 22, 24, 30, 34, 36, 40, 42}, 1418575498567},
}

// DefaultPrimorialOffset returns the tabulated primorial offset for the given
// pattern, if one exists.
func DefaultPrimorialOffset(pattern []uint64) (uint64, bool) {
	for _, e := range defaultPrimorialOffsets {
		if slices.Equal(e.pattern, pattern) {
			return e.offset, true
		}
	}
	return 0, false
}
