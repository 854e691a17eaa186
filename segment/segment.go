// Package segment iterates UTF-8 text as grapheme clusters and assigns each
// cluster a display width.
//
// A cluster is one base codepoint followed by any number of combining
// codepoints (the enumerated combining-mark ranges plus ZWSP/ZWNJ/ZWJ/BOM).
// Widths are 0 for combining/zero-width codepoints, 2 for the enumerated
// CJK/fullwidth ranges, and 1 otherwise. The width table is deliberately not
// a full East-Asian-Width implementation; codepoints outside the enumerated
// ranges are width 1.
//
// Invalid UTF-8 is tolerated: each bad byte forms its own width-1 cluster.
package segment

import "unicode/utf8"

// Grapheme is one cluster of the input: the raw bytes, the byte offset of
// the cluster within the input, and its display width.
type Grapheme struct {
	Bytes  string
	Offset int
	Width  int
}

// Iter is a cursor over the clusters of a string.
type Iter struct {
	input string
	pos   int
}

func NewIter(s string) *Iter {
	return &Iter{input: s}
}

// Next returns the next cluster, or ok=false at end of input.
func (it *Iter) Next() (g Grapheme, ok bool) {
	if it.pos >= len(it.input) {
		return Grapheme{}, false
	}
	start := it.pos
	r, w := utf8.DecodeRuneInString(it.input[it.pos:])
	if r == utf8.RuneError && w <= 1 {
		// bad byte; treat as its own width-1 cluster
		it.pos++
		return Grapheme{Bytes: it.input[start:it.pos], Offset: start, Width: 1}, true
	}
	it.pos += w
	width := runeWidth(r)

	// absorb trailing combining marks into the cluster
	for it.pos < len(it.input) {
		r2, w2 := utf8.DecodeRuneInString(it.input[it.pos:])
		if r2 == utf8.RuneError && w2 <= 1 {
			break
		}
		if !isZeroWidth(r2) {
			break
		}
		it.pos += w2
	}
	return Grapheme{Bytes: it.input[start:it.pos], Offset: start, Width: width}, true
}

// runeWidth is the display width of a single codepoint.
func runeWidth(r rune) int {
	if isZeroWidth(r) {
		return 0
	}
	if inRanges(r, wideRanges) {
		return 2
	}
	return 1
}

func isZeroWidth(r rune) bool {
	switch r {
	case 0x200B, 0x200C, 0x200D, 0xFEFF:
		return true
	}
	return inRanges(r, combiningRanges)
}

func inRanges(r rune, ranges [][2]rune) bool {
	lo, hi := 0, len(ranges)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case r < ranges[mid][0]:
			hi = mid
		case r > ranges[mid][1]:
			lo = mid + 1
		default:
			return true
		}
	}
	return false
}

// Width is the total display width of s.
func Width(s string) int {
	total := 0
	it := NewIter(s)
	for {
		g, ok := it.Next()
		if !ok {
			return total
		}
		total += g.Width
	}
}

// ColumnByteIndex returns the byte index of the first cluster whose
// accumulated width is >= col, or len(text) when col is past the end.
func ColumnByteIndex(text string, col int) int {
	if col <= 0 {
		return 0
	}
	acc := 0
	it := NewIter(text)
	for {
		g, ok := it.Next()
		if !ok {
			return len(text)
		}
		if acc >= col {
			return g.Offset
		}
		acc += g.Width
	}
}
