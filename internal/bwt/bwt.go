// Package bwt derives the Burrows-Wheeler Transform string and C-table that
// back an FM-Index, given a suffix array produced by package sais.
package bwt

import "github.com/ext-sakamoro/ALICE-Search/internal/sais"

// Sentinel is the byte value used to stand in for the implicit end-of-text
// marker inside the stored BWT string. It collides with real NUL bytes in
// the indexed text or query patterns; ALICE-Search never materializes a
// ninth bit for the sentinel, trading that ambiguity for a uniform 256-byte
// alphabet throughout the wavelet matrix and C-table.
const Sentinel byte = 0

// Transform holds the length-(n+1) suffix array, the derived BWT string L,
// the row index where the sentinel sits (`primary`), and the resulting
// C-table.
type Transform struct {
	SA      []int
	L       []byte
	Primary int
	CTable  [256]int
}

// Build runs SA-IS over text and derives L and the C-table from the
// resulting suffix array in a single pass.
func Build(text []byte) *Transform {
	n := len(text)
	rawSA := sais.Build(text)

	sa := make([]int, n+1)
	sa[0] = n
	copy(sa[1:], rawSA)

	l := make([]byte, n+1)
	primary := 0
	for i, pos := range sa {
		if pos == 0 {
			l[i] = Sentinel
			primary = i
		} else {
			l[i] = text[pos-1]
		}
	}

	var counts [256]int
	for _, c := range l {
		counts[c]++
	}
	var cTable [256]int
	sum := 0
	for c := 0; c < 256; c++ {
		cTable[c] = sum
		sum += counts[c]
	}

	return &Transform{SA: sa, L: l, Primary: primary, CTable: cTable}
}
