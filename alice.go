// Package alice implements ALICE-Search, a compressed full-text index
// (FM-Index) over arbitrary byte sequences. Construction runs the BWT via
// SA-IS in O(n), after which count, contains and locate all run in time
// proportional to the pattern length rather than the corpus size.
//
// Searching implies counting: backward search narrows a suffix-array range
// one pattern byte at a time via LF-mapping, and locate resolves the
// narrowed range's positions by walking LF-steps out to the nearest sampled
// suffix-array entry.
package alice

import (
	"github.com/ext-sakamoro/ALICE-Search/internal/bitvec"
	"github.com/ext-sakamoro/ALICE-Search/internal/bwt"
	"github.com/ext-sakamoro/ALICE-Search/internal/wavelet"
	"github.com/ext-sakamoro/ALICE-Search/pkg/apperrors"
)

// Index is a compressed self-index (FM-Index) over a fixed text. It owns
// its wavelet matrix, C-table, SA samples and sample bitmap exclusively;
// LocateIter borrows an Index for its lifetime but never mutates it.
type Index struct {
	wm         *wavelet.Matrix
	cTable     [256]int
	sampleStep int
	samples    []int
	sampled    *bitvec.BitVec
}

// Build constructs an Index over text, sampling every step-th suffix-array
// entry for position recovery. step must be >= 1; a smaller step speeds up
// Locate at the cost of more memory for the SA samples.
func Build(text []byte, step int) (*Index, error) {
	if step < 1 {
		return nil, apperrors.Newf(apperrors.ErrInvalidStep, 400, "got step=%d", step)
	}

	tr := bwt.Build(text)
	wm := wavelet.Build(tr.L)

	n := len(tr.SA)
	sampled := bitvec.New(n)
	var samples []int
	for i, pos := range tr.SA {
		if pos%step == 0 {
			sampled.Set(i)
			samples = append(samples, pos)
		}
	}
	sampled.Build()

	return &Index{
		wm:         wm,
		cTable:     tr.CTable,
		sampleStep: step,
		samples:    samples,
		sampled:    sampled,
	}, nil
}

// Count returns the number of occurrences of pattern in O(len(pattern))
// time, independent of the indexed text's size.
func (ix *Index) Count(pattern []byte) int {
	if len(pattern) == 0 {
		return ix.TextLen()
	}
	lo, hi := ix.backwardSearch(pattern)
	return hi - lo
}

// Contains reports whether pattern occurs anywhere in the indexed text.
func (ix *Index) Contains(pattern []byte) bool {
	if len(pattern) == 0 {
		return true
	}
	lo, hi := ix.backwardSearch(pattern)
	return hi > lo
}

// SearchRange returns the half-open suffix-array range [lo, hi) of rows
// whose suffix starts with pattern. An empty pattern matches no range
// (lo==hi==0), since every suffix trivially has the empty string as a
// prefix and enumerating "all of them" is rarely what a caller wants from
// a range query; use Count for the occurrence total in that case.
func (ix *Index) SearchRange(pattern []byte) (lo, hi int) {
	if len(pattern) == 0 {
		return 0, 0
	}
	return ix.backwardSearch(pattern)
}

// Locate returns a zero-allocation cursor over every position where
// pattern occurs in the indexed text. Positions are not returned in any
// particular order.
func (ix *Index) Locate(pattern []byte) *LocateIter {
	lo, hi := ix.SearchRange(pattern)
	return &LocateIter{index: ix, lo: lo, hi: hi}
}

// LocateAll collects every occurrence of pattern into a slice. Prefer
// Locate's iterator when occurrences may be numerous.
func (ix *Index) LocateAll(pattern []byte) []int {
	it := ix.Locate(pattern)
	out := make([]int, 0, it.Len())
	for it.HasNext() {
		out = append(out, it.Next())
	}
	return out
}

// TextLen returns the length of the original indexed text, excluding the
// internal sentinel row.
func (ix *Index) TextLen() int {
	n := ix.wm.Len()
	if n == 0 {
		return 0
	}
	return n - 1
}

// SampleStep returns the SA sampling interval the Index was built with.
func (ix *Index) SampleStep() int { return ix.sampleStep }

// SizeBytes estimates the Index's resident memory footprint in bytes:
// the wavelet matrix's interleaved bit-vector layout, the C-table, the
// sampled-position bitmap and the sample array itself.
func (ix *Index) SizeBytes() int {
	n := ix.wm.Len()

	// Interleaved layout: 9 uint64 words per 512 payload bits per layer,
	// 8 layers.
	blocks := n/512 + 1
	wmSize := blocks * 9 * 8 * 8

	cTableSize := 256 * 8

	sampledBitsSize := blocks * 9 * 8
	samplesSize := len(ix.samples) * 8

	return wmSize + cTableSize + sampledBitsSize + samplesSize
}

// CompressionRatio returns SizeBytes() / TextLen(), or 0 for an empty text.
func (ix *Index) CompressionRatio() float64 {
	textLen := ix.TextLen()
	if textLen == 0 {
		return 0
	}
	return float64(ix.SizeBytes()) / float64(textLen)
}

// backwardSearch narrows the suffix-array range right-to-left over
// pattern, consuming one byte per LF-mapping step. Returns an empty range
// (0, 0) the moment the range collapses.
func (ix *Index) backwardSearch(pattern []byte) (lo, hi int) {
	lo, hi = 0, ix.wm.Len()
	for i := len(pattern) - 1; i >= 0; i-- {
		c := pattern[i]

		rankLo := ix.wm.Rank(c, lo)
		rankHi := ix.wm.Rank(c, hi)

		lo = ix.cTable[c] + rankLo
		hi = ix.cTable[c] + rankHi

		if lo >= hi {
			return 0, 0
		}
	}
	return lo, hi
}

// resolveSA recovers SA[i] by walking LF-mapping steps backward until it
// lands on a sampled suffix-array row, then adds back the number of steps
// walked. Costs at most sampleStep LF-steps; the primary row (SA value 0)
// is always sampled regardless of step, which guarantees termination.
func (ix *Index) resolveSA(i int) int {
	steps := 0
	for {
		if ix.sampled.Get(i) {
			idx := ix.sampled.Rank1(i)
			return ix.samples[idx] + steps
		}

		c := ix.wm.Access(i)
		rank := ix.wm.Rank(c, i)
		i = ix.cTable[c] + rank
		steps++
	}
}
