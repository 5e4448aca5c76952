// Package wavelet implements a fixed-height wavelet matrix over byte
// sequences, giving alphabet-general rank and access in a constant number
// of bit-vector steps regardless of how many distinct symbols occur.
package wavelet

import "github.com/ext-sakamoro/ALICE-Search/internal/bitvec"

// layers is the bit-depth of the matrix: one layer per bit of a byte,
// most significant first.
const layers = 8

// Matrix is a wavelet matrix built from a byte sequence. Querying rank(c,
// i) or access(i) costs two bit-vector operations per layer, `layers`
// layers in all, independent of sequence length or alphabet size.
type Matrix struct {
	layer [layers]*bitvec.BitVec
	zeros [layers]int
	n     int
}

// Build constructs a Matrix from s using double-buffered, stable
// partitioning: two scratch buffers of length len(s) are allocated once and
// reused across all layers via a pointer swap, so no per-layer
// reallocation occurs.
func Build(s []byte) *Matrix {
	n := len(s)
	m := &Matrix{n: n}

	if n == 0 {
		for d := 0; d < layers; d++ {
			m.layer[d] = bitvec.New(0)
		}
		return m
	}

	current := make([]byte, n)
	copy(current, s)
	next := make([]byte, n)

	for d := layers - 1; d >= 0; d-- {
		mask := byte(1) << uint(d)

		zeroCount := 0
		for _, c := range current {
			if c&mask == 0 {
				zeroCount++
			}
		}
		m.zeros[d] = zeroCount

		layer := bitvec.New(n)
		zPtr, oPtr := 0, zeroCount
		for i, c := range current {
			if c&mask != 0 {
				layer.Set(i)
				next[oPtr] = c
				oPtr++
			} else {
				next[zPtr] = c
				zPtr++
			}
		}
		layer.Build()
		m.layer[d] = layer

		current, next = next, current
	}

	return m
}

// Len returns the length of the original sequence.
func (m *Matrix) Len() int { return m.n }

// Access reconstructs the byte originally stored at position i.
func (m *Matrix) Access(i int) byte {
	var c byte
	for d := layers - 1; d >= 0; d-- {
		bit := m.layer[d].Get(i)
		if bit {
			c |= 1 << uint(d)
			i = m.zeros[d] + m.layer[d].Rank1(i)
		} else {
			i = m.layer[d].Rank0(i)
		}
	}
	return c
}

// Rank counts occurrences of byte c in positions [0, i).
func (m *Matrix) Rank(c byte, i int) int {
	start := 0
	for d := layers - 1; d >= 0; d-- {
		bit := (c>>uint(d))&1 != 0
		rankStart := m.layer[d].Rank(bit, start)
		rankEnd := m.layer[d].Rank(bit, i)
		if bit {
			start = m.zeros[d] + rankStart
			i = m.zeros[d] + rankEnd
		} else {
			start = rankStart
			i = rankEnd
		}
	}
	return i - start
}
