package alice

// LocateIter is a zero-allocation cursor over a suffix-array range,
// resolving each matching position lazily via an LF-mapping walk. It
// borrows its Index for its lifetime and never mutates Index state.
type LocateIter struct {
	index *Index
	lo    int
	hi    int
}

// HasNext reports whether another position remains.
func (it *LocateIter) HasNext() bool { return it.lo < it.hi }

// Next returns the next matching text position. It does not check
// HasNext on the hot path: called after HasNext reports false, it resolves
// the row past the range and its result is not a match position.
func (it *LocateIter) Next() int {
	pos := it.index.resolveSA(it.lo)
	it.lo++
	return pos
}

// Len reports the exact number of positions remaining; each call to Next
// reduces it by one.
func (it *LocateIter) Len() int { return it.hi - it.lo }
