// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE-go file.

// Package sais computes suffix arrays in O(n) time using the SA-IS
// (suffix-array-by-induced-sorting) algorithm of Nong, Zhang, and Chen.
//
// The same induced-sorting engine backs Go's standard library
// index/suffixarray package, which hand-duplicates every step of the
// algorithm once per integer width it needs (a byte-alphabet pass, plus
// an int32 and an int64 reduced-alphabet pass for the recursion). This
// package carries a single generic engine instead: one family of
// functions parameterized over the alphabet's symbol type, instantiated
// with byte for the text handed to Build and with int for every
// recursive reduced-alphabet subproblem. It also drops the byte-packing
// "length or encoded text" micro-optimization the standard library's
// length/assignID step uses to shortcut comparisons of long repeated
// LMS-substrings: that trick only pays off for a byte alphabet and
// doesn't generalize across symbol widths, so every recursion depth here
// runs the same plain length-then-element-compare path.
package sais

// symbol is the set of alphabets the engine recurses over: byte for the
// text handed to Build, int for every reduced-alphabet subproblem solved
// while recursing.
type symbol interface {
	~byte | ~int
}

// Build returns the suffix array of text: a permutation of [0, len(text))
// such that text[sa[i]:] < text[sa[i+1]:] for all i, as if text were
// followed by an implicit sentinel strictly smaller than any byte value.
// That implicit sentinel is never stored in sa; see package bwt for how
// callers recover the full length-(n+1) array with the sentinel position
// prepended.
func Build(text []byte) []int {
	sa := make([]int, len(text))
	build(text, 256, sa, make([]int, 2*256))
	return sa
}

// build computes the suffix array of text, a sequence over [0, textMax).
// sa must be zeroed and the same length as text. tmp must have length at
// least textMax; a length of at least 2*textMax lets the algorithm cache
// symbol frequencies instead of recomputing them.
func build[T symbol](text []T, textMax int, sa, tmp []int) {
	if len(sa) != len(text) || len(tmp) < textMax {
		panic("sais: misuse of build")
	}

	if len(text) == 0 {
		return
	}
	if len(text) == 1 {
		sa[0] = 0
		return
	}

	var freq, bucket []int
	if len(tmp) >= 2*textMax {
		freq, bucket = tmp[:textMax], tmp[textMax:2*textMax]
		freq[0] = -1 // mark as uninitialized
	} else {
		freq, bucket = nil, tmp[:textMax]
	}

	numLMS := placeLMS(text, sa, freq, bucket, textMax)
	if numLMS > 1 {
		induceSubL(text, sa, freq, bucket, textMax)
		induceSubS(text, sa, freq, bucket, textMax)
		length(text, sa, numLMS)
		maxID := assignID(text, sa, numLMS)
		if maxID < numLMS {
			compactNames(sa, numLMS)
			recurse(sa, tmp, numLMS, maxID)
			unmap(text, sa, numLMS)
		} else {
			// Every LMS-substring is unique, so LMS-suffix order already
			// matches LMS-substring order; copy it into place.
			copy(sa, sa[len(sa)-numLMS:])
		}
		expand(text, freq, bucket, sa, numLMS, textMax)
	}
	induceL(text, sa, freq, bucket, textMax)
	induceS(text, sa, freq, bucket, textMax)

	tmp[0] = -1
}

// countFreq returns symbol frequencies for text indexed by symbol value,
// computing and caching them in freq if freq is non-nil, else reusing
// bucket as scratch space.
func countFreq[T symbol](text []T, freq, bucket []int, textMax int) []int {
	if freq != nil && freq[0] >= 0 {
		return freq
	}
	if freq == nil {
		freq = bucket
	}
	freq = freq[:textMax]
	clear(freq)
	for _, c := range text {
		freq[int(c)]++
	}
	return freq
}

func bucketMin[T symbol](text []T, freq, bucket []int, textMax int) {
	f := countFreq(text, freq, bucket, textMax)
	f = f[:textMax]
	bucket = bucket[:textMax]
	total := 0
	for i, n := range f {
		bucket[i] = total
		total += n
	}
}

func bucketMax[T symbol](text []T, freq, bucket []int, textMax int) {
	f := countFreq(text, freq, bucket, textMax)
	f = f[:textMax]
	bucket = bucket[:textMax]
	total := 0
	for i, n := range f {
		total += n
		bucket[i] = total
	}
}

// placeLMS places into sa the text indexes of the final characters of the
// LMS-substrings of text, bucketed by final character at the right end of
// each bucket. The caller must treat the virtual end-of-text position,
// len(text), as the final character of the final LMS-substring — there is
// no bucket for the implicit sentinel, which sorts below every symbol
// value.
func placeLMS[T symbol](text []T, sa, freq, bucket []int, textMax int) int {
	bucketMax(text, freq, bucket, textMax)

	numLMS := 0
	lastB := -1

	// Backward scan classifying positions as S-type/L-type by comparing
	// with the following position; stop at every S-type position that is
	// immediately preceded by an L-type position (an LMS-substring start).
	var c0, c1 T
	isTypeS := false
	for i := len(text) - 1; i >= 0; i-- {
		c0, c1 = text[i], c0
		if c0 < c1 {
			isTypeS = true
		} else if c0 > c1 && isTypeS {
			isTypeS = false

			b := bucket[int(c1)] - 1
			bucket[int(c1)] = b
			sa[b] = i + 1
			lastB = b
			numLMS++
		}
	}

	// We recorded LMS-substring starts but want ends; start and end
	// indexes coincide except the rightmost LMS-substring's end is
	// len(text) (handled by the caller treating sa[-1] as len(text)) and
	// the leftmost start doesn't end an earlier substring, so drop it —
	// unless numLMS <= 1, in which case the caller skips the recursion
	// and wants the starts as-is.
	if numLMS > 1 {
		sa[lastB] = 0
	}
	return numLMS
}

// induceSubL inserts the L-type indexes of LMS-substrings into sa, given
// that the final S-type symbol of each LMS-substring is already placed at
// the right end of its bucket. Leaves behind only the leftmost L-type
// index of each LMS-substring.
func induceSubL[T symbol](text []T, sa, freq, bucket []int, textMax int) {
	bucketMin(text, freq, bucket, textMax)

	k := len(text) - 1
	c0, c1 := text[k-1], text[k]
	if c0 < c1 {
		k = -k
	}
	cB := c1
	b := bucket[int(cB)]
	sa[b] = k
	b++

	for i := 0; i < len(sa); i++ {
		j := sa[i]
		if j == 0 {
			continue
		}
		if j < 0 {
			sa[i] = -j
			continue
		}
		sa[i] = 0

		k := j - 1
		c0, c1 := text[k-1], text[k]
		if c0 < c1 {
			k = -k
		}

		if cB != c1 {
			bucket[int(cB)] = b
			cB = c1
			b = bucket[int(cB)]
		}
		sa[b] = k
		b++
	}
}

// induceSubS is the S-type counterpart of induceSubL, scanning right to
// left and compacting the discovered LMS-substring starts into the top of
// sa, sorted by LMS-substring.
func induceSubS[T symbol](text []T, sa, freq, bucket []int, textMax int) {
	bucketMax(text, freq, bucket, textMax)

	var cB T
	b := bucket[int(cB)]

	top := len(sa)
	for i := len(sa) - 1; i >= 0; i-- {
		j := sa[i]
		if j == 0 {
			continue
		}
		sa[i] = 0
		if j < 0 {
			top--
			sa[top] = -j
			continue
		}

		k := j - 1
		c1 := text[k]
		c0 := text[k-1]
		if c0 > c1 {
			k = -k
		}

		if cB != c1 {
			bucket[int(cB)] = b
			cB = c1
			b = bucket[int(cB)]
		}
		b--
		sa[b] = k
	}
}

// length records, for each LMS-substring starting at index j, its length
// into sa[j/2]; the final LMS-substring (the one ending at the implicit
// sentinel) is recorded as 0, since its length is never needed — it's
// unique by construction and always compares as new.
func length[T symbol](text []T, sa []int, numLMS int) {
	end := 0 // end of current LMS-substring; 0 means "no substring yet"

	var c0, c1 T
	isTypeS := false
	for i := len(text) - 1; i >= 0; i-- {
		c0, c1 = text[i], c0
		if c0 < c1 {
			isTypeS = true
		} else if c0 > c1 && isTypeS {
			isTypeS = false

			j := i + 1
			code := 0
			if end != 0 {
				code = end - j
			}
			sa[j>>1] = code
			end = j + 1
		}
	}
}

// assignID names each LMS-substring by direct element comparison and
// returns the number of distinct names.
func assignID[T symbol](text []T, sa []int, numLMS int) int {
	id := 0
	lastLen := -1 // impossible length, forces a mismatch on first entry
	lastPos := 0
	for _, j := range sa[len(sa)-numLMS:] {
		n := sa[j/2]
		isNew := n != lastLen
		if !isNew {
			this := text[j:][:n]
			last := text[lastPos:][:n]
			for i := 0; i < n; i++ {
				if this[i] != last[i] {
					isNew = true
					break
				}
			}
		}
		if isNew {
			id++
			lastPos = j
			lastLen = n
		}
		sa[j/2] = id
	}
	return id
}

// compactNames compacts the assigned LMS-substring names (1-indexed,
// stored at sa[j/2] for the substring starting at j) down to the top of
// sa, ready to serve as the
// reduced-alphabet subproblem text for recursion.
func compactNames(sa []int, numLMS int) {
	w := len(sa)
	for i := len(sa) / 2; i >= 0; i-- {
		j := sa[i]
		if j > 0 {
			w--
			sa[w] = j - 1
		}
	}
}

// recurse solves the reduced subproblem (an integer-alphabet string of
// LMS-substring names) by recursively invoking the same generic engine at
// T = int, reusing whichever scratch buffer is largest available.
func recurse(sa, oldTmp []int, numLMS, maxID int) {
	dst, saTmp, text := sa[:numLMS], sa[numLMS:len(sa)-numLMS], sa[len(sa)-numLMS:]

	tmp := oldTmp
	if len(tmp) < len(saTmp) {
		tmp = saTmp
	}
	if len(tmp) < numLMS {
		n := maxID
		if n < numLMS/2 {
			n = numLMS / 2
		}
		tmp = make([]int, n)
	}

	clear(dst)
	build(text, maxID, dst, tmp)
}

// unmap translates the subproblem's suffix array (indexes into the
// reduced LMS-name string) back into indexes of the original text.
func unmap[T symbol](text []T, sa []int, numLMS int) {
	unmapped := sa[len(sa)-numLMS:]
	j := len(unmapped)

	var c0, c1 T
	isTypeS := false
	for i := len(text) - 1; i >= 0; i-- {
		c0, c1 = text[i], c0
		if c0 < c1 {
			isTypeS = true
		} else if c0 > c1 && isTypeS {
			isTypeS = false
			j--
			unmapped[j] = i + 1
		}
	}

	sa = sa[:numLMS]
	for i := 0; i < len(sa); i++ {
		sa[i] = unmapped[sa[i]]
	}
}

// expand spreads the now-correctly-ordered LMS-suffixes (occupying
// sa[:numLMS]) back out into their final bucketed positions across the
// whole array, zeroing everything else in preparation for full induction.
func expand[T symbol](text []T, freq, bucket, sa []int, numLMS, textMax int) {
	bucketMax(text, freq, bucket, textMax)

	x := numLMS - 1
	saX := sa[x]
	c := text[saX]
	b := bucket[int(c)] - 1
	bucket[int(c)] = b

	for i := len(sa) - 1; i >= 0; i-- {
		if i != b {
			sa[i] = 0
			continue
		}
		sa[i] = saX

		if x > 0 {
			x--
			saX = sa[x]
			c = text[saX]
			b = bucket[int(c)] - 1
			bucket[int(c)] = b
		}
	}
}

// induceL performs the final left-to-right induction of all L-type
// suffixes from the now fully-ordered LMS suffixes.
func induceL[T symbol](text []T, sa, freq, bucket []int, textMax int) {
	bucketMin(text, freq, bucket, textMax)

	// expand omits the implicit entry sa[-1] == len(text), corresponding
	// to the always-L-type final position; process it first.
	k := len(text) - 1
	c0, c1 := text[k-1], text[k]
	if c0 < c1 {
		k = -k
	}

	cB := c1
	b := bucket[int(cB)]
	sa[b] = k
	b++

	for i := 0; i < len(sa); i++ {
		j := sa[i]
		if j <= 0 {
			continue
		}

		k := j - 1
		c1 := text[k]
		if k > 0 {
			if c0 := text[k-1]; c0 < c1 {
				k = -k
			}
		}

		if cB != c1 {
			bucket[int(cB)] = b
			cB = c1
			b = bucket[int(cB)]
		}
		sa[b] = k
		b++
	}
}

// induceS is the right-to-left counterpart of induceL, completing the
// full suffix array.
func induceS[T symbol](text []T, sa, freq, bucket []int, textMax int) {
	bucketMax(text, freq, bucket, textMax)

	var cB T
	b := bucket[int(cB)]

	for i := len(sa) - 1; i >= 0; i-- {
		j := sa[i]
		if j >= 0 {
			continue
		}
		j = -j
		sa[i] = j

		k := j - 1
		c1 := text[k]
		if k > 0 {
			if c0 := text[k-1]; c0 <= c1 {
				k = -k
			}
		}

		if cB != c1 {
			bucket[int(cB)] = b
			cB = c1
			b = bucket[int(cB)]
		}
		b--
		sa[b] = k
	}
}
