package bitvec

import "testing"

func fromBits(bits ...int) *BitVec {
	n := len(bits)
	bv := New(n)
	for i, b := range bits {
		if b != 0 {
			bv.Set(i)
		}
	}
	bv.Build()
	return bv
}

func TestRank1Simple(t *testing.T) {
	bv := fromBits(1, 0, 1, 1, 0, 1)

	cases := []struct{ i, want int }{
		{0, 0}, {1, 1}, {2, 1}, {3, 2}, {4, 3}, {5, 3}, {6, 4},
	}
	for _, c := range cases {
		if got := bv.Rank1(c.i); got != c.want {
			t.Errorf("Rank1(%d) = %d, want %d", c.i, got, c.want)
		}
	}
}

func TestRank0(t *testing.T) {
	bv := fromBits(1, 0, 1, 1, 0, 1)

	cases := []struct{ i, want int }{
		{0, 0}, {2, 1}, {5, 2}, {6, 2},
	}
	for _, c := range cases {
		if got := bv.Rank0(c.i); got != c.want {
			t.Errorf("Rank0(%d) = %d, want %d", c.i, got, c.want)
		}
	}
}

func TestGet(t *testing.T) {
	bv := fromBits(1, 0, 1)
	want := []bool{true, false, true}
	for i, w := range want {
		if got := bv.Get(i); got != w {
			t.Errorf("Get(%d) = %v, want %v", i, got, w)
		}
	}
}

func TestAcrossBlock(t *testing.T) {
	n := 1024
	bv := New(n)
	for i := 0; i < n; i++ {
		if i%3 == 0 {
			bv.Set(i)
		}
	}
	bv.Build()

	if got, want := bv.Rank1(512), 171; got != want {
		t.Errorf("Rank1(512) = %d, want %d", got, want)
	}
	if got, want := bv.Rank1(1024), 342; got != want {
		t.Errorf("Rank1(1024) = %d, want %d", got, want)
	}
}

func TestInterleavedLayout(t *testing.T) {
	n := 512
	bv := New(n)
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			bv.Set(i)
		}
	}
	bv.Build()

	if len(bv.data) != 9 {
		t.Fatalf("len(data) = %d, want 9", len(bv.data))
	}
	if bv.data[0] != 0 {
		t.Errorf("header[0] = %d, want 0", bv.data[0])
	}
	if got, want := bv.Rank1(512), 256; got != want {
		t.Errorf("Rank1(512) = %d, want %d", got, want)
	}
}

func TestSelect1(t *testing.T) {
	bv := fromBits(0, 1, 0, 1, 1, 0, 1, 0)
	// set bits at 1, 3, 4, 6
	want := []int{1, 3, 4, 6}
	for k, pos := range want {
		if got := bv.Select1(k); got != pos {
			t.Errorf("Select1(%d) = %d, want %d", k, got, pos)
		}
	}
	if got := bv.Select1(4); got != -1 {
		t.Errorf("Select1(4) = %d, want -1 (out of range)", got)
	}
}

func TestSelect1LargeSparse(t *testing.T) {
	n := 4000
	bv := New(n)
	var idx []int
	for i := 0; i < n; i += 37 {
		bv.Set(i)
		idx = append(idx, i)
	}
	bv.Build()

	for k, pos := range idx {
		if got := bv.Select1(k); got != pos {
			t.Fatalf("Select1(%d) = %d, want %d", k, got, pos)
		}
	}
}

func TestRank1SelectRoundTrip(t *testing.T) {
	bv := fromBits(1, 0, 1, 1, 0, 1, 0, 0, 1)
	// select1(rank1(i)) should land on the set bit at-or-before i, when
	// the bit at i itself is set.
	for i := 0; i < bv.Len(); i++ {
		if bv.Get(i) {
			if got := bv.Select1(bv.Rank1(i)); got != i {
				t.Errorf("Select1(Rank1(%d)) = %d, want %d", i, got, i)
			}
		}
	}
}

func TestEmpty(t *testing.T) {
	bv := New(0)
	bv.Build()
	if bv.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", bv.Len())
	}
	if got := bv.Select1(0); got != -1 {
		t.Errorf("Select1(0) on empty = %d, want -1", got)
	}
}
