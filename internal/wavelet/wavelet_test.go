package wavelet

import "testing"

func TestAccessRoundTrip(t *testing.T) {
	text := []byte("abracadabra")
	m := Build(text)
	for i, c := range text {
		if got := m.Access(i); got != c {
			t.Errorf("Access(%d) = %q, want %q", i, got, c)
		}
	}
}

func TestRank(t *testing.T) {
	text := []byte("abracadabra")
	m := Build(text)

	cases := []struct {
		c    byte
		i    int
		want int
	}{
		{'a', 0, 0},
		{'a', 1, 1},
		{'a', 4, 2},
		{'a', 11, 5},
		{'b', 0, 0},
		{'b', 2, 1},
		{'b', 11, 2},
	}
	for _, c := range cases {
		if got := m.Rank(c.c, c.i); got != c.want {
			t.Errorf("Rank(%q, %d) = %d, want %d", c.c, c.i, got, c.want)
		}
	}
}

func TestAllSame(t *testing.T) {
	m := Build([]byte("aaaaaaaaaa"))
	if got := m.Rank('a', 5); got != 5 {
		t.Errorf("Rank('a', 5) = %d, want 5", got)
	}
	if got := m.Rank('a', 10); got != 10 {
		t.Errorf("Rank('a', 10) = %d, want 10", got)
	}
	if got := m.Rank('b', 10); got != 0 {
		t.Errorf("Rank('b', 10) = %d, want 0", got)
	}
}

func TestEmpty(t *testing.T) {
	m := Build(nil)
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
}

func TestFullByteRange(t *testing.T) {
	text := make([]byte, 256)
	for i := range text {
		text[i] = byte(i)
	}
	m := Build(text)

	for i := 0; i < 256; i++ {
		if got := m.Access(i); got != byte(i) {
			t.Errorf("Access(%d) = %d, want %d", i, got, i)
		}
	}
	for c := 0; c < 256; c++ {
		if got := m.Rank(byte(c), 256); got != 1 {
			t.Errorf("Rank(%d, 256) = %d, want 1", c, got)
		}
	}
}

func TestRankMonotone(t *testing.T) {
	text := []byte("the quick brown fox jumps over the lazy dog")
	m := Build(text)

	var total int
	for c := 0; c < 256; c++ {
		total += m.Rank(byte(c), len(text))
	}
	if total != len(text) {
		t.Errorf("sum of Rank(c, n) over all c = %d, want %d", total, len(text))
	}

	for c := 0; c < 256; c++ {
		prev := 0
		for i := 0; i <= len(text); i++ {
			r := m.Rank(byte(c), i)
			if r < prev {
				t.Fatalf("Rank(%d, %d) = %d is less than Rank(%d, %d) = %d", c, i, r, c, i-1, prev)
			}
			prev = r
		}
	}
}
