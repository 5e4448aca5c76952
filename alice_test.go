package alice

import (
	"sort"
	"testing"
)

func build(t *testing.T, text string, step int) *Index {
	t.Helper()
	ix, err := Build([]byte(text), step)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return ix
}

func TestCountMississippi(t *testing.T) {
	ix := build(t, "mississippi", 4)

	if got := ix.Count([]byte("issi")); got != 2 {
		t.Errorf("Count(issi) = %d, want 2", got)
	}
	if got := ix.Count([]byte("mississippi")); got != 1 {
		t.Errorf("Count(mississippi) = %d, want 1", got)
	}
	if got := ix.Count([]byte("xyz")); got != 0 {
		t.Errorf("Count(xyz) = %d, want 0", got)
	}
}

func TestCountSingleChar(t *testing.T) {
	ix := build(t, "abracadabra", 4)

	cases := map[string]int{"a": 5, "b": 2, "r": 2, "c": 1, "d": 1, "z": 0}
	for pat, want := range cases {
		if got := ix.Count([]byte(pat)); got != want {
			t.Errorf("Count(%q) = %d, want %d", pat, got, want)
		}
	}
}

func TestContains(t *testing.T) {
	ix := build(t, "hello world", 4)

	for _, pat := range []string{"hello", "world", "o w"} {
		if !ix.Contains([]byte(pat)) {
			t.Errorf("Contains(%q) = false, want true", pat)
		}
	}
	if ix.Contains([]byte("xyz")) {
		t.Errorf("Contains(xyz) = true, want false")
	}
}

func TestLocateIterator(t *testing.T) {
	ix := build(t, "abracadabra", 1)

	var positions []int
	it := ix.Locate([]byte("abra"))
	for it.HasNext() {
		positions = append(positions, it.Next())
	}
	sort.Ints(positions)

	want := []int{0, 7}
	if len(positions) != len(want) {
		t.Fatalf("positions = %v, want %v", positions, want)
	}
	for i := range want {
		if positions[i] != want[i] {
			t.Fatalf("positions = %v, want %v", positions, want)
		}
	}
}

func TestLocateAll(t *testing.T) {
	ix := build(t, "abracadabra", 1)

	positions := ix.LocateAll([]byte("abra"))
	sort.Ints(positions)

	if len(positions) != 2 || positions[0] != 0 || positions[1] != 7 {
		t.Fatalf("LocateAll(abra) = %v, want [0 7]", positions)
	}
}

func TestCountAndLocateNonPrefixSubstring(t *testing.T) {
	ix := build(t, "abracadabra", 1)

	if got := ix.Count([]byte("cadabra")); got != 1 {
		t.Fatalf("Count(cadabra) = %d, want 1", got)
	}
	positions := ix.LocateAll([]byte("cadabra"))
	if len(positions) != 1 || positions[0] != 4 {
		t.Fatalf("LocateAll(cadabra) = %v, want [4]", positions)
	}
}

func TestCountAndLocateOverlappingMatches(t *testing.T) {
	ix := build(t, "aaaaa", 1)

	if got := ix.Count([]byte("aa")); got != 4 {
		t.Fatalf("Count(aa) = %d, want 4", got)
	}
	positions := ix.LocateAll([]byte("aa"))
	sort.Ints(positions)

	want := []int{0, 1, 2, 3}
	if len(positions) != len(want) {
		t.Fatalf("LocateAll(aa) = %v, want %v", positions, want)
	}
	for i := range want {
		if positions[i] != want[i] {
			t.Fatalf("LocateAll(aa) = %v, want %v", positions, want)
		}
	}
}

func TestLocateIteratorExactSize(t *testing.T) {
	ix := build(t, "abracadabra", 1)

	it := ix.Locate([]byte("a"))
	if got := it.Len(); got != 5 {
		t.Fatalf("Len() = %d, want 5", got)
	}
	it.Next()
	if got := it.Len(); got != 4 {
		t.Fatalf("Len() after one Next() = %d, want 4", got)
	}
}

func TestEmptyPatternSemantics(t *testing.T) {
	ix := build(t, "abracadabra", 1)

	if got := ix.Count(nil); got != ix.TextLen() {
		t.Errorf("Count(nil) = %d, want TextLen() = %d", got, ix.TextLen())
	}
	lo, hi := ix.SearchRange(nil)
	if lo != 0 || hi != 0 {
		t.Errorf("SearchRange(nil) = (%d, %d), want (0, 0)", lo, hi)
	}
	if got := ix.LocateAll(nil); len(got) != 0 {
		t.Errorf("LocateAll(nil) = %v, want empty", got)
	}
	if !ix.Contains(nil) {
		t.Errorf("Contains(nil) = false, want true")
	}
}

func TestInvalidStep(t *testing.T) {
	if _, err := Build([]byte("abc"), 0); err == nil {
		t.Fatalf("Build with step=0 should error")
	}
	if _, err := Build([]byte("abc"), -1); err == nil {
		t.Fatalf("Build with step=-1 should error")
	}
}

func TestCompressionRatio(t *testing.T) {
	var text []byte
	for i := 0; i < 500; i++ {
		text = append(text, []byte("the quick brown fox jumps over the lazy dog. ")...)
	}
	ix := build(t, string(text), 32)

	ratio := ix.CompressionRatio()
	if ratio <= 0 || ratio >= 15 {
		t.Errorf("CompressionRatio() = %f, want in (0, 15)", ratio)
	}
}

func TestLargeRepetitiveText(t *testing.T) {
	var text []byte
	for i := 0; i < 100; i++ {
		text = append(text, []byte("the quick brown fox jumps over the lazy dog ")...)
	}
	ix := build(t, string(text), 8)

	if got := ix.Count([]byte("the")); got != 200 {
		t.Errorf("Count(the) = %d, want 200", got)
	}
	if got := ix.Count([]byte("fox")); got != 100 {
		t.Errorf("Count(fox) = %d, want 100", got)
	}
	if got := ix.Count([]byte("xyz")); got != 0 {
		t.Errorf("Count(xyz) = %d, want 0", got)
	}
}

func TestLocateMatchesNaiveScan(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog and then jumps again"
	ix := build(t, text, 3)

	for _, pat := range []string{"jumps", "the", "o", "xyz", "dog and"} {
		want := naiveMatches(text, pat)
		got := ix.LocateAll([]byte(pat))
		sort.Ints(got)
		sort.Ints(want)

		if len(got) != len(want) {
			t.Fatalf("pattern %q: LocateAll = %v, naive = %v", pat, got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("pattern %q: LocateAll = %v, naive = %v", pat, got, want)
			}
		}
		if ix.Count([]byte(pat)) != len(want) {
			t.Fatalf("pattern %q: Count = %d, naive len = %d", pat, ix.Count([]byte(pat)), len(want))
		}
	}
}

func naiveMatches(text, pattern string) []int {
	if pattern == "" {
		return nil
	}
	var out []int
	for i := 0; i+len(pattern) <= len(text); i++ {
		if text[i:i+len(pattern)] == pattern {
			out = append(out, i)
		}
	}
	return out
}
