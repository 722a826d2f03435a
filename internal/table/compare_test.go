package table

import (
	"math"
	"testing"
)

func TestCompareString(t *testing.T) {
	cases := []struct {
		a, b any
		want int
	}{
		{"a10", "a2", 1},
		{"a2", "a10", -1},
		{"a", "B", -1},
		{"A", "a", -1},
		{"a", "A", 1},
		{"same", "same", 0},
		{10, "9", 1},
		{nil, "", 0},
	}
	for _, c := range cases {
		got := sign(CompareString(c.a, c.b))
		if got != c.want {
			t.Fatalf("CompareString(%v, %v) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestCompareStringAntisymmetric(t *testing.T) {
	words := []string{"main", "Main", "setup", "loop10", "loop9", "ISR", "_start", "z", ""}
	for _, a := range words {
		for _, b := range words {
			if sign(CompareString(a, b)) != -sign(CompareString(b, a)) {
				t.Fatalf("CompareString not antisymmetric for %q, %q", a, b)
			}
		}
	}
}

func TestCompareNumberAndBool(t *testing.T) {
	if CompareNumber(1, 2) >= 0 || CompareNumber(2.5, 1.0) <= 0 || CompareNumber(uint64(7), 7) != 0 {
		t.Fatalf("unexpected CompareNumber ordering")
	}
	if CompareNumber(math.NaN(), 1) != 0 {
		t.Fatalf("NaN should compare equal")
	}
	if CompareBool(false, true) >= 0 || CompareBool(true, false) <= 0 || CompareBool(true, true) != 0 {
		t.Fatalf("unexpected CompareBool ordering")
	}
}

func TestMultiSort(t *testing.T) {
	type pair struct{ a, b int }
	first := func(x, y pair) int { return CompareNumber(x.a, y.a) }
	second := func(x, y pair) int { return CompareNumber(x.b, y.b) }
	cmp := MultiSort(first, second)

	if got := cmp(pair{1, 9}, pair{2, 0}); got != first(pair{1, 9}, pair{2, 0}) {
		t.Fatalf("first comparator should decide, got %d", got)
	}
	if got := cmp(pair{1, 9}, pair{1, 0}); got != second(pair{1, 9}, pair{1, 0}) {
		t.Fatalf("second comparator should break ties, got %d", got)
	}
	if got := cmp(pair{1, 1}, pair{1, 1}); got != 0 {
		t.Fatalf("expected 0 for equal pairs, got %d", got)
	}
	if got := MultiSort[pair]()(pair{1, 1}, pair{2, 2}); got != 0 {
		t.Fatalf("empty MultiSort should report equal, got %d", got)
	}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
