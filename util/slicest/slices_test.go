package slicest

import (
	"strconv"
	"testing"
)

func TestMap(t *testing.T) {
	got := Map([]int{1, 2, 3}, strconv.Itoa)
	if len(got) != 3 || got[0] != "1" || got[2] != "3" {
		t.Fatalf("unexpected result: %v", got)
	}
	if got := Map([]int(nil), strconv.Itoa); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestFilter(t *testing.T) {
	got := Filter([]int{1, 2, 3, 4}, func(i int) bool { return i%2 == 0 })
	if len(got) != 2 || got[0] != 2 || got[1] != 4 {
		t.Fatalf("unexpected result: %v", got)
	}
}

func TestToMap(t *testing.T) {
	got := ToMap([]string{"a", "bb", "cc"}, func(s string) (int, string) { return len(s), s })
	if len(got) != 2 || got[1] != "a" || got[2] != "cc" {
		t.Fatalf("unexpected result: %v", got)
	}
}
