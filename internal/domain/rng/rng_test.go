package rng

import (
	"testing"

	"scenariogen/internal/domain/world"
)

func TestSameSeedSameStream(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 50; i++ {
		if x, y := a.IntRange(0, 1000), b.IntRange(0, 1000); x != y {
			t.Fatalf("streams diverged at %d: %d vs %d", i, x, y)
		}
	}
}

func TestIntRangeIsInclusive(t *testing.T) {
	r := New(7)
	seenLo, seenHi := false, false
	for i := 0; i < 500; i++ {
		v := r.IntRange(3, 5)
		if v < 3 || v > 5 {
			t.Fatalf("value %d outside [3,5]", v)
		}
		seenLo = seenLo || v == 3
		seenHi = seenHi || v == 5
	}
	if !seenLo || !seenHi {
		t.Fatalf("expected both bounds to be drawn")
	}
}

func TestPickStaysInRange(t *testing.T) {
	r := New(1)
	v := world.NewRandomValue(10, 12)
	for i := 0; i < 100; i++ {
		if got := Pick(r, v); got < 10 || got > 12 {
			t.Fatalf("pick %d outside range", got)
		}
	}
	if Pick(r, world.Fixed(4)) != 4 {
		t.Fatalf("expected fixed pick")
	}
}

func TestChanceBounds(t *testing.T) {
	r := New(3)
	for i := 0; i < 100; i++ {
		if r.Chance(0) {
			t.Fatalf("chance 0 must never fire")
		}
		if !r.Chance(100) {
			t.Fatalf("chance 100 must always fire")
		}
	}
	if Element[int](r, nil) != 0 {
		t.Fatalf("expected zero value for empty slice")
	}
}
