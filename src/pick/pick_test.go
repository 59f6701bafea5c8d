package pick

import "testing"

func TestAt_WithinRadiusPlusTolerance(t *testing.T) {
	targets := []Target{{ID: 1, X: 100, Y: 100, Radius: 10}}
	if id, ok := At(targets, 100, 114, Tolerance); !ok || id != 1 {
		t.Fatalf("point inside radius+tolerance missed: id=%d ok=%v", id, ok)
	}
	if _, ok := At(targets, 100, 116, Tolerance); ok {
		t.Fatalf("point outside radius+tolerance should miss")
	}
}

func TestAt_LastDrawnWinsOnOverlap(t *testing.T) {
	// Two coincident targets; the later (top-most drawn) must win.
	targets := []Target{
		{ID: 1, X: 50, Y: 50, Radius: 12},
		{ID: 2, X: 52, Y: 50, Radius: 12},
	}
	id, ok := At(targets, 51, 50, Tolerance)
	if !ok || id != 2 {
		t.Fatalf("overlap pick: got id=%d ok=%v, want top-most id=2", id, ok)
	}
}

func TestAt_Deterministic(t *testing.T) {
	targets := []Target{
		{ID: 7, X: 10, Y: 10, Radius: 8},
		{ID: 8, X: 14, Y: 10, Radius: 8},
	}
	first, ok := At(targets, 12, 10, Tolerance)
	if !ok {
		t.Fatalf("expected a hit")
	}
	for i := 0; i < 100; i++ {
		again, ok := At(targets, 12, 10, Tolerance)
		if !ok || again != first {
			t.Fatalf("hit-test not deterministic: %d then %d", first, again)
		}
	}
}

func TestAt_EmptySet(t *testing.T) {
	if _, ok := At(nil, 0, 0, Tolerance); ok {
		t.Fatalf("empty target set must miss")
	}
}

func TestNearest_PicksClosest(t *testing.T) {
	targets := []Target{
		{ID: 1, X: 0, Y: 0, Radius: 10},
		{ID: 2, X: 8, Y: 0, Radius: 10},
	}
	if id, ok := Nearest(targets, 6, 0, Tolerance); !ok || id != 2 {
		t.Fatalf("nearest pick: got id=%d ok=%v want 2", id, ok)
	}
	if id, ok := Nearest(targets, 2, 0, Tolerance); !ok || id != 1 {
		t.Fatalf("nearest pick: got id=%d ok=%v want 1", id, ok)
	}
}
