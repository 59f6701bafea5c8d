package forcesim

import (
	"math"
	"sync"
	"testing"
	"time"
)

func chainSystem(t *testing.T) *System {
	t.Helper()
	s := New(Params{})
	s.SeedCircle([]int{1, 2, 3, 4, 5}, 200)
	for i := 1; i < 5; i++ {
		s.Link(i, i+1, 5)
	}
	if len(s.Springs) != 4 {
		t.Fatalf("expected 4 springs, got %d", len(s.Springs))
	}
	return s
}

func TestStep_EmptySystemNoOp(t *testing.T) {
	s := New(Params{})
	s.Step() // must not panic or allocate state
	if len(s.Bodies) != 0 {
		t.Fatalf("empty system grew bodies")
	}
}

func TestStep_SettlesOverTime(t *testing.T) {
	s := chainSystem(t)
	// Let the layout run in; compare early vs late energy windows.
	for i := 0; i < 50; i++ {
		s.Step()
	}
	early := s.KineticEnergy()
	for i := 0; i < 450; i++ {
		s.Step()
	}
	late := s.KineticEnergy()
	if math.IsNaN(late) || math.IsInf(late, 0) {
		t.Fatalf("energy diverged to %v", late)
	}
	if late > early {
		t.Fatalf("system not settling: early=%v late=%v", early, late)
	}
	if late > 1.0 {
		t.Fatalf("residual energy too high after 500 ticks: %v", late)
	}
}

func TestStep_CoincidentNodesNoNaN(t *testing.T) {
	s := New(Params{})
	s.Bodies = []Body{{ID: 1}, {ID: 2}} // both exactly at origin
	for i := 0; i < 10; i++ {
		s.Step()
	}
	for _, b := range s.Bodies {
		if math.IsNaN(b.X) || math.IsNaN(b.Y) || math.IsNaN(b.VX) || math.IsNaN(b.VY) {
			t.Fatalf("NaN leaked from coincident pair: %+v", b)
		}
	}
	// The distance floor must have pushed them apart.
	dx := s.Bodies[0].X - s.Bodies[1].X
	dy := s.Bodies[0].Y - s.Bodies[1].Y
	if dx*dx+dy*dy == 0 {
		t.Fatalf("coincident nodes never separated")
	}
}

func TestPin_OverridesIntegration(t *testing.T) {
	s := chainSystem(t)
	s.Pin(3, 42, -17)
	for i := 0; i < 100; i++ {
		s.Step()
	}
	b := s.Find(3)
	if b == nil {
		t.Fatalf("body 3 missing")
	}
	if b.X != 42 || b.Y != -17 {
		t.Fatalf("pinned body moved to (%v,%v)", b.X, b.Y)
	}
	if b.VX != 0 || b.VY != 0 {
		t.Fatalf("pinned body accumulated velocity (%v,%v)", b.VX, b.VY)
	}
	s.Unpin(3)
	if b.VX != 0 || b.VY != 0 {
		t.Fatalf("released body must start with zero velocity")
	}
	// Free again: forces move it off the pin position eventually.
	for i := 0; i < 20; i++ {
		s.Step()
	}
	if b.X == 42 && b.Y == -17 {
		t.Fatalf("released body never re-entered simulation")
	}
}

func TestPinUnknownIDIsIgnored(t *testing.T) {
	s := chainSystem(t)
	s.Pin(999, 0, 0) // stale drag against a removed entity
	s.Unpin(999)
}

func TestLink_IgnoresUnknownAndSelf(t *testing.T) {
	s := New(Params{})
	s.SeedCircle([]int{1, 2}, 100)
	before := len(s.Springs)
	s.Link(1, 99, 5)
	s.Link(2, 2, 5)
	if len(s.Springs) != before {
		t.Fatalf("invalid links were accepted")
	}
}

func TestReseed_KeepsSurvivorsSeedsNewcomers(t *testing.T) {
	s := chainSystem(t)
	for i := 0; i < 100; i++ {
		s.Step()
	}
	settled := *s.Find(3)
	s.Reseed([]int{1, 3, 6}, 200)
	if len(s.Bodies) != 3 {
		t.Fatalf("expected 3 bodies after reseed, got %d", len(s.Bodies))
	}
	b := s.Find(3)
	if b == nil || b.X != settled.X || b.Y != settled.Y {
		t.Fatalf("surviving body lost its settled position: %+v", b)
	}
	if s.Find(2) != nil || s.Find(6) == nil {
		t.Fatalf("reseed did not apply the new id set")
	}
}

func TestSeedCircle_DistinctPositions(t *testing.T) {
	s := New(Params{})
	s.SeedCircle([]int{1, 2, 3}, 100)
	seen := map[[2]float64]bool{}
	for _, b := range s.Bodies {
		k := [2]float64{math.Round(b.X), math.Round(b.Y)}
		if seen[k] {
			t.Fatalf("seed positions collide at %v", k)
		}
		seen[k] = true
	}
}

func TestTicker_StopIsSynchronous(t *testing.T) {
	// stop must not return while a tick is pending or in flight; repeat
	// the start/stop cycle to exercise the stop-vs-tick race.
	for i := 0; i < 50; i++ {
		var mu sync.Mutex
		count := 0
		stop := Ticker(time.Millisecond, func() {
			mu.Lock()
			count++
			mu.Unlock()
		})
		time.Sleep(3 * time.Millisecond)
		stop()
		mu.Lock()
		at := count
		mu.Unlock()
		time.Sleep(3 * time.Millisecond)
		mu.Lock()
		after := count
		mu.Unlock()
		if after != at {
			t.Fatalf("iteration %d: tick fired after stop returned: %d -> %d", i, at, after)
		}
	}
}

func TestTicker_StopsAndIsIdempotent(t *testing.T) {
	var mu sync.Mutex
	count := 0
	stop := Ticker(time.Millisecond, func() {
		mu.Lock()
		count++
		mu.Unlock()
	})
	time.Sleep(20 * time.Millisecond)
	stop()
	stop() // second call must be harmless
	mu.Lock()
	at := count
	mu.Unlock()
	if at == 0 {
		t.Fatalf("ticker never fired")
	}
	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	after := count
	mu.Unlock()
	if after != at {
		t.Fatalf("ticker kept firing after stop: %d -> %d", at, after)
	}
}
