// Package forcesim implements the force-directed layout for the
// relationship graph: pairwise repulsion, spring attraction along edges,
// a gentle centering pull and damped Euler integration. The simulation
// is a perpetual settling process driven by a fixed-interval runner; it
// never detects convergence and never terminates on its own.
package forcesim

import (
	"math"
	"sync"
	"time"
)

// Params are the simulation tunables. Zero values are replaced by the
// defaults below, so a zero Params is usable.
type Params struct {
	Repulsion  float64 // inverse-square push-apart strength
	SpringK    float64 // per-unit-strength spring stiffness
	RestLength float64 // spring rest length in logical units
	CenterPull float64 // fraction of distance-to-origin applied per tick
	Damping    float64 // multiplicative velocity decay, must be < 1
}

// Defaults grounded on the constants the layout settles well with for
// tens to low hundreds of nodes.
const (
	DefaultRepulsion  = 2000.0
	DefaultSpringK    = 0.005
	DefaultRestLength = 150.0
	DefaultCenterPull = 0.01
	DefaultDamping    = 0.8

	// distFloor guards zero-distance pairs against NaN propagation.
	distFloor = 1.0
)

func (p Params) withDefaults() Params {
	if p.Repulsion <= 0 {
		p.Repulsion = DefaultRepulsion
	}
	if p.SpringK <= 0 {
		p.SpringK = DefaultSpringK
	}
	if p.RestLength <= 0 {
		p.RestLength = DefaultRestLength
	}
	if p.CenterPull <= 0 {
		p.CenterPull = DefaultCenterPull
	}
	if p.Damping <= 0 || p.Damping >= 1 {
		p.Damping = DefaultDamping
	}
	return p
}

// Body is one simulated node. While Pinned is set (user drag) the body
// takes its pin position verbatim, skips force integration and keeps
// zero velocity so releasing it does not fling.
type Body struct {
	ID     int
	X, Y   float64
	VX, VY float64

	Pinned     bool
	PinX, PinY float64
}

// Spring couples two bodies by index into the body slice. Stiffness
// scales with the relationship strength that produced it.
type Spring struct {
	A, B      int
	Stiffness float64
}

// System owns the mutable simulation state for one graph view.
type System struct {
	Bodies  []Body
	Springs []Spring
	params  Params
}

// New builds a system with the given params (zero fields defaulted).
func New(p Params) *System {
	return &System{params: p.withDefaults()}
}

// SeedCircle places n bodies with the given ids evenly on a circle so
// the first ticks have distinct positions to work from.
func (s *System) SeedCircle(ids []int, radius float64) {
	n := len(ids)
	s.Bodies = make([]Body, n)
	for i, id := range ids {
		angle := 2 * math.Pi * float64(i) / float64(max(n, 1))
		s.Bodies[i] = Body{
			ID: id,
			X:  radius * math.Cos(angle),
			Y:  radius * math.Sin(angle),
		}
	}
}

// Reseed replaces the body set with the given ids, keeping position,
// velocity and pin state for ids that already exist so a data refresh
// does not discard a settled layout. New ids are placed on the circle.
func (s *System) Reseed(ids []int, radius float64) {
	prev := make(map[int]Body, len(s.Bodies))
	for _, b := range s.Bodies {
		prev[b.ID] = b
	}
	n := len(ids)
	bodies := make([]Body, 0, n)
	for i, id := range ids {
		if b, ok := prev[id]; ok {
			bodies = append(bodies, b)
			continue
		}
		angle := 2 * math.Pi * float64(i) / float64(max(n, 1))
		bodies = append(bodies, Body{
			ID: id,
			X:  radius * math.Cos(angle),
			Y:  radius * math.Sin(angle),
		})
	}
	s.Bodies = bodies
}

// Link appends a spring between the bodies holding ids a and b.
// Unknown ids are ignored. strength is the 0-10 relationship scalar.
func (s *System) Link(a, b int, strength float64) {
	ia, ib := -1, -1
	for i := range s.Bodies {
		switch s.Bodies[i].ID {
		case a:
			ia = i
		case b:
			ib = i
		}
	}
	if ia < 0 || ib < 0 || ia == ib {
		return
	}
	if strength <= 0 {
		strength = 1
	}
	s.Springs = append(s.Springs, Spring{A: ia, B: ib, Stiffness: s.params.SpringK * strength})
}

// Find returns a pointer to the body with the given id, or nil.
func (s *System) Find(id int) *Body {
	for i := range s.Bodies {
		if s.Bodies[i].ID == id {
			return &s.Bodies[i]
		}
	}
	return nil
}

// Pin fixes the body with the given id at (x, y) and zeroes its
// velocity. Missing ids are ignored (stale drag tolerance).
func (s *System) Pin(id int, x, y float64) {
	if b := s.Find(id); b != nil {
		b.Pinned = true
		b.PinX, b.PinY = x, y
		b.VX, b.VY = 0, 0
	}
}

// Unpin releases the body back into free simulation with zero velocity.
func (s *System) Unpin(id int) {
	if b := s.Find(id); b != nil {
		b.Pinned = false
		b.VX, b.VY = 0, 0
	}
}

// Step advances the simulation by one tick. An empty system is a no-op.
func (s *System) Step() {
	n := len(s.Bodies)
	if n == 0 {
		return
	}
	p := s.params

	fx := make([]float64, n)
	fy := make([]float64, n)

	// Pairwise repulsion, inverse proportional to squared distance.
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := s.Bodies[i].X - s.Bodies[j].X
			dy := s.Bodies[i].Y - s.Bodies[j].Y
			d2 := dx*dx + dy*dy
			if d2 < distFloor {
				d2 = distFloor
				// Coincident pair: push along x so they separate.
				if dx == 0 && dy == 0 {
					dx = distFloor
				}
			}
			d := math.Sqrt(d2)
			f := p.Repulsion / d2
			fx[i] += f * dx / d
			fy[i] += f * dy / d
			fx[j] -= f * dx / d
			fy[j] -= f * dy / d
		}
	}

	// Spring attraction toward the rest length.
	for _, sp := range s.Springs {
		a, b := &s.Bodies[sp.A], &s.Bodies[sp.B]
		dx := b.X - a.X
		dy := b.Y - a.Y
		d := math.Hypot(dx, dy)
		if d < distFloor {
			d = distFloor
		}
		f := sp.Stiffness * (d - p.RestLength)
		fx[sp.A] += f * dx / d
		fy[sp.A] += f * dy / d
		fx[sp.B] -= f * dx / d
		fy[sp.B] -= f * dy / d
	}

	// Centering pull plus damped integration.
	for i := range s.Bodies {
		b := &s.Bodies[i]
		if b.Pinned {
			b.X, b.Y = b.PinX, b.PinY
			b.VX, b.VY = 0, 0
			continue
		}
		fx[i] -= b.X * p.CenterPull
		fy[i] -= b.Y * p.CenterPull
		b.VX = (b.VX + fx[i]) * p.Damping
		b.VY = (b.VY + fy[i]) * p.Damping
		b.X += b.VX
		b.Y += b.VY
	}
}

// KineticEnergy is the sum of squared velocities, used by callers and
// tests to observe settling.
func (s *System) KineticEnergy() float64 {
	var e float64
	for i := range s.Bodies {
		e += s.Bodies[i].VX*s.Bodies[i].VX + s.Bodies[i].VY*s.Bodies[i].VY
	}
	return e
}

// Bounds returns the bounding box of all body positions. ok is false
// for an empty system.
func (s *System) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	if len(s.Bodies) == 0 {
		return 0, 0, 0, 0, false
	}
	minX, maxX = s.Bodies[0].X, s.Bodies[0].X
	minY, maxY = s.Bodies[0].Y, s.Bodies[0].Y
	for _, b := range s.Bodies[1:] {
		minX = math.Min(minX, b.X)
		maxX = math.Max(maxX, b.X)
		minY = math.Min(minY, b.Y)
		maxY = math.Max(maxY, b.Y)
	}
	return minX, minY, maxX, maxY, true
}

// DefaultTickInterval is the runner period.
const DefaultTickInterval = 50 * time.Millisecond

// Ticker invokes tick on a fixed interval until the returned stop
// function is called. The system itself is not touched here: views call
// Step from tick after marshalling onto their UI thread, so all mutable
// simulation state stays owned by one thread. Callers must invoke stop
// on teardown or the ticker goroutine leaks against a dead canvas.
// stop blocks until the goroutine has exited, so no tick runs after it
// returns; it is safe to call more than once.
func Ticker(interval time.Duration, tick func()) (stop func()) {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				// The select may commit to t.C in the same instant stop
				// closes done; re-check so no tick fires after stop.
				select {
				case <-done:
					return
				default:
				}
				tick()
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
		<-stopped
	}
}
