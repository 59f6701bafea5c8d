// Package pick resolves a screen point to the entity under it. The
// caller projects its visible, filter-passing entities to screen space
// in draw order and hands them over as Targets; pick stays agnostic of
// which view (timeline or graph) produced them.
package pick

import "math"

// Tolerance is the slack added around every target radius so pointer
// precision does not have to be pixel perfect.
const Tolerance = 5.0

// Target is one candidate under the pointer: an entity id with its
// current screen position and marker radius.
type Target struct {
	ID     int
	X, Y   float64
	Radius float64
}

// At returns the id of the target under (x, y), or ok=false when none
// is within radius+tolerance. Targets must be supplied in draw order;
// overlaps resolve to the last-drawn (top-most) match.
func At(targets []Target, x, y, tolerance float64) (id int, ok bool) {
	for i := len(targets) - 1; i >= 0; i-- {
		t := targets[i]
		dx := x - t.X
		dy := y - t.Y
		r := t.Radius + tolerance
		if dx*dx+dy*dy <= r*r {
			return t.ID, true
		}
	}
	return 0, false
}

// Nearest returns the target closest to (x, y) among those within
// radius+tolerance. Used for tooltip snapping where the top-most rule
// would feel jumpy between near-equal neighbors.
func Nearest(targets []Target, x, y, tolerance float64) (id int, ok bool) {
	best := math.MaxFloat64
	for _, t := range targets {
		dx := x - t.X
		dy := y - t.Y
		d := math.Hypot(dx, dy)
		if d <= t.Radius+tolerance && d < best {
			best = d
			id = t.ID
			ok = true
		}
	}
	return id, ok
}
