// Package scene holds the data model shared by the timeline and graph
// views: events, nodes, edges, filters and category styling. The engine
// never creates or deletes entities; collaborators supply them wholesale
// on each refresh and receive edits through callbacks.
package scene

// Event is a timeline entity anchored to an integer chapter and a
// categorical layer (lane). Only Mutable events may be dragged to a new
// chapter; the stored chapter is changed by the external collaborator in
// response to the move callback, never by the engine directly.
type Event struct {
	ID      int
	Chapter int
	Layer   string
	Major   bool
	Color   string // optional hex like "#e74c3c"; empty means layer default
	Label   string
	Tags    []string
	Mutable bool
}

// Node is a graph entity. Position and velocity live in the force
// simulation, not here; the scene carries only identity and styling.
type Node struct {
	ID       int
	Label    string
	Category string
	Major    bool
	Color    string // optional hex; empty means category default
}

// Edge is a directed relationship between two nodes. Strength (0-10)
// controls spring stiffness and rendered line thickness.
type Edge struct {
	Source   int
	Target   int
	Category string
	Strength float64
}

// ConflictBand marks a chapter range highlighted on the timeline, with
// severity in [0,1] controlling the tint intensity.
type ConflictBand struct {
	FromChapter int
	ToChapter   int
	Severity    float64
}

// pairKey identifies an unordered node pair.
type pairKey struct{ lo, hi int }

func keyFor(a, b int) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}

// DedupeEdges returns at most one edge per unordered node pair. When a
// relationship is declared from both endpoints the first declaration
// wins, including its category and strength. Self-edges are dropped.
func DedupeEdges(edges []Edge) []Edge {
	seen := make(map[pairKey]bool, len(edges))
	out := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if e.Source == e.Target {
			continue
		}
		k := keyFor(e.Source, e.Target)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, e)
	}
	return out
}

// Filter selects which entities are visible. A nil or empty Layers map
// means every layer/category is visible. Filtered-out entities are
// excluded from rendering and from hit-testing alike.
type Filter struct {
	Layers    map[string]bool // layer or category name -> visible
	MajorOnly bool
	// Optional chapter restriction (timeline). Zero values disable it.
	ChapterMin int
	ChapterMax int
}

// layerVisible reports whether the named layer passes the filter.
func (f Filter) layerVisible(name string) bool {
	if len(f.Layers) == 0 {
		return true
	}
	return f.Layers[name]
}

// EventVisible reports whether ev passes the filter.
func (f Filter) EventVisible(ev Event) bool {
	if f.MajorOnly && !ev.Major {
		return false
	}
	if !f.layerVisible(ev.Layer) {
		return false
	}
	if f.ChapterMin != 0 || f.ChapterMax != 0 {
		if ev.Chapter < f.ChapterMin || ev.Chapter > f.ChapterMax {
			return false
		}
	}
	return true
}

// NodeVisible reports whether n passes the filter.
func (f Filter) NodeVisible(n Node) bool {
	if f.MajorOnly && !n.Major {
		return false
	}
	return f.layerVisible(n.Category)
}

// EdgeVisible reports whether e passes the filter given the visibility
// of its endpoints. An edge with a hidden endpoint is hidden too.
func (f Filter) EdgeVisible(e Edge, nodes map[int]Node) bool {
	src, okS := nodes[e.Source]
	dst, okT := nodes[e.Target]
	if !okS || !okT {
		return false
	}
	return f.NodeVisible(src) && f.NodeVisible(dst)
}

// ChapterSpan returns the inclusive chapter range covered by events.
// ok is false when events is empty.
func ChapterSpan(events []Event) (min, max int, ok bool) {
	if len(events) == 0 {
		return 0, 0, false
	}
	min, max = events[0].Chapter, events[0].Chapter
	for _, ev := range events[1:] {
		if ev.Chapter < min {
			min = ev.Chapter
		}
		if ev.Chapter > max {
			max = ev.Chapter
		}
	}
	return min, max, true
}

// NodeIndex builds an id -> node lookup.
func NodeIndex(nodes []Node) map[int]Node {
	idx := make(map[int]Node, len(nodes))
	for _, n := range nodes {
		idx[n.ID] = n
	}
	return idx
}
