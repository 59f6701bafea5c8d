// Package interact is the pointer state machine shared by the timeline
// and graph views. Exactly one state is active at a time; the state is a
// sealed tagged variant rather than a set of boolean flags, so dragging
// and panning cannot be active simultaneously by construction.
package interact

import "math"

// ClickThreshold is the pointer travel in pixels below which a press and
// release counts as a click (activate) instead of a drag.
const ClickThreshold = 4.0

// State is the sealed interaction state variant.
type State interface{ isState() }

// Idle: no button held, pointer not over an entity.
type Idle struct{}

// Hovering: pointer resting over an entity; drives the tooltip.
type Hovering struct{ ID int }

// Dragging: a press began over an entity. Draggable is false when the
// entity only supports activation (e.g. a non-mutable timeline event);
// such a press can still end in a click.
type Dragging struct {
	ID             int
	Draggable      bool
	GrabDX, GrabDY float64 // pointer offset from the entity's screen position at grab
	StartX, StartY float64
	Moved          bool // pointer travelled beyond ClickThreshold
}

// Panning: a press began on empty canvas (or with the secondary
// button); moves translate the viewport.
type Panning struct{ LastX, LastY float64 }

func (Idle) isState()     {}
func (Hovering) isState() {}
func (Dragging) isState() {}
func (Panning) isState()  {}

// Hooks are the collaborator callbacks the machine dispatches into.
// Nil hooks are skipped.
type Hooks struct {
	// HitTest resolves a screen point to the entity under it.
	HitTest func(x, y float64) (id int, ok bool)
	// Draggable reports whether the entity may be repositioned.
	Draggable func(id int) bool
	// EntityPos returns the entity's current screen position; ok=false
	// marks a stale entity (removed by an external refresh).
	EntityPos func(id int) (x, y float64, ok bool)

	// DragMove receives the entity's new screen position (pointer minus
	// grab offset) on every move while dragging a draggable entity.
	DragMove func(id int, x, y float64)
	// DragCommit fires once on release of a drag that moved. The view
	// decides whether the logical position actually changed.
	DragCommit func(id int, x, y float64)
	// DragAbort fires when a drag ends without a commit (stale entity).
	DragAbort func(id int)
	// Activate fires on a click that never became a drag.
	Activate func(id int)
	// Pan receives screen-space deltas while panning.
	Pan func(dx, dy float64)
	// HoverChange fires when the hovered entity changes; hovering=false
	// means the pointer left the previous entity.
	HoverChange func(id int, hovering bool)
	// Zoom receives wheel input (anchor point plus wheel delta). Never
	// called mid-drag.
	Zoom func(x, y, dy float64)
}

// Machine owns the interaction state for one view instance.
type Machine struct {
	state State
	hooks Hooks
}

// New returns a machine in the idle state.
func New(h Hooks) *Machine {
	return &Machine{state: Idle{}, hooks: h}
}

// State returns the current state variant.
func (m *Machine) State() State { return m.state }

// DraggingID reports the entity being dragged, if any.
func (m *Machine) DraggingID() (int, bool) {
	if d, ok := m.state.(Dragging); ok {
		return d.ID, true
	}
	return 0, false
}

// HoveringID reports the entity being hovered, if any.
func (m *Machine) HoveringID() (int, bool) {
	if h, ok := m.state.(Hovering); ok {
		return h.ID, true
	}
	return 0, false
}

// PointerDown begins a drag over an entity or a pan elsewhere. The
// secondary button always pans, matching the modifier escape hatch for
// panning over a crowded canvas.
func (m *Machine) PointerDown(x, y float64, secondary bool) {
	if !secondary && m.hooks.HitTest != nil {
		if id, ok := m.hooks.HitTest(x, y); ok {
			ex, ey := x, y
			if m.hooks.EntityPos != nil {
				px, py, alive := m.hooks.EntityPos(id)
				if !alive {
					m.toIdle()
					return
				}
				ex, ey = px, py
			}
			draggable := m.hooks.Draggable != nil && m.hooks.Draggable(id)
			m.clearHover()
			m.state = Dragging{
				ID:        id,
				Draggable: draggable,
				GrabDX:    x - ex,
				GrabDY:    y - ey,
				StartX:    x,
				StartY:    y,
			}
			return
		}
	}
	m.clearHover()
	m.state = Panning{LastX: x, LastY: y}
}

// PointerMove advances a drag or pan, or updates hover when no button
// is held.
func (m *Machine) PointerMove(x, y float64) {
	switch st := m.state.(type) {
	case Dragging:
		if !st.Moved && math.Hypot(x-st.StartX, y-st.StartY) > ClickThreshold {
			st.Moved = true
		}
		// Stale drag: the entity may have vanished mid-drag.
		if m.hooks.EntityPos != nil {
			if _, _, alive := m.hooks.EntityPos(st.ID); !alive {
				if m.hooks.DragAbort != nil {
					m.hooks.DragAbort(st.ID)
				}
				m.state = Idle{}
				return
			}
		}
		m.state = st
		if st.Moved && st.Draggable && m.hooks.DragMove != nil {
			m.hooks.DragMove(st.ID, x-st.GrabDX, y-st.GrabDY)
		}
	case Panning:
		if m.hooks.Pan != nil {
			m.hooks.Pan(x-st.LastX, y-st.LastY)
		}
		m.state = Panning{LastX: x, LastY: y}
	default:
		m.hover(x, y)
	}
}

// PointerUp completes the active gesture: click, drag commit, or end of
// pan. The machine always lands back in idle (or hovering, if the
// pointer is still over an entity).
func (m *Machine) PointerUp(x, y float64) {
	switch st := m.state.(type) {
	case Dragging:
		m.state = Idle{}
		alive := true
		if m.hooks.EntityPos != nil {
			_, _, alive = m.hooks.EntityPos(st.ID)
		}
		switch {
		case !alive:
			if m.hooks.DragAbort != nil {
				m.hooks.DragAbort(st.ID)
			}
		case !st.Moved:
			if m.hooks.Activate != nil {
				m.hooks.Activate(st.ID)
			}
		case st.Draggable:
			if m.hooks.DragCommit != nil {
				m.hooks.DragCommit(st.ID, x-st.GrabDX, y-st.GrabDY)
			}
		}
		m.hover(x, y)
	case Panning:
		m.state = Idle{}
		m.hover(x, y)
	}
}

// Wheel forwards zoom input unless a drag is active.
func (m *Machine) Wheel(x, y, dy float64) {
	if _, dragging := m.state.(Dragging); dragging {
		return
	}
	if m.hooks.Zoom != nil {
		m.hooks.Zoom(x, y, dy)
	}
}

// PointerOut clears hover when the pointer leaves the canvas.
func (m *Machine) PointerOut() {
	if _, ok := m.state.(Hovering); ok {
		m.toIdle()
	}
}

// EntityGone tells the machine an entity was removed by an external
// refresh. A drag or hover referencing it falls back to idle safely.
func (m *Machine) EntityGone(id int) {
	switch st := m.state.(type) {
	case Dragging:
		if st.ID == id {
			if m.hooks.DragAbort != nil {
				m.hooks.DragAbort(st.ID)
			}
			m.state = Idle{}
		}
	case Hovering:
		if st.ID == id {
			m.toIdle()
		}
	}
}

// hover re-runs the hit test and toggles idle/hovering accordingly.
func (m *Machine) hover(x, y float64) {
	if m.hooks.HitTest == nil {
		return
	}
	id, ok := m.hooks.HitTest(x, y)
	cur, hovering := m.HoveringID()
	switch {
	case ok && (!hovering || cur != id):
		if hovering && m.hooks.HoverChange != nil {
			m.hooks.HoverChange(cur, false)
		}
		m.state = Hovering{ID: id}
		if m.hooks.HoverChange != nil {
			m.hooks.HoverChange(id, true)
		}
	case !ok && hovering:
		m.toIdle()
	}
}

func (m *Machine) clearHover() {
	if cur, ok := m.HoveringID(); ok && m.hooks.HoverChange != nil {
		m.hooks.HoverChange(cur, false)
	}
}

func (m *Machine) toIdle() {
	m.clearHover()
	m.state = Idle{}
}
