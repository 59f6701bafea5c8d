package main

import (
	"fmt"
	"image"
	"time"

	"github.com/Marksio90/Narrative-OS-sub001/src/forcesim"
	"github.com/Marksio90/Narrative-OS-sub001/src/interact"
	"github.com/Marksio90/Narrative-OS-sub001/src/pick"
	"github.com/Marksio90/Narrative-OS-sub001/src/render"
	"github.com/Marksio90/Narrative-OS-sub001/src/scene"
	"github.com/Marksio90/Narrative-OS-sub001/src/viewport"
	"github.com/Marksio90/Narrative-OS-sub001/src/vizconfig"
)

// graphCore owns the relationship-graph state for one view instance:
// simulation, viewport transform, filter and interaction machine. Like
// timelineCore it is UI-free; stepping and repainting are marshalled by
// the owning widget.
type graphCore struct {
	cfg    vizconfig.Config
	nodes  []scene.Node
	edges  []scene.Edge
	filter scene.Filter

	sim     *forcesim.System
	view    *viewport.Transform
	machine *interact.Machine

	w, h    int
	hoverID int

	onActivate func(n scene.Node)
	onChanged  func()

	stopSim func()
}

func newGraphCore(cfg vizconfig.Config) *graphCore {
	c := &graphCore{
		cfg:     cfg,
		sim:     forcesim.New(cfg.Physics.Params()),
		hoverID: render.NoEntity,
		w:       800,
		h:       600,
	}
	c.view = viewport.NewTransform(float64(c.w)/2, float64(c.h)/2)
	c.view.MinZoom = cfg.Viewport.MinZoom
	c.view.MaxZoom = cfg.Viewport.MaxZoom
	c.machine = interact.New(interact.Hooks{
		HitTest:     c.hitTest,
		Draggable:   func(int) bool { return true }, // every node is draggable
		EntityPos:   c.entityPos,
		DragMove:    c.dragMove,
		DragCommit:  c.dragCommit,
		DragAbort:   c.dragAbort,
		Activate:    c.activate,
		Pan:         c.pan,
		HoverChange: c.hoverChange,
		Zoom:        c.zoomAt,
	})
	return c
}

// SetData replaces nodes and edges wholesale. Surviving nodes keep
// their settled positions; new nodes are seeded on the circle. A drag
// against a removed node is abandoned.
func (c *graphCore) SetData(nodes []scene.Node, edges []scene.Edge) {
	c.nodes = nodes
	c.edges = scene.DedupeEdges(edges)
	ids := make([]int, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	c.sim.Reseed(ids, c.cfg.Physics.RestLength)
	c.sim.Springs = nil
	for _, e := range c.edges {
		c.sim.Link(e.Source, e.Target, e.Strength)
	}
	if id, ok := c.machine.DraggingID(); ok && c.sim.Find(id) == nil {
		c.machine.EntityGone(id)
	}
	if c.hoverID != render.NoEntity && c.sim.Find(c.hoverID) == nil {
		c.machine.EntityGone(c.hoverID)
		c.hoverID = render.NoEntity
	}
	c.changed()
}

func (c *graphCore) SetFilter(f scene.Filter) {
	c.filter = f
	c.changed()
}

// Resize recomputes the frame size and keeps the origin at the canvas
// center.
func (c *graphCore) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.w, c.h = w, h
	c.view.SetOrigin(float64(w)/2, float64(h)/2)
}

// Start launches the perpetual simulation ticker. schedule marshals the
// tick onto the UI thread (fyne.Do in the widget, direct call in
// tests). Start is idempotent; Stop must be called on teardown.
func (c *graphCore) Start(schedule func(func())) {
	if c.stopSim != nil {
		return
	}
	interval := time.Duration(c.cfg.Physics.TickMillis) * time.Millisecond
	c.stopSim = forcesim.Ticker(interval, func() {
		schedule(func() {
			c.sim.Step()
			c.changed()
		})
	})
}

// Stop cancels the simulation ticker. Safe to call repeatedly.
func (c *graphCore) Stop() {
	if c.stopSim != nil {
		c.stopSim()
		c.stopSim = nil
	}
}

func (c *graphCore) nodePos(id int) (float64, float64, bool) {
	b := c.sim.Find(id)
	if b == nil {
		return 0, 0, false
	}
	return b.X, b.Y, true
}

func (c *graphCore) frame() render.GraphFrame {
	dragID := render.NoEntity
	if id, ok := c.machine.DraggingID(); ok {
		dragID = id
	}
	return render.GraphFrame{
		W: c.w, H: c.h,
		Nodes:   c.nodes,
		Edges:   c.edges,
		Pos:     c.nodePos,
		View:    c.view,
		Filter:  c.filter,
		HoverID: c.hoverID,
		DragID:  dragID,
	}
}

// Frame paints the current state.
func (c *graphCore) Frame(w, h int) *image.RGBA {
	if w != c.w || h != c.h {
		c.Resize(w, h)
	}
	return render.DrawGraph(c.frame())
}

func (c *graphCore) changed() {
	if c.onChanged != nil {
		c.onChanged()
	}
}

// --- machine hooks ---

func (c *graphCore) hitTest(x, y float64) (int, bool) {
	return pick.At(render.GraphTargets(c.frame()), x, y, pick.Tolerance)
}

func (c *graphCore) entityPos(id int) (float64, float64, bool) {
	lx, ly, ok := c.nodePos(id)
	if !ok {
		return 0, 0, false
	}
	sx, sy := c.view.ToScreen(lx, ly)
	return sx, sy, true
}

// dragMove pins the node to the pointer: the simulation skips it until
// release, and the pin position comes straight from screen space.
func (c *graphCore) dragMove(id int, x, y float64) {
	lx, ly := c.view.ToLogical(x, y)
	c.sim.Pin(id, lx, ly)
	c.changed()
}

// dragCommit releases the pin; the node re-enters free simulation with
// zero velocity so it does not fling.
func (c *graphCore) dragCommit(id int, _, _ float64) {
	c.sim.Unpin(id)
	c.changed()
}

func (c *graphCore) dragAbort(id int) {
	c.sim.Unpin(id)
	c.changed()
}

func (c *graphCore) activate(id int) {
	if c.onActivate == nil {
		return
	}
	for _, n := range c.nodes {
		if n.ID == id {
			c.onActivate(n)
			return
		}
	}
}

func (c *graphCore) pan(dx, dy float64) {
	c.view.PanBy(dx, dy)
	c.changed()
}

func (c *graphCore) hoverChange(id int, hovering bool) {
	if hovering {
		c.hoverID = id
	} else if c.hoverID == id {
		c.hoverID = render.NoEntity
	}
	c.changed()
}

func (c *graphCore) zoomAt(x, y, dy float64) {
	step := c.cfg.Viewport.ZoomStep
	if dy < 0 {
		step = 1 / step
	}
	c.view.ZoomAt(x, y, step)
	c.changed()
}

// --- control cluster actions ---

func (c *graphCore) zoomIn() {
	c.view.ZoomAt(float64(c.w)/2, float64(c.h)/2, c.cfg.Viewport.ZoomStep)
	c.changed()
}

func (c *graphCore) zoomOut() {
	c.view.ZoomAt(float64(c.w)/2, float64(c.h)/2, 1/c.cfg.Viewport.ZoomStep)
	c.changed()
}

func (c *graphCore) resetView() {
	c.view.Reset()
	c.changed()
}

// fitView frames the current node bounding box.
func (c *graphCore) fitView() {
	minX, minY, maxX, maxY, ok := c.sim.Bounds()
	if !ok {
		c.view.Reset()
	} else {
		c.view.Fit(minX, minY, maxX, maxY, float64(c.w), float64(c.h))
	}
	c.changed()
}

// tooltipText returns the hover tooltip lines, empty when idle.
func (c *graphCore) tooltipText() string {
	if c.hoverID == render.NoEntity {
		return ""
	}
	for _, n := range c.nodes {
		if n.ID == c.hoverID {
			label := n.Label
			if label == "" {
				label = "(unnamed)"
			}
			return fmt.Sprintf("%s\n%s", label, n.Category)
		}
	}
	return ""
}
