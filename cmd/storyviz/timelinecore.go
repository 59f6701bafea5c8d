package main

import (
	"fmt"
	"image"

	"github.com/Marksio90/Narrative-OS-sub001/cmd/storyviz/uihelpers"
	"github.com/Marksio90/Narrative-OS-sub001/src/interact"
	"github.com/Marksio90/Narrative-OS-sub001/src/pick"
	"github.com/Marksio90/Narrative-OS-sub001/src/render"
	"github.com/Marksio90/Narrative-OS-sub001/src/scene"
	"github.com/Marksio90/Narrative-OS-sub001/src/viewport"
	"github.com/Marksio90/Narrative-OS-sub001/src/vizconfig"
)

// timelineCore owns the complete timeline state for one view instance:
// axis, filter, interaction machine and transient drag preview. It is
// UI-toolkit free; the Fyne widget wraps it and forwards pointer events.
type timelineCore struct {
	cfg    vizconfig.Config
	events []scene.Event
	bands  []scene.ConflictBand
	lanes  []string
	filter scene.Filter

	axis    *viewport.Axis
	machine *interact.Machine

	w, h         int
	hoverID      int
	ghostChapter int

	// Collaborator callbacks (spec: onEntityMove / onEntityActivate).
	onMove     func(id, chapter int)
	onActivate func(ev scene.Event)
	// onChanged requests a repaint from the owning widget.
	onChanged func()
}

func newTimelineCore(cfg vizconfig.Config) *timelineCore {
	c := &timelineCore{
		cfg:     cfg,
		hoverID: render.NoEntity,
		w:       800,
		h:       400,
	}
	c.machine = interact.New(interact.Hooks{
		HitTest:     c.hitTest,
		Draggable:   c.draggable,
		EntityPos:   c.entityPos,
		DragMove:    c.dragMove,
		DragCommit:  c.dragCommit,
		DragAbort:   func(int) { c.changed() },
		Activate:    c.activate,
		Pan:         c.pan,
		HoverChange: c.hoverChange,
		Zoom:        c.zoomAt,
	})
	c.rebuildAxis()
	return c
}

// SetData replaces the event set wholesale (external model refresh).
// An active drag against a removed event is abandoned safely.
func (c *timelineCore) SetData(events []scene.Event, bands []scene.ConflictBand, lanes []string) {
	c.events = events
	c.bands = bands
	c.lanes = lanes
	if id, ok := c.machine.DraggingID(); ok && c.find(id) == nil {
		c.machine.EntityGone(id)
	}
	if c.hoverID != render.NoEntity && c.find(c.hoverID) == nil {
		c.machine.EntityGone(c.hoverID)
		c.hoverID = render.NoEntity
	}
	c.rebuildAxis()
	c.changed()
}

// SetFilter swaps the visibility filter. Hidden entities drop out of
// rendering and hit-testing on the next frame.
func (c *timelineCore) SetFilter(f scene.Filter) {
	c.filter = f
	c.changed()
}

// Resize records the device-pixel frame size before the next paint.
func (c *timelineCore) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.w, c.h = w, h
	c.rebuildAxis()
}

// rebuildAxis re-derives the chapter axis, preserving zoom/pan across
// data refreshes and resizes.
func (c *timelineCore) rebuildAxis() {
	min, max, ok := scene.ChapterSpan(c.events)
	if !ok {
		min, max = 1, 1 // degenerate span handled by the axis fallback
	}
	leftPad := c.cfg.Timeline.LeftPad
	usable := float64(c.w) - leftPad*2
	prev := c.axis
	c.axis = viewport.NewAxis(min, max, leftPad, usable)
	c.axis.MinZoom = c.cfg.Viewport.MinZoom
	c.axis.MaxZoom = c.cfg.Viewport.MaxZoom
	if prev != nil {
		c.axis.Zoom = prev.Zoom
		c.axis.Pan = prev.Pan
	}
}

func (c *timelineCore) find(id int) *scene.Event {
	for i := range c.events {
		if c.events[i].ID == id {
			return &c.events[i]
		}
	}
	return nil
}

func (c *timelineCore) frame() render.TimelineFrame {
	dragID := render.NoEntity
	if id, ok := c.machine.DraggingID(); ok {
		dragID = id
	}
	span := c.axis.MaxChapter - c.axis.MinChapter
	return render.TimelineFrame{
		W: c.w, H: c.h,
		Events:       c.events,
		Bands:        c.bands,
		Lanes:        c.lanes,
		Axis:         c.axis,
		Filter:       c.filter,
		HoverID:      c.hoverID,
		DragID:       dragID,
		GhostChapter: c.ghostChapter,
		TickStep:     uihelpers.ChapterTickStep(span, uihelpers.MaxChapterLabels(c.w)),
	}
}

// Frame paints the current state.
func (c *timelineCore) Frame(w, h int) *image.RGBA {
	if w != c.w || h != c.h {
		c.Resize(w, h)
	}
	return render.DrawTimeline(c.frame())
}

func (c *timelineCore) changed() {
	if c.onChanged != nil {
		c.onChanged()
	}
}

// --- machine hooks ---

func (c *timelineCore) hitTest(x, y float64) (int, bool) {
	return pick.At(render.TimelineTargets(c.frame()), x, y, pick.Tolerance)
}

func (c *timelineCore) draggable(id int) bool {
	ev := c.find(id)
	return ev != nil && ev.Mutable
}

func (c *timelineCore) entityPos(id int) (float64, float64, bool) {
	ev := c.find(id)
	if ev == nil {
		return 0, 0, false
	}
	for _, t := range render.TimelineTargets(c.frame()) {
		if t.ID == id {
			return t.X, t.Y, true
		}
	}
	// Present but filtered out mid-drag: treat as gone.
	return 0, 0, false
}

func (c *timelineCore) dragMove(id int, x, _ float64) {
	c.ghostChapter = c.axis.XToNearestChapter(x)
	c.changed()
}

// dragCommit fires once per completed drag; the move callback only
// fires when the chapter actually changed.
func (c *timelineCore) dragCommit(id int, x, _ float64) {
	ev := c.find(id)
	if ev == nil {
		c.changed()
		return
	}
	target := c.axis.XToNearestChapter(x)
	if target != ev.Chapter && c.onMove != nil {
		c.onMove(id, target)
	}
	c.changed()
}

func (c *timelineCore) activate(id int) {
	if ev := c.find(id); ev != nil && c.onActivate != nil {
		c.onActivate(*ev)
	}
}

func (c *timelineCore) pan(dx, _ float64) {
	c.axis.PanBy(dx)
	c.changed()
}

func (c *timelineCore) hoverChange(id int, hovering bool) {
	if hovering {
		c.hoverID = id
	} else if c.hoverID == id {
		c.hoverID = render.NoEntity
	}
	c.changed()
}

func (c *timelineCore) zoomAt(x, _, dy float64) {
	step := c.cfg.Viewport.ZoomStep
	if dy < 0 {
		step = 1 / step
	}
	c.axis.ZoomAt(x, step)
	c.changed()
}

// --- control cluster actions ---

func (c *timelineCore) zoomIn()  { c.axis.ZoomAt(float64(c.w)/2, c.cfg.Viewport.ZoomStep); c.changed() }
func (c *timelineCore) zoomOut() { c.axis.ZoomAt(float64(c.w)/2, 1/c.cfg.Viewport.ZoomStep); c.changed() }
func (c *timelineCore) resetView() {
	c.axis.Reset()
	c.changed()
}

// fitView frames the full chapter span inside the current width.
func (c *timelineCore) fitView() {
	c.axis.Reset()
	c.changed()
}

// tooltipText returns the hover tooltip lines, empty when idle.
func (c *timelineCore) tooltipText() string {
	if c.hoverID == render.NoEntity {
		return ""
	}
	ev := c.find(c.hoverID)
	if ev == nil {
		return ""
	}
	text := ev.Label
	if text == "" {
		text = "(untitled event)"
	}
	return fmt.Sprintf("%s\nChapter %d · %s", text, ev.Chapter, ev.Layer)
}
