package main

import (
	"image"
	"strings"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/Marksio90/Narrative-OS-sub001/src/interact"
)

// viewCore is the headless state container behind a canvas widget;
// timelineCore and graphCore both satisfy it.
type viewCore interface {
	Frame(w, h int) *image.RGBA
	Resize(w, h int)
	viewMachine() *interact.Machine
	setOnChanged(func())
	tooltipText() string
	zoomIn()
	zoomOut()
	fitView()
	resetView()
}

func (c *timelineCore) viewMachine() *interact.Machine { return c.machine }
func (c *timelineCore) setOnChanged(fn func())         { c.onChanged = fn }
func (c *graphCore) viewMachine() *interact.Machine    { return c.machine }
func (c *graphCore) setOnChanged(fn func())            { c.onChanged = fn }

// canvasView is the interactive Fyne widget over a viewCore: it owns
// the raster frame and the floating tooltip overlay, and forwards
// pointer events into the interaction machine. The tooltip is a
// separate overlay object, never painted into the frame bitmap.
type canvasView struct {
	widget.BaseWidget

	core   viewCore
	raster *canvas.Raster

	mouse fyne.Position
}

func newCanvasView(core viewCore) *canvasView {
	v := &canvasView{core: core}
	v.raster = canvas.NewRaster(func(w, h int) image.Image {
		return core.Frame(w, h)
	})
	v.raster.ScaleMode = canvas.ImageScalePixels
	core.setOnChanged(func() { v.raster.Refresh() })
	v.ExtendBaseWidget(v)
	return v
}

// MouseDown begins a drag or pan; the secondary button always pans.
func (v *canvasView) MouseDown(ev *desktop.MouseEvent) {
	secondary := ev.Button == desktop.MouseButtonSecondary
	v.mouse = ev.Position
	v.core.viewMachine().PointerDown(float64(ev.Position.X), float64(ev.Position.Y), secondary)
	v.Refresh()
}

// MouseUp completes the active gesture.
func (v *canvasView) MouseUp(ev *desktop.MouseEvent) {
	v.mouse = ev.Position
	v.core.viewMachine().PointerUp(float64(ev.Position.X), float64(ev.Position.Y))
	v.Refresh()
}

// MouseMoved drives hover and tooltip placement.
func (v *canvasView) MouseMoved(ev *desktop.MouseEvent) {
	v.mouse = ev.Position
	v.core.viewMachine().PointerMove(float64(ev.Position.X), float64(ev.Position.Y))
	v.Refresh()
}

func (v *canvasView) MouseIn(ev *desktop.MouseEvent) { v.mouse = ev.Position }

func (v *canvasView) MouseOut() {
	v.core.viewMachine().PointerOut()
	v.Refresh()
}

// Dragged keeps the machine fed while a button is held; some drivers
// stop delivering MouseMoved during a drag.
func (v *canvasView) Dragged(ev *fyne.DragEvent) {
	v.mouse = ev.Position
	v.core.viewMachine().PointerMove(float64(ev.Position.X), float64(ev.Position.Y))
	v.Refresh()
}

// DragEnd is intentionally empty: MouseUp carries the release position
// the commit needs.
func (v *canvasView) DragEnd() {}

// Scrolled zooms about the pointer.
func (v *canvasView) Scrolled(ev *fyne.ScrollEvent) {
	v.core.viewMachine().Wheel(float64(ev.Position.X), float64(ev.Position.Y), float64(ev.Scrolled.DY))
	v.Refresh()
}

func (v *canvasView) CreateRenderer() fyne.WidgetRenderer {
	tipBG := canvas.NewRectangle(theme.Color(theme.ColorNameOverlayBackground))
	tip := widget.NewRichText()
	return &canvasViewRenderer{view: v, tipBG: tipBG, tip: tip}
}

// Interface assertions matching the teacher's overlay widget.
var (
	_ desktop.Hoverable = (*canvasView)(nil)
	_ desktop.Mouseable = (*canvasView)(nil)
	_ fyne.Draggable    = (*canvasView)(nil)
	_ fyne.Scrollable   = (*canvasView)(nil)
)

type canvasViewRenderer struct {
	view  *canvasView
	tipBG *canvas.Rectangle
	tip   *widget.RichText
}

func (r *canvasViewRenderer) Layout(size fyne.Size) {
	r.view.raster.Resize(size)
	r.view.core.Resize(int(size.Width), int(size.Height))
	r.layoutTooltip(size)
}

// layoutTooltip places the floating tooltip next to the last pointer
// position, clamped to the widget bounds, and hides it when there is
// nothing to show.
func (r *canvasViewRenderer) layoutTooltip(size fyne.Size) {
	text := r.view.core.tooltipText()
	if text == "" {
		r.tipBG.Resize(fyne.NewSize(0, 0))
		r.tipBG.Move(fyne.NewPos(-1000, -1000))
		r.tip.Segments = nil
		r.tip.Move(fyne.NewPos(-1000, -1000))
		r.tip.Refresh()
		return
	}
	segs := make([]widget.RichTextSegment, 0, 2)
	for _, line := range strings.Split(text, "\n") {
		segs = append(segs, &widget.TextSegment{Text: line})
	}
	r.tip.Segments = segs
	r.tip.Refresh()

	const pad = float32(6)
	ts := r.tip.MinSize()
	bgW := ts.Width + 2*pad
	bgH := ts.Height + 2*pad
	tx := r.view.mouse.X + 10
	ty := r.view.mouse.Y + 10
	if tx+bgW > size.Width {
		tx = size.Width - bgW
	}
	if ty+bgH > size.Height {
		ty = size.Height - bgH
	}
	r.tipBG.Resize(fyne.NewSize(bgW, bgH))
	r.tipBG.Move(fyne.NewPos(tx, ty))
	r.tip.Move(fyne.NewPos(tx+pad, ty+pad))
}

func (r *canvasViewRenderer) MinSize() fyne.Size { return fyne.NewSize(200, 150) }

func (r *canvasViewRenderer) Refresh() {
	r.view.raster.Refresh()
	r.tipBG.FillColor = theme.Color(theme.ColorNameOverlayBackground)
	r.layoutTooltip(r.view.Size())
	r.tipBG.Refresh()
}

func (r *canvasViewRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.view.raster, r.tipBG, r.tip}
}

func (r *canvasViewRenderer) Destroy() {}
