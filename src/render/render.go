// Package render is the full-repaint pipeline: given the current
// viewport, entity sets, filters and interaction state it paints a
// complete frame into an RGBA image. Frames are consumed by the Fyne
// raster widget and by the headless snapshots command; the painters are
// best-effort and never fail, falling back to defaults for missing
// optional fields.
package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font/basicfont"

	"github.com/Marksio90/Narrative-OS-sub001/src/pick"
	"github.com/Marksio90/Narrative-OS-sub001/src/scene"
	"github.com/Marksio90/Narrative-OS-sub001/src/viewport"
)

// NoEntity marks the absence of a hovered/dragged entity in a frame.
const NoEntity = -1

// LabelZoomThreshold hides timeline labels below this zoom so a
// zoomed-out axis does not turn into label soup.
const LabelZoomThreshold = 0.75

var (
	colBackground = drawing.ColorFromHex("fafafa")
	colGrid       = drawing.ColorFromHex("e0e0e0")
	colAxisText   = drawing.ColorFromHex("666666")
	colLaneEven   = drawing.ColorFromHex("f2f2f2")
	colConflict   = drawing.ColorFromHex("e74c3c")
	colHoverRing  = drawing.ColorFromHex("2c3e50")
	colGhost      = drawing.ColorFromHex("2c3e50")
)

// TimelineFrame is everything one timeline repaint needs.
type TimelineFrame struct {
	W, H   int
	Events []scene.Event
	Bands  []scene.ConflictBand
	Lanes  []string // layer names in row order
	Axis   *viewport.Axis
	Filter scene.Filter

	HoverID int // NoEntity when idle
	DragID  int // NoEntity when not dragging
	// Ghost preview while dragging: the candidate chapter under the
	// pointer, shown without mutating the event.
	GhostChapter int
	// TickStep labels every n-th chapter so a wide span stays legible.
	// Values below 1 label every chapter.
	TickStep int
}

// GraphFrame is everything one graph repaint needs.
type GraphFrame struct {
	W, H  int
	Nodes []scene.Node
	Edges []scene.Edge // pre-deduplicated
	// Pos returns the node's logical position from the simulation;
	// ok=false skips the node (stale id tolerance).
	Pos    func(id int) (x, y float64, ok bool)
	View   *viewport.Transform
	Filter scene.Filter

	HoverID int
	DragID  int
}

const (
	timelineTopPad = 40.0
	laneHeight     = 64.0
)

// laneY returns the vertical center of the i-th lane row.
func laneY(i int) float64 { return timelineTopPad + laneHeight*float64(i) + laneHeight/2 }

// laneIndex resolves an event's lane row; unknown layers go to the last
// row rather than disappearing.
func laneIndex(lanes []string, layer string) int {
	for i, l := range lanes {
		if l == layer {
			return i
		}
	}
	if len(lanes) == 0 {
		return 0
	}
	return len(lanes) - 1
}

// DrawTimeline paints a complete timeline frame.
func DrawTimeline(f TimelineFrame) *image.RGBA {
	if f.W <= 0 {
		f.W = 1
	}
	if f.H <= 0 {
		f.H = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, f.W, f.H))
	dc := gg.NewContextForRGBA(img)
	dc.SetFontFace(basicfont.Face7x13)

	// 1. Clear.
	dc.SetColor(colBackground)
	dc.Clear()

	if f.Axis == nil {
		return img
	}

	// 2. Lane bands.
	for i := range f.Lanes {
		if i%2 == 0 {
			dc.SetColor(colLaneEven)
			dc.DrawRectangle(0, timelineTopPad+laneHeight*float64(i), float64(f.W), laneHeight)
			dc.Fill()
		}
	}

	// 3. Chapter grid and labels.
	step := f.TickStep
	if step < 1 {
		step = 1
	}
	dc.SetLineWidth(1)
	for ch := f.Axis.MinChapter; ch <= f.Axis.MaxChapter; ch++ {
		x := f.Axis.ChapterToX(float64(ch))
		if x < -20 || x > float64(f.W)+20 {
			continue
		}
		dc.SetColor(colGrid)
		dc.DrawLine(x, timelineTopPad, x, float64(f.H))
		dc.Stroke()
		if (ch-f.Axis.MinChapter)%step == 0 {
			dc.SetColor(colAxisText)
			dc.DrawStringAnchored(fmt.Sprintf("Ch %d", ch), x, timelineTopPad-12, 0.5, 0.5)
		}
	}

	// 4. Conflict-severity bands over chapter ranges.
	for _, b := range f.Bands {
		x1 := f.Axis.ChapterToX(float64(b.FromChapter) - 0.5)
		x2 := f.Axis.ChapterToX(float64(b.ToChapter) + 0.5)
		sev := math.Max(0, math.Min(1, b.Severity))
		dc.SetColor(colConflict.WithAlpha(uint8(30 + 70*sev)))
		dc.DrawRectangle(x1, timelineTopPad, x2-x1, float64(f.H)-timelineTopPad)
		dc.Fill()
	}

	// 5. Events with tier radius, highlight rings and labels.
	for _, ev := range f.Events {
		if !f.Filter.EventVisible(ev) {
			continue
		}
		x := f.Axis.ChapterToX(float64(ev.Chapter))
		y := laneY(laneIndex(f.Lanes, ev.Layer))
		r := scene.EntityRadius(ev.Major)
		fill := scene.EntityColor(ev.Color, scene.ParseTimelineLayer(ev.Layer).Color())
		if ev.ID == f.DragID {
			fill = fill.WithAlpha(120) // origin marker fades while dragging
		}
		dc.SetColor(fill)
		dc.DrawCircle(x, y, r)
		dc.Fill()
		if ev.ID == f.HoverID || ev.ID == f.DragID {
			dc.SetColor(colHoverRing)
			dc.SetLineWidth(2)
			dc.DrawCircle(x, y, r+3)
			dc.Stroke()
		}
		if ev.Major && f.Axis.Zoom >= LabelZoomThreshold && ev.Label != "" {
			dc.SetColor(colAxisText)
			dc.DrawStringAnchored(ev.Label, x, y-r-10, 0.5, 0.5)
		}
	}

	// 6. Drag ghost at the candidate chapter.
	if f.DragID != NoEntity {
		for _, ev := range f.Events {
			if ev.ID != f.DragID {
				continue
			}
			gx := f.Axis.ChapterToX(float64(f.GhostChapter))
			gy := laneY(laneIndex(f.Lanes, ev.Layer))
			dc.SetColor(colGhost.WithAlpha(90))
			dc.DrawCircle(gx, gy, scene.EntityRadius(ev.Major))
			dc.Fill()
			dc.SetColor(colGhost)
			dc.DrawStringAnchored(fmt.Sprintf("-> Ch %d", f.GhostChapter), gx, gy-24, 0.5, 0.5)
			break
		}
	}

	return img
}

// TimelineTargets projects visible events to hit-test targets in the
// same order DrawTimeline paints them, so overlap picking matches
// z-order.
func TimelineTargets(f TimelineFrame) []pick.Target {
	if f.Axis == nil {
		return nil
	}
	out := make([]pick.Target, 0, len(f.Events))
	for _, ev := range f.Events {
		if !f.Filter.EventVisible(ev) {
			continue
		}
		out = append(out, pick.Target{
			ID:     ev.ID,
			X:      f.Axis.ChapterToX(float64(ev.Chapter)),
			Y:      laneY(laneIndex(f.Lanes, ev.Layer)),
			Radius: scene.EntityRadius(ev.Major),
		})
	}
	return out
}

// DrawGraph paints a complete graph frame: edges beneath nodes, nodes
// with tier radius and highlight rings, labels under the markers.
func DrawGraph(f GraphFrame) *image.RGBA {
	if f.W <= 0 {
		f.W = 1
	}
	if f.H <= 0 {
		f.H = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, f.W, f.H))
	dc := gg.NewContextForRGBA(img)
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(colBackground)
	dc.Clear()

	if f.View == nil || f.Pos == nil {
		return img
	}
	nodes := scene.NodeIndex(f.Nodes)

	// Edges first so nodes paint over them.
	for _, e := range f.Edges {
		if !f.Filter.EdgeVisible(e, nodes) {
			continue
		}
		sx1, sy1, ok1 := f.screenPos(e.Source)
		sx2, sy2, ok2 := f.screenPos(e.Target)
		if !ok1 || !ok2 {
			continue
		}
		col := scene.ParseRelationCategory(e.Category).Color()
		width := 1 + e.Strength/4
		dc.SetColor(col)
		dc.SetLineWidth(width)
		dc.DrawLine(sx1, sy1, sx2, sy2)
		dc.Stroke()
		drawEdgeArrow(dc, sx1, sy1, sx2, sy2, col)
	}

	for _, n := range f.Nodes {
		if !f.Filter.NodeVisible(n) {
			continue
		}
		x, y, ok := f.screenPos(n.ID)
		if !ok {
			continue
		}
		r := scene.EntityRadius(n.Major) * f.View.Zoom
		if r < 3 {
			r = 3
		}
		fill := scene.EntityColor(n.Color, scene.ParseRelationCategory(n.Category).Color())
		dc.SetColor(fill)
		dc.DrawCircle(x, y, r)
		dc.Fill()
		if n.ID == f.HoverID || n.ID == f.DragID {
			dc.SetColor(colHoverRing)
			dc.SetLineWidth(2)
			dc.DrawCircle(x, y, r+3)
			dc.Stroke()
		}
		if n.Label != "" && (n.Major || f.View.Zoom >= LabelZoomThreshold) {
			dc.SetColor(colAxisText)
			dc.DrawStringAnchored(n.Label, x, y+r+10, 0.5, 0.5)
		}
	}

	return img
}

// screenPos projects a node id through the simulation and viewport.
func (f GraphFrame) screenPos(id int) (x, y float64, ok bool) {
	lx, ly, ok := f.Pos(id)
	if !ok {
		return 0, 0, false
	}
	x, y = f.View.ToScreen(lx, ly)
	return x, y, true
}

// GraphTargets projects visible nodes to hit-test targets in draw
// order.
func GraphTargets(f GraphFrame) []pick.Target {
	if f.View == nil || f.Pos == nil {
		return nil
	}
	out := make([]pick.Target, 0, len(f.Nodes))
	for _, n := range f.Nodes {
		if !f.Filter.NodeVisible(n) {
			continue
		}
		x, y, ok := f.screenPos(n.ID)
		if !ok {
			continue
		}
		r := scene.EntityRadius(n.Major) * f.View.Zoom
		if r < 3 {
			r = 3
		}
		out = append(out, pick.Target{ID: n.ID, X: x, Y: y, Radius: r})
	}
	return out
}

// drawEdgeArrow paints a small direction marker at the edge midpoint.
func drawEdgeArrow(dc *gg.Context, x1, y1, x2, y2 float64, col drawing.Color) {
	mx := (x1 + x2) / 2
	my := (y1 + y2) / 2
	angle := math.Atan2(y2-y1, x2-x1)
	const size = 6.0
	dc.SetColor(col)
	dc.MoveTo(mx+size*math.Cos(angle), my+size*math.Sin(angle))
	dc.LineTo(mx+size*math.Cos(angle+2.5), my+size*math.Sin(angle+2.5))
	dc.LineTo(mx+size*math.Cos(angle-2.5), my+size*math.Sin(angle-2.5))
	dc.ClosePath()
	dc.Fill()
}

// EncodePNG writes a rendered frame as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("png encode: %w", err)
	}
	return nil
}
