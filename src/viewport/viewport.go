// Package viewport maintains the mapping between logical coordinates and
// screen pixels under user-driven zoom and pan. Transform covers the 2-D
// graph view; Axis covers the 1-D chapter axis of the timeline. Both are
// pure state holders: every method is a function of the current zoom and
// pan with no side effects beyond that state.
package viewport

import "math"

const (
	// DefaultMinZoom and DefaultMaxZoom bound the zoom factor. Zoom can
	// never reach zero, keeping the transform invertible.
	DefaultMinZoom = 0.3
	DefaultMaxZoom = 3.0

	// ZoomStep is the per-click factor used by the control cluster.
	ZoomStep = 1.25
)

// Transform maps 2-D logical coordinates to screen pixels about a
// movable origin (the canvas center for the graph view).
//
//	screen = origin + pan + logical*zoom
type Transform struct {
	Zoom    float64
	PanX    float64
	PanY    float64
	OriginX float64
	OriginY float64

	MinZoom float64
	MaxZoom float64
}

// NewTransform returns a transform at zoom 1 with default bounds and the
// origin at the given screen point.
func NewTransform(originX, originY float64) *Transform {
	return &Transform{
		Zoom:    1,
		OriginX: originX,
		OriginY: originY,
		MinZoom: DefaultMinZoom,
		MaxZoom: DefaultMaxZoom,
	}
}

// SetOrigin moves the screen-space origin (e.g. after a resize).
func (t *Transform) SetOrigin(x, y float64) {
	t.OriginX, t.OriginY = x, y
}

// clampZoom bounds z to [MinZoom, MaxZoom], falling back to the package
// defaults when the bounds are unset.
func (t *Transform) clampZoom(z float64) float64 {
	lo, hi := t.MinZoom, t.MaxZoom
	if lo <= 0 {
		lo = DefaultMinZoom
	}
	if hi <= 0 {
		hi = DefaultMaxZoom
	}
	if z < lo {
		return lo
	}
	if z > hi {
		return hi
	}
	return z
}

// ToScreen converts a logical coordinate to screen pixels.
func (t *Transform) ToScreen(lx, ly float64) (sx, sy float64) {
	sx = t.OriginX + t.PanX + lx*t.Zoom
	sy = t.OriginY + t.PanY + ly*t.Zoom
	return
}

// ToLogical converts a screen point back to logical coordinates. Exact
// inverse of ToScreen for any valid (non-zero) zoom.
func (t *Transform) ToLogical(sx, sy float64) (lx, ly float64) {
	lx = (sx - t.OriginX - t.PanX) / t.Zoom
	ly = (sy - t.OriginY - t.PanY) / t.Zoom
	return
}

// ZoomAt multiplies the zoom by factor, clamped to bounds, and adjusts
// the pan so the logical point under (sx, sy) stays under the cursor.
func (t *Transform) ZoomAt(sx, sy, factor float64) {
	lx, ly := t.ToLogical(sx, sy)
	t.Zoom = t.clampZoom(t.Zoom * factor)
	// Solve pan from screen = origin + pan + logical*zoom with the
	// anchor point held fixed.
	t.PanX = sx - t.OriginX - lx*t.Zoom
	t.PanY = sy - t.OriginY - ly*t.Zoom
}

// PanBy shifts the view by a screen-space delta.
func (t *Transform) PanBy(dx, dy float64) {
	t.PanX += dx
	t.PanY += dy
}

// Reset returns to zoom 1 with no pan.
func (t *Transform) Reset() {
	t.Zoom = 1
	t.PanX, t.PanY = 0, 0
}

// Fit frames the logical bounding box [minX,maxX]x[minY,maxY] inside a
// viewport of the given pixel size, centered, with a small margin. A
// degenerate box (single node) falls back to zoom 1 centered on it.
func (t *Transform) Fit(minX, minY, maxX, maxY, viewW, viewH float64) {
	w := maxX - minX
	h := maxY - minY
	cx := (minX + maxX) / 2
	cy := (minY + maxY) / 2
	if w <= 0 && h <= 0 {
		t.Zoom = t.clampZoom(1)
		t.PanX = -cx * t.Zoom
		t.PanY = -cy * t.Zoom
		return
	}
	if w <= 0 {
		w = h
	}
	if h <= 0 {
		h = w
	}
	zx := viewW / w
	zy := viewH / h
	z := math.Min(zx, zy) * 0.9 // leave a margin
	t.Zoom = t.clampZoom(z)
	t.PanX = -cx * t.Zoom
	t.PanY = -cy * t.Zoom
}

// DefaultChapterSpan substitutes for a dataset whose chapters collapse
// to a single value, so the usable-width division never sees zero.
const DefaultChapterSpan = 10.0

// Axis maps integer chapter numbers to a horizontal pixel position with
// a fixed left padding as the zoom origin.
//
//	x = leftPad + pan + (chapter-minChapter)*pxPerChapter*zoom
type Axis struct {
	MinChapter int
	MaxChapter int

	LeftPad      float64
	PxPerChapter float64

	Zoom float64
	Pan  float64

	MinZoom float64
	MaxZoom float64
}

// NewAxis builds an axis for the inclusive chapter range sized to fill
// usableWidth pixels at zoom 1. A degenerate range (min == max) uses
// DefaultChapterSpan instead of dividing by zero.
func NewAxis(minChapter, maxChapter int, leftPad, usableWidth float64) *Axis {
	span := float64(maxChapter - minChapter)
	if span <= 0 {
		span = DefaultChapterSpan
	}
	if usableWidth <= 0 {
		usableWidth = span // degenerate view: 1px per chapter
	}
	return &Axis{
		MinChapter:   minChapter,
		MaxChapter:   maxChapter,
		LeftPad:      leftPad,
		PxPerChapter: usableWidth / span,
		Zoom:         1,
		MinZoom:      DefaultMinZoom,
		MaxZoom:      DefaultMaxZoom,
	}
}

func (a *Axis) clampZoom(z float64) float64 {
	lo, hi := a.MinZoom, a.MaxZoom
	if lo <= 0 {
		lo = DefaultMinZoom
	}
	if hi <= 0 {
		hi = DefaultMaxZoom
	}
	if z < lo {
		return lo
	}
	if z > hi {
		return hi
	}
	return z
}

// ChapterToX converts a (possibly fractional) chapter to a pixel x.
func (a *Axis) ChapterToX(chapter float64) float64 {
	return a.LeftPad + a.Pan + (chapter-float64(a.MinChapter))*a.PxPerChapter*a.Zoom
}

// XToChapter converts a pixel x to the fractional chapter under it.
func (a *Axis) XToChapter(x float64) float64 {
	return float64(a.MinChapter) + (x-a.LeftPad-a.Pan)/(a.PxPerChapter*a.Zoom)
}

// XToNearestChapter rounds the chapter under x to the nearest integer,
// clamped to the dataset span.
func (a *Axis) XToNearestChapter(x float64) int {
	c := int(math.Round(a.XToChapter(x)))
	if c < a.MinChapter {
		c = a.MinChapter
	}
	if c > a.MaxChapter {
		c = a.MaxChapter
	}
	return c
}

// ZoomAt multiplies zoom by factor keeping the chapter under pixel x
// fixed, mirroring Transform.ZoomAt in one dimension.
func (a *Axis) ZoomAt(x, factor float64) {
	c := a.XToChapter(x)
	a.Zoom = a.clampZoom(a.Zoom * factor)
	a.Pan = x - a.LeftPad - (c-float64(a.MinChapter))*a.PxPerChapter*a.Zoom
}

// PanBy shifts the axis horizontally by a pixel delta.
func (a *Axis) PanBy(dx float64) { a.Pan += dx }

// Reset returns to zoom 1 with no pan.
func (a *Axis) Reset() {
	a.Zoom = 1
	a.Pan = 0
}
