package main

import (
	"testing"

	"github.com/Marksio90/Narrative-OS-sub001/src/scene"
	"github.com/Marksio90/Narrative-OS-sub001/src/vizconfig"
)

// testTimeline builds a core over chapters 1-10 with one mutable event
// at chapter 5 and records move/activate callbacks.
func testTimeline(t *testing.T) (*timelineCore, *[]([2]int), *[]int) {
	t.Helper()
	moves := &[]([2]int){}
	activations := &[]int{}
	c := newTimelineCore(vizconfig.Default())
	c.Resize(800, 400)
	c.onMove = func(id, ch int) { *moves = append(*moves, [2]int{id, ch}) }
	c.onActivate = func(ev scene.Event) { *activations = append(*activations, ev.ID) }
	c.SetData([]scene.Event{
		{ID: 1, Chapter: 1, Layer: "plot", Major: true, Label: "Opening"},
		{ID: 5, Chapter: 5, Layer: "plot", Mutable: true, Label: "Reversal"},
		{ID: 9, Chapter: 10, Layer: "plot", Major: true, Label: "Finale"},
	}, nil, []string{"plot"})
	return c, moves, activations
}

// eventXY looks up the projected screen position of an event.
func eventXY(t *testing.T, c *timelineCore, id int) (float64, float64) {
	t.Helper()
	x, y, ok := c.entityPos(id)
	if !ok {
		t.Fatalf("event %d has no screen position", id)
	}
	return x, y
}

func TestTimelineDrag_CommitsOnceWithNewChapter(t *testing.T) {
	c, moves, _ := testTimeline(t)
	x, y := eventXY(t, c, 5)
	perChapter := c.axis.PxPerChapter * c.axis.Zoom

	// Drag +3 chapters and release.
	c.machine.PointerDown(x, y, false)
	c.machine.PointerMove(x+perChapter, y)
	c.machine.PointerMove(x+3*perChapter, y)
	c.machine.PointerUp(x+3*perChapter, y)

	if len(*moves) != 1 {
		t.Fatalf("expected exactly 1 move callback, got %d", len(*moves))
	}
	if got := (*moves)[0]; got != [2]int{5, 8} {
		t.Fatalf("expected move (5, 8), got %v", got)
	}
}

func TestTimelineDrag_ReleasedAtStartDoesNotCommit(t *testing.T) {
	c, moves, activations := testTimeline(t)
	x, y := eventXY(t, c, 5)
	perChapter := c.axis.PxPerChapter * c.axis.Zoom

	c.machine.PointerDown(x, y, false)
	c.machine.PointerMove(x+2*perChapter, y)
	c.machine.PointerMove(x, y) // back home before release
	c.machine.PointerUp(x, y)

	if len(*moves) != 0 {
		t.Fatalf("release at the original chapter must not fire onMove, got %v", *moves)
	}
	if len(*activations) != 0 {
		t.Fatalf("a real drag must not activate, got %v", *activations)
	}
}

func TestTimelineClick_ActivatesWithoutMove(t *testing.T) {
	c, moves, activations := testTimeline(t)
	x, y := eventXY(t, c, 1) // non-mutable event: click still works
	c.machine.PointerDown(x, y, false)
	c.machine.PointerUp(x+1, y)
	if len(*activations) != 1 || (*activations)[0] != 1 {
		t.Fatalf("expected activation of event 1, got %v", *activations)
	}
	if len(*moves) != 0 {
		t.Fatalf("click must not move, got %v", *moves)
	}
}

func TestTimelineDrag_NonMutableEventNeverCommits(t *testing.T) {
	c, moves, _ := testTimeline(t)
	x, y := eventXY(t, c, 9)
	perChapter := c.axis.PxPerChapter * c.axis.Zoom
	c.machine.PointerDown(x, y, false)
	c.machine.PointerMove(x-3*perChapter, y)
	c.machine.PointerUp(x-3*perChapter, y)
	if len(*moves) != 0 {
		t.Fatalf("non-mutable event must not be rescheduled, got %v", *moves)
	}
}

func TestTimelineDrag_GhostFollowsPointer(t *testing.T) {
	c, _, _ := testTimeline(t)
	x, y := eventXY(t, c, 5)
	perChapter := c.axis.PxPerChapter * c.axis.Zoom
	c.machine.PointerDown(x, y, false)
	c.machine.PointerMove(x+2*perChapter, y)
	if c.ghostChapter != 7 {
		t.Fatalf("ghost chapter: got %d want 7", c.ghostChapter)
	}
	c.machine.PointerUp(x+2*perChapter, y)
}

func TestTimelineStaleDrag_RefreshMidDrag(t *testing.T) {
	c, moves, _ := testTimeline(t)
	x, y := eventXY(t, c, 5)
	perChapter := c.axis.PxPerChapter * c.axis.Zoom
	c.machine.PointerDown(x, y, false)
	c.machine.PointerMove(x+perChapter, y)
	// External refresh removes the dragged event.
	c.SetData([]scene.Event{{ID: 1, Chapter: 1, Layer: "plot"}}, nil, []string{"plot"})
	c.machine.PointerMove(x+2*perChapter, y)
	c.machine.PointerUp(x+2*perChapter, y)
	if len(*moves) != 0 {
		t.Fatalf("stale drag must not commit, got %v", *moves)
	}
	if _, dragging := c.machine.DraggingID(); dragging {
		t.Fatalf("machine stuck dragging a removed event")
	}
}

func TestTimelineFilter_HiddenEventNotHit(t *testing.T) {
	c, _, _ := testTimeline(t)
	x, y := eventXY(t, c, 5)
	c.SetFilter(scene.Filter{MajorOnly: true})
	if id, ok := c.hitTest(x, y); ok {
		t.Fatalf("filtered event should not be hit, got %d", id)
	}
	// Major events are still hittable.
	mx, my := eventXY(t, c, 1)
	if id, ok := c.hitTest(mx, my); !ok || id != 1 {
		t.Fatalf("major event should be hit, got id=%d ok=%v", id, ok)
	}
}

func TestTimelinePanAndZoomPreservedAcrossRefresh(t *testing.T) {
	c, _, _ := testTimeline(t)
	c.machine.Wheel(400, 100, 1) // zoom in once
	c.machine.PointerDown(700, 300, false)
	c.machine.PointerMove(650, 300)
	c.machine.PointerUp(650, 300)
	zoom, pan := c.axis.Zoom, c.axis.Pan
	if zoom == 1 || pan == 0 {
		t.Fatalf("setup failed: zoom=%v pan=%v", zoom, pan)
	}
	c.SetData(c.events, nil, c.lanes)
	if c.axis.Zoom != zoom || c.axis.Pan != pan {
		t.Fatalf("viewport reset by data refresh: zoom %v->%v pan %v->%v",
			zoom, c.axis.Zoom, pan, c.axis.Pan)
	}
}

func TestTimelineTooltip(t *testing.T) {
	c, _, _ := testTimeline(t)
	if got := c.tooltipText(); got != "" {
		t.Fatalf("idle tooltip should be empty, got %q", got)
	}
	x, y := eventXY(t, c, 1)
	c.machine.PointerMove(x, y)
	if got := c.tooltipText(); got == "" {
		t.Fatalf("hover tooltip missing")
	}
}

func TestTimelineEmptyDataset_Safe(t *testing.T) {
	c := newTimelineCore(vizconfig.Default())
	c.Resize(800, 400)
	c.SetData(nil, nil, nil)
	if img := c.Frame(800, 400); img == nil {
		t.Fatalf("empty dataset frame failed")
	}
	c.machine.PointerDown(400, 200, false) // pans
	c.machine.PointerMove(420, 200)
	c.machine.PointerUp(420, 200)
}
