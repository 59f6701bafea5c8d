package uihelpers

import "testing"

func TestComputeFrameDimensions_Clamps(t *testing.T) {
	cases := []struct {
		rawW       int
		wantW      int
		minH, maxH int
	}{
		{100, 640, 360, 1440},
		{1200, 1200, 360, 1440},
		{9999, 2560, 360, 1440},
	}
	for _, tc := range cases {
		w, h := ComputeFrameDimensions(tc.rawW)
		if w != tc.wantW {
			t.Fatalf("raw %d: width %d want %d", tc.rawW, w, tc.wantW)
		}
		if h < tc.minH || h > tc.maxH {
			t.Fatalf("raw %d: height %d outside [%d,%d]", tc.rawW, h, tc.minH, tc.maxH)
		}
	}
}

func TestChapterTickStep(t *testing.T) {
	cases := []struct {
		span, maxLabels, want int
	}{
		{9, 12, 1},
		{9, 5, 2},
		{40, 10, 5},
		{100, 8, 20},
		{0, 10, 1},
	}
	for _, tc := range cases {
		if got := ChapterTickStep(tc.span, tc.maxLabels); got != tc.want {
			t.Fatalf("span=%d max=%d: got %d want %d", tc.span, tc.maxLabels, got, tc.want)
		}
	}
}

func TestChapterTickStep_NeverExceedsBudget(t *testing.T) {
	for span := 1; span < 300; span += 7 {
		for max := 2; max < 30; max += 3 {
			step := ChapterTickStep(span, max)
			if labels := span/step + 1; labels > max {
				t.Fatalf("span=%d max=%d step=%d yields %d labels", span, max, step, labels)
			}
		}
	}
}

func TestMaxChapterLabels(t *testing.T) {
	if got := MaxChapterLabels(70); got != 2 {
		t.Fatalf("tiny frame should floor at 2, got %d", got)
	}
	if got := MaxChapterLabels(1400); got != 20 {
		t.Fatalf("1400px frame: got %d want 20", got)
	}
}

func TestFormatChapter(t *testing.T) {
	if got := FormatChapter(7); got != "Ch 7" {
		t.Fatalf("got %q", got)
	}
}
