// Package uihelpers holds pure layout math shared by the viewer window
// and the headless snapshots mode, kept free of Fyne types so it is
// trivially testable.
package uihelpers

import "strconv"

// ComputeFrameDimensions applies the width/height clamp rules used for
// rendered frames. Input: desired raw width (e.g. window width).
// Returns clamped width & height with a 16:9-ish aspect.
func ComputeFrameDimensions(rawW int) (int, int) {
	w := rawW
	if w < 640 {
		w = 640
	}
	if w > 2560 {
		w = 2560
	}
	h := int(float32(w) * 0.56)
	if h < 360 {
		h = 360
	}
	if h > 1440 {
		h = 1440
	}
	return w, h
}

// ChapterTickStep picks the label stride for a chapter axis so at most
// maxLabels labels are drawn: 1, 2, 5, 10, 20, 50... pattern.
func ChapterTickStep(spanChapters, maxLabels int) int {
	if maxLabels < 2 {
		maxLabels = 2
	}
	if spanChapters <= 0 {
		return 1
	}
	steps := []int{1, 2, 5}
	mag := 1
	for {
		for _, s := range steps {
			step := s * mag
			if spanChapters/step+1 <= maxLabels {
				return step
			}
		}
		mag *= 10
	}
}

// MaxChapterLabels derives how many axis labels fit a frame width,
// assuming ~70px per label.
func MaxChapterLabels(frameW int) int {
	n := frameW / 70
	if n < 2 {
		n = 2
	}
	return n
}

// FormatChapter renders the axis label for a chapter number.
func FormatChapter(ch int) string { return "Ch " + strconv.Itoa(ch) }
