package main

import (
	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// newControlCluster builds the zoom-in / zoom-out / fit / reset button
// row that drives the view's viewport directly.
func newControlCluster(core viewCore) *fyne.Container {
	zoomIn := widget.NewButtonWithIcon("", theme.ZoomInIcon(), core.zoomIn)
	zoomOut := widget.NewButtonWithIcon("", theme.ZoomOutIcon(), core.zoomOut)
	fit := widget.NewButtonWithIcon("Fit", theme.ZoomFitIcon(), core.fitView)
	reset := widget.NewButtonWithIcon("Reset", theme.ViewRefreshIcon(), core.resetView)
	return container.NewHBox(zoomIn, zoomOut, fit, reset, layout.NewSpacer())
}
