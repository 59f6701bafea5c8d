package main

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/Marksio90/Narrative-OS-sub001/cmd/storyviz/uihelpers"
	"github.com/Marksio90/Narrative-OS-sub001/src/render"
	"github.com/Marksio90/Narrative-OS-sub001/src/vizconfig"
)

// RunSnapshotsMode renders both views headlessly and writes them as
// PNGs under outDir. No window is created; the graph is settled by
// stepping the simulation a fixed number of ticks first.
func RunSnapshotsMode(ds Dataset, cfg vizconfig.Config, outDir string, width int) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}
	w, h := uihelpers.ComputeFrameDimensions(width)

	tl := newTimelineCore(cfg)
	tl.Resize(w, h)
	tl.SetData(ds.Events, ds.Bands, ds.Lanes)

	gr := newGraphCore(cfg)
	gr.Resize(w, h)
	gr.SetData(ds.Nodes, ds.Edges)
	for i := 0; i < 300; i++ {
		gr.sim.Step()
	}
	gr.fitView()

	toRender := []struct {
		name string
		img  *image.RGBA
	}{
		{"timeline.png", tl.Frame(w, h)},
		{"graph.png", gr.Frame(w, h)},
	}
	for _, item := range toRender {
		var buf bytes.Buffer
		if err := render.EncodePNG(&buf, item.img); err != nil {
			return fmt.Errorf("render %s: %w", item.name, err)
		}
		outPath := filepath.Join(outDir, item.name)
		if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
	}
	return nil
}
