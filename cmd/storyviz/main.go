// Command storyviz is the interactive canvas viewer for Narrative OS
// story data: a chronological event timeline with drag-to-reschedule
// and a force-directed character relationship graph, both with
// pan/zoom/hover. It also offers a headless snapshots mode for
// rendering both views to PNG without a display.
package main

import (
	"os"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Marksio90/Narrative-OS-sub001/src/scene"
	"github.com/Marksio90/Narrative-OS-sub001/src/vizconfig"
)

var (
	flagConfig  string
	flagData    string
	flagVerbose bool
)

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "storyviz",
		Short:         "Interactive timeline and relationship-graph viewer for Narrative OS",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "optional TOML tunables file")
	root.PersistentFlags().StringVar(&flagData, "file", "", "dataset JSON file (built-in sample when empty)")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
	root.AddCommand(newViewCmd(), newSnapshotsCmd())
	return root
}

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Open the interactive viewer window",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			cfg, err := vizconfig.Load(flagConfig)
			if err != nil {
				return err
			}
			ds, err := LoadDataset(flagData)
			if err != nil {
				return err
			}
			runViewer(logger, cfg, ds)
			return nil
		},
	}
}

func newSnapshotsCmd() *cobra.Command {
	var outDir string
	var width int
	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "Render timeline and graph PNGs headlessly",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			cfg, err := vizconfig.Load(flagConfig)
			if err != nil {
				return err
			}
			ds, err := LoadDataset(flagData)
			if err != nil {
				return err
			}
			if err := RunSnapshotsMode(ds, cfg, outDir, width); err != nil {
				return err
			}
			logger.Info("snapshots written", "dir", outDir)
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "snapshots", "output directory")
	cmd.Flags().IntVar(&width, "width", 1280, "frame width in pixels")
	return cmd
}

// runViewer builds the window: one tab per view, each with its control
// cluster above the canvas. The graph simulation starts with the window
// and is cancelled on close so no ticker outlives the canvas.
func runViewer(logger *log.Logger, cfg vizconfig.Config, ds Dataset) {
	a := app.New()
	w := a.NewWindow("Narrative OS — Story Canvas")

	tl := newTimelineCore(cfg)
	tl.SetData(ds.Events, ds.Bands, ds.Lanes)
	tl.onMove = func(id, chapter int) {
		// External collaborator hook: the data layer owns the mutation.
		logger.Info("event rescheduled", "id", id, "chapter", chapter)
	}
	tl.onActivate = func(ev scene.Event) {
		logger.Info("event activated", "id", ev.ID, "label", ev.Label)
	}
	timelineTab := container.NewBorder(newControlCluster(tl), nil, nil, nil, newCanvasView(tl))

	gr := newGraphCore(cfg)
	gr.SetData(ds.Nodes, ds.Edges)
	gr.onActivate = func(n scene.Node) {
		logger.Info("node activated", "id", n.ID, "label", n.Label)
	}
	graphTab := container.NewBorder(newControlCluster(gr), nil, nil, nil, newCanvasView(gr))

	tabs := container.NewAppTabs(
		container.NewTabItem("Timeline", timelineTab),
		container.NewTabItem("Relationships", graphTab),
	)
	w.SetContent(tabs)
	w.Resize(fyne.NewSize(1100, 700))

	gr.Start(func(f func()) { fyne.Do(f) })
	w.SetOnClosed(func() {
		gr.Stop()
		logger.Debug("simulation ticker cancelled")
	})

	logger.Debug("viewer starting",
		"events", len(ds.Events), "nodes", len(ds.Nodes), "edges", len(ds.Edges))
	w.ShowAndRun()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error("storyviz failed", "err", err)
		os.Exit(1)
	}
}
