package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Marksio90/Narrative-OS-sub001/src/scene"
)

// Dataset is the JSON feed supplied by the surrounding application: the
// engine consumes it wholesale and never writes it back.
type Dataset struct {
	Events []scene.Event        `json:"events"`
	Bands  []scene.ConflictBand `json:"bands"`
	Nodes  []scene.Node         `json:"nodes"`
	Edges  []scene.Edge         `json:"edges"`
	Lanes  []string             `json:"lanes"`
}

// LoadDataset reads a dataset file; an empty path returns the built-in
// sample so the viewer always has something to show.
func LoadDataset(path string) (Dataset, error) {
	if path == "" {
		return SampleDataset().normalized(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read dataset: %w", err)
	}
	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return Dataset{}, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	return ds.normalized(), nil
}

// normalized fills derived fields: lane order defaults to first
// appearance, edges are deduplicated by unordered pair.
func (ds Dataset) normalized() Dataset {
	if len(ds.Lanes) == 0 {
		seen := map[string]bool{}
		for _, ev := range ds.Events {
			if !seen[ev.Layer] {
				seen[ev.Layer] = true
				ds.Lanes = append(ds.Lanes, ev.Layer)
			}
		}
	}
	ds.Edges = scene.DedupeEdges(ds.Edges)
	return ds
}

// SampleDataset is a small story used by the demo and the snapshots
// command: ten chapters of plot/character/world beats plus a five-cast
// relationship graph.
func SampleDataset() Dataset {
	return Dataset{
		Lanes: []string{"plot", "character", "world"},
		Events: []scene.Event{
			{ID: 1, Chapter: 1, Layer: "plot", Major: true, Label: "Opening image"},
			{ID: 2, Chapter: 2, Layer: "character", Label: "Aria introduced"},
			{ID: 3, Chapter: 3, Layer: "plot", Major: true, Label: "Inciting incident", Mutable: true},
			{ID: 4, Chapter: 4, Layer: "world", Label: "The border wardens"},
			{ID: 5, Chapter: 5, Layer: "plot", Mutable: true, Label: "First reversal"},
			{ID: 6, Chapter: 6, Layer: "character", Major: true, Label: "Brask's betrayal", Tags: []string{"twist"}},
			{ID: 7, Chapter: 8, Layer: "plot", Major: true, Label: "Midpoint", Mutable: true},
			{ID: 8, Chapter: 9, Layer: "world", Label: "Siege of Vell"},
			{ID: 9, Chapter: 10, Layer: "plot", Major: true, Label: "Dark night"},
		},
		Bands: []scene.ConflictBand{
			{FromChapter: 5, ToChapter: 6, Severity: 0.7},
			{FromChapter: 9, ToChapter: 10, Severity: 0.4},
		},
		Nodes: []scene.Node{
			{ID: 1, Label: "Aria", Category: "ally", Major: true},
			{ID: 2, Label: "Brask", Category: "rival", Major: true},
			{ID: 3, Label: "Cole", Category: "mentor"},
			{ID: 4, Label: "Dara", Category: "family"},
			{ID: 5, Label: "Ezren", Category: "romance"},
		},
		Edges: []scene.Edge{
			{Source: 1, Target: 2, Category: "rival", Strength: 8},
			{Source: 1, Target: 3, Category: "mentor", Strength: 5},
			{Source: 1, Target: 4, Category: "family", Strength: 6},
			{Source: 1, Target: 5, Category: "romance", Strength: 7},
			{Source: 2, Target: 3, Category: "rival", Strength: 3},
			// Declared from both ends on purpose; dedupe keeps one.
			{Source: 2, Target: 1, Category: "ally", Strength: 1},
		},
	}
}
