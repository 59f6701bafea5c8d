package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Marksio90/Narrative-OS-sub001/src/vizconfig"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestRunSnapshotsMode(t *testing.T) {
	dir := t.TempDir()
	ds := SampleDataset().normalized()
	if err := RunSnapshotsMode(ds, vizconfig.Default(), dir, 1280); err != nil {
		t.Fatalf("snapshots: %v", err)
	}
	for _, name := range []string{"timeline.png", "graph.png"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if !bytes.HasPrefix(data, pngMagic) {
			t.Fatalf("%s is not a PNG", name)
		}
	}
}

func TestRunSnapshotsMode_EmptyDataset(t *testing.T) {
	dir := t.TempDir()
	if err := RunSnapshotsMode(Dataset{}, vizconfig.Default(), dir, 800); err != nil {
		t.Fatalf("empty dataset snapshots: %v", err)
	}
}

func TestRunSnapshotsMode_BadOutDir(t *testing.T) {
	// A file where the directory should go makes MkdirAll fail.
	base := t.TempDir()
	blocker := filepath.Join(base, "occupied")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	if err := RunSnapshotsMode(SampleDataset(), vizconfig.Default(), blocker, 800); err == nil {
		t.Fatalf("expected error when out dir is a file")
	}
}
