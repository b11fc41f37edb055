package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteAll(t *testing.T) {
	dir := t.TempDir()
	paths, err := writeAll(dir, "../escape.html")
	if err != nil {
		t.Fatalf("writeAll: %v", err)
	}
	want := filepath.Join(dir, "escape.html")
	if last := paths[len(paths)-1]; last != want {
		t.Errorf("html written to %s, want %s", last, want)
	}
	for _, p := range paths {
		if info, err := os.Stat(p); err != nil || info.Size() == 0 {
			t.Errorf("%s missing or empty: %v", p, err)
		}
	}

	paths, err = writeAll(filepath.Join(dir, "png-only"), "")
	if err != nil {
		t.Fatalf("writeAll: %v", err)
	}
	for _, p := range paths {
		if filepath.Ext(p) != ".png" {
			t.Errorf("unexpected output %s", p)
		}
	}
}
