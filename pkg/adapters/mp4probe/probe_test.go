package mp4probe

import (
	"os"
	"path/filepath"
	"testing"
)

func TestProbe_MissingFile(t *testing.T) {
	if _, err := Probe(filepath.Join(t.TempDir(), "missing.mp4")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestProbe_NotAnMP4(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.mp4")
	if err := os.WriteFile(path, []byte("not an mp4 container"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := Probe(path); err == nil {
		t.Fatal("expected error for invalid container")
	}
}
