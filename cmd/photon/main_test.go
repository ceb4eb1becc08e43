package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/aeonrender/photon/pkg/core"
	"github.com/aeonrender/photon/pkg/film"
)

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "", "c"); got != "c" {
		t.Errorf("expected first non-empty string 'c', got %q", got)
	}
	if got := firstNonEmpty("a", "b"); got != "a" {
		t.Errorf("expected the earliest non-empty argument to win, got %q", got)
	}
	if got := firstNonEmpty("", ""); got != "" {
		t.Errorf("expected empty string when all arguments are empty, got %q", got)
	}
}

func TestFirstPositiveInt(t *testing.T) {
	if got := firstPositiveInt(0, 0, 5); got != 5 {
		t.Errorf("expected 5, got %d", got)
	}
	if got := firstPositiveInt(-1, 3); got != 3 {
		t.Errorf("expected a negative value to be skipped, got %d", got)
	}
	if got := firstPositiveInt(0, 0); got != 0 {
		t.Errorf("expected 0 when no argument is positive, got %d", got)
	}
}

func TestFirstPositiveFloat(t *testing.T) {
	if got := firstPositiveFloat(0, 1.5); got != 1.5 {
		t.Errorf("expected 1.5, got %f", got)
	}
}

func TestWritePreviewPNG(t *testing.T) {
	f := film.New(4, 4, film.Box{R: core.NewVec2(0.5, 0.5)})
	f.ApplySample(core.NewVec2(2, 2), core.NewVec3(1, 1, 1))

	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")
	if err := writePreviewPNG(f, path); err != nil {
		t.Fatalf("writePreviewPNG failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open written PNG: %v", err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("failed to decode written PNG: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 4 {
		t.Errorf("unexpected image dimensions: %v", img.Bounds())
	}
}
