package output

import (
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
)

func TestValidFormat(t *testing.T) {
	for _, f := range []string{"png", "jpg", "jpeg", "bmp", "PNG"} {
		if !ValidFormat(f) {
			t.Errorf("ValidFormat(%q) = false, want true", f)
		}
	}
	for _, f := range []string{"tiff", "webp", ""} {
		if ValidFormat(f) {
			t.Errorf("ValidFormat(%q) = true, want false", f)
		}
	}
}

func TestDefaultFilename(t *testing.T) {
	name := DefaultFilename("png")
	if !strings.HasPrefix(name, "scroll_") || !strings.HasSuffix(name, ".png") {
		t.Errorf("DefaultFilename = %q, want scroll_<timestamp>.png", name)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 20; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 10), G: uint8(y * 8), A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "captures", "out.png")
	if err := Save(img, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("failed to reopen saved image: %v", err)
	}
	if b := loaded.Bounds(); b.Dx() != 20 || b.Dy() != 30 {
		t.Errorf("saved image bounds = %v, want 20x30", b)
	}
}

func TestSaveRejectsUnknownFormat(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	if err := Save(img, filepath.Join(t.TempDir(), "out.webp")); err == nil {
		t.Error("expected error for unsupported extension")
	}
}
