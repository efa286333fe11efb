package scroll

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestStitchHeightInvariant(t *testing.T) {
	tests := []struct {
		name     string
		heights  []int
		overlaps []int
		want     int
	}{
		{"two frames", []int{600, 600}, []int{200}, 1000},
		{"four frames equal overlap", []int{600, 600, 600, 600}, []int{200, 200, 200}, 1800},
		{"varying overlaps", []int{300, 250, 400}, []int{50, 120}, 780},
		{"zero overlap", []int{100, 100}, []int{0}, 200},
		{"uneven frame heights", []int{500, 300, 200}, []int{100, 60}, 840},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var frames []*image.RGBA
			for _, h := range tt.heights {
				frames = append(frames, solidFrame(80, h, color.RGBA{A: 255}))
			}

			out, err := Stitch(frames, tt.overlaps)
			if err != nil {
				t.Fatalf("Stitch failed: %v", err)
			}
			if got := out.Bounds().Dy(); got != tt.want {
				t.Errorf("stitched height = %d, want %d", got, tt.want)
			}
			if got := out.Bounds().Dx(); got != 80 {
				t.Errorf("stitched width = %d, want 80", got)
			}
		})
	}
}

func TestStitchCompositesInOrder(t *testing.T) {
	colors := []color.RGBA{
		{R: 255, A: 255},
		{G: 255, A: 255},
		{B: 255, A: 255},
	}
	frames := []*image.RGBA{
		solidFrame(40, 100, colors[0]),
		solidFrame(40, 100, colors[1]),
		solidFrame(40, 100, colors[2]),
	}
	overlaps := []int{30, 20}

	out, err := Stitch(frames, overlaps)
	if err != nil {
		t.Fatalf("Stitch failed: %v", err)
	}
	if got := out.Bounds().Dy(); got != 250 {
		t.Fatalf("stitched height = %d, want 250", got)
	}

	// Frame starts: 0, 70, 150. Later frames paint over the overlap, so
	// each band below a start row takes the later frame's color.
	checks := []struct {
		y    int
		want color.RGBA
	}{
		{0, colors[0]},
		{69, colors[0]},
		{70, colors[1]}, // overlap rows repainted by frame 1
		{149, colors[1]},
		{150, colors[2]}, // overlap rows repainted by frame 2
		{249, colors[2]},
	}
	for _, c := range checks {
		if got := out.RGBAAt(20, c.y); got != c.want {
			t.Errorf("pixel at y=%d = %v, want %v", c.y, got, c.want)
		}
	}
}

func TestStitchRoundTrip(t *testing.T) {
	// Frames cut from one document must stitch back to that document
	doc := noiseImage(60, 500, 7)
	frames := []*image.RGBA{
		cropRows(doc, 0, 200),
		cropRows(doc, 150, 200),
		cropRows(doc, 300, 200),
	}
	overlaps := []int{50, 50}

	out, err := Stitch(frames, overlaps)
	if err != nil {
		t.Fatalf("Stitch failed: %v", err)
	}
	if got := out.Bounds().Dy(); got != 500 {
		t.Fatalf("stitched height = %d, want 500", got)
	}

	for y := 0; y < 500; y += 13 {
		for x := 0; x < 60; x += 7 {
			if got, want := out.RGBAAt(x, y), doc.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestStitchEdgeCases(t *testing.T) {
	if _, err := Stitch(nil, nil); !errors.Is(err, ErrNoFrames) {
		t.Errorf("Stitch(nil) = %v, want ErrNoFrames", err)
	}

	single := solidFrame(50, 60, color.RGBA{A: 255})
	out, err := Stitch([]*image.RGBA{single}, nil)
	if err != nil {
		t.Fatalf("single-frame Stitch failed: %v", err)
	}
	if out != single {
		t.Error("single-frame Stitch should return the frame unchanged")
	}

	mismatched := []*image.RGBA{
		solidFrame(50, 60, color.RGBA{A: 255}),
		solidFrame(40, 60, color.RGBA{A: 255}),
	}
	if _, err := Stitch(mismatched, []int{10}); err == nil {
		t.Error("expected error for mismatched frame widths")
	}
}
