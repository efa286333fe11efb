package scroll

import (
	"fmt"
	"image"
	"image/draw"
)

// Stitch composites an ordered frame list into a single tall image using
// the recorded overlaps. Each frame is painted overlaps[i] pixels above
// where the previous frame ended, so duplicated content is painted twice
// (later frame wins) but occupies no extra vertical space.
//
// The output height is exactly
//
//	frames[0].h + sum(frames[i+1].h - overlaps[i])
func Stitch(frames []*image.RGBA, overlaps []int) (*image.RGBA, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	if len(frames) == 1 {
		return frames[0], nil
	}

	width := frames[0].Bounds().Dx()
	totalHeight := frames[0].Bounds().Dy()
	for i, frame := range frames[1:] {
		if frame.Bounds().Dx() != width {
			return nil, fmt.Errorf("frame %d width %d does not match first frame width %d",
				i+1, frame.Bounds().Dx(), width)
		}
		overlap := 0
		if i < len(overlaps) {
			overlap = overlaps[i]
		}
		totalHeight += frame.Bounds().Dy() - overlap
	}

	out := image.NewRGBA(image.Rect(0, 0, width, totalHeight))

	first := frames[0]
	draw.Draw(out, image.Rect(0, 0, width, first.Bounds().Dy()), first, first.Bounds().Min, draw.Src)

	yOffset := first.Bounds().Dy()
	for i, frame := range frames[1:] {
		overlap := 0
		if i < len(overlaps) {
			overlap = overlaps[i]
		}
		yOffset -= overlap
		h := frame.Bounds().Dy()
		draw.Draw(out, image.Rect(0, yOffset, width, yOffset+h), frame, frame.Bounds().Min, draw.Src)
		yOffset += h
	}

	return out, nil
}
