// Package match measures vertical content overlap between consecutive
// frames of a scrolled region using normalized cross-correlation template
// matching on horizontal-edge maps.
package match

import (
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"

	"github.com/likx/scrollsnap/internal/logger"
)

// Options control overlap detection. All values are per-session tunables;
// pages with tall sticky headers need larger ignore fractions.
type Options struct {
	// SearchRange bounds, in pixels, how far into each frame the
	// template and search strips extend.
	SearchRange int

	// IgnoreTop and IgnoreBottom are fractions of the frame height
	// excluded from matching. Fixed UI chrome (headers, footers,
	// toolbars) does not scroll with the content and would otherwise
	// produce false matches.
	IgnoreTop    float64
	IgnoreBottom float64

	// Confidence is the minimum correlation score accepted as a match.
	Confidence float64
}

// DefaultOptions returns the default detection tuning
func DefaultOptions() Options {
	return Options{
		SearchRange:  150,
		IgnoreTop:    0.15,
		IgnoreBottom: 0.15,
		Confidence:   0.7,
	}
}

// Matcher finds the overlap between two frames of the same region
type Matcher struct{}

var (
	defaultOnce    sync.Once
	defaultMatcher *Matcher
)

// Default returns the shared matcher, constructing it on first use so the
// OpenCV machinery is only touched when a scroll session actually runs.
func Default() *Matcher {
	defaultOnce.Do(func() {
		defaultMatcher = &Matcher{}
		logger.WithComponent("match").Debug().
			Str("opencv", gocv.OpenCVVersion()).
			Msg("Template matcher initialized")
	})
	return defaultMatcher
}

// FindOverlap returns how many pixel rows at the bottom of prev repeat at
// the top of next, or 0 when no match clears the confidence threshold
// (which the capture loop treats as end of scrollable content).
//
// The template is the edge-map strip above prev's bottom ignore margin; it
// is correlated against the strip below next's top ignore margin. Matching
// on vertical-gradient edge maps instead of raw pixels is robust to
// anti-aliasing jitter and large flat color regions.
func (m *Matcher) FindOverlap(prev, next image.Image, opts Options) (int, error) {
	prevMat, err := gocv.ImageToMatRGB(prev)
	if err != nil {
		return 0, fmt.Errorf("failed to convert previous frame: %w", err)
	}
	defer prevMat.Close()

	nextMat, err := gocv.ImageToMatRGB(next)
	if err != nil {
		return 0, fmt.Errorf("failed to convert new frame: %w", err)
	}
	defer nextMat.Close()

	prevEdges := edgeMap(prevMat)
	defer prevEdges.Close()
	nextEdges := edgeMap(nextMat)
	defer nextEdges.Close()

	h := prevEdges.Rows()
	ignoreTopPx := int(float64(h) * opts.IgnoreTop)
	ignoreBottomPx := int(float64(h) * opts.IgnoreBottom)

	// Template: bottom strip of the previous frame above its ignore margin
	templateStart := h - opts.SearchRange - ignoreBottomPx
	if templateStart < 0 {
		templateStart = 0
	}
	templateEnd := h - ignoreBottomPx
	if templateEnd <= templateStart {
		return 0, nil
	}

	// Search window: top strip of the new frame below its ignore margin
	searchEnd := opts.SearchRange + ignoreTopPx
	if searchEnd > nextEdges.Rows() {
		searchEnd = nextEdges.Rows()
	}
	if searchEnd <= ignoreTopPx {
		return 0, nil
	}

	template := prevEdges.Region(image.Rect(0, templateStart, prevEdges.Cols(), templateEnd))
	defer template.Close()
	searchArea := nextEdges.Region(image.Rect(0, ignoreTopPx, nextEdges.Cols(), searchEnd))
	defer searchArea.Close()

	if template.Rows() == 0 || searchArea.Rows() < template.Rows() {
		return 0, nil
	}

	result := gocv.NewMat()
	defer result.Close()
	mask := gocv.NewMat()
	defer mask.Close()
	gocv.MatchTemplate(searchArea, template, &result, gocv.TmCcoeffNormed, mask)

	_, maxVal, _, maxLoc := gocv.MinMaxLoc(result)

	logger.WithComponent("match").Debug().
		Float32("score", maxVal).
		Int("match_y", maxLoc.Y).
		Int("template_start", templateStart).
		Msg("Template match")

	if float64(maxVal) < opts.Confidence {
		return 0, nil
	}

	matchY := maxLoc.Y + ignoreTopPx
	overlap := h - templateStart + matchY
	if overlap > h {
		overlap = h
	}
	if overlap < 0 {
		overlap = 0
	}
	return overlap, nil
}

// edgeMap converts a frame to an absolute vertical-gradient (horizontal
// edge) response via a Sobel filter on the grayscale image.
func edgeMap(src gocv.Mat) gocv.Mat {
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorRGBToGray)

	grad := gocv.NewMat()
	defer grad.Close()
	gocv.Sobel(gray, &grad, gocv.MatTypeCV64F, 0, 1, 3, 1, 0, gocv.BorderDefault)

	edges := gocv.NewMat()
	gocv.ConvertScaleAbs(grad, &edges, 1, 0)
	return edges
}
