// Package scroll drives the capture/scroll/stitch loop that turns a
// scrolling document into one tall screenshot.
package scroll

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/rs/zerolog"

	"github.com/likx/scrollsnap/internal/logger"
	"github.com/likx/scrollsnap/internal/match"
)

// MinRegionSize is the hard minimum for either region dimension; smaller
// regions do not give overlap detection enough signal.
const MinRegionSize = 50

var (
	ErrRegionTooSmall   = errors.New("region too small (minimum 50x50 pixels)")
	ErrAlreadyCapturing = errors.New("capture already in progress")
	ErrNoFrames         = errors.New("no frames captured")
)

// State is the engine's session state
type State int

const (
	StateIdle State = iota
	StateCapturing
	StateStitching
	StateCompleted
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCapturing:
		return "capturing"
	case StateStitching:
		return "stitching"
	case StateCompleted:
		return "completed"
	case StateError:
		return "error"
	}
	return "unknown"
}

// FrameSource produces one bitmap of a fixed screen region on demand
type FrameSource interface {
	CaptureRegion(x, y, width, height int) (*image.RGBA, error)
}

// Scroller advances the underlying content by one page
type Scroller interface {
	ScrollDown() error
	Name() string
}

// OverlapDetector measures vertical content overlap between two frames
type OverlapDetector interface {
	FindOverlap(prev, next image.Image, opts match.Options) (int, error)
}

// Options tune a capture session
type Options struct {
	// MaxFrames is the safety cap on stored frames, guarding against
	// infinitely-scrolling pages.
	MaxFrames int

	// Delay is the cooperative wait between a scroll and the next
	// capture, giving the scrolled UI time to finish rendering.
	Delay time.Duration

	// DuplicateFraction: when a new frame overlaps the previous one by at
	// least this fraction of the region height, the scroll is considered
	// to have had no effect and the session ends. Heuristic, tunable.
	DuplicateFraction float64

	// Match tunes overlap detection.
	Match match.Options

	// Detector overrides the default template matcher. Nil selects the
	// shared gocv-backed matcher.
	Detector OverlapDetector
}

// DefaultOptions returns the default session tuning
func DefaultOptions() Options {
	return Options{
		MaxFrames:         50,
		Delay:             300 * time.Millisecond,
		DuplicateFraction: 0.9,
		Match:             match.DefaultOptions(),
	}
}

// ProgressFunc receives the stored frame count and the estimated total
// height of the stitched output so far.
type ProgressFunc func(frameCount, estimatedHeight int)

// Result is the outcome of a finished capture session
type Result struct {
	Image       *image.RGBA
	FrameCount  int
	TotalHeight int
}

// Engine orchestrates repeated frame capture, scroll injection, and
// overlap detection, then stitches the accumulated frames.
//
// The engine performs no internal threading: the caller drives the loop by
// alternating CaptureFrame and ScrollDown with a delay between cycles, and
// may call Stop at any yield point. Exactly one session is active at a
// time; after Finish the engine is reusable via Start.
type Engine struct {
	source   FrameSource
	scroller Scroller
	detector OverlapDetector
	opts     Options
	log      *zerolog.Logger

	state         State
	region        image.Rectangle
	frames        []*image.RGBA
	overlaps      []int
	stopRequested bool
	onProgress    ProgressFunc
}

// NewEngine creates an engine bound to a frame source and scroller
func NewEngine(source FrameSource, scroller Scroller, opts Options) *Engine {
	detector := opts.Detector
	if detector == nil {
		detector = match.Default()
	}
	return &Engine{
		source:   source,
		scroller: scroller,
		detector: detector,
		opts:     opts,
		log:      logger.WithComponent("scroll-engine"),
		state:    StateIdle,
	}
}

// State returns the current session state
func (e *Engine) State() State {
	return e.state
}

// FrameCount returns the number of stored frames
func (e *Engine) FrameCount() int {
	return len(e.frames)
}

// Start arms a new capture session for the given region. No frame is
// captured yet; the first CaptureFrame call grabs frame zero.
func (e *Engine) Start(region image.Rectangle, onProgress ProgressFunc) error {
	if e.state == StateCapturing {
		return ErrAlreadyCapturing
	}
	if region.Dx() < MinRegionSize || region.Dy() < MinRegionSize {
		return ErrRegionTooSmall
	}

	e.region = region
	e.frames = nil
	e.overlaps = nil
	e.stopRequested = false
	e.onProgress = onProgress
	e.state = StateCapturing

	e.log.Info().
		Int("x", region.Min.X).
		Int("y", region.Min.Y).
		Int("width", region.Dx()).
		Int("height", region.Dy()).
		Msg("Scroll capture started")
	return nil
}

// CaptureFrame performs one step of the capture loop: grab the region,
// measure overlap against the previous frame, and decide whether the loop
// should continue.
//
// A false return with a nil error is normal termination (stop requested,
// frame cap reached, end of content, or a no-op scroll); a non-nil error
// means the session broke. Either way the caller may still call Finish to
// stitch whatever was stored.
func (e *Engine) CaptureFrame() (bool, error) {
	if e.state != StateCapturing || e.stopRequested {
		return false, nil
	}

	if len(e.frames) >= e.opts.MaxFrames {
		e.log.Info().Int("max_frames", e.opts.MaxFrames).Msg("Frame limit reached, stopping")
		return false, nil
	}

	img, err := e.source.CaptureRegion(e.region.Min.X, e.region.Min.Y, e.region.Dx(), e.region.Dy())
	if err != nil {
		// A failed grab usually means the scrolled window went away,
		// which invalidates the rest of the session too. Not retried.
		return false, fmt.Errorf("capture failed: %w", err)
	}

	if len(e.frames) == 0 {
		// First frame: nothing to compare against, store unconditionally
		e.frames = append(e.frames, img)
		e.notifyProgress()
		return true, nil
	}

	overlap, err := e.detector.FindOverlap(e.frames[len(e.frames)-1], img, e.opts.Match)
	if err != nil {
		return false, fmt.Errorf("overlap detection failed: %w", err)
	}

	if overlap == 0 {
		// No confident match: the scrollable content has ended
		e.log.Info().Int("frames", len(e.frames)).Msg("No overlap found, end of content")
		return false, nil
	}

	if float64(overlap) >= float64(e.region.Dy())*e.opts.DuplicateFraction {
		// Near-total overlap: the scroll did not move the content
		// (injection not registered, or the page is at its end)
		e.log.Info().
			Int("overlap", overlap).
			Int("height", e.region.Dy()).
			Msg("Duplicate content, scroll had no effect")
		return false, nil
	}

	e.overlaps = append(e.overlaps, overlap)
	e.frames = append(e.frames, img)

	e.log.Debug().
		Int("frame", len(e.frames)).
		Int("overlap", overlap).
		Msg("Frame stored")

	e.notifyProgress()
	return true, nil
}

// ScrollDown injects one page of scroll input. Whether content actually
// moved is verified by the next CaptureFrame's overlap check.
func (e *Engine) ScrollDown() error {
	if err := e.scroller.ScrollDown(); err != nil {
		e.log.Warn().Err(err).Str("tool", e.scroller.Name()).Msg("Scroll injection failed")
		return err
	}
	return nil
}

// Stop requests termination of the capture loop. It takes effect at the
// top of the next CaptureFrame call. Idempotent.
func (e *Engine) Stop() {
	e.stopRequested = true
}

// Finish stitches the accumulated frames and ends the session. The engine
// needs a new Start afterwards.
func (e *Engine) Finish() (*Result, error) {
	if len(e.frames) == 0 {
		e.state = StateError
		return nil, ErrNoFrames
	}

	if len(e.frames) == 1 {
		e.state = StateCompleted
		frame := e.frames[0]
		return &Result{
			Image:       frame,
			FrameCount:  1,
			TotalHeight: frame.Bounds().Dy(),
		}, nil
	}

	e.state = StateStitching
	stitched, err := Stitch(e.frames, e.overlaps)
	if err != nil {
		e.state = StateError
		return nil, fmt.Errorf("stitching failed: %w", err)
	}

	e.state = StateCompleted
	e.log.Info().
		Int("frames", len(e.frames)).
		Int("total_height", stitched.Bounds().Dy()).
		Msg("Frames stitched")

	return &Result{
		Image:       stitched,
		FrameCount:  len(e.frames),
		TotalHeight: stitched.Bounds().Dy(),
	}, nil
}

// Reset forcibly clears session state back to idle
func (e *Engine) Reset() {
	e.state = StateIdle
	e.frames = nil
	e.overlaps = nil
	e.stopRequested = false
	e.onProgress = nil
}

func (e *Engine) notifyProgress() {
	if e.onProgress != nil {
		e.onProgress(len(e.frames), e.estimateTotalHeight())
	}
}

// estimateTotalHeight is the height the stitched output would have if the
// session finished now.
func (e *Engine) estimateTotalHeight() int {
	if len(e.frames) == 0 {
		return 0
	}
	total := e.frames[0].Bounds().Dy()
	for i, frame := range e.frames[1:] {
		overlap := 0
		if i < len(e.overlaps) {
			overlap = e.overlaps[i]
		}
		total += frame.Bounds().Dy() - overlap
	}
	return total
}
