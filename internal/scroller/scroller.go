// Package scroller injects scroll input through platform-specific tools.
package scroller

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/likx/scrollsnap/internal/display"
	"github.com/likx/scrollsnap/internal/logger"
)

const (
	probeTimeout  = 2 * time.Second
	scrollTimeout = time.Second

	// wheelClicks is how many discrete wheel events make up one "page" of
	// scroll distance. Matched to the per-frame overlap search range so
	// successive frames keep detectable overlap.
	wheelClicks = 3
)

// ErrNoScrollTool indicates that no scroll-injection tool is installed
// for the current display server.
var ErrNoScrollTool = errors.New("no scroll-injection tool available")

// Scroller advances the content under the capture region by one page
type Scroller interface {
	// ScrollDown injects one page worth of downward scroll input. It does
	// not verify that content actually moved; the capture loop's overlap
	// check does that on the next frame.
	ScrollDown() error

	// Name returns the underlying tool name
	Name() string
}

// New selects a scroll-injection tool for the given display server. The
// choice is made once here; it is never re-probed mid-session.
func New(server display.Server) (Scroller, error) {
	log := logger.WithComponent("scroller")

	switch server {
	case display.Wayland:
		if probeTool("ydotool", "--help") {
			log.Info().Str("tool", "ydotool").Msg("Scroll tool selected")
			return &ydotoolScroller{}, nil
		}
		if probeTool("wtype", "--help") {
			log.Info().Str("tool", "wtype").Msg("Scroll tool selected")
			return &wtypeScroller{}, nil
		}
		return nil, fmt.Errorf("%w: install ydotool (universal Wayland) or wtype (wlroots/Sway)", ErrNoScrollTool)
	default:
		// X11 and unknown sessions use xdotool
		if probeTool("xdotool", "--version") {
			log.Info().Str("tool", "xdotool").Msg("Scroll tool selected")
			return &xdotoolScroller{}, nil
		}
		return nil, fmt.Errorf("%w: install xdotool", ErrNoScrollTool)
	}
}

// probeTool checks that a tool exists and answers a trivial invocation.
// wtype exits non-zero on --help, so only "binary missing" counts as
// unavailable there; run errors from a present binary are fine.
func probeTool(name string, arg string) bool {
	if _, err := exec.LookPath(name); err != nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	err := exec.CommandContext(ctx, name, arg).Run()
	if err != nil && ctx.Err() != nil {
		// Tool hung; treat as unusable
		return false
	}
	return true
}

// runTool executes a scroll-injection command with a short timeout
func runTool(name string, args ...string) error {
	ctx, cancel := context.WithTimeout(context.Background(), scrollTimeout)
	defer cancel()
	if err := exec.CommandContext(ctx, name, args...).Run(); err != nil {
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return nil
}
