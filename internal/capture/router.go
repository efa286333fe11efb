package capture

import (
	"fmt"
	"image"

	"github.com/likx/scrollsnap/internal/display"
	"github.com/likx/scrollsnap/internal/logger"
)

// Router selects a capture backend for the detected display server and
// delegates region grabs to it. The backend is probed once at construction
// and never re-probed mid-session.
type Router struct {
	backend Backend
}

// NewRouter probes capture backends in order of preference for the given
// display server and returns a router bound to the first one that works.
func NewRouter(server display.Server) (*Router, error) {
	log := logger.WithComponent("capture")

	var probeOrder []func() (Backend, error)
	switch server {
	case display.Wayland:
		probeOrder = []func() (Backend, error){newWayland, newX11}
	default:
		// X11 and unknown sessions: prefer the direct X connection
		probeOrder = []func() (Backend, error){newX11, newWayland}
	}

	var lastErr error
	for _, probe := range probeOrder {
		backend, err := probe()
		if err != nil {
			log.Debug().Err(err).Msg("Capture backend not available")
			lastErr = err
			continue
		}
		log.Info().Str("backend", backend.Name()).Msg("Capture backend selected")
		return &Router{backend: backend}, nil
	}

	return nil, fmt.Errorf("no capture backend available: %w", lastErr)
}

func newX11() (Backend, error) {
	return NewX11Backend()
}

func newWayland() (Backend, error) {
	return NewWaylandBackend()
}

// Backend returns the selected backend
func (r *Router) Backend() Backend {
	return r.backend
}

// CaptureRegion captures a region using the selected backend
func (r *Router) CaptureRegion(x, y, width, height int) (*image.RGBA, error) {
	return r.backend.CaptureRegion(x, y, width, height)
}

// Close releases the selected backend
func (r *Router) Close() error {
	return r.backend.Close()
}
