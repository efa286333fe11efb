// Package capture grabs bitmaps of fixed screen regions.
package capture

import "image"

// Backend defines the interface for screen capture backends
type Backend interface {
	// CaptureRegion captures a specific region of the screen
	// Returns an RGBA image of the region content
	CaptureRegion(x, y, width, height int) (*image.RGBA, error)

	// Name returns a human-readable name for this backend
	Name() string

	// IsAvailable checks if this backend can be used in the current environment
	IsAvailable() bool

	// Close releases any connections held by the backend
	Close() error
}
