// Package display detects which display server the current session runs on.
package display

import (
	"os"
	"strings"
)

// Server identifies a display server type
type Server string

const (
	X11     Server = "x11"
	Wayland Server = "wayland"
	Unknown Server = "unknown"
)

// Detect probes the session environment for the active display server.
// Wayland is checked first: XWayland sessions export DISPLAY too, and the
// native protocol is the one that decides which injection tools work.
func Detect() Server {
	sessionType := strings.ToLower(os.Getenv("XDG_SESSION_TYPE"))
	if strings.Contains(sessionType, "wayland") || os.Getenv("WAYLAND_DISPLAY") != "" {
		return Wayland
	}
	if os.Getenv("DISPLAY") != "" {
		return X11
	}
	return Unknown
}
