package display

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name           string
		sessionType    string
		waylandDisplay string
		x11Display     string
		want           Server
	}{
		{"wayland session type", "wayland", "", "", Wayland},
		{"wayland display set", "", "wayland-0", "", Wayland},
		{"wayland wins over x11 display", "wayland", "wayland-0", ":0", Wayland},
		{"x11 session", "x11", "", ":0", X11},
		{"x11 display only", "", "", ":1", X11},
		{"nothing set", "", "", "", Unknown},
		{"tty session no display", "tty", "", "", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_SESSION_TYPE", tt.sessionType)
			t.Setenv("WAYLAND_DISPLAY", tt.waylandDisplay)
			t.Setenv("DISPLAY", tt.x11Display)

			if got := Detect(); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}
