// Package notify posts desktop notifications over the session D-Bus.
package notify

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	busName    = "org.freedesktop.Notifications"
	objectPath = "/org/freedesktop/Notifications"
	method     = "org.freedesktop.Notifications.Notify"

	expireMs = int32(5000)
)

// Send posts a transient desktop notification. Callers treat failures as
// non-fatal; a missing notification daemon must not break a capture.
func Send(summary, body string) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	defer conn.Close()

	obj := conn.Object(busName, dbus.ObjectPath(objectPath))
	call := obj.Call(method, 0,
		"scrollsnap",              // app name
		uint32(0),                 // replaces id
		"camera-photo",            // icon
		summary,                   // summary
		body,                      // body
		[]string{},                // actions
		map[string]dbus.Variant{}, // hints
		expireMs,
	)
	if call.Err != nil {
		return fmt.Errorf("notification failed: %w", call.Err)
	}
	return nil
}
