// Package output saves stitched captures to disk.
package output

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

// Formats lists the supported output formats by extension
var Formats = []string{"png", "jpg", "jpeg", "bmp"}

// ValidFormat reports whether name is a supported output format
func ValidFormat(name string) bool {
	name = strings.ToLower(name)
	for _, f := range Formats {
		if name == f {
			return true
		}
	}
	return false
}

// DefaultFilename returns a timestamped filename for a capture
func DefaultFilename(format string) string {
	return fmt.Sprintf("scroll_%s.%s", time.Now().Format("20060102_150405"), format)
}

// Save encodes img to path, creating parent directories as needed. The
// encoding is chosen from the file extension.
func Save(img image.Image, path string) error {
	if !ValidFormat(strings.TrimPrefix(filepath.Ext(path), ".")) {
		return fmt.Errorf("unsupported output format: %s", filepath.Ext(path))
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
