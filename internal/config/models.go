package config

import (
	"os"
	"path/filepath"
)

// Settings represents the application configuration
type Settings struct {
	SaveDirectory    string `json:"save_directory" yaml:"save_directory"`
	DefaultFormat    string `json:"default_format" yaml:"default_format"`
	ShowNotification bool   `json:"show_notification" yaml:"show_notification"`
	HistorySize      int    `json:"history_size" yaml:"history_size"`
	LogLevel         string `json:"log_level" yaml:"log_level"`

	// Scroll-capture tuning. The ignore fractions exclude fixed UI chrome
	// (sticky headers/footers) from overlap matching and may need raising
	// per-site; the confidence threshold is the minimum normalized
	// correlation score accepted as a genuine overlap.
	ScrollDelayMs       int     `json:"scroll_delay_ms" yaml:"scroll_delay_ms"`
	ScrollMaxFrames     int     `json:"scroll_max_frames" yaml:"scroll_max_frames"`
	ScrollOverlapSearch int     `json:"scroll_overlap_search" yaml:"scroll_overlap_search"`
	ScrollIgnoreTop     float64 `json:"scroll_ignore_top" yaml:"scroll_ignore_top"`
	ScrollIgnoreBottom  float64 `json:"scroll_ignore_bottom" yaml:"scroll_ignore_bottom"`
	ScrollConfidence    float64 `json:"scroll_confidence" yaml:"scroll_confidence"`
}

// Defaults returns the default configuration
func Defaults() *Settings {
	saveDir := "."
	if home, err := os.UserHomeDir(); err == nil {
		saveDir = filepath.Join(home, "Pictures", "Screenshots")
	}

	return &Settings{
		SaveDirectory:    saveDir,
		DefaultFormat:    "png",
		ShowNotification: true,
		HistorySize:      20,
		LogLevel:         "info",

		ScrollDelayMs:       300,
		ScrollMaxFrames:     50,
		ScrollOverlapSearch: 150,
		ScrollIgnoreTop:     0.15,
		ScrollIgnoreBottom:  0.15,
		ScrollConfidence:    0.7,
	}
}
