// Package history keeps a bounded record of recent captures.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Entry describes one saved capture
type Entry struct {
	Path       string    `json:"path"`
	CapturedAt time.Time `json:"captured_at"`
	FrameCount int       `json:"frame_count"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
}

// Store persists capture history as JSON, newest entry first
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a history store backed by the given file
func NewStore(path string) *Store {
	return &Store{path: path}
}

// List returns all recorded entries, newest first. A missing history file
// yields an empty list.
func (s *Store) List() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Append records a capture, trimming the history to limit entries
func (s *Store) Append(entry Entry, limit int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}

	entries = append([]Entry{entry}, entries...)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize history: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create history directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}

func (s *Store) load() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse history: %w", err)
	}
	return entries, nil
}
