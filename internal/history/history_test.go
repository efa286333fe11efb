package history

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func TestListEmptyStore(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "history.json"))
	entries, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty history, got %d entries", len(entries))
	}
}

func TestAppendAndList(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "history.json"))

	for i := 0; i < 3; i++ {
		entry := Entry{
			Path:       fmt.Sprintf("/tmp/scroll_%d.png", i),
			CapturedAt: time.Now(),
			FrameCount: i + 1,
			Width:      800,
			Height:     600 + i*400,
		}
		if err := store.Append(entry, 10); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	entries, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	// Newest first
	if entries[0].Path != "/tmp/scroll_2.png" {
		t.Errorf("entries[0].Path = %s, want /tmp/scroll_2.png", entries[0].Path)
	}
	if entries[2].FrameCount != 1 {
		t.Errorf("entries[2].FrameCount = %d, want 1", entries[2].FrameCount)
	}
}

func TestAppendTrimsToLimit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "history.json"))

	for i := 0; i < 5; i++ {
		entry := Entry{Path: fmt.Sprintf("/tmp/scroll_%d.png", i), CapturedAt: time.Now()}
		if err := store.Append(entry, 3); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	entries, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries after trim, want 3", len(entries))
	}
	if entries[0].Path != "/tmp/scroll_4.png" {
		t.Errorf("entries[0].Path = %s, want /tmp/scroll_4.png", entries[0].Path)
	}
}
