package tuning

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsParamEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "default.yaml")
	if err := os.WriteFile(path, []byte("max_speed: 10\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case name := <-w.Events:
		if name != path {
			t.Fatalf("event = %q, want %q", name, path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event for a yaml write")
	}
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case name := <-w.Events:
		t.Fatalf("unexpected event %q for a .txt write", name)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherCloseWithFullBuffer(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}

	// More distinct files than the Events buffer holds, with nobody
	// receiving. Close must not panic while the goroutine is blocked on a
	// send.
	for i := 0; i < 2*cap(w.Events); i++ {
		name := filepath.Join(dir, fmt.Sprintf("set%02d.yaml", i))
		if err := os.WriteFile(name, []byte("max_speed: 10\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	time.Sleep(300 * time.Millisecond)

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatal("second Close should be a no-op")
	}

	// The channels stay open after Close; pending events drain, then the
	// watcher just goes quiet.
	for {
		select {
		case <-w.Events:
		case <-time.After(100 * time.Millisecond):
			return
		}
	}
}
