package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// collectFiles returns a callback and a function that waits for n callbacks.
func collectFiles(t *testing.T) (func(string), func(n int) []string) {
	t.Helper()
	var mu sync.Mutex
	var paths []string
	cb := func(path string) {
		mu.Lock()
		paths = append(paths, path)
		mu.Unlock()
	}
	wait := func(n int) []string {
		deadline := time.Now().Add(5 * time.Second)
		for time.Now().Before(deadline) {
			mu.Lock()
			got := len(paths)
			mu.Unlock()
			if got >= n {
				mu.Lock()
				defer mu.Unlock()
				return append([]string(nil), paths...)
			}
			time.Sleep(20 * time.Millisecond)
		}
		t.Fatalf("timed out waiting for %d file callbacks", n)
		return nil
	}
	return cb, wait
}

func TestWatcher_IngestsCreatedFile(t *testing.T) {
	dir := t.TempDir()
	cb, wait := collectFiles(t)
	w := NewWatcher([]string{dir}, []string{".txt"}, cb, WithDebounce(50*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("document body"), 0o644); err != nil {
		t.Fatal(err)
	}
	paths := wait(1)
	if filepath.Base(paths[0]) != "notes.txt" {
		t.Errorf("callback path: got %s", paths[0])
	}
}

func TestWatcher_FiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	cb, wait := collectFiles(t)
	w := NewWatcher([]string{dir}, []string{".pdf", ".txt"}, cb, WithDebounce(50*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "skip.tmp"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	paths := wait(1)
	for _, p := range paths {
		if filepath.Ext(p) == ".tmp" {
			t.Errorf("filtered extension got through: %s", p)
		}
	}
}

func TestWatcher_DebouncesWriteBursts(t *testing.T) {
	dir := t.TempDir()
	cb, wait := collectFiles(t)
	w := NewWatcher([]string{dir}, nil, cb, WithDebounce(150*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	path := filepath.Join(dir, "burst.txt")
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("revision"), 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
	}
	wait(1)
	time.Sleep(300 * time.Millisecond)
	if paths := wait(1); len(paths) > 2 {
		t.Errorf("burst produced %d callbacks, want coalesced", len(paths))
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := NewWatcher([]string{"/definitely/not/a/dir"}, nil, func(string) {})
	if err := w.Start(context.Background()); err == nil {
		w.Stop()
		t.Error("expected error for missing directory")
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	w := NewWatcher([]string{dir}, nil, func(string) {})
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	w.Stop()
	w.Stop()
}
