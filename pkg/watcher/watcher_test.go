package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/texforge/texforge/pkg/watcher"
)

func TestWatcher_ReportsSourceChanges(t *testing.T) {
	dir := t.TempDir()

	w, err := watcher.New(nil, []string{dir}, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan []string, 1)
	go func() {
		w.Watch(ctx, func(changed []string) {
			select {
			case changes <- changed:
			default:
			}
		})
	}()

	// Give the watcher a moment to register the directory
	time.Sleep(100 * time.Millisecond)

	texFile := filepath.Join(dir, "report.tex")
	if err := os.WriteFile(texFile, []byte(`\documentclass{article}`), 0644); err != nil {
		t.Fatalf("failed to write source: %v", err)
	}

	select {
	case changed := <-changes:
		found := false
		for _, name := range changed {
			if strings.HasSuffix(name, "report.tex") {
				found = true
			}
		}
		if !found {
			t.Errorf("changed = %v, want report.tex", changed)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change batch reported")
	}
}

func TestWatcher_IgnoresGeneratedArtifacts(t *testing.T) {
	dir := t.TempDir()

	w, err := watcher.New(nil, []string{dir}, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan []string, 1)
	go func() {
		w.Watch(ctx, func(changed []string) {
			select {
			case changes <- changed:
			default:
			}
		})
	}()

	time.Sleep(100 * time.Millisecond)

	// Engine outputs must not feed back into recompiles
	for _, name := range []string{"texput.aux", "texput.log", "texput.toc"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("failed to write artifact: %v", err)
		}
	}

	select {
	case changed := <-changes:
		t.Errorf("artifact writes reported as changes: %v", changed)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w, err := watcher.New(nil, []string{filepath.Join(t.TempDir(), "gone")}, 0)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	if err := w.Watch(context.Background(), func([]string) {}); err == nil {
		t.Fatal("expected error watching a missing directory")
	}
}

func TestWatcher_StopsOnContextCancel(t *testing.T) {
	w, err := watcher.New(nil, []string{t.TempDir()}, 0)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, func([]string) {})
	}()

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() after cancel = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after context cancel")
	}
}
