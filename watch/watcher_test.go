package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func newTestWatcher(t *testing.T, patterns ...string) *Watcher {
	t.Helper()
	w, err := New(Config{Patterns: patterns, Debounce: 50 * time.Millisecond}, nil)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	return w
}

func startWatcher(t *testing.T, w *Watcher) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	if err := w.Start(ctx); err != nil {
		t.Fatalf("failed to start watcher: %v", err)
	}
	t.Cleanup(func() { _ = w.Stop() })

	// Give watcher time to set up
	time.Sleep(100 * time.Millisecond)
}

func nextBatch(t *testing.T, w *Watcher) []Event {
	t.Helper()
	select {
	case batch, ok := <-w.Events():
		if !ok {
			t.Fatal("watcher stopped")
		}
		return batch
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for change batch")
	}
	return nil
}

func TestNewRequiresPatterns(t *testing.T) {
	if _, err := New(Config{}, nil); err == nil {
		t.Error("expected error without patterns")
	}
}

func TestConfigDebounce(t *testing.T) {
	if got := (Config{}).debounce(); got != 500*time.Millisecond {
		t.Errorf("debounce() = %v, want 500ms", got)
	}
	if got := (Config{Debounce: time.Second}).debounce(); got != time.Second {
		t.Errorf("debounce() = %v, want 1s", got)
	}
}

func TestMatches(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t, filepath.Join(dir, "models", "**", "*.yaml"), filepath.Join(dir, "one.yaml"))
	defer w.Stop()

	tests := []struct {
		path string
		want bool
	}{
		{path: filepath.Join(dir, "models", "a.yaml"), want: true},
		{path: filepath.Join(dir, "models", "nested", "deep", "b.yaml"), want: true},
		{path: filepath.Join(dir, "models", "a.txt"), want: false},
		{path: filepath.Join(dir, "one.yaml"), want: true},
		{path: filepath.Join(dir, "two.yaml"), want: false},
		{path: filepath.Join(dir, "other", "a.yaml"), want: false},
	}

	for _, tt := range tests {
		t.Run(filepath.Base(tt.path), func(t *testing.T) {
			if got := w.Matches(tt.path); got != tt.want {
				t.Errorf("Matches(%s) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestStartFailsWithoutRoots(t *testing.T) {
	w := newTestWatcher(t, filepath.Join(t.TempDir(), "missing", "*.yaml"))
	defer w.Stop()
	if err := w.Start(context.Background()); err == nil {
		t.Error("expected error when no root exists")
	}
}

// waitFor reads batches until one reports path with op.
func waitFor(t *testing.T, w *Watcher, path string, op Operation) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case batch, ok := <-w.Events():
			if !ok {
				t.Fatal("watcher stopped")
			}
			for _, e := range batch {
				if e.Path == path && e.Operation == op {
					return
				}
			}
		case <-deadline:
			t.Fatalf("timeout waiting for %s of %s", op, path)
		}
	}
}

func TestWatcher_FileCreation(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t, filepath.Join(dir, "**", "*.yaml"))
	startWatcher(t, w)

	path := filepath.Join(dir, "people.yaml")
	if err := os.WriteFile(path, []byte("module: people\n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	batch := nextBatch(t, w)
	if len(batch) != 1 {
		t.Fatalf("expected 1 change, got %d", len(batch))
	}
	if batch[0].Path != path {
		t.Errorf("expected path %s, got %s", path, batch[0].Path)
	}
	if batch[0].Operation != OpCreate {
		t.Errorf("expected create operation, got %s", batch[0].Operation)
	}
}

func TestWatcher_ModificationAndDeletion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "people.yaml")
	if err := os.WriteFile(path, []byte("module: people\n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	w := newTestWatcher(t, filepath.Join(dir, "*.yaml"))
	w.Seed([]string{path})
	startWatcher(t, w)

	if err := os.WriteFile(path, []byte("module: people\nbase: http://ex/\n"), 0644); err != nil {
		t.Fatalf("failed to modify test file: %v", err)
	}
	waitFor(t, w, path, OpModify)

	if err := os.Remove(path); err != nil {
		t.Fatalf("failed to remove test file: %v", err)
	}
	waitFor(t, w, path, OpDelete)
}

func TestWatcher_IgnoresUnmatchedFiles(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t, filepath.Join(dir, "*.yaml"))
	startWatcher(t, w)

	notes := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notes, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)

	changed := filepath.Join(dir, "changed.yaml")
	if err := os.WriteFile(changed, []byte("module: changed\n"), 0644); err != nil {
		t.Fatal(err)
	}

	batch := nextBatch(t, w)
	for _, e := range batch {
		if e.Path == notes {
			t.Errorf("unexpected event for %s", notes)
		}
	}
}

func TestWatcher_NewDirectory(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t, filepath.Join(dir, "**", "*.yaml"))
	startWatcher(t, w)

	nested := filepath.Join(dir, "nested")
	if err := os.Mkdir(nested, 0755); err != nil {
		t.Fatal(err)
	}
	// Give the watcher time to add the new directory
	time.Sleep(200 * time.Millisecond)

	path := filepath.Join(nested, "events.yaml")
	if err := os.WriteFile(path, []byte("module: events\n"), 0644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, w, path, OpCreate)
}

func TestFlushPending(t *testing.T) {
	dir := t.TempDir()
	same := filepath.Join(dir, "same.yaml")
	edited := filepath.Join(dir, "edited.yaml")
	added := filepath.Join(dir, "added.yaml")
	gone := filepath.Join(dir, "gone.yaml")
	for _, path := range []string{same, edited} {
		if err := os.WriteFile(path, []byte("module: m\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	w := newTestWatcher(t, filepath.Join(dir, "*.yaml"))
	defer w.Stop()
	w.Seed([]string{same, edited, gone})

	if err := os.WriteFile(edited, []byte("module: n\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(added, []byte("module: a\n"), 0644); err != nil {
		t.Fatal(err)
	}
	w.pending = map[string]fsnotify.Op{
		same:   fsnotify.Write,
		edited: fsnotify.Write,
		added:  fsnotify.Create,
		gone:   fsnotify.Remove,
	}
	w.flushPending()

	batch := <-w.Events()
	want := []Event{
		{Path: added, Operation: OpCreate},
		{Path: edited, Operation: OpModify},
		{Path: gone, Operation: OpDelete},
	}
	if len(batch) != len(want) {
		t.Fatalf("expected %d changes, got %+v", len(want), batch)
	}
	for i := range want {
		if batch[i] != want[i] {
			t.Errorf("change %d = %+v, want %+v", i, batch[i], want[i])
		}
	}

	// Nothing pending, nothing sent
	w.flushPending()
	select {
	case batch := <-w.Events():
		t.Errorf("unexpected batch %+v", batch)
	default:
	}
}

func TestContentHash(t *testing.T) {
	if contentHash([]byte("a")) == contentHash([]byte("b")) {
		t.Error("different content should hash differently")
	}
	if len(contentHash(nil)) != 64 {
		t.Error("expected hex sha256")
	}
}
