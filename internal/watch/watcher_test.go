package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func startWatcher(t *testing.T, path string, debounce time.Duration) *Watcher {
	t.Helper()
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	w.Debounce = debounce
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(w.Stop)
	return w
}

func nextChange(t *testing.T, w *Watcher) Change {
	t.Helper()
	select {
	case c := <-w.Changes:
		return c
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change")
		return Change{}
	}
}

func TestWatcher_ReportsWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	writeFile(t, path, "{}")
	w := startWatcher(t, path, 20*time.Millisecond)

	writeFile(t, path, `{"courses": []}`)

	c := nextChange(t, w)
	if c.Kind != ChangeModified {
		t.Errorf("Kind = %v, want modified", c.Kind)
	}
	if c.File != w.Path {
		t.Errorf("File = %q, want %q", c.File, w.Path)
	}
}

func TestWatcher_CoalescesBursts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	writeFile(t, path, "")
	w := startWatcher(t, path, 200*time.Millisecond)

	for i := 0; i < 5; i++ {
		writeFile(t, path, "name = \"x\"\n")
	}
	nextChange(t, w)

	select {
	case c := <-w.Changes:
		t.Errorf("expected a single change for the burst, got another: %+v", c)
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatcher_IgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	writeFile(t, path, "{}")
	w := startWatcher(t, path, 20*time.Millisecond)

	writeFile(t, filepath.Join(dir, "other.json"), "{}")

	select {
	case c := <-w.Changes:
		t.Errorf("unexpected change for sibling file: %+v", c)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_ReportsRemoval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	writeFile(t, path, "{}")
	w := startWatcher(t, path, 20*time.Millisecond)

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	if c := nextChange(t, w); c.Kind != ChangeRemoved {
		t.Errorf("Kind = %v, want removed", c.Kind)
	}
}

func TestWatcher_Run(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	writeFile(t, path, "{}")

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	w.Debounce = 20 * time.Millisecond

	stop := errors.New("stop")
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = os.WriteFile(path, []byte("{ }"), 0o644)
	}()

	calls := 0
	err = w.Run(ctx, func(c Change) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) {
		t.Fatalf("Run returned %v, want the callback's error", err)
	}
	if calls != 1 {
		t.Errorf("callback ran %d times, want 1", calls)
	}
}

func TestWatcher_RunStopsOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	writeFile(t, path, "{}")

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := w.Run(ctx, func(Change) error { return nil }); err != nil {
		t.Errorf("Run returned %v after cancel, want nil", err)
	}
}

func TestChangeKind_String(t *testing.T) {
	if ChangeModified.String() != "modified" || ChangeRemoved.String() != "removed" {
		t.Errorf("unexpected names: %s, %s", ChangeModified, ChangeRemoved)
	}
}
