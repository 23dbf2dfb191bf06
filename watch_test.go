package flurry

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snow.yaml")
	if err := os.WriteFile(path, []byte("count: 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewConfigWatcher(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()
	w.Debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte("count: 42\nalpha: 0.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case cfg := <-w.Configs():
		if cfg.Count != 42 {
			t.Errorf("Count = %d, want 42", cfg.Count)
		}
		assertNear(t, "Alpha", cfg.Alpha, 0.5)
	case <-time.After(3 * time.Second):
		t.Fatal("no config delivered")
	}
}

func TestConfigWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snow.yaml")
	if err := os.WriteFile(path, []byte("count: 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := NewConfigWatcher(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()
	w.Debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("count: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case cfg := <-w.Configs():
		t.Errorf("unexpected reload: %+v", cfg)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestConfigWatcherSkipsBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snow.yaml")
	if err := os.WriteFile(path, []byte("count: 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := NewConfigWatcher(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()
	w.Debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("count: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case cfg := <-w.Configs():
		t.Errorf("broken file delivered: %+v", cfg)
	case <-time.After(300 * time.Millisecond):
	}
}
