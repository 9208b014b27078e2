// Copyright (c) 2026 Keymaster Team
// Contactbook - minimal contact list
// This source code is licensed under the MIT license found in the LICENSE file.

package live

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

type countingRefresher struct {
	n atomic.Int32
}

func (c *countingRefresher) Refresh(ctx context.Context) error {
	c.n.Add(1)
	return nil
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func TestFileWatcher_DebouncesWrites(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "contactbook.db")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	r := &countingRefresher{}
	fw, err := NewFileWatcher(path, r)
	if err != nil {
		t.Fatalf("NewFileWatcher: %v", err)
	}
	if err := fw.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer fw.Stop()

	// Unrelated files in the same directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * debounceQuiet)
	if got := r.n.Load(); got != 0 {
		t.Fatalf("unrelated write triggered %d refreshes", got)
	}

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte{byte(i)}, 0o600); err != nil {
			t.Fatal(err)
		}
	}
	waitFor(t, func() bool { return r.n.Load() >= 1 })
	time.Sleep(2 * debounceQuiet)
	if got := r.n.Load(); got != 1 {
		t.Fatalf("burst of writes caused %d refreshes, want 1", got)
	}

	// A WAL companion counts as a change too.
	if err := os.WriteFile(path+"-wal", []byte("w"), 0o600); err != nil {
		t.Fatal(err)
	}
	waitFor(t, func() bool { return r.n.Load() == 2 })
}

func TestFileWatcher_StopsOnContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "contactbook.db")
	fw, err := NewFileWatcher(path, &countingRefresher{})
	if err != nil {
		t.Fatalf("NewFileWatcher: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	if err := fw.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := fw.Start(ctx); err != nil {
		t.Fatalf("second Start should be a no-op: %v", err)
	}
	cancel()
	select {
	case <-fw.doneCh:
	case <-time.After(2 * time.Second):
		t.Fatalf("watcher goroutine did not exit on cancel")
	}
	fw.Stop()
	fw.Stop()
}
