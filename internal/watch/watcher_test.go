// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// isIgnoredByDefaults reports whether rel matches any built-in ignore
// pattern, without constructing a full Watcher.
func isIgnoredByDefaults(rel string) bool {
	normalized := filepath.ToSlash(rel)
	for _, pat := range defaultIgnores {
		if matched, matchErr := doublestar.Match(pat, normalized); matchErr == nil && matched {
			return true
		}
	}
	return false
}

// A burst of saves within the debounce window must produce one callback
// carrying every changed document.
func TestWatcherDebounce(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	var (
		mu        sync.Mutex
		calls     int
		collected []string
	)

	done := make(chan struct{})

	w, err := New(Config{
		BaseDir:  dir,
		Debounce: 100 * time.Millisecond,
		Stdout:   &bytes.Buffer{},
		Stderr:   &bytes.Buffer{},
		OnChange: func(_ context.Context, changed []string) error {
			mu.Lock()
			defer mu.Unlock()
			calls++
			collected = append(collected, changed...)
			close(done)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	// Save three documents in quick succession, all inside one debounce
	// window. The short pauses keep the OS from batching the events.
	for _, name := range []string{"intro.md", "setup.md", "faq.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("# "+name), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
	}

	// Settle so any spurious extra callback would be counted.
	time.Sleep(200 * time.Millisecond)

	cancel()
	if err := <-errCh; err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()

	if calls != 1 {
		t.Errorf("got %d callbacks for one burst of saves, want 1", calls)
	}

	slices.Sort(collected)
	for _, want := range []string{"intro.md", "setup.md", "faq.md"} {
		if !slices.Contains(collected, want) {
			t.Errorf("changed set %v is missing %q", collected, want)
		}
	}
}

// User-supplied ignore patterns must keep matching files from triggering
// a rebuild.
func TestWatcherIgnorePatterns(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	callbackFired := make(chan []string, 10)

	w, err := New(Config{
		BaseDir:  dir,
		Ignore:   []string{"**/*.log"},
		Debounce: 50 * time.Millisecond,
		Stdout:   &bytes.Buffer{},
		Stderr:   &bytes.Buffer{},
		OnChange: func(_ context.Context, changed []string) error {
			callbackFired <- changed
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	// An ignored file must not wake the watcher.
	if err := os.WriteFile(filepath.Join(dir, "build.log"), []byte("log"), 0o644); err != nil {
		t.Fatalf("write build.log: %v", err)
	}

	// Let a full debounce cycle pass.
	time.Sleep(200 * time.Millisecond)

	// A document save must.
	if err := os.WriteFile(filepath.Join(dir, "intro.md"), []byte("# Intro"), 0o644); err != nil {
		t.Fatalf("write intro.md: %v", err)
	}

	select {
	case changed := <-callbackFired:
		if slices.Contains(changed, "build.log") {
			t.Error("ignored file build.log appeared in changed set")
		}
		if !slices.Contains(changed, "intro.md") {
			t.Errorf("changed set %v is missing intro.md", changed)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback on document save")
	}

	cancel()
	if err := <-errCh; err != nil {
		t.Fatalf("Run() error: %v", err)
	}
}

func TestWatcherContextCancel(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	w, err := New(Config{
		BaseDir:  dir,
		Debounce: 50 * time.Millisecond,
		Stdout:   &bytes.Buffer{},
		Stderr:   &bytes.Buffer{},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)

	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Run() returned error on cancel: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after context cancellation")
	}
}

func TestDefaultIgnores(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		ignored bool
	}{
		{".git/config", true},
		{".git/objects/ab/cd1234", true},
		{"node_modules/express/index.js", true},
		{".obsidian/workspace.json", true},
		{"guide/.obsidian/cache", true},
		{"intro.md.swp", true},
		{"intro.md.swo", true},
		{"backup~", true},
		{".DS_Store", true},
		{"sub/.DS_Store", true},

		{"intro.md", false},
		{"guide/setup.md", false},
		{"folio.toml", false},
		{".gitignore", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			if got := isIgnoredByDefaults(tt.path); got != tt.ignored {
				t.Errorf("isIgnoredByDefaults(%q) = %v, want %v", tt.path, got, tt.ignored)
			}
		})
	}
}

// A rebuild that outlasts the debounce window must not overlap the next
// one; the busy guard skips and re-arms instead.
func TestWatcherSkipIfBusy(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	var (
		mu    sync.Mutex
		calls int
	)

	firstCallDone := make(chan struct{})
	stderrBuf := &bytes.Buffer{}

	w, err := New(Config{
		BaseDir:  dir,
		Debounce: 50 * time.Millisecond,
		Stdout:   &bytes.Buffer{},
		Stderr:   stderrBuf,
		OnChange: func(_ context.Context, _ []string) error {
			mu.Lock()
			calls++
			callNum := calls
			mu.Unlock()

			if callNum == 1 {
				// A slow rebuild, several debounce windows long.
				time.Sleep(300 * time.Millisecond)
				close(firstCallDone)
			}
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	if err := os.WriteFile(filepath.Join(dir, "intro.md"), []byte("1"), 0o644); err != nil {
		t.Fatalf("write intro.md: %v", err)
	}

	// Let the first rebuild start.
	time.Sleep(100 * time.Millisecond)

	// Save again while the first rebuild is still running.
	if err := os.WriteFile(filepath.Join(dir, "setup.md"), []byte("2"), 0o644); err != nil {
		t.Fatalf("write setup.md: %v", err)
	}

	select {
	case <-firstCallDone:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for first callback")
	}

	// Give the re-armed timer a chance to fire or be skipped.
	time.Sleep(200 * time.Millisecond)

	cancel()
	if err := <-errCh; err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()

	// One call when the skip held, two when the re-armed timer fired
	// after the first rebuild finished. Never more.
	if calls > 2 {
		t.Errorf("got %d callback invocations, want at most 2", calls)
	}

	if calls == 1 {
		if !strings.Contains(stderrBuf.String(), "skipping rebuild") {
			t.Logf("stderr: %s", stderrBuf.String())
			t.Log("skip message missing; the first rebuild may have finished before the second fire")
		}
	}
}

func TestWatcherClearScreen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	done := make(chan struct{})
	stdoutBuf := &bytes.Buffer{}

	w, err := New(Config{
		BaseDir:     dir,
		Debounce:    50 * time.Millisecond,
		ClearScreen: true,
		Stdout:      stdoutBuf,
		Stderr:      &bytes.Buffer{},
		OnChange: func(_ context.Context, _ []string) error {
			close(done)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	if err := os.WriteFile(filepath.Join(dir, "index.md"), []byte("# Home"), 0o644); err != nil {
		t.Fatalf("write index.md: %v", err)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
	}

	cancel()
	if err := <-errCh; err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if out := stdoutBuf.String(); !strings.Contains(out, "\033[2J\033[H") {
		t.Errorf("ANSI clear sequence missing from stdout, got %q", out)
	}
}

func TestWatcherInvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := New(Config{
		BaseDir:  t.TempDir(),
		Patterns: []string{"[invalid"},
		Debounce: 50 * time.Millisecond,
		Stdout:   &bytes.Buffer{},
		Stderr:   &bytes.Buffer{},
	})
	if err == nil {
		t.Fatal("New() accepted an invalid glob pattern")
	}
	if !strings.Contains(err.Error(), "invalid watch pattern") {
		t.Errorf("error = %v, want mention of the invalid watch pattern", err)
	}
}

func TestWatcherDoubleRunError(t *testing.T) {
	t.Parallel()

	w, err := New(Config{
		BaseDir:  t.TempDir(),
		Debounce: 50 * time.Millisecond,
		Stdout:   &bytes.Buffer{},
		Stderr:   &bytes.Buffer{},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)

	if err := w.Run(ctx); err == nil {
		t.Fatal("second Run() call succeeded, want error")
	} else if !strings.Contains(err.Error(), "Run called more than once") {
		t.Errorf("error = %v, want mention of double Run", err)
	}

	cancel()
	if firstErr := <-errCh; firstErr != nil {
		t.Fatalf("first Run() returned error: %v", firstErr)
	}
}

// Only documents matching the watch patterns trigger a rebuild; the
// serve command watches "**/*.md".
func TestWatcherPatternFiltering(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	callbackFired := make(chan []string, 10)

	w, err := New(Config{
		BaseDir:  dir,
		Patterns: []string{"**/*.md"},
		Debounce: 50 * time.Millisecond,
		Stdout:   &bytes.Buffer{},
		Stderr:   &bytes.Buffer{},
		OnChange: func(_ context.Context, changed []string) error {
			callbackFired <- changed
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	// A non-markdown file must not fire.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("text"), 0o644); err != nil {
		t.Fatalf("write notes.txt: %v", err)
	}

	// Let a full debounce cycle pass for the .txt write.
	time.Sleep(200 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "intro.md"), []byte("# Intro"), 0o644); err != nil {
		t.Fatalf("write intro.md: %v", err)
	}

	select {
	case changed := <-callbackFired:
		if slices.Contains(changed, "notes.txt") {
			t.Error("non-matching file notes.txt appeared in changed set")
		}
		if !slices.Contains(changed, "intro.md") {
			t.Errorf("changed set %v is missing intro.md", changed)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback on markdown save")
	}

	cancel()
	if err := <-errCh; err != nil {
		t.Fatalf("Run() error: %v", err)
	}
}
