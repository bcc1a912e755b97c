package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFire(t *testing.T, fired <-chan time.Time, within time.Duration) {
	t.Helper()
	select {
	case <-fired:
	case <-time.After(within):
		t.Fatalf("job did not fire within %s", within)
	}
}

func TestWatcherFiresOnStartAndOnMatchingChange(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))

	w := NewWatcher(dir, []string{"**/*.yaml"}, 20*time.Millisecond, nil)
	fired := make(chan time.Time, 8)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx, func(at time.Time) { fired <- at }))
	defer func() { _ = w.Stop(context.Background()) }()

	waitFire(t, fired, 2*time.Second)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	select {
	case <-fired:
		t.Fatal("non-matching change must not fire the job")
	case <-time.After(200 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "req.yaml"), []byte("id: x"), 0o644))
	waitFire(t, fired, 2*time.Second)
}

func TestWatcherStartIsIdempotentAndStopWaits(t *testing.T) {
	dir := t.TempDir()
	w := NewWatcher(dir, []string{"*.yaml"}, 10*time.Millisecond, nil)

	calls := make(chan time.Time, 4)
	job := func(at time.Time) { calls <- at }

	require.NoError(t, w.Start(context.Background(), job))
	require.NoError(t, w.Start(context.Background(), job))
	waitFire(t, calls, 2*time.Second)

	require.NoError(t, w.Stop(context.Background()))
	require.NoError(t, w.Stop(context.Background()))
	assert.Empty(t, calls, "second Start must not launch another loop")
}

func TestWatcherStopTimeoutStillReleasesWatcher(t *testing.T) {
	dir := t.TempDir()
	w := NewWatcher(dir, []string{"*.yaml"}, 10*time.Millisecond, nil)

	entered := make(chan struct{})
	release := make(chan struct{})
	require.NoError(t, w.Start(context.Background(), func(time.Time) {
		close(entered)
		<-release
	}))
	<-entered

	w.mu.Lock()
	fw, done := w.watcher, w.done
	w.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, w.Stop(ctx), context.DeadlineExceeded)
	assert.NoError(t, w.Stop(context.Background()), "stopped watcher")

	close(release)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watch loop did not exit after the job returned")
	}
	assert.ErrorIs(t, fw.Add(dir), fsnotify.ErrClosed)
}

func TestWatcherNilJobAndCancelledContext(t *testing.T) {
	w := NewWatcher(t.TempDir(), nil, time.Millisecond, nil)
	assert.NoError(t, w.Start(context.Background(), nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, w.Start(ctx, func(time.Time) {}), context.Canceled)
}

func TestWatcherMissingBaseDir(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "absent"), []string{"*.yaml"}, time.Millisecond, nil)
	err := w.Start(context.Background(), func(time.Time) {})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRelevant(t *testing.T) {
	t.Parallel()

	base := filepath.Join("fixtures")
	w := NewWatcher(base, []string{"**/*.{yaml,yml}", "html/*.html"}, time.Millisecond, nil)

	cases := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"yaml write", fsnotify.Event{Name: filepath.Join(base, "a", "b.yaml"), Op: fsnotify.Write}, true},
		{"yml create", fsnotify.Event{Name: filepath.Join(base, "c.yml"), Op: fsnotify.Create}, true},
		{"html remove", fsnotify.Event{Name: filepath.Join(base, "html", "p.html"), Op: fsnotify.Remove}, true},
		{"nested html", fsnotify.Event{Name: filepath.Join(base, "x", "html", "p.html"), Op: fsnotify.Write}, false},
		{"chmod only", fsnotify.Event{Name: filepath.Join(base, "a.yaml"), Op: fsnotify.Chmod}, false},
		{"text file", fsnotify.Event{Name: filepath.Join(base, "a.txt"), Op: fsnotify.Write}, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, w.relevant(tc.event))
		})
	}
}
