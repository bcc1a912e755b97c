package scheduler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"ContentDesk/internal/ports"
)

const relevantOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

// Watcher fires a job when fixture files change. It fires once on Start, then
// once per quiet period after a burst of matching events. Jobs never overlap.
type Watcher struct {
	baseDir  string
	patterns []string
	debounce time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	done    chan struct{}
}

var _ ports.Trigger = (*Watcher)(nil)

// NewWatcher watches baseDir recursively for files matching any of patterns,
// which are doublestar globs relative to baseDir.
func NewWatcher(baseDir string, patterns []string, debounce time.Duration, log *slog.Logger) *Watcher {
	if baseDir == "" {
		baseDir = "."
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Watcher{
		baseDir:  baseDir,
		patterns: patterns,
		debounce: debounce,
		logger:   log,
	}
}

// Start begins watching. Calling it on a running watcher is a no-op.
func (w *Watcher) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done != nil {
		return nil
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.addTree(fw, w.baseDir); err != nil {
		_ = fw.Close()
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.watcher = fw
	w.cancel = cancel
	w.done = make(chan struct{})

	go w.run(runCtx, fw, w.done, job)
	return nil
}

// Stop halts the watch loop and waits for a running job to return.
func (w *Watcher) Stop(ctx context.Context) error {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel, w.done, w.watcher = nil, nil, nil
	w.mu.Unlock()

	if done == nil {
		return nil
	}
	cancel()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run owns fw and closes it on exit, so an abandoned Stop still releases it
// once a running job returns.
func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher, done chan struct{}, job func(time.Time)) {
	defer close(done)
	defer func() {
		if err := fw.Close(); err != nil {
			w.logger.Error("close watcher", "error", err)
		}
	}()

	job(time.Now())

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) {
				w.maybeAddDir(fw, event.Name)
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("fixture changed", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case t := <-fire:
			timer, fire = nil, nil
			job(t)

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", "error", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&relevantOps == 0 {
		return false
	}
	rel, err := filepath.Rel(w.baseDir, event.Name)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range w.patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func (w *Watcher) addTree(fw *fsnotify.Watcher, root string) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch tree %s: %w", root, err)
	}
	return nil
}

func (w *Watcher) maybeAddDir(fw *fsnotify.Watcher, path string) {
	if err := w.addTree(fw, path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		w.logger.Debug("skip new path", "path", path, "error", err)
	}
}
