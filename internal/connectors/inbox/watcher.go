// Package inbox watches a drop directory and ingests contract files
// placed into it. Files are debounced so partially-written uploads are
// only ingested once writing settles.
package inbox

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/clauseworks/pactdiff/internal/core/domain"
	"github.com/clauseworks/pactdiff/internal/core/ports/driving"
	"github.com/clauseworks/pactdiff/internal/logger"
)

// DefaultDebounce is how long a file must be quiet before ingestion.
const DefaultDebounce = 500 * time.Millisecond

// Watcher ingests files dropped into a directory.
type Watcher struct {
	dir      string
	docs     driving.DocumentService
	debounce time.Duration

	watcher *fsnotify.Watcher

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup

	timersMu sync.Mutex
	timers   map[string]*time.Timer
}

// Option configures the watcher.
type Option func(*Watcher)

// WithDebounce overrides the write-settle delay. Non-positive values
// are ignored.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// New creates an inbox watcher for the given directory.
func New(dir string, docs driving.DocumentService, opts ...Option) *Watcher {
	w := &Watcher{
		dir:      dir,
		docs:     docs,
		debounce: DefaultDebounce,
		timers:   make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Start begins watching the inbox directory. It creates the directory
// if missing and returns once the watch is established.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("inbox: already running")
	}

	if err := os.MkdirAll(w.dir, 0700); err != nil {
		return fmt.Errorf("inbox: create directory: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("inbox: create watcher: %w", err)
	}
	if err := fsw.Add(w.dir); err != nil {
		fsw.Close()
		return fmt.Errorf("inbox: watch %s: %w", w.dir, err)
	}

	w.watcher = fsw
	w.running = true
	w.stopCh = make(chan struct{})

	w.wg.Add(1)
	go w.loop(ctx)

	logger.Info("Inbox watching %s", w.dir)
	return nil
}

// Stop halts the watcher and waits for in-flight ingestion to finish.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	w.watcher.Close()
	w.mu.Unlock()

	w.timersMu.Lock()
	for path, timer := range w.timers {
		timer.Stop()
		delete(w.timers, path)
	}
	w.timersMu.Unlock()

	w.wg.Wait()
}

// loop dispatches filesystem events until stopped.
func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ctx, event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Inbox watch error: %v", err)
		}
	}
}

// handleEvent schedules ingestion for create and write events on
// supported, non-hidden files.
func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}
	if isHidden(event.Name) {
		return
	}
	if _, ok := domain.DocumentTypeForFilename(event.Name); !ok {
		logger.Debug("Inbox ignoring unsupported file %s", filepath.Base(event.Name))
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return
	}

	w.scheduleIngest(ctx, event.Name)
}

// scheduleIngest resets the per-file debounce timer. The file is only
// ingested once it has been quiet for the debounce interval.
func (w *Watcher) scheduleIngest(ctx context.Context, path string) {
	w.timersMu.Lock()
	defer w.timersMu.Unlock()

	if timer, ok := w.timers[path]; ok {
		timer.Reset(w.debounce)
		return
	}

	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.timersMu.Lock()
		delete(w.timers, path)
		w.timersMu.Unlock()

		// Stop flips running before it waits on the group, so a fired
		// timer either registers here first or skips the ingest.
		w.mu.Lock()
		if !w.running {
			w.mu.Unlock()
			return
		}
		w.wg.Add(1)
		w.mu.Unlock()
		defer w.wg.Done()

		w.ingest(ctx, path)
	})
}

// ingest reads the file and feeds it to the document service.
func (w *Watcher) ingest(ctx context.Context, path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Inbox read %s: %v", path, err)
		return
	}
	if len(content) == 0 {
		return
	}

	doc, err := w.docs.Ingest(ctx, &domain.RawDocument{
		Filename: filepath.Base(path),
		URI:      path,
		Content:  content,
		Metadata: map[string]any{"source": "inbox"},
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedType) {
			logger.Debug("Inbox skipped unsupported file %s", filepath.Base(path))
			return
		}
		logger.Warn("Inbox ingest %s: %v", filepath.Base(path), err)
		return
	}

	logger.Info("Inbox ingested %s as document %s", doc.Filename, doc.ID)
}

// isHidden reports whether the file is a dotfile.
func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
