package input

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a file must stay quiet before a change fires.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer collapses bursts of calls into one callback after a quiet period.
type Debouncer struct {
	timer   *time.Timer
	mu      sync.Mutex
	onFlush func()
	delay   time.Duration
	stopped bool
	wg      sync.WaitGroup
}

// NewDebouncer creates a debouncer that calls onFlush delay after the last Trigger.
func NewDebouncer(delay time.Duration, onFlush func()) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{onFlush: onFlush, delay: delay}
}

// Trigger schedules a flush, pushing back any pending one.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if d.timer != nil && d.timer.Stop() {
		d.wg.Done()
	}

	d.wg.Add(1)
	d.timer = time.AfterFunc(d.delay, d.flush)
}

func (d *Debouncer) flush() {
	defer d.wg.Done()

	d.mu.Lock()
	stopped := d.stopped
	d.mu.Unlock()

	if !stopped && d.onFlush != nil {
		d.onFlush()
	}
}

// Stop cancels any pending flush and waits for a running one to return.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil && d.timer.Stop() {
		d.wg.Done()
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// Watcher calls OnChange when a single file is written or replaced.
// The parent directory is watched so editors that save by rename are seen.
type Watcher struct {
	path      string
	watcher   *fsnotify.Watcher
	debouncer *Debouncer
	logger    *slog.Logger
}

// WatchConfig configures a Watcher.
type WatchConfig struct {
	Path     string
	Debounce time.Duration
	OnChange func()
	Logger   *slog.Logger
}

// NewWatcher starts watching cfg.Path. Call Run to process events.
func NewWatcher(cfg WatchConfig) (*Watcher, error) {
	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", cfg.Path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		path:      abs,
		watcher:   fw,
		debouncer: NewDebouncer(cfg.Debounce, cfg.OnChange),
		logger:    logger,
	}, nil
}

// Path is the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Run processes events until ctx is done, then releases the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.debouncer.Stop()
	defer func() { _ = w.watcher.Close() }()

	w.logger.Debug("watching input file", "path", w.path)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.relevant(event) {
				w.logger.Debug("input file changed", "path", event.Name, "op", event.Op.String())
				w.debouncer.Trigger()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case <-ctx.Done():
			return nil
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
