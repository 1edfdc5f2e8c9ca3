package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchConfig controls the rule-base file watcher.
type WatchConfig struct {
	// DebounceInterval is the quiet period required before a detected
	// change triggers a reload (default 250ms). Editors and git checkouts
	// touch many files in a burst; one reload should cover the burst.
	DebounceInterval time.Duration

	// Extensions are the file extensions that count as rule-base changes.
	Extensions []string
}

// DefaultWatchConfig returns the default watcher configuration.
func DefaultWatchConfig() *WatchConfig {
	return &WatchConfig{
		DebounceInterval: 250 * time.Millisecond,
		Extensions:       []string{".yaml", ".yml"},
	}
}

// Watch observes the rule-base directory and reloads the graph when rule
// files change. Each reload builds a fresh graph and swaps it atomically;
// readers of the previous graph are never disturbed. Watch blocks until the
// context is cancelled.
func (s *Store) Watch(ctx context.Context, cfg *WatchConfig) error {
	if cfg == nil {
		cfg = DefaultWatchConfig()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.rulesDir); err != nil {
		return fmt.Errorf("failed to watch rule base directory %q: %w", s.rulesDir, err)
	}

	debounce := newDebouncer(cfg.DebounceInterval)
	defer debounce.stop()

	s.logger.Info("rule base watcher started",
		"dir", s.rulesDir,
		"debounce_ms", cfg.DebounceInterval.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("rule base watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !shouldReload(event, cfg.Extensions) {
				continue
			}

			s.logger.Debug("rule file change detected",
				"path", event.Name,
				"op", event.Op.String(),
			)

			debounce.trigger(func() {
				if err := s.Reload(); err != nil {
					s.logger.Error("reload after file change failed", "error", err)
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			s.logger.Error("rule base watcher error", "error", err)
			// Keep watching despite errors.
		}
	}
}

// shouldReload filters watcher events down to rule-file content changes.
func shouldReload(event fsnotify.Event, extensions []string) bool {
	if event.Op&fsnotify.Chmod == fsnotify.Chmod {
		return false
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(event.Name))
	for _, valid := range extensions {
		if ext == strings.ToLower(valid) {
			return true
		}
	}
	return false
}

// debouncer collapses event bursts into a single callback after a quiet
// period.
type debouncer struct {
	interval time.Duration
	mu       sync.Mutex
	timer    *time.Timer
	stopped  bool
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{interval: interval}
}

// trigger schedules the callback, resetting the quiet period if one is
// already pending.
func (d *debouncer) trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, callback)
}

// stop cancels any pending callback.
func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
