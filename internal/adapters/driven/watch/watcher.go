// Package watch observes the nextact data directory with fsnotify and
// triggers a reindex callback when files change underneath the app,
// e.g. from a sync tool or another nextact process. Events are
// debounced and rate limited so a burst of writes causes one rebuild.
package watch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/clearday-labs/nextact-cli/internal/logger"
)

// DefaultDebounce is how long the watcher waits after the last event
// before firing the callback.
const DefaultDebounce = 500 * time.Millisecond

// maxRebuildsPerMinute caps callback invocations under sustained
// churn; the debounce alone cannot, since a slow steady writer keeps
// resetting it just outside the window.
const maxRebuildsPerMinute = 10

// Watcher triggers a callback when the watched directory changes.
type Watcher struct {
	dir      string
	onChange func(context.Context)
	debounce time.Duration

	watcher *fsnotify.Watcher
	limiter *rate.Limiter

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewWatcher creates a watcher over dir. The callback runs on the
// watcher's goroutine after changes settle.
func NewWatcher(dir string, onChange func(context.Context)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		dir:      dir,
		onChange: onChange,
		debounce: DefaultDebounce,
		watcher:  fsw,
		limiter:  rate.NewLimiter(rate.Limit(maxRebuildsPerMinute)/60, 1),
	}, nil
}

// Start begins watching. Non-blocking; Stop shuts the loop down.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.mu.Unlock()

	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}

	logger.Debug("Watching %s for changes", w.dir)

	w.wg.Add(1)
	go w.run(ctx)
	return nil
}

// Stop shuts down the watcher and waits for the loop to exit.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	close(w.stopCh)
	w.mu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

// run coalesces bursts of events into single callback invocations.
func (w *Watcher) run(ctx context.Context) {
	defer w.wg.Done()

	var debounce *time.Timer
	var fire <-chan time.Time

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
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if debounce == nil {
				debounce = time.NewTimer(w.debounce)
				fire = debounce.C
			} else {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
				debounce.Reset(w.debounce)
			}

		case <-fire:
			debounce = nil
			fire = nil

			if !w.limiter.Allow() {
				logger.Debug("Reindex rate limit hit, skipping")
				continue
			}

			logger.Debug("Data directory changed, triggering reindex")
			w.onChange(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}
