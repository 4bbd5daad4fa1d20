package content

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 250 * time.Millisecond

// Watcher reports when a content file changes on disk. The parent directory
// is watched so editors that save by rename are still noticed.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *log.Logger
	changes  chan string
}

// Watch starts watching path until ctx is cancelled.
func Watch(ctx context.Context, path string, logger *log.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if logger == nil {
		logger = log.Default()
	}
	w := &Watcher{
		path:     abs,
		debounce: defaultDebounce,
		logger:   logger.With("component", "watcher"),
		changes:  make(chan string, 1),
	}
	go w.run(ctx, fw)
	return w, nil
}

// Changes yields the watched path after each settled burst of writes. It is
// closed when the watcher stops.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher) {
	defer close(w.changes)
	defer fw.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("content event", "op", event.Op.String(), "path", event.Name)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "err", err)
		case <-fire:
			fire = nil
			select {
			case w.changes <- w.path:
			default:
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
