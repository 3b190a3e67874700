package config

import (
	"context"
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a Live's mutable fields whenever its backing file
// changes on disk. It never touches Port — only LogLevel and
// RequestTimeout are eligible for hot-reload.
type Watcher struct {
	live *Live
	log  *slog.Logger
}

// NewWatcher builds a Watcher for live. log may be nil, in which case
// slog.Default() is used.
func NewWatcher(live *Live, log *slog.Logger) *Watcher {
	if log == nil {
		log = slog.Default()
	}
	return &Watcher{live: live, log: log}
}

// Run watches live.ConfigFile() for writes until ctx is cancelled. If no
// config file was set, Run returns immediately. Reload errors are logged
// and otherwise ignored — a bad edit to the file leaves the previous
// values in place rather than crashing the server.
func (w *Watcher) Run(ctx context.Context) error {
	path := w.live.ConfigFile()
	if path == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}

	w.reload(path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				w.reload(path)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("config watcher error", "error", err)
		}
	}
}

func (w *Watcher) reload(path string) {
	fc, err := loadFile(path)
	if err != nil {
		w.log.Warn("config reload failed", "path", path, "error", err)
		return
	}
	w.live.applyFile(fc)
	w.log.Info("config reloaded", "path", path, "log_level", w.live.LogLevel(), "request_timeout", w.live.RequestTimeout())
}
