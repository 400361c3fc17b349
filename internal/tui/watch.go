package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/julianstephens/tracker/internal/events"
	"github.com/julianstephens/tracker/internal/logger"
)

// watchStore publishes StoreChanged whenever the SQLite file (or its journal)
// is written, so changes made by another process show up in the TUI. The
// directory is watched because SQLite replaces journal files.
func watchStore(path string, bus *events.Bus) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	base := filepath.Base(path)
	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !strings.HasPrefix(filepath.Base(ev.Name), base) {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					bus.Publish(events.StoreChanged{})
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("Store watcher error", "error", err)
			}
		}
	}()
	return w, nil
}
