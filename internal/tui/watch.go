package tui

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// storeChangedMsg is sent when the history file changes on disk.
type storeChangedMsg struct{}

// storeWatcher reports changes to a single file. The parent directory is
// watched because atomic writes replace the file instead of modifying it.
type storeWatcher struct {
	fs      *fsnotify.Watcher
	target  string
	changes chan struct{}
}

func newStoreWatcher(path string) (*storeWatcher, error) {
	target, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fs.Add(dir); err != nil {
		_ = fs.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &storeWatcher{
		fs:      fs,
		target:  target,
		changes: make(chan struct{}, 1),
	}
	go w.loop()
	return w, nil
}

func (w *storeWatcher) loop() {
	defer close(w.changes)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			// coalesce bursts into one pending notification
			select {
			case w.changes <- struct{}{}:
			default:
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Debug().Err(err).Str("path", w.target).Msg("history watcher error")
		}
	}
}

// wait returns a command that blocks until the next change.
func (w *storeWatcher) wait() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-w.changes; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

// Close stops the watcher.
func (w *storeWatcher) Close() error {
	return w.fs.Close()
}
