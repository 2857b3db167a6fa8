package config

import (
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reports external modifications to the managed file. The host
// application is an uncoordinated co-writer; last writer wins, and the log
// line is the only signal an operator gets that the file was rewritten
// underneath us.
type Watcher struct {
	store    *Store
	watcher  *fsnotify.Watcher
	logger   *zap.Logger
	stopChan chan struct{}
}

// NewWatcher creates a watcher for the store's managed file.
func NewWatcher(store *Store, logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		store:    store,
		watcher:  fw,
		logger:   logger,
		stopChan: make(chan struct{}),
	}, nil
}

// Start begins watching in the background. The parent directory is watched
// rather than the file itself because saves replace the file by rename.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.store.Path())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if err := w.watcher.Add(dir); err != nil {
		return err
	}
	go w.watchLoop()

	w.logger.Debug("watching config file", zap.String("path", w.store.Path()))
	return nil
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.store.Path() {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if w.store.ConsumeOwnWrite() {
				w.logger.Debug("skipping file event (programmatic change)",
					zap.String("path", event.Name))
				continue
			}
			w.logger.Warn("config file modified by another process; the next operation will see the new content",
				zap.String("path", event.Name),
				zap.String("op", event.Op.String()))

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("file watcher error", zap.Error(err))

		case <-w.stopChan:
			return
		}
	}
}

// Stop stops the watch loop and releases the watcher.
func (w *Watcher) Stop() error {
	close(w.stopChan)
	return w.watcher.Close()
}
