package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watch reloads the snapshot when the watched file changes. The parent
// directory is watched so editors that replace the file are noticed.
func (s *Server) watch(ctx context.Context) error {
	target, err := filepath.Abs(s.watchPath)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", target, err)
	}
	s.logger.Info("watching input", "path", target)

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event, target) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(s.debounce, func() {
				s.logger.Debug("input changed, rebuilding", "file", event.Name, "op", event.Op.String())
				if err := s.Reload(ctx); err != nil {
					s.logger.Error("reload failed, keeping current snapshot", "err", err)
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "err", err)
		}
	}
}

func relevant(event fsnotify.Event, target string) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	name, err := filepath.Abs(event.Name)
	return err == nil && name == target
}
