package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow batches bursts of filesystem events (e.g. rsync of a
// shoot) into a single regeneration.
const debounceWindow = 500 * time.Millisecond

// Watch runs an initial generation pass and then regenerates the manifest
// whenever the photo tree changes, until the context is canceled.
func (g *Generator) Watch(ctx context.Context) error {
	if _, err := g.Run(ctx); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	if err := watchTree(watcher, g.opts.PhotosDir); err != nil {
		return err
	}

	g.logger.Info("watching for changes", "root", g.opts.PhotosDir)

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if strings.HasPrefix(filepath.Base(event.Name), ".") {
				continue
			}
			// New directories must be added to the watch set.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchTree(watcher, event.Name); err != nil {
						g.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
					}
				}
			}
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
				timerC = timer.C
			} else {
				timer.Reset(debounceWindow)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			g.logger.Error("watch error", "error", err)

		case <-timerC:
			timer = nil
			timerC = nil
			if _, err := g.Run(ctx); err != nil {
				g.logger.Error("regeneration failed", "error", err)
			}
		}
	}
}

// watchTree registers root and every subdirectory with the watcher.
// fsnotify watches are not recursive.
func watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() != "." && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
