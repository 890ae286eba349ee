package store

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// debounceWindow absorbs the write/rename event bursts editors and atomic
// file replacements produce.
const debounceWindow = 200 * time.Millisecond

// Watch reloads the file store whenever its backing file changes and invokes
// onReload after every successful reload. It blocks until ctx is canceled,
// so run it in its own goroutine. A reload failure keeps serving the previous
// rule set.
func Watch(ctx context.Context, fs *FileStore, onReload func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory, not the file: atomic saves replace the inode
	// and a file-level watch would go stale after the first write.
	dir := filepath.Dir(fs.Path())
	if err := watcher.Add(dir); err != nil {
		return err
	}
	log.Info().Str("path", fs.Path()).Msg("watching rules file")

	var timer *time.Timer
	reloads := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(fs.Path()) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceWindow, func() {
				select {
				case reloads <- struct{}{}:
				default:
				}
			})

		case <-reloads:
			if err := fs.Reload(); err != nil {
				log.Error().Err(err).Msg("rules reload failed, keeping previous rule set")
				continue
			}
			log.Info().Str("path", fs.Path()).Msg("rules file reloaded")
			if onReload != nil {
				onReload()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("rules watcher error")
		}
	}
}
