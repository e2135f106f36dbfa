package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const (
	WATCH_DEBOUNCE_DURATION = 100 * time.Millisecond
)

// watchFile calls onChange each time the file at path is written or re-created, bursts of events are
// debounced. watchFile returns when ctx is done. The parent directory is watched because editors often
// replace files instead of writing them.
func watchFile(ctx context.Context, path string, debounceDuration time.Duration, onChange func(), logger zerolog.Logger) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	debounced := debounce.New(debounceDuration)
	//replace the pending call, if any, so that onChange is not called after watchFile returns.
	defer debounced(func() {})

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != path {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				logger.Debug().Str("path", path).Stringer("op", event.Op).Msg("scenario file changed")
				debounced(onChange)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Err(err).Msg("watcher error")
		}
	}
}
