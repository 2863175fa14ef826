package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const DefaultDebounce = 300 * time.Millisecond

type Func func(ctx context.Context) error

// Watcher reruns a function whenever a file changes.
type Watcher struct {
	path     string
	debounce time.Duration
	fn       Func
	logger   zerolog.Logger
}

func New(path string, debounce time.Duration, fn Func, logger zerolog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		path:     abs,
		debounce: debounce,
		fn:       fn,
		logger:   logger.With().Str("path", abs).Logger(),
	}, nil
}

/*
	Run calls fn once and then after every burst of changes to the file, until
	ctx is done. The parent directory is watched so a replaced file is still
	seen. Errors from fn are logged, not returned
*/
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}
	w.logger.Info().Msg("watching for changes")

	w.trigger(ctx)

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("watcher stopped")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.logger.Debug().Str("op", event.Op.String()).Msg("file changed")
				fire = time.After(w.debounce)
			}

		case <-fire:
			fire = nil
			w.trigger(ctx)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error().Err(err).Msg("watcher error")
		}
	}
}

func (w *Watcher) trigger(ctx context.Context) {
	if err := w.fn(ctx); err != nil {
		w.logger.Error().Err(err).Msg("regeneration failed")
		return
	}
	w.logger.Info().Msg("regenerated")
}
