package xrefs

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the delay between the last change of watched files and refreezing.
const DefaultDebounce = 500 * time.Millisecond

// Watch freezes the document and then refreezes it every time the document or an aux file of its external
// documents changes. It blocks until ctx is cancelled. Errors of single runs are logged and do not stop watching.
func Watch(ctx context.Context, opts Options, debounce time.Duration) error {
	logger := opts.logger()

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	tex, err := filepath.Abs(opts.TexFile)
	if err != nil {
		return err
	}

	opts.TexFile = tex

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	defer watcher.Close()

	// files which trigger refreezing, directories are watched so editors replacing files are noticed
	watched := map[string]bool{}

	refreeze := func() {
		result, err := FreezeFile(opts)
		if err != nil {
			logger.Error("failed to freeze external references", "input", opts.TexFile, "error", err)
		}

		watched = map[string]bool{tex: true}
		paths := []string{tex}
		for _, doc := range result.Documents {
			aux := doc.Path
			if filepath.Ext(aux) != ".aux" {
				aux += ".aux"
			}

			watched[aux] = true
			paths = append(paths, aux)
		}

		for _, path := range paths {
			if err := watcher.Add(filepath.Dir(path)); err != nil {
				logger.Warn("unable to watch directory", "dir", filepath.Dir(path), "error", err)
			}
		}
	}

	refreeze()

	logger.Info("watching for changes", "input", tex, "files", len(watched))

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			logger.Info("stopping watcher")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !watched[filepath.Clean(event.Name)] || (!event.Has(fsnotify.Write) && !event.Has(fsnotify.Create)) {
				continue
			}

			logger.Debug("file changed", "file", event.Name, "op", event.Op.String())
			pending = time.After(debounce)

		case <-pending:
			pending = nil
			refreeze()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			logger.Error("watcher error", "error", err)
		}
	}
}
