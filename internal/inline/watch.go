package inline

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/reportdoc/internal/errors"
	"git.home.luguber.info/inful/reportdoc/internal/imaging"
)

// Watch processes every Markdown file in dir once, then keeps watching the
// directory and re-processes files as they change until ctx is cancelled.
// Rapid write bursts (editors, generators with auto-flush) are debounced.
func Watch(ctx context.Context, dir string, enc imaging.Encoding, debounce time.Duration) error {
	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}

	if _, err := Dir(dir, enc); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.CategoryFilesystem, "create file watcher")
	}
	defer watcher.Close()
	if err := watcher.Add(dir); err != nil {
		return errors.Filesystem(err, "watch directory").WithContext("path", dir)
	}

	var mu sync.Mutex
	pending := map[string]*time.Timer{}
	process := make(chan string, 16)

	schedule := func(path string) {
		mu.Lock()
		defer mu.Unlock()
		if timer, ok := pending[path]; ok {
			timer.Stop()
		}
		pending[path] = time.AfterFunc(debounce, func() {
			mu.Lock()
			delete(pending, path)
			mu.Unlock()
			select {
			case process <- path:
			case <-ctx.Done():
			}
		})
	}

	slog.Info("watching for markdown changes", "dir", dir)
	for {
		select {
		case <-ctx.Done():
			return nil
		case path := <-process:
			res, err := File(path, enc)
			if err != nil {
				slog.Warn("inline failed", "path", path, "error", err)
				continue
			}
			if res.Inlined > 0 {
				slog.Info("inlined images", "path", path,
					"inlined", res.Inlined, "removed", len(res.Removed))
			}
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !strings.HasSuffix(event.Name, ".md") {
				continue
			}
			schedule(filepath.Clean(event.Name))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "error", err)
		}
	}
}
