package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mythonlang/mython/mython"
)

const watchDebounce = 100 * time.Millisecond

// watchScript runs the script once and again after every change until ctx
// is done. Run failures are reported on stderr and do not stop the watch.
func watchScript(ctx context.Context, engine *mython.Engine, path string, stdout, stderr io.Writer) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve script path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Close()

	// editors often replace the file on save, which drops a file watch
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	rerun := func() {
		source, err := readScript(abs)
		if err == nil {
			err = runSource(ctx, engine, source, stdout)
		}
		if err != nil {
			fmt.Fprintln(stderr, errorStyle.Render(err.Error()))
		}
	}
	rerun()

	// rapid saves collapse into one run once the file has been quiet for
	// watchDebounce
	var settled <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if isScriptEvent(event, abs) {
				settled = time.After(watchDebounce)
			}

		case <-settled:
			settled = nil
			fmt.Fprintln(stderr, mutedStyle.Render(fmt.Sprintf("%s changed, re-running", filepath.Base(abs))))
			rerun()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(stderr, errorStyle.Render(fmt.Sprintf("watcher error: %v", err)))
		}
	}
}

// isScriptEvent reports whether event rewrote the watched script.
func isScriptEvent(event fsnotify.Event, script string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	return filepath.Clean(event.Name) == filepath.Clean(script)
}
