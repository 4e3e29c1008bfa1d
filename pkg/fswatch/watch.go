package fswatch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/parthalab/krakensync/pkg/errors"
)

var fs = afero.NewOsFs()

// Watch watches for changes to files under `dir`. It sends an event on the
// returned channel whenever a file within the watched tree changes. Paths
// whose last component begins with a dot are ignored, and dot-directories
// aren't descended into.
// Directories created while watching are registered before their creation
// event is delivered, so changes inside them are seen as well.
// Rapid successive changes are coalesced: while an event is pending on the
// returned channel, further changes are dropped rather than queued.
func Watch(dir string) (chan struct{}, error) {
	pathsToWatch, err := getPathsToWatch(dir)
	if err != nil {
		return nil, errors.WithContext(err, "get paths")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WithContext(err, "create watcher")
	}

	for _, path := range pathsToWatch {
		if err := watcher.Add(path); err != nil {
			// Close the watcher so that we release the file handlers for the
			// previously added paths.
			if err := watcher.Close(); err != nil {
				log.WithError(err).Warn("Failed to close file watcher")
			}

			return nil, errors.WithContext(err, fmt.Sprintf("watch %q", path))
		}
	}
	return combineUpdates(watchEvents(watcher)), nil
}

// watchEvents drains the watcher and forwards its events. fsnotify doesn't
// watch directories recursively: a directory created under a watched
// directory only reports the mkdir in its parent, so its subtree is walked
// and registered before the event is forwarded. Watcher errors are drained
// too, so that a failing backend can't stall event delivery.
func watchEvents(watcher *fsnotify.Watcher) chan fsnotify.Event {
	events := make(chan fsnotify.Event)
	go func() {
		defer close(events)
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				if event.Op.Has(fsnotify.Create) && !isHidden(event.Name) {
					addNewPaths(watcher, event.Name)
				}
				events <- event
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.WithError(err).Warn("File watcher error")
			}
		}
	}()
	return events
}

// addNewPaths registers `path` and its subtree if it's a directory. Files
// created inside the directory before it was registered are picked up by
// the walk.
func addNewPaths(watcher *fsnotify.Watcher, path string) {
	fi, err := fs.Stat(path)
	if err != nil || !fi.Mode().IsDir() {
		return
	}

	subpaths, err := getPathsToWatch(path)
	if err != nil {
		log.WithError(err).Warnf("Failed to walk new directory %q", path)
		return
	}

	for _, subpath := range subpaths {
		if err := watcher.Add(subpath); err != nil {
			log.WithError(err).Warnf("Failed to watch %q", subpath)
		}
	}
}

func combineUpdates(updates <-chan fsnotify.Event) chan struct{} {
	combined := make(chan struct{}, 1)
	go func() {
		for event := range updates {
			if isHidden(event.Name) {
				continue
			}

			select {
			case combined <- struct{}{}:
			default:
			}
		}
	}()
	return combined
}

// isHidden reports whether the path's last component begins with a dot.
func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

func getPathsToWatch(dir string) (paths []string, err error) {
	fi, err := fs.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.FileNotFound{Path: dir}
		}
		return nil, errors.WithContext(err, "stat")
	}

	if !fi.Mode().IsDir() {
		return nil, errors.New(fmt.Sprintf("%q is not a directory", dir))
	}

	// Because fsnotify doesn't watch directories recursively, we walk the
	// directory's contents and add all subdirectories and files.
	err = afero.Walk(fs, dir, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return errors.WithContext(err, "walk error")
		}

		if path != dir && isHidden(path) {
			if fi.Mode().IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		paths = append(paths, path)
		return nil
	})
	return paths, err
}
