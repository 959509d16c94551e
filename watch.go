package mdblog

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/alnah/go-mdblog/internal/fileutil"
)

// Watch invalidates cached metadata whenever a post file is created,
// written, removed or renamed, or a directory is moved in or out of the
// content tree, then calls onChange (which may be nil).
// Bursts of events are grouped into one call. Watch blocks until ctx is
// done and returns nil on cancellation.
//
// Only repositories built with NewRepository can be watched.
func (r *Repository) Watch(ctx context.Context, onChange func()) error {
	if r.root == "" {
		return ErrWatchNotAllowed
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	dirs := watchedDirs{}
	if err := dirs.add(w, r.root); err != nil {
		return fmt.Errorf("%w: %v", ErrContentDir, err)
	}
	r.logger.Info().Str("dir", r.root).Str("pattern", r.pattern).Msg("watching content")

	// Stopped timer; armed by the first relevant event.
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			switch {
			case ev.Has(fsnotify.Create) && fileutil.DirExists(ev.Name):
				// A directory moved in may already hold posts.
				if err := dirs.add(w, ev.Name); err != nil {
					r.logger.Warn().Err(err).Str("dir", ev.Name).Msg("cannot watch new directory")
				}
			case (ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)) && dirs.drop(ev.Name):
			case r.relevant(ev):
			default:
				continue
			}
			r.logger.Debug().Str("path", ev.Name).Str("op", ev.Op.String()).Msg("content changed")
			r.Invalidate()
			timer.Reset(defaultDebounce)

		case <-timer.C:
			if onChange != nil {
				onChange()
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn().Err(err).Msg("watch error")
		}
	}
}

// relevant reports whether ev touches a file matched by the post pattern.
func (r *Repository) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	rel, err := filepath.Rel(r.root, ev.Name)
	if err != nil {
		return false
	}
	ok, err := doublestar.Match(r.pattern, filepath.ToSlash(rel))
	return err == nil && ok
}

// watchedDirs is the set of directories registered with the watcher.
// Removing or renaming one must invalidate even though its name matches no
// post pattern.
type watchedDirs map[string]struct{}

// add registers root and its subdirectories.
func (d watchedDirs) add(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, e fs.DirEntry, err error) error {
		if err != nil || !e.IsDir() {
			return err
		}
		if err := w.Add(path); err != nil {
			return err
		}
		d[path] = struct{}{}
		return nil
	})
}

// drop forgets dir and everything below it. Reports whether dir was watched.
func (d watchedDirs) drop(dir string) bool {
	if _, ok := d[dir]; !ok {
		return false
	}
	prefix := dir + string(filepath.Separator)
	for p := range d {
		if p == dir || strings.HasPrefix(p, prefix) {
			delete(d, p)
		}
	}
	return true
}
