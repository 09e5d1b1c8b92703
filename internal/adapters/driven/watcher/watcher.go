// Package watcher reloads profiles when their files change on disk.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/flamesearch/internal/core/domain"
	"github.com/custodia-labs/flamesearch/internal/core/ports/driven"
	"github.com/custodia-labs/flamesearch/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.ProfileWatcher = (*Watcher)(nil)

// Watcher watches profile files and glob patterns.
//
// Directories are watched rather than files so that editors and profilers
// that replace a file by renaming over it are still seen.
type Watcher struct {
	minInterval time.Duration
}

// New creates a watcher that reports changes at most once per minInterval.
func New(minInterval time.Duration) *Watcher {
	if minInterval <= 0 {
		minInterval = domain.DefaultWatchInterval
	}
	return &Watcher{minInterval: minInterval}
}

// target is one watched file or pattern.
type target struct {
	path    string
	pattern bool

	// root is the static prefix directory of a pattern. When recursive is
	// set the pattern can match below root, so its subdirectories are
	// watched too.
	root      string
	recursive bool
}

// covers reports whether dir sits at or below the root of a recursive target.
func (t target) covers(dir string) bool {
	if !t.recursive {
		return false
	}
	rel, err := filepath.Rel(t.root, dir)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (t target) matches(name string) bool {
	if !t.pattern {
		return t.path == name
	}
	ok, err := doublestar.PathMatch(t.path, name)
	return err == nil && ok
}

// Watch calls onChange with the changed paths until ctx is done.
func (w *Watcher) Watch(ctx context.Context, paths []string, onChange func(changed []string)) error {
	if len(paths) == 0 {
		return fmt.Errorf("watch: %w: no paths", domain.ErrInvalidInput)
	}

	targets, dirs, err := resolve(paths)
	if err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer fsw.Close()

	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		logger.Debug("Watching %s", dir)
	}

	limiter := rate.NewLimiter(rate.Every(w.minInterval), 1)
	pending := make(map[string]struct{})

	var timer *time.Timer
	var flush <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			name := filepath.Clean(event.Name)
			if event.Op&fsnotify.Create != 0 && isDir(name) {
				if slices.ContainsFunc(targets, func(t target) bool { return t.covers(name) }) {
					addTree(fsw, name)
				}
				continue
			}
			if !slices.ContainsFunc(targets, func(t target) bool { return t.matches(name) }) {
				continue
			}
			pending[name] = struct{}{}
			if flush == nil {
				timer = time.NewTimer(limiter.Reserve().Delay())
				flush = timer.C
			}

		case <-flush:
			flush = nil
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			clear(pending)
			slices.Sort(changed)
			logger.Debug("Profiles changed: %v", changed)
			onChange(changed)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// resolve turns paths into absolute targets and the directories to watch.
// For glob patterns the static prefix directory is watched, along with
// every directory below it when the rest of the pattern spans directories.
func resolve(paths []string) ([]target, []string, error) {
	var targets []target
	var dirs []string
	addDir := func(dir string) {
		if !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, nil, fmt.Errorf("watch %s: %w", p, err)
		}

		t := target{path: abs, pattern: hasMeta(abs)}
		if !t.pattern {
			targets = append(targets, t)
			addDir(filepath.Dir(abs))
			continue
		}

		base, rest := doublestar.SplitPattern(filepath.ToSlash(abs))
		t.root = filepath.FromSlash(base)
		t.recursive = strings.Contains(rest, "/")
		targets = append(targets, t)

		addDir(t.root)
		if t.recursive {
			for _, sub := range subdirs(t.root) {
				addDir(sub)
			}
		}
	}
	return targets, dirs, nil
}

// subdirs lists the directories strictly below root. Unreadable entries
// are skipped.
func subdirs(root string) []string {
	var out []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() && path != root {
			out = append(out, path)
		}
		return nil
	})
	return out
}

// addTree watches a newly created directory and anything already inside it.
func addTree(fsw *fsnotify.Watcher, dir string) {
	for _, d := range append([]string{dir}, subdirs(dir)...) {
		if err := fsw.Add(d); err != nil {
			logger.Warn("watch %s: %v", d, err)
			continue
		}
		logger.Debug("Watching %s", d)
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func hasMeta(path string) bool {
	for _, c := range path {
		switch c {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
