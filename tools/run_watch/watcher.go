package run_watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"boltz_buddy/tools/boltz_runs"
)

// Kind classifies a filesystem event inside a run root.
type Kind int

const (
	KindIgnore Kind = iota
	KindDone        // a .DONE marker appeared
	KindFail        // the failure log grew
	KindEmbedding   // a new embeddings artifact landed
)

// Classify maps an event path to the progress event it represents.
func Classify(path string) Kind {
	base := filepath.Base(path)
	switch {
	case base == boltz_runs.DoneMarker:
		return KindDone
	case base == boltz_runs.FailLog:
		return KindFail
	case strings.HasPrefix(base, "embeddings_pair_") && strings.HasSuffix(base, ".npz"):
		return KindEmbedding
	}
	return KindIgnore
}

// Progress is a completion summary over the unit outdirs of a run root.
type Progress struct {
	Done  int
	Total int
}

// isUnitDir reports whether a directory is one resumable unit of work.
func isUnitDir(name string) bool {
	return strings.HasPrefix(name, "chunk_") || name == "val_full"
}

// Summarize counts completed vs total unit outdirs under root.
func Summarize(root string) (Progress, error) {
	var p Progress
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && isUnitDir(d.Name()) {
			p.Total++
			if boltz_runs.IsDone(path) {
				p.Done++
			}
		}
		return nil
	})
	return p, err
}

// WatchRoot watches a run root recursively and invokes onEvent for every
// progress event until the context is cancelled. New directories created
// during the run are picked up as they appear.
func WatchRoot(ctx context.Context, root string, onEvent func(kind Kind, path string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	addTree := func(dir string) error {
		return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return watcher.Add(path)
			}
			return nil
		})
	}
	if err := addTree(root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", root, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					// Boltz creates prediction dirs as it goes.
					_ = addTree(event.Name)
				}
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
				if kind := Classify(event.Name); kind != KindIgnore {
					onEvent(kind, event.Name)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, "Watcher error:", err)
		}
	}
}
