package walker

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mendersoftware/autoversion/internal/core"
)

// DefaultExtensions are the documentation file extensions processed when the
// configuration does not override them.
var DefaultExtensions = []string{".md", ".markdown"}

// DefaultExcludes are directory names pruned from the walk by default.
// node_modules ships several readme files with version strings, and the
// open-source license listings reference old versions on purpose.
var DefaultExcludes = []string{"node_modules", "03.Open-source-licenses"}

// Walker traverses a documentation tree, yielding files whose extension
// matches and pruning excluded directories.
type Walker struct {
	fs         core.FileSystem
	extensions []string
	excludes   []string
}

// New creates a Walker. Empty extensions or excludes fall back to the
// defaults.
func New(fs core.FileSystem, extensions, excludes []string) *Walker {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	if len(excludes) == 0 {
		excludes = DefaultExcludes
	}
	return &Walker{fs: fs, extensions: extensions, excludes: excludes}
}

// Walk calls fn for every documentation file under root, depth first in
// directory-listing order. The walk stops at the first error returned by fn.
func (w *Walker) Walk(ctx context.Context, root string, fn func(path string) error) error {
	return w.walkDir(ctx, root, fn)
}

func (w *Walker) walkDir(ctx context.Context, dir string, fn func(path string) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := w.fs.ReadDir(ctx, dir)
	if err != nil {
		// Unreadable directories are skipped, not fatal.
		return nil
	}

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)
		if entry.IsDir() {
			if slices.Contains(w.excludes, name) {
				continue
			}
			if err := w.walkDir(ctx, path, fn); err != nil {
				return err
			}
			continue
		}
		if !w.matchesExtension(name) {
			continue
		}
		if err := fn(path); err != nil {
			return err
		}
	}
	return nil
}

func (w *Walker) matchesExtension(name string) bool {
	for _, ext := range w.extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Excludes returns the directory names pruned by this walker.
func (w *Walker) Excludes() []string {
	return slices.Clone(w.excludes)
}
