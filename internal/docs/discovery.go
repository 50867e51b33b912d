// Package docs discovers Markdown source files on disk.
package docs

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/mdsite/internal/foundation/errors"
	"git.home.luguber.info/inful/mdsite/internal/logfields"
)

// DefaultExtensions are the source extensions used when none are configured.
var DefaultExtensions = []string{".md", ".markdown"}

// Discovery finds source files below a set of root paths.
//
// The extension filter applies uniformly: to files found while walking a
// directory and to files named explicitly. Hidden files and directories
// (leading ".") are skipped while walking but are honored when named
// explicitly.
type Discovery struct {
	extensions map[string]struct{}
	recurse    bool
}

// NewDiscovery creates a discovery instance. Extensions are matched
// case-insensitively; a missing leading dot is added. An empty list selects
// DefaultExtensions.
func NewDiscovery(extensions []string, recurse bool) *Discovery {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return &Discovery{extensions: set, recurse: recurse}
}

// Discover is shorthand for NewDiscovery(extensions, recurse).Discover(paths).
func Discover(paths []string, extensions []string, recurse bool) ([]string, error) {
	return NewDiscovery(extensions, recurse).Discover(paths)
}

// Discover returns the source files found under paths. A path that does not
// exist fails the whole call with a not_found error. The same file reached
// twice (named explicitly and found in a walked directory) is returned once.
//
// Result order follows the input paths and then lexical walk order; callers
// that need a specific order must sort.
func (d *Discovery) Discover(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	add := func(path string) {
		key := filepath.Clean(path)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		files = append(files, path)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, ferrors.FromPathError(err, root, "source path not accessible")
		}

		if !info.IsDir() {
			if d.matches(root) {
				add(root)
			} else {
				slog.Debug("Skipping file with unsupported extension", logfields.Path(root))
			}
			continue
		}

		found, err := d.walk(root)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}

	slog.Debug("Source files discovered", logfields.Count(len(files)))
	return files, nil
}

func (d *Discovery) walk(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if path == root {
			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.IsDir() {
			if !d.recurse {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.matches(path) {
			return nil
		}

		files = append(files, path)
		slog.Debug("Discovered file", logfields.Path(path))
		return nil
	})
	if err != nil {
		return nil, ferrors.FromPathError(err, root, "walk source directory")
	}

	return files, nil
}

func (d *Discovery) matches(path string) bool {
	_, ok := d.extensions[strings.ToLower(filepath.Ext(path))]
	return ok
}
