package main

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
)

// ScanOptions controls which files ScanFiles yields
type ScanOptions struct {
	Extension      string // without the leading dot, matched case-sensitively
	FollowSymlinks bool
}

// ScanFiles lazily walks root and yields every regular file with the
// configured extension. Entries that cannot be read or stat'ed are dropped.
func ScanFiles(root string, opts ScanOptions) iter.Seq[string] {
	return func(yield func(string) bool) {
		w := &walker{opts: opts, yield: yield}

		info, err := w.stat(root)
		if err != nil {
			debugLog("cannot scan %s: %v", root, err)
			return
		}
		if info.IsDir() {
			w.walkDir(root, []fs.FileInfo{info})
			return
		}
		if w.matches(root, info) {
			yield(root)
		}
	}
}

type walker struct {
	opts  ScanOptions
	yield func(string) bool
}

func (w *walker) stat(path string) (fs.FileInfo, error) {
	if w.opts.FollowSymlinks {
		return os.Stat(path)
	}
	return os.Lstat(path)
}

// walkDir returns false once the consumer stops iterating.
func (w *walker) walkDir(dir string, ancestors []fs.FileInfo) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		debugLog("cannot read directory %s: %v", dir, err)
		return true
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		info, err := w.stat(path)
		if err != nil {
			debugLog("cannot stat %s: %v", path, err)
			continue
		}

		if info.IsDir() {
			if isAncestor(info, ancestors) {
				debugLog("not descending into %s: symlink loop", path)
				continue
			}
			if !w.walkDir(path, append(ancestors[:len(ancestors):len(ancestors)], info)) {
				return false
			}
			continue
		}

		if w.matches(path, info) && !w.yield(path) {
			return false
		}
	}

	return true
}

func (w *walker) matches(path string, info fs.FileInfo) bool {
	return info.Mode().IsRegular() && hasExtension(filepath.Base(path), w.opts.Extension)
}

// hasExtension mirrors path extension rules: a name like ".md" is a hidden
// file without an extension.
func hasExtension(name, ext string) bool {
	suffix := "." + ext
	return filepath.Ext(name) == suffix && len(name) > len(suffix)
}

func isAncestor(info fs.FileInfo, ancestors []fs.FileInfo) bool {
	for _, a := range ancestors {
		if os.SameFile(a, info) {
			return true
		}
	}
	return false
}
