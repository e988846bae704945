package main

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mdScan = ScanOptions{Extension: "md", FollowSymlinks: true}

func collect(root string, opts ScanOptions) []string {
	var paths []string
	for path := range ScanFiles(root, opts) {
		rel, _ := filepath.Rel(root, path)
		paths = append(paths, filepath.ToSlash(rel))
	}
	slices.Sort(paths)
	return paths
}

func TestScanFilesFiltersExtension(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.md"), "a")
	writeFile(t, filepath.Join(root, "sub", "deep", "b.md"), "b")
	writeFile(t, filepath.Join(root, "c.txt"), "c")
	writeFile(t, filepath.Join(root, "d.MD"), "d")
	writeFile(t, filepath.Join(root, "e.markdown"), "e")
	writeFile(t, filepath.Join(root, ".md"), "hidden")
	writeFile(t, filepath.Join(root, "notes.md.bak"), "bak")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "dir.md"), 0755))

	assert.Equal(t, []string{"a.md", "sub/deep/b.md"}, collect(root, mdScan))
}

func TestScanFilesCustomExtension(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.md"), "a")
	writeFile(t, filepath.Join(root, "b.markdown"), "b")

	assert.Equal(t, []string{"b.markdown"}, collect(root, ScanOptions{Extension: "markdown"}))
}

func TestScanFilesMissingRoot(t *testing.T) {
	assert.Empty(t, collect(filepath.Join(t.TempDir(), "nope"), mdScan))
}

func TestScanFilesFollowsSymlinks(t *testing.T) {
	outside := t.TempDir()
	writeFile(t, filepath.Join(outside, "linked", "x.md"), "x")
	writeFile(t, filepath.Join(outside, "file.md"), "f")

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.md"), "a")
	require.NoError(t, os.Symlink(filepath.Join(outside, "linked"), filepath.Join(root, "dirlink")))
	require.NoError(t, os.Symlink(filepath.Join(outside, "file.md"), filepath.Join(root, "filelink.md")))
	require.NoError(t, os.Symlink(filepath.Join(outside, "gone.md"), filepath.Join(root, "dangling.md")))

	assert.Equal(t, []string{"a.md", "dirlink/x.md", "filelink.md"}, collect(root, mdScan))
	assert.Equal(t, []string{"a.md"}, collect(root, ScanOptions{Extension: "md"}))
}

func TestScanFilesSymlinkLoop(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "sub", "a.md"), "a")
	require.NoError(t, os.Symlink(root, filepath.Join(root, "sub", "loop")))

	assert.Equal(t, []string{"sub/a.md"}, collect(root, mdScan))
}

func TestScanFilesUnreadableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.md"), "a")
	locked := filepath.Join(root, "locked")
	writeFile(t, filepath.Join(locked, "b.md"), "b")
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	assert.Equal(t, []string{"a.md"}, collect(root, mdScan))
}

func TestScanFilesStopsEarly(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.md", "b.md", "c/d.md", "e.md"} {
		writeFile(t, filepath.Join(root, name), name)
	}

	count := 0
	for range ScanFiles(root, mdScan) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestHasExtension(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"note.md", true},
		{"archive.tar.md", true},
		{"note.MD", false},
		{".md", false},
		{"md", false},
		{"note.mdx", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, hasExtension(tt.name, "md"), tt.name)
	}
}
