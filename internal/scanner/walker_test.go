package scanner

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("x"), 0644))
	}
}

func collectWalk(t *testing.T, root string) []File {
	t.Helper()
	w := NewWalker(slog.New(slog.NewTextHandler(io.Discard, nil)))
	var files []File
	for f := range w.Walk(context.Background(), root) {
		files = append(files, f)
	}
	return files
}

func relPaths(files []File) []string {
	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.RelPath)
	}
	return paths
}

func TestWalkDiscoversImages(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"beach_small.jpg",
		"beach_large.jpg",
		"2024/sunset.png",
		"2024/trips/cliff.webp",
		"notes.txt",
		"README.md",
	)

	files := collectWalk(t, root)
	assert.ElementsMatch(t, []string{
		"beach_small.jpg",
		"beach_large.jpg",
		"2024/sunset.png",
		"2024/trips/cliff.webp",
	}, relPaths(files))
}

func TestWalkSkipsHiddenFilesAndDirectories(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"visible.jpg",
		".hidden.jpg",
		".thumbnails/cached.jpg",
		"2024/.DS_Store",
	)

	files := collectWalk(t, root)
	assert.Equal(t, []string{"visible.jpg"}, relPaths(files))
}

func TestWalkPopulatesFileFields(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "2024/beach_small.jpg")

	files := collectWalk(t, root)
	require.Len(t, files, 1)

	f := files[0]
	assert.Equal(t, filepath.Join(root, "2024", "beach_small.jpg"), f.Path)
	assert.Equal(t, "2024/beach_small.jpg", f.RelPath)
	assert.Equal(t, "2024", f.Dir)
	assert.Equal(t, "beach_small.jpg", f.Name)
}

func TestWalkEmptyRoot(t *testing.T) {
	files := collectWalk(t, t.TempDir())
	assert.Empty(t, files)
}

func TestWalkCanceledContext(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.jpg", "b.jpg", "c.jpg")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := NewWalker(slog.New(slog.NewTextHandler(io.Discard, nil)))
	var files []File
	for f := range w.Walk(ctx, root) {
		files = append(files, f)
	}
	assert.Empty(t, files)
}

func TestCheckRoot(t *testing.T) {
	t.Run("directory passes", func(t *testing.T) {
		assert.NoError(t, CheckRoot(t.TempDir()))
	})

	t.Run("missing path fails", func(t *testing.T) {
		assert.Error(t, CheckRoot(filepath.Join(t.TempDir(), "nope")))
	})

	t.Run("regular file fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file.jpg")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
		assert.Error(t, CheckRoot(path))
	})
}

func TestNewFileAtRoot(t *testing.T) {
	f := NewFile("/photos/beach.jpg", "beach.jpg")
	assert.Equal(t, "", f.Dir)
	assert.Equal(t, "beach.jpg", f.RelPath)
	assert.Equal(t, "beach.jpg", f.Name)
}

func TestIsImageExt(t *testing.T) {
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".webp", ".gif", ".avif", ".PNG", ".JPG"} {
		assert.True(t, IsImageExt(ext), "ext %q", ext)
	}
	for _, ext := range []string{".txt", ".md", ".mp4", "", "png"} {
		assert.False(t, IsImageExt(ext), "ext %q", ext)
	}
}
