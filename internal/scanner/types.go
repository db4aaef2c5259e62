// Package scanner discovers image files under a photo root and reconciles
// thumbnail/full/generic variants into manifest photo entries.
package scanner

import (
	"path"
	"path/filepath"
	"strings"
)

// File is one image file discovered during a walk.
// RelPath and Dir are relative to the photo root and always use forward
// slashes, matching the manifest path convention.
type File struct {
	Path    string // absolute path on disk
	RelPath string // path relative to the photo root
	Dir     string // directory component of RelPath, "" at the root
	Name    string // file name including extension
}

// NewFile builds a File from an absolute path and its root-relative path.
func NewFile(absPath, relPath string) File {
	rel := filepath.ToSlash(relPath)
	dir := path.Dir(rel)
	if dir == "." {
		dir = ""
	}
	return File{
		Path:    absPath,
		RelPath: rel,
		Dir:     dir,
		Name:    path.Base(rel),
	}
}

// IsImageExt reports whether ext (including the dot) is a gallery image
// format. Dimension probing covers a subset of these; the rest carry no
// probeable header and are listed without dimensions.
func IsImageExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".png", ".jpg", ".jpeg", ".webp", ".gif", ".avif":
		return true
	}
	return false
}
