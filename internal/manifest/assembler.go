// Package manifest assembles photo entries and page metadata into the
// manifest document and writes it to disk.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/stillframe/stillframe-server/internal/domain"
)

// Metadata holds the optional top-level manifest fields supplied by the
// operator.
type Metadata struct {
	DownloadArchive string
	HeroEyebrow     string
	HeroTitle       string
	HeroSubtitle    string
	HeroImage       string
}

// Assemble wraps the ordered photo entries and metadata into a manifest
// document. Path-valued metadata is normalized to manifest-relative,
// forward-slash form.
func Assemble(photos []domain.PhotoEntry, meta Metadata) *domain.Manifest {
	return &domain.Manifest{
		Schema:          domain.SchemaURL,
		Photos:          photos,
		DownloadArchive: NormalizePath(meta.DownloadArchive),
		HeroEyebrow:     meta.HeroEyebrow,
		HeroTitle:       meta.HeroTitle,
		HeroSubtitle:    meta.HeroSubtitle,
		HeroImage:       NormalizePath(meta.HeroImage),
	}
}

// NormalizePath converts a path-valued manifest field to its published
// form. Absolute URLs (with a scheme, or protocol-relative) pass through
// unchanged. Local paths lose any leading "./" and a leading "assets/"
// segment, and use forward slashes regardless of the host separator.
func NormalizePath(p string) string {
	if p == "" {
		return ""
	}
	if strings.Contains(p, "://") || strings.HasPrefix(p, "//") {
		return p
	}

	p = filepath.ToSlash(p)
	p = strings.TrimPrefix(p, "./")
	// Manifest paths are resolved relative to the asset root already.
	p = strings.TrimPrefix(p, "assets/")
	return p
}

// Write atomically writes the manifest to path: the document is marshaled
// in full, written to a temp file beside the destination, synced, then
// renamed into place. Either the whole document lands or nothing changes.
func Write(path string, m *domain.Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".manifest-*.json")
	if err != nil {
		return fmt.Errorf("create temp manifest: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp manifest: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp manifest: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename manifest into place: %w", err)
	}
	return nil
}
