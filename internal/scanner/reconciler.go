package scanner

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/stillframe/stillframe-server/internal/domain"
	"github.com/stillframe/stillframe-server/internal/errors"
	"github.com/stillframe/stillframe-server/internal/probe"
	"github.com/stillframe/stillframe-server/internal/slug"
)

// DefaultThumbnailSuffix and DefaultFullSuffix are the rendition markers
// recognized in file names when no override is configured.
const (
	DefaultThumbnailSuffix = "_small"
	DefaultFullSuffix      = "_large"
)

// untitledPhoto is the display title for names that clean down to nothing.
const untitledPhoto = "Untitled photo"

// candidate is one file claiming a role within an entry.
type candidate struct {
	relPath string
	dims    *probe.Dimensions
}

// entry accumulates the files sharing one reconciliation key. At most one
// candidate per role survives; within a role, last write wins.
type entry struct {
	dir       string
	cleanBase string
	thumbnail *candidate
	full      *candidate
	generic   *candidate
}

// Reconciler merges classified files into photo entries keyed by
// directory plus suffix-stripped base name.
type Reconciler struct {
	thumbSuffix string
	fullSuffix  string
	strict      bool
	logger      *slog.Logger
	entries     map[string]*entry
}

// ReconcilerOption configures a Reconciler.
type ReconcilerOption func(*Reconciler)

// WithSuffixes overrides the thumbnail and full rendition suffixes.
func WithSuffixes(thumb, full string) ReconcilerOption {
	return func(r *Reconciler) {
		r.thumbSuffix = thumb
		r.fullSuffix = full
	}
}

// WithStrictCollisions makes a role overwrite an error instead of a
// logged warning. Default behavior keeps the permissive last-write-wins
// merge.
func WithStrictCollisions() ReconcilerOption {
	return func(r *Reconciler) {
		r.strict = true
	}
}

// NewReconciler creates a reconciler with the given options.
func NewReconciler(logger *slog.Logger, opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{
		thumbSuffix: DefaultThumbnailSuffix,
		fullSuffix:  DefaultFullSuffix,
		logger:      logger,
		entries:     make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add merges one discovered file into the accumulator. dims may be nil
// when probing failed or the format carries no header; the file still
// claims its role. Add must be called in traversal order: role overwrites
// are last-write-wins, so call order is part of the contract.
func (r *Reconciler) Add(f File, dims *probe.Dimensions) error {
	role, cleanBase := classifyName(f.Name, r.thumbSuffix, r.fullSuffix)

	key := cleanBase
	if f.Dir != "" {
		key = f.Dir + "/" + cleanBase
	}

	e, ok := r.entries[key]
	if !ok {
		e = &entry{dir: f.Dir, cleanBase: cleanBase}
		r.entries[key] = e
	}

	slot := e.slot(role)
	if prev := *slot; prev != nil {
		if r.strict {
			return errors.Conflictf("%s and %s both claim the %s role for %q", prev.relPath, f.RelPath, role, key)
		}
		r.logger.Warn("role collision, keeping later file",
			"key", key,
			"role", role.String(),
			"dropped", prev.relPath,
			"kept", f.RelPath,
		)
	}
	*slot = &candidate{relPath: f.RelPath, dims: dims}

	return nil
}

// slot returns the candidate pointer for a role.
func (e *entry) slot(role Role) **candidate {
	switch role {
	case RoleThumbnail:
		return &e.thumbnail
	case RoleFull:
		return &e.full
	default:
		return &e.generic
	}
}

// Counter issues sequential fallback ids for photos whose names slug to
// nothing. One Counter is scoped to one finalization pass so ids never
// leak across runs.
type Counter struct {
	n int
}

// Next returns the next zero-padded fallback id.
func (c *Counter) Next() string {
	c.n++
	return fmt.Sprintf("photo-%03d", c.n)
}

// Finalize sorts the accumulated keys and emits the manifest photo
// entries. Sorting is locale-aware, numeric-sensitive, and
// case-insensitive ("photo-2" before "photo-10"); this is the canonical
// manifest order and is reproducible for an unchanged tree.
func (r *Reconciler) Finalize() []domain.PhotoEntry {
	keys := make([]string, 0, len(r.entries))
	for key := range r.entries {
		keys = append(keys, key)
	}

	c := collate.New(language.Und, collate.Numeric, collate.IgnoreCase, collate.Loose)
	sort.SliceStable(keys, func(i, j int) bool {
		return c.CompareString(keys[i], keys[j]) < 0
	})

	counter := &Counter{}
	seen := make(map[string]int, len(keys))
	photos := make([]domain.PhotoEntry, 0, len(keys))
	for _, key := range keys {
		p, ok := r.entries[key].finalize(counter)
		if !ok {
			continue
		}
		// Distinct keys can slug to the same id ("Café" and "Cafe");
		// suffix later ones to keep ids unique.
		if n := seen[p.ID]; n > 0 {
			seen[p.ID] = n + 1
			p.ID = fmt.Sprintf("%s-%d", p.ID, n+1)
		}
		seen[p.ID]++
		photos = append(photos, p)
	}
	return photos
}

// finalize resolves roles and builds the output entry. The generic
// candidate fills whichever roles no suffixed file claimed. Entries left
// without any asset are dropped.
func (e *entry) finalize(counter *Counter) (domain.PhotoEntry, bool) {
	thumb := e.thumbnail
	if thumb == nil {
		thumb = e.generic
	}
	full := e.full
	if full == nil {
		full = e.generic
	}

	p := domain.PhotoEntry{}
	if thumb != nil {
		p.Thumbnail = thumb.relPath
		if thumb.dims != nil {
			p.ThumbnailWidth = thumb.dims.Width
			p.ThumbnailHeight = thumb.dims.Height
		}
	}
	if full != nil {
		p.Full = full.relPath
		if full.dims != nil {
			p.Width = full.dims.Width
			p.Height = full.dims.Height
		}
	}
	if !p.HasAsset() {
		return domain.PhotoEntry{}, false
	}

	// Primary dimensions fall back to the thumbnail rendition.
	if p.Width == 0 && p.Height == 0 {
		p.Width = p.ThumbnailWidth
		p.Height = p.ThumbnailHeight
	}

	p.ID = slug.Make(strings.TrimSpace(e.dir + " " + e.cleanBase))
	if p.ID == "" {
		p.ID = counter.Next()
	}

	p.Title = slug.Title(e.cleanBase)
	if p.Title == "" {
		p.Title = untitledPhoto
	}

	p.AspectRatio = domain.AspectRatio(p.Width, p.Height)
	p.Orientation = domain.OrientationFor(p.Width, p.Height)

	return p, true
}
