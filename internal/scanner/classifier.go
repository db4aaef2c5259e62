package scanner

import (
	"path"
	"strings"
)

// Role represents the part a file plays within a photo entry.
type Role int

const (
	// RoleThumbnail represents the small rendition shown in the grid.
	RoleThumbnail Role = iota
	// RoleFull represents the large rendition shown in the lightbox.
	RoleFull
	// RoleGeneric represents a file with no suffix match; it can stand in
	// for either rendition.
	RoleGeneric
)

// String returns the string representation of a Role.
func (r Role) String() string {
	switch r {
	case RoleThumbnail:
		return "thumbnail"
	case RoleFull:
		return "full"
	case RoleGeneric:
		return "generic"
	default:
		return "unknown"
	}
}

// classifyName assigns a role to a file name and derives the clean base
// name used for reconciliation keys.
//
// The extension is stripped first. The thumbnail suffix is checked before
// the full suffix; a name matching neither is generic. Matching is a
// substring test anywhere in the name, and the first occurrence of the
// matched suffix is removed wherever it sits. Mid-name suffixes
// ("beach_small_edit") therefore classify and clean the same way as
// trailing ones; this is a documented policy of the manifest format, not
// an accident.
func classifyName(name, thumbSuffix, fullSuffix string) (Role, string) {
	base := strings.TrimSuffix(name, path.Ext(name))

	if thumbSuffix != "" && strings.Contains(base, thumbSuffix) {
		return RoleThumbnail, strings.Replace(base, thumbSuffix, "", 1)
	}
	if fullSuffix != "" && strings.Contains(base, fullSuffix) {
		return RoleFull, strings.Replace(base, fullSuffix, "", 1)
	}
	return RoleGeneric, base
}
