package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyName(t *testing.T) {
	tests := []struct {
		name      string
		fileName  string
		wantRole  Role
		wantClean string
	}{
		{
			name:      "thumbnail suffix",
			fileName:  "beach_small.jpg",
			wantRole:  RoleThumbnail,
			wantClean: "beach",
		},
		{
			name:      "full suffix",
			fileName:  "beach_large.jpg",
			wantRole:  RoleFull,
			wantClean: "beach",
		},
		{
			name:      "no suffix is generic",
			fileName:  "sunset.png",
			wantRole:  RoleGeneric,
			wantClean: "sunset",
		},
		{
			name:      "mid-name thumbnail suffix",
			fileName:  "beach_small_edit.jpg",
			wantRole:  RoleThumbnail,
			wantClean: "beach_edit",
		},
		{
			name:      "thumbnail wins when both suffixes appear",
			fileName:  "pier_large_small.jpg",
			wantRole:  RoleThumbnail,
			wantClean: "pier_large",
		},
		{
			name:      "only first occurrence removed",
			fileName:  "dup_small_small.png",
			wantRole:  RoleThumbnail,
			wantClean: "dup_small",
		},
		{
			name:      "suffix-only name cleans to empty",
			fileName:  "_small.png",
			wantRole:  RoleThumbnail,
			wantClean: "",
		},
		{
			name:      "extension stripped before matching",
			fileName:  "cliff_large.jpeg",
			wantRole:  RoleFull,
			wantClean: "cliff",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, clean := classifyName(tt.fileName, DefaultThumbnailSuffix, DefaultFullSuffix)
			assert.Equal(t, tt.wantRole, role)
			assert.Equal(t, tt.wantClean, clean)
		})
	}
}

func TestClassifyNameCustomSuffixes(t *testing.T) {
	role, clean := classifyName("beach-thumb.jpg", "-thumb", "-big")
	assert.Equal(t, RoleThumbnail, role)
	assert.Equal(t, "beach", clean)

	role, clean = classifyName("beach-big.jpg", "-thumb", "-big")
	assert.Equal(t, RoleFull, role)
	assert.Equal(t, "beach", clean)

	// Default suffixes mean nothing once overridden.
	role, clean = classifyName("beach_small.jpg", "-thumb", "-big")
	assert.Equal(t, RoleGeneric, role)
	assert.Equal(t, "beach_small", clean)
}

func TestClassifyNameEmptySuffixNeverMatches(t *testing.T) {
	role, clean := classifyName("beach.jpg", "", DefaultFullSuffix)
	assert.Equal(t, RoleGeneric, role)
	assert.Equal(t, "beach", clean)
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "thumbnail", RoleThumbnail.String())
	assert.Equal(t, "full", RoleFull.String())
	assert.Equal(t, "generic", RoleGeneric.String())
	assert.Equal(t, "unknown", Role(99).String())
}
