// Package domain defines the manifest document and photo entry types.
package domain

import "math"

// Orientation describes the shape of a photo.
type Orientation string

const (
	OrientationLandscape Orientation = "landscape"
	OrientationPortrait  Orientation = "portrait"
	OrientationSquare    Orientation = "square"
)

// squareTolerance is the dimension difference, in pixels, below which a
// photo is still considered square.
const squareTolerance = 1

// PhotoEntry is one photo in the manifest, as consumed by the client renderer.
// Dimension fields are present only when header probing succeeded.
type PhotoEntry struct {
	ID              string      `json:"id" validate:"required"`
	Title           string      `json:"title" validate:"required"`
	Thumbnail       string      `json:"thumbnail,omitempty"`
	Full            string      `json:"full,omitempty"`
	Width           int         `json:"width,omitempty" validate:"omitempty,gt=0"`
	Height          int         `json:"height,omitempty" validate:"omitempty,gt=0"`
	ThumbnailWidth  int         `json:"thumbnailWidth,omitempty" validate:"omitempty,gt=0"`
	ThumbnailHeight int         `json:"thumbnailHeight,omitempty" validate:"omitempty,gt=0"`
	AspectRatio     float64     `json:"aspectRatio,omitempty" validate:"omitempty,gt=0"`
	Orientation     Orientation `json:"orientation" validate:"required,oneof=landscape portrait square"`
}

// HasAsset reports whether the entry points at any image file.
// Entries without assets are dropped from the manifest.
func (p *PhotoEntry) HasAsset() bool {
	return p.Thumbnail != "" || p.Full != ""
}

// OrientationFor computes the orientation for a width/height pair.
// Unknown dimensions and near-equal dimensions both map to square.
func OrientationFor(width, height int) Orientation {
	if width <= 0 || height <= 0 {
		return OrientationSquare
	}
	diff := width - height
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff <= squareTolerance:
		return OrientationSquare
	case width > height:
		return OrientationLandscape
	default:
		return OrientationPortrait
	}
}

// AspectRatio returns height/width rounded to 6 decimal places, or 0 when
// either dimension is unknown.
func AspectRatio(width, height int) float64 {
	if width <= 0 || height <= 0 {
		return 0
	}
	return math.Round(float64(height)/float64(width)*1e6) / 1e6
}
