// Package probe extracts pixel dimensions from PNG and JPEG headers
// without decoding image data.
package probe

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"

	"github.com/stillframe/stillframe-server/internal/errors"
)

// Dimensions holds the pixel size read from an image header.
type Dimensions struct {
	Width  int
	Height int
}

// pngSignature is the fixed 8-byte prefix of every PNG file.
var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// PNG IHDR layout: the IHDR chunk is always first, so width and height
// sit at fixed offsets from the start of the file.
const (
	pngWidthOffset  = 16
	pngHeightOffset = 20
	pngHeaderLen    = 24
)

// JPEG markers.
const (
	jpegMarkerPrefix = 0xFF
	jpegSOI          = 0xD8 // start of image
	jpegEOI          = 0xD9 // end of image
	jpegSOS          = 0xDA // start of scan
)

// FromFile reads path and probes its header for dimensions.
// A nil result with a nil error means the format carries no probeable
// dimensions (unsupported extension, or the scan ended without a frame).
// Read failures are reported as i/o errors so callers can distinguish
// them from corrupt image bytes.
func FromFile(path string) (*Dimensions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeIO, "read %s", path)
	}
	return FromBytes(data, filepath.Ext(path))
}

// FromBytes probes raw image bytes based on the file extension.
func FromBytes(data []byte, ext string) (*Dimensions, error) {
	switch strings.ToLower(ext) {
	case ".png":
		return parsePNG(data)
	case ".jpg", ".jpeg":
		return parseJPEG(data)
	default:
		// Unsupported format: no dimensions available, not an error.
		return nil, nil
	}
}

// parsePNG reads the width and height from the IHDR chunk.
func parsePNG(data []byte) (*Dimensions, error) {
	if len(data) < pngHeaderLen {
		return nil, errors.MalformedHeaderf("png header truncated at %d bytes", len(data))
	}
	if string(data[:len(pngSignature)]) != string(pngSignature) {
		return nil, errors.MalformedHeader("png signature mismatch")
	}

	return &Dimensions{
		Width:  int(binary.BigEndian.Uint32(data[pngWidthOffset:])),
		Height: int(binary.BigEndian.Uint32(data[pngHeightOffset:])),
	}, nil
}

// parseJPEG walks the segment stream until it finds a start-of-frame
// marker and reads the dimensions it encodes. APP/COM segments of any
// length are skipped by their declared size.
func parseJPEG(data []byte) (*Dimensions, error) {
	if len(data) < 2 || data[0] != jpegMarkerPrefix || data[1] != jpegSOI {
		return nil, errors.MalformedHeader("jpeg SOI marker missing")
	}

	offset := 2
	for offset < len(data) {
		// Skip fill bytes preceding the marker code.
		if data[offset] == jpegMarkerPrefix {
			offset++
			continue
		}

		marker := data[offset]
		offset++

		if marker == jpegEOI || marker == jpegSOS {
			// Image data begins; no frame header was found.
			return nil, nil
		}

		if offset+1 >= len(data) {
			break
		}
		segmentLength := int(binary.BigEndian.Uint16(data[offset:]))
		if segmentLength < 2 {
			return nil, errors.MalformedHeaderf("jpeg segment 0x%02X declares length %d", marker, segmentLength)
		}

		if isStartOfFrame(marker) {
			// Segment payload: length(2) precision(1) height(2) width(2).
			if offset+6 >= len(data) {
				break
			}
			return &Dimensions{
				Height: int(binary.BigEndian.Uint16(data[offset+3:])),
				Width:  int(binary.BigEndian.Uint16(data[offset+5:])),
			}, nil
		}

		offset += segmentLength
	}

	return nil, errors.MalformedHeader("jpeg scan exhausted without start-of-frame marker")
}

// isStartOfFrame reports whether marker is one of the SOF codes that
// carry image dimensions. DHT (0xC4), JPG (0xC8) and DAC (0xCC) share
// the SOF numbering range but are not frame headers.
func isStartOfFrame(marker byte) bool {
	if marker < 0xC0 || marker > 0xCF {
		return false
	}
	switch marker {
	case 0xC4, 0xC8, 0xCC:
		return false
	}
	return true
}
