package types

import (
	"fmt"

	"github.com/AliceZed8/mp3-reader/internal/binary"
)

// Picture is an embedded image decoded from an APIC frame.
//
// The image bytes are borrowed from the buffer the picture was decoded
// from. Data fails with ErrBufferReleased once that buffer is closed; use
// Clone to keep the bytes beyond the buffer's lifetime.
type Picture struct {
	// MIME type as declared in the frame ("image/jpeg" when empty)
	MIMEType string

	// Description of the picture (may be empty)
	Description string

	// Type of picture (front cover, back cover, artist photo, etc.)
	Type ArtworkType

	// Image bytes inside the buffer
	Image binary.View

	// Dimensions sniffed from the image header, 0 when unknown
	Width  int
	Height int

	// MIME type sniffed from the image magic bytes, empty when unknown
	DetectedMIMEType string
}

// Data returns the image bytes. They alias heap-loaded content and are
// copied out of memory-mapped content, so the slice stays valid after the
// Reader is closed. Data itself fails once the Reader is closed.
func (p *Picture) Data() ([]byte, error) {
	return p.Image.Bytes()
}

// Clone returns an owned copy of the image bytes.
func (p *Picture) Clone() ([]byte, error) {
	return p.Image.Clone()
}

// Size returns the image length in bytes.
func (p *Picture) Size() int {
	return p.Image.Len()
}

// String returns a human-readable description of the picture.
//
// Example output: "Front cover (1200x1200 JPEG, 245KB)"
func (p Picture) String() string {
	dims := ""
	if p.Width > 0 && p.Height > 0 {
		dims = fmt.Sprintf("%dx%d ", p.Width, p.Height)
	}

	return fmt.Sprintf("%s (%s%s, %s)", p.Type, dims, mimeToFormat(p.MIMEType), formatSize(p.Image.Len()))
}

// ArtworkType categorizes the purpose/content of a picture.
//
// Types are the ID3v2 APIC picture types.
// See: https://id3.org/id3v2.4.0-frames (APIC frame)
type ArtworkType int

const (
	ArtworkOther ArtworkType = iota
	ArtworkIcon
	ArtworkOtherIcon
	ArtworkFrontCover
	ArtworkBackCover
	ArtworkLeaflet
	ArtworkMedia
	ArtworkLeadArtist
	ArtworkArtist
	ArtworkConductor
	ArtworkBand
	ArtworkComposer
	ArtworkLyricist
	ArtworkRecordingLocation
	ArtworkDuringRecording
	ArtworkDuringPerformance
	ArtworkVideoCapture
	ArtworkBrightFish
	ArtworkIllustration
	ArtworkBandLogotype
	ArtworkPublisherLogotype
)

var artworkTypeNames = [...]string{
	ArtworkOther:             "Other",
	ArtworkIcon:              "File icon",
	ArtworkOtherIcon:         "Other file icon",
	ArtworkFrontCover:        "Front cover",
	ArtworkBackCover:         "Back cover",
	ArtworkLeaflet:           "Leaflet page",
	ArtworkMedia:             "Media",
	ArtworkLeadArtist:        "Lead artist",
	ArtworkArtist:            "Artist",
	ArtworkConductor:         "Conductor",
	ArtworkBand:              "Band",
	ArtworkComposer:          "Composer",
	ArtworkLyricist:          "Lyricist",
	ArtworkRecordingLocation: "Recording location",
	ArtworkDuringRecording:   "During recording",
	ArtworkDuringPerformance: "During performance",
	ArtworkVideoCapture:      "Video capture",
	ArtworkBrightFish:        "A bright colored fish",
	ArtworkIllustration:      "Illustration",
	ArtworkBandLogotype:      "Band logotype",
	ArtworkPublisherLogotype: "Publisher logotype",
}

func (t ArtworkType) String() string {
	if t < 0 || int(t) >= len(artworkTypeNames) {
		return fmt.Sprintf("Picture type %d", int(t))
	}
	return artworkTypeNames[t]
}

// formatSize formats byte size in human-readable form.
func formatSize(bytes int) string {
	const (
		KB = 1024
		MB = 1024 * KB
	)

	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1fMB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%dKB", bytes/KB)
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

// mimeToFormat converts MIME type to short format name.
func mimeToFormat(mime string) string {
	switch mime {
	case "image/jpeg", "image/jpg":
		return "JPEG"
	case "image/png":
		return "PNG"
	case "image/gif":
		return "GIF"
	case "image/bmp":
		return "BMP"
	case "image/tiff":
		return "TIFF"
	case "image/webp":
		return "WebP"
	default:
		return "Image"
	}
}
