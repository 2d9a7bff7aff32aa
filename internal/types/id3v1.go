package types

import (
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/AliceZed8/mp3-reader/internal/binary"
)

// ID3v1Tag is the fixed 128-byte trailer at the end of a buffer.
//
// Every text field is a raw, fixed-width view into the buffer. Trimming the
// NUL or space padding is left to the caller; Text does it for display.
type ID3v1Tag struct {
	// Offset of the "TAG" signature in the buffer
	Offset int

	Title   binary.View // 30 bytes
	Artist  binary.View // 30 bytes
	Album   binary.View // 30 bytes
	Year    binary.View // 4 bytes
	Comment binary.View // 30 bytes, 28 for ID3v1.1

	// Track is the ID3v1.1 track number, 0 for plain ID3v1.
	Track int

	// GenreCode is the raw genre byte.
	GenreCode byte
}

// Genre returns the genre name for GenreCode, empty when unknown.
func (t *ID3v1Tag) Genre() string {
	return GenreName(int(t.GenreCode))
}

// Text decodes a field view as ISO-8859-1 and trims NUL and space padding.
// It returns an empty string when the buffer is no longer available.
func (t *ID3v1Tag) Text(v binary.View) string {
	raw, err := v.Borrow()
	if err != nil {
		return ""
	}
	if i := strings.IndexByte(string(raw), 0); i >= 0 {
		raw = raw[:i]
	}
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return strings.TrimSpace(string(raw))
	}
	return strings.TrimSpace(string(s))
}
