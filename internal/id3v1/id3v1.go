// Package id3v1 extracts the legacy 128-byte ID3v1 trailer.
package id3v1

import (
	"fmt"

	"github.com/AliceZed8/mp3-reader/internal/binary"
	"github.com/AliceZed8/mp3-reader/internal/types"
)

// Size is the fixed length of an ID3v1 tag.
const Size = 128

// Signature starts every ID3v1 tag.
const Signature = "TAG"

// Field offsets within the tag.
const (
	titleOffset   = 3
	artistOffset  = 33
	albumOffset   = 63
	yearOffset    = 93
	commentOffset = 97
	genreOffset   = 127

	textLen = 30
	yearLen = 4
)

// Extract reads the ID3v1 tag from the last 128 bytes of buf.
//
// It returns types.ErrBufferTooSmall when the buffer is shorter than a tag
// and types.ErrSignatureMismatch when the trailer does not start with
// "TAG". Neither means the file is corrupt; the tag is simply absent.
func Extract(buf *binary.Buffer) (*types.ID3v1Tag, error) {
	if buf.Len() < Size {
		return nil, fmt.Errorf("id3v1: %w", &types.OutOfBoundsError{
			Path:   buf.Path(),
			What:   "ID3v1 tag",
			Offset: int64(buf.Len() - Size),
			Length: Size,
			Size:   int64(buf.Len()),
		})
	}

	start := buf.Len() - Size
	if !buf.HasPrefixAt(start, Signature) {
		return nil, fmt.Errorf("id3v1: %w", types.ErrSignatureMismatch)
	}

	c := binary.NewCursor(buf, start+titleOffset)
	tag := &types.ID3v1Tag{
		Offset: start,
		Title:  c.View(textLen, "ID3v1 title"),
		Artist: c.View(textLen, "ID3v1 artist"),
		Album:  c.View(textLen, "ID3v1 album"),
		Year:   c.View(yearLen, "ID3v1 year"),
	}
	comment := c.View(textLen, "ID3v1 comment")
	tag.GenreCode = binary.ReadValue[uint8](c, "ID3v1 genre")
	if err := c.Err(); err != nil {
		return nil, fmt.Errorf("id3v1: %w", err)
	}

	// ID3v1.1 stores the track in the last comment byte behind a NUL.
	raw, err := comment.Borrow()
	if err != nil {
		return nil, fmt.Errorf("id3v1: %w", err)
	}
	if raw[28] == 0 && raw[29] != 0 {
		tag.Track = int(raw[29])
		comment = comment.Sub(0, 28)
	}
	tag.Comment = comment

	return tag, nil
}
