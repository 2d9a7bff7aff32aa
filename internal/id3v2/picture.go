package id3v2

import (
	"errors"
	"fmt"

	"github.com/AliceZed8/mp3-reader/internal/types"
)

// DefaultPictureMIME is used when an APIC frame declares no MIME type.
const DefaultPictureMIME = "image/jpeg"

var errEmptyPicture = errors.New("APIC frame has no payload")

// DecodePicture decodes an APIC frame.
//
// Layout:
//
//	[1 byte]              text encoding
//	[NUL-terminated]      MIME type
//	[1 byte]              picture type
//	[encoding-terminated] description
//	[remaining]           image data
//
// The description terminator is one NUL byte for Latin-1 and UTF-8 and two
// NUL bytes on a 2-byte boundary for UTF-16. Fields that run into the end of
// the payload are cut there. The image is a view into the frame's buffer and
// is never copied.
func DecodePicture(f Frame, mode TextMode) (*types.Picture, error) {
	data, err := f.Payload.Borrow()
	if err != nil {
		return nil, fmt.Errorf("frame %s: %w", f.ID, err)
	}
	size := len(data)
	if size == 0 {
		return nil, errEmptyPicture
	}

	enc := data[0]
	pos := 1

	start := pos
	for pos < size && data[pos] != 0 {
		pos++
	}
	mime := string(data[start:pos])
	pos++
	if mime == "" {
		mime = DefaultPictureMIME
	}

	var picType byte
	if pos < size {
		picType = data[pos]
	}
	pos++

	var desc []byte
	switch enc {
	case EncodingLatin1, EncodingUTF8:
		start = min(pos, size)
		for pos < size && data[pos] != 0 {
			pos++
		}
		desc = data[start:min(pos, size)]
		pos++
	case EncodingUTF16, EncodingUTF16BE:
		start = min(pos, size)
		for pos < size-1 && (data[pos] != 0 || data[pos+1] != 0) {
			pos += 2
		}
		desc = data[start:min(pos, size)]
		pos += 2
	}

	pic := &types.Picture{
		MIMEType:    mime,
		Description: decodeString(enc, desc, mode),
		Type:        types.ArtworkType(picType),
		Image:       f.Payload.Sub(pos, size-pos),
	}
	if pos < size {
		sniffImage(pic, data[pos:])
	}
	return pic, nil
}
