package id3v2

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Text encoding selectors, the first payload byte of text and picture frames.
const (
	EncodingLatin1  = 0
	EncodingUTF16   = 1 // with byte order mark
	EncodingUTF16BE = 2 // big-endian, no byte order mark
	EncodingUTF8    = 3
)

// TextMode selects how UTF-16 text is decoded.
type TextMode int

const (
	// TextASCIISubset keeps every second byte of UTF-16 text when it is a
	// non-zero ASCII value and drops everything else, including the byte
	// order mark and any non-ASCII character. Latin-1 and UTF-8 payloads
	// are returned byte for byte.
	TextASCIISubset TextMode = iota

	// TextUnicode decodes UTF-16 and Latin-1 correctly to UTF-8 and trims
	// trailing NUL terminators.
	TextUnicode
)

func (m TextMode) String() string {
	switch m {
	case TextASCIISubset:
		return "ascii-subset"
	case TextUnicode:
		return "unicode"
	}
	return fmt.Sprintf("TextMode(%d)", int(m))
}

// DecodeText decodes a text frame payload: an encoding byte followed by the
// encoded text. An empty payload decodes to "".
func DecodeText(payload []byte, mode TextMode) string {
	if len(payload) == 0 {
		return ""
	}
	return decodeString(payload[0], payload[1:], mode)
}

// DecodeTextFrame decodes the payload of f.
func DecodeTextFrame(f Frame, mode TextMode) (string, error) {
	payload, err := f.Payload.Borrow()
	if err != nil {
		return "", fmt.Errorf("frame %s: %w", f.ID, err)
	}
	return DecodeText(payload, mode), nil
}

// decodeString decodes text stored with the encoding selector enc.
func decodeString(enc byte, text []byte, mode TextMode) string {
	if mode == TextUnicode {
		return decodeUnicode(enc, text)
	}

	switch enc {
	case EncodingLatin1, EncodingUTF8:
		return string(text)
	case EncodingUTF16, EncodingUTF16BE:
		return asciiProjection(text)
	}
	return ""
}

func asciiProjection(text []byte) string {
	out := make([]byte, 0, len(text)/2)
	for i := 0; i < len(text); i += 2 {
		if c := text[i]; c != 0 && c < 0x80 {
			out = append(out, c)
		}
	}
	return string(out)
}

var (
	utf16BOM = unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	utf16BE  = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
)

func decodeUnicode(enc byte, text []byte) string {
	var dec encoding.Encoding
	switch enc {
	case EncodingUTF8:
		return string(trimNUL(text, 1))
	case EncodingUTF16:
		dec = utf16BOM
		text = trimNUL(text, 2)
	case EncodingUTF16BE:
		dec = utf16BE
		text = trimNUL(text, 2)
	default:
		// Latin-1, also used for unknown selectors
		dec = charmap.ISO8859_1
		text = trimNUL(text, 1)
	}

	out, err := dec.NewDecoder().Bytes(text)
	if err != nil {
		return asciiProjection(text)
	}
	return string(out)
}

// trimNUL removes trailing terminators of the given code unit width.
func trimNUL(text []byte, width int) []byte {
	if width == 1 {
		return bytes.TrimRight(text, "\x00")
	}
	for len(text) >= 2 && text[len(text)-2] == 0 && text[len(text)-1] == 0 {
		text = text[:len(text)-2]
	}
	return text
}
