// Package id3v2 locates ID3v2 tags in a buffer, walks their frames and
// decodes text and picture frames.
package id3v2

import (
	"bytes"
	"fmt"

	"github.com/AliceZed8/mp3-reader/internal/binary"
	"github.com/AliceZed8/mp3-reader/internal/types"
)

// Signature starts every ID3v2 tag header.
const Signature = "ID3"

// HeaderSize is the size of both the tag header and a frame header.
const HeaderSize = 10

// Tag header flags.
const (
	FlagUnsynchronisation = 0x80
	FlagExtendedHeader    = 0x40
	FlagExperimental      = 0x20
	FlagFooter            = 0x10
)

// ScanMode selects how tags are detected in a buffer.
type ScanMode int

const (
	// ScanFirstTag accepts only a tag at offset 0. Signatures found anywhere
	// else are reported as anomalies.
	ScanFirstTag ScanMode = iota

	// ScanAllOffsets accepts a tag at every offset where the signature
	// occurs, including coincidental matches inside frame payloads or audio.
	ScanAllOffsets
)

func (m ScanMode) String() string {
	switch m {
	case ScanFirstTag:
		return "first-tag"
	case ScanAllOffsets:
		return "all-offsets"
	}
	return fmt.Sprintf("ScanMode(%d)", int(m))
}

// TagHeader is the 10-byte header of an ID3v2 tag.
type TagHeader struct {
	Offset int
	Major  byte
	Minor  byte
	Flags  byte

	// Size of the tag body, excluding this header.
	Size uint32
}

// End returns the offset one past the tag body as declared by Size. It may
// lie beyond the end of the buffer.
func (h TagHeader) End() int {
	return h.Offset + HeaderSize + int(h.Size)
}

func (h TagHeader) Unsynchronisation() bool { return h.Flags&FlagUnsynchronisation != 0 }
func (h TagHeader) ExtendedHeader() bool { return h.Flags&FlagExtendedHeader != 0 }
func (h TagHeader) Experimental() bool { return h.Flags&FlagExperimental != 0 }
func (h TagHeader) Footer() bool { return h.Flags&FlagFooter != 0 }

func (h TagHeader) String() string {
	return fmt.Sprintf("ID3v2.%d.%d at %d (%d bytes)", h.Major, h.Minor, h.Offset, h.Size)
}

// ReadTagHeader decodes the tag header at off.
func ReadTagHeader(buf *binary.Buffer, off int) (TagHeader, error) {
	raw, err := buf.Slice(off, HeaderSize, "ID3v2 header")
	if err != nil {
		return TagHeader{}, err
	}
	if string(raw[:3]) != Signature {
		return TagHeader{}, fmt.Errorf("ID3v2 header at offset %d: %w", off, types.ErrSignatureMismatch)
	}
	return TagHeader{
		Offset: off,
		Major:  raw[3],
		Minor:  raw[4],
		Flags:  raw[5],
		Size:   binary.Synchsafe(raw[6:10]),
	}, nil
}

// Scan finds ID3v2 tag headers in buf.
//
// Every offset from 0 through N-10 is tested for the "ID3" signature. In
// ScanAllOffsets mode each match yields a tag. In ScanFirstTag mode only a
// match at offset 0 does; the others are returned as warnings.
func Scan(buf *binary.Buffer, mode ScanMode) ([]TagHeader, []types.Warning) {
	data, err := buf.Slice(0, buf.Len(), "ID3v2 scan")
	if err != nil {
		return nil, nil
	}

	var (
		tags     []TagHeader
		warnings []types.Warning
	)
	sig := []byte(Signature)
	for off := 0; off+HeaderSize <= len(data); off++ {
		i := bytes.Index(data[off:len(data)-HeaderSize+len(sig)], sig)
		if i < 0 {
			break
		}
		off += i

		h, err := ReadTagHeader(buf, off)
		if err != nil {
			break
		}
		if mode == ScanAllOffsets || off == 0 {
			tags = append(tags, h)
			continue
		}

		msg := "ID3 signature outside offset 0 ignored"
		if len(tags) > 0 && off < tags[0].End() {
			msg = "ID3 signature inside tag body ignored"
		}
		warnings = append(warnings, types.Warning{Stage: "scan", Message: msg, Offset: int64(off)})
	}
	return tags, warnings
}
