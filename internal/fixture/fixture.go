// Package fixture builds synthetic MP3 byte buffers for tests.
package fixture

import (
	"bytes"
	"unicode/utf16"

	"github.com/AliceZed8/mp3-reader/internal/binary"
)

// Text encodings used in ID3v2 frames.
const (
	Latin1  byte = 0
	UTF16   byte = 1
	UTF16BE byte = 2
	UTF8    byte = 3
)

// ID3v1Size is the length of an ID3v1 trailer.
const ID3v1Size = 128

// Frame is one ID3v2 frame.
type Frame struct {
	ID      string
	Flags   uint16
	Payload []byte

	// DeclaredSize overrides the size field when ForceSize is set.
	DeclaredSize uint32
	ForceSize    bool
}

// TextFrame returns a text frame with the given encoding byte.
func TextFrame(id string, enc byte, text []byte) Frame {
	return Frame{ID: id, Payload: append([]byte{enc}, text...)}
}

// PictureFrame returns an APIC frame. desc must already be encoded and
// terminated the way enc requires.
func PictureFrame(enc byte, mime string, picType byte, desc, image []byte) Frame {
	p := []byte{enc}
	p = append(p, mime...)
	p = append(p, 0, picType)
	p = append(p, desc...)
	p = append(p, image...)
	return Frame{ID: "APIC", Payload: p}
}

// Tag is an ID3v2 tag.
type Tag struct {
	Major   byte
	Minor   byte
	Flags   byte
	Frames  []Frame
	Padding int

	// DeclaredSize overrides the synchsafe tag size when ForceSize is set.
	DeclaredSize uint32
	ForceSize    bool
}

// Bytes encodes the tag. Frame sizes are synchsafe for major version 4 and
// plain big-endian otherwise.
func (t Tag) Bytes() []byte {
	var body bytes.Buffer
	bw := binary.NewSafeWriter(&body)
	for _, f := range t.Frames {
		size := uint32(len(f.Payload))
		if f.ForceSize {
			size = f.DeclaredSize
		}
		must(bw.WriteString(f.ID))
		if t.Major == 4 {
			must(bw.WriteSynchsafe(size))
		} else {
			must(binary.Write(bw, size))
		}
		must(binary.Write(bw, f.Flags))
		must(bw.WriteBytes(f.Payload))
	}
	must(bw.WriteZeros(t.Padding))

	size := uint32(body.Len())
	if t.ForceSize {
		size = t.DeclaredSize
	}

	var out bytes.Buffer
	w := binary.NewSafeWriter(&out)
	must(w.WriteString("ID3"))
	must(w.WriteBytes([]byte{t.Major, t.Minor, t.Flags}))
	must(w.WriteSynchsafe(size))
	must(w.WriteBytes(body.Bytes()))
	return out.Bytes()
}

// ID3v1 is a 128-byte trailer. Track is written as ID3v1.1 when non-zero.
type ID3v1 struct {
	Title, Artist, Album string
	Year                 string
	Comment              string
	Track                byte
	Genre                byte
}

// Bytes encodes the trailer with NUL padding.
func (t ID3v1) Bytes() []byte {
	out := make([]byte, 0, ID3v1Size)
	out = append(out, "TAG"...)
	out = append(out, field(t.Title, 30)...)
	out = append(out, field(t.Artist, 30)...)
	out = append(out, field(t.Album, 30)...)
	out = append(out, field(t.Year, 4)...)
	comment := field(t.Comment, 30)
	if t.Track != 0 {
		comment[28] = 0
		comment[29] = t.Track
	}
	out = append(out, comment...)
	return append(out, t.Genre)
}

func field(s string, n int) []byte {
	b := make([]byte, n)
	copy(b, s)
	return b
}

// MPEGHeader packs header fields into the 4-byte word. Protection, private,
// copyright, original and emphasis are left at zero except that the
// protection bit is set (no CRC).
func MPEGHeader(version, layer, bitrateIndex, freqIndex, padding, mode int) uint32 {
	return 0x7FF<<21 |
		uint32(version&3)<<19 |
		uint32(layer&3)<<17 |
		1<<16 |
		uint32(bitrateIndex&0xF)<<12 |
		uint32(freqIndex&3)<<10 |
		uint32(padding&1)<<9 |
		uint32(mode&3)<<6
}

// MPEGFrame returns a frame of size bytes starting with header h. The rest
// is zero filled.
func MPEGFrame(h uint32, size int) []byte {
	var out bytes.Buffer
	w := binary.NewSafeWriter(&out)
	must(binary.Write(w, h))
	must(w.WriteZeros(max(size-4, 0)))
	return out.Bytes()
}

// XingFrame returns an MPEG-1 Layer III stereo frame of size bytes that
// carries a kind ("Xing" or "Info") tag declaring frames.
func XingFrame(h uint32, size int, kind string, frames uint32) []byte {
	b := MPEGFrame(h, size)
	var tag bytes.Buffer
	w := binary.NewSafeWriter(&tag)
	must(w.WriteString(kind))
	must(binary.Write(w, uint32(1)))
	must(binary.Write(w, frames))
	copy(b[4+32:], tag.Bytes())
	return b
}

// Concat joins parts into one buffer.
func Concat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

// UTF16LE encodes s as UTF-16 little-endian with a byte order mark.
func UTF16LE(s string) []byte {
	out := []byte{0xFF, 0xFE}
	for _, u := range utf16.Encode([]rune(s)) {
		out = append(out, byte(u), byte(u>>8))
	}
	return out
}

// UTF16BEBytes encodes s as UTF-16 big-endian, with a byte order mark when
// bom is set.
func UTF16BEBytes(s string, bom bool) []byte {
	var out []byte
	if bom {
		out = append(out, 0xFE, 0xFF)
	}
	for _, u := range utf16.Encode([]rune(s)) {
		out = append(out, byte(u>>8), byte(u))
	}
	return out
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
