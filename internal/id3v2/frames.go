package id3v2

import (
	"fmt"
	"iter"

	"github.com/AliceZed8/mp3-reader/internal/binary"
	"github.com/AliceZed8/mp3-reader/internal/types"
)

// Frame is one frame inside an ID3v2 tag.
type Frame struct {
	ID     string
	Offset int // offset of the frame header in the buffer
	Size   uint32
	Flags  uint16

	// Payload holds the Size bytes after the frame header, cut short at
	// the end of the buffer.
	Payload binary.View

	// Truncated is set when the buffer ends before the declared payload does.
	Truncated bool
}

// FrameIterator walks the frames of one tag.
//
// Iteration starts right after the tag header and stops at the first
// padding byte, when a frame header would cross the declared tag end, or
// when it would cross the end of the buffer. Stops caused by a frame size
// running past either boundary are reported by Err.
type FrameIterator struct {
	buf *binary.Buffer
	tag TagHeader
	pos int
	err error
}

// NewFrameIterator returns an iterator over the frames of tag.
func NewFrameIterator(buf *binary.Buffer, tag TagHeader) *FrameIterator {
	return &FrameIterator{buf: buf, tag: tag, pos: tag.Offset + HeaderSize}
}

// Next returns the next frame. It returns false when iteration is over.
func (it *FrameIterator) Next() (Frame, bool) {
	if it.pos < 0 {
		return Frame{}, false
	}

	end := it.tag.End()
	switch {
	case it.pos+HeaderSize > end:
		if it.pos > end {
			it.fail(fmt.Errorf("frame at offset %d ends past tag end %d: %w",
				it.pos, end, types.ErrMalformedFrameChain))
		}
		return it.stop()
	case it.pos+HeaderSize > it.buf.Len():
		it.fail(fmt.Errorf("frame header at offset %d crosses buffer end %d: %w",
			it.pos, it.buf.Len(), types.ErrMalformedFrameChain))
		return it.stop()
	}

	raw, err := it.buf.Slice(it.pos, HeaderSize, "ID3v2 frame header")
	if err != nil {
		it.fail(err)
		return it.stop()
	}
	if raw[0] == 0 {
		return it.stop()
	}

	size := binary.Plain(raw[4:8])
	if it.tag.Major == 4 {
		size = binary.Synchsafe(raw[4:8])
	}

	f := Frame{
		ID:     string(raw[:4]),
		Offset: it.pos,
		Size:   size,
		Flags:  uint16(raw[8])<<8 | uint16(raw[9]),
	}
	f.Payload, f.Truncated = it.buf.ClampedView(it.pos+HeaderSize, int(size))

	it.pos += HeaderSize + int(size)
	return f, true
}

// Err returns the reason iteration stopped early, wrapping
// types.ErrMalformedFrameChain. It is nil after a clean stop.
func (it *FrameIterator) Err() error {
	return it.err
}

// All returns an iterator over the remaining frames.
func (it *FrameIterator) All() iter.Seq[Frame] {
	return func(yield func(Frame) bool) {
		for {
			f, ok := it.Next()
			if !ok || !yield(f) {
				return
			}
		}
	}
}

func (it *FrameIterator) stop() (Frame, bool) {
	it.pos = -1
	return Frame{}, false
}

func (it *FrameIterator) fail(err error) {
	if it.err == nil {
		it.err = err
	}
}

// Frames collects every frame of tag. Frames read before a malformed stop
// are returned together with the error.
func Frames(buf *binary.Buffer, tag TagHeader) ([]Frame, error) {
	it := NewFrameIterator(buf, tag)
	var frames []Frame
	for f := range it.All() {
		frames = append(frames, f)
	}
	return frames, it.Err()
}
