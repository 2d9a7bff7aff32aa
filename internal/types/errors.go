package types

import (
	"errors"
	"fmt"

	"github.com/AliceZed8/mp3-reader/internal/binary"
)

// OutOfBoundsError is returned when a read would leave the buffer.
type OutOfBoundsError = binary.OutOfBoundsError

var (
	// ErrBufferTooSmall reports a buffer shorter than the structure being read.
	ErrBufferTooSmall = binary.ErrBufferTooSmall

	// ErrBufferReleased reports access to borrowed bytes after the buffer was closed.
	ErrBufferReleased = binary.ErrBufferReleased

	// ErrSignatureMismatch reports that the expected magic bytes are absent.
	// It means "not present", not "corrupt".
	ErrSignatureMismatch = errors.New("signature mismatch")

	// ErrNoValidFrame reports that a scan found no structurally valid MPEG audio frame header.
	ErrNoValidFrame = errors.New("no valid audio frame found")

	// ErrMalformedFrameChain reports that ID3v2 frame iteration stopped at a tag
	// or buffer boundary instead of at padding or the declared tag end.
	ErrMalformedFrameChain = errors.New("malformed frame chain")
)

// CorruptedFileError is returned when strict parsing turns a warning into a failure.
type CorruptedFileError struct {
	Path   string
	Reason string
	Offset int64
}

func (e *CorruptedFileError) Error() string {
	return fmt.Sprintf("%s: corrupted file at offset %d: %s", e.Path, e.Offset, e.Reason)
}

// Warning represents a non-fatal issue encountered during decoding.
//
// Warnings indicate problems that don't prevent metadata extraction but
// may indicate corrupted or unusual data. Examples include:
//   - An "ID3" signature found away from offset 0
//   - A frame chain that runs past the tag or buffer end
//   - A picture dropped for exceeding the size limit
type Warning struct {
	// Stage where the warning occurred
	Stage string // "scan", "frames", "picture"

	// Warning message
	Message string

	// Buffer offset where the issue occurred (0 if not applicable)
	Offset int64
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("%s (at offset %d): %s", w.Stage, w.Offset, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}
