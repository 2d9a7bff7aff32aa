package binary

import (
	"errors"
	"fmt"
)

var (
	// ErrBufferTooSmall reports a read that does not fit in the buffer.
	ErrBufferTooSmall = errors.New("buffer too small")

	// ErrBufferReleased reports access to a buffer after Close.
	ErrBufferReleased = errors.New("buffer released")
)

// OutOfBoundsError is returned when a read would leave the buffer.
type OutOfBoundsError struct {
	Path   string
	What   string
	Offset int64
	Length int
	Size   int64
}

func (e *OutOfBoundsError) Error() string {
	if e.Offset < 0 || e.Offset >= e.Size {
		return fmt.Sprintf("%s: offset %d out of bounds (buffer size: %d) while reading %s",
			e.Path, e.Offset, e.Size, e.What)
	}
	return fmt.Sprintf("%s: read of %d bytes at offset %d would exceed buffer size %d while reading %s",
		e.Path, e.Length, e.Offset, e.Size, e.What)
}

// Is makes OutOfBoundsError match ErrBufferTooSmall.
func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrBufferTooSmall
}
