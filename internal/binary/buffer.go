// Package binary provides the immutable byte buffer every decoder reads from,
// plus bounds-checked reading primitives over it.
package binary

import (
	"sync"
	"sync/atomic"
)

// Buffer is an immutable, fixed-length view over loaded file content.
//
// Decoders never mutate a Buffer. Results refer back into it through View
// values, which stop resolving once the Buffer is closed. A Buffer may be
// read from many goroutines at once; Close must not race with readers.
type Buffer struct {
	data     []byte
	path     string
	release  func() error
	released atomic.Bool
	once     sync.Once
}

// NewBuffer wraps data without copying it. The caller must not modify data
// afterwards. path is only used in error messages.
func NewBuffer(data []byte, path string) *Buffer {
	return &Buffer{data: data, path: path}
}

// NewReleasableBuffer wraps data whose backing memory is freed by release
// (for example an mmap region). release runs once, on the first Close.
func NewReleasableBuffer(data []byte, path string, release func() error) *Buffer {
	return &Buffer{data: data, path: path, release: release}
}

// Path returns the path associated with this buffer.
func (b *Buffer) Path() string {
	return b.path
}

// Len returns the buffer length N.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Released reports whether Close has been called.
func (b *Buffer) Released() bool {
	return b.released.Load()
}

// Close releases the buffer. Views derived from it return ErrBufferReleased
// from then on.
func (b *Buffer) Close() error {
	var err error
	b.once.Do(func() {
		b.released.Store(true)
		if b.release != nil {
			err = b.release()
		}
		b.data = nil
	})
	return err
}

// Slice returns n bytes at off. The returned slice aliases the buffer and
// must be treated as read-only.
func (b *Buffer) Slice(off, n int, what string) ([]byte, error) {
	if b.released.Load() {
		return nil, ErrBufferReleased
	}
	if off < 0 || n < 0 || off > len(b.data) || n > len(b.data)-off {
		return nil, &OutOfBoundsError{
			Path:   b.path,
			What:   what,
			Offset: int64(off),
			Length: n,
			Size:   int64(len(b.data)),
		}
	}
	return b.data[off : off+n : off+n], nil
}

// Byte returns the byte at off.
func (b *Buffer) Byte(off int, what string) (byte, error) {
	s, err := b.Slice(off, 1, what)
	if err != nil {
		return 0, err
	}
	return s[0], nil
}

// HasPrefixAt reports whether sig occurs at off. Out-of-range offsets
// simply do not match.
func (b *Buffer) HasPrefixAt(off int, sig string) bool {
	s, err := b.Slice(off, len(sig), "signature")
	if err != nil {
		return false
	}
	return string(s) == sig
}

// View returns a borrowed view of n bytes at off.
func (b *Buffer) View(off, n int, what string) (View, error) {
	if _, err := b.Slice(off, n, what); err != nil {
		return View{}, err
	}
	return View{buf: b, Offset: off, Length: n}, nil
}

// ClampedView returns a view of up to n bytes at off, cut short at the end
// of the buffer. truncated reports whether it was cut.
func (b *Buffer) ClampedView(off, n int) (v View, truncated bool) {
	size := len(b.data)
	if off < 0 || off > size || n < 0 {
		return View{buf: b, Offset: min(max(off, 0), size)}, true
	}
	if n > size-off {
		return View{buf: b, Offset: off, Length: size - off}, true
	}
	return View{buf: b, Offset: off, Length: n}, false
}
