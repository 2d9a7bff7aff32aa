package binary

import (
	"encoding/binary"
)

// Read reads a big-endian value of type T at the given offset.
// T must be uint8, uint16, uint32, or uint64.
func Read[T uint8 | uint16 | uint32 | uint64](b *Buffer, off int, what string) (T, error) {
	var zero T
	s, err := b.Slice(off, sizeOf[T](), what)
	if err != nil {
		return zero, err
	}

	var val T
	switch any(zero).(type) {
	case uint8:
		val = T(s[0])
	case uint16:
		val = T(binary.BigEndian.Uint16(s))
	case uint32:
		val = T(binary.BigEndian.Uint32(s))
	case uint64:
		val = T(binary.BigEndian.Uint64(s))
	}
	return val, nil
}

func sizeOf[T uint8 | uint16 | uint32 | uint64]() int {
	var zero T
	switch any(zero).(type) {
	case uint16:
		return 2
	case uint32:
		return 4
	case uint64:
		return 8
	}
	return 1
}

// Cursor provides sequential reading with automatic offset tracking and
// deferred error checking. After the first failed read every further read
// returns a zero value, and Err reports the first failure.
type Cursor struct {
	buf    *Buffer
	offset int
	err    error
}

// NewCursor creates a Cursor starting at the given offset.
func NewCursor(b *Buffer, offset int) *Cursor {
	return &Cursor{buf: b, offset: offset}
}

// ReadValue reads a big-endian value and advances the cursor.
func ReadValue[T uint8 | uint16 | uint32 | uint64](c *Cursor, what string) T {
	var zero T
	if c.err != nil {
		return zero
	}
	val, err := Read[T](c.buf, c.offset, what)
	if err != nil {
		c.err = err
		return zero
	}
	c.offset += sizeOf[T]()
	return val
}

// Bytes returns the next n bytes and advances the cursor.
func (c *Cursor) Bytes(n int, what string) []byte {
	if c.err != nil {
		return nil
	}
	s, err := c.buf.Slice(c.offset, n, what)
	if err != nil {
		c.err = err
		return nil
	}
	c.offset += n
	return s
}

// View returns a view of the next n bytes and advances the cursor.
func (c *Cursor) View(n int, what string) View {
	if c.err != nil {
		return View{}
	}
	v, err := c.buf.View(c.offset, n, what)
	if err != nil {
		c.err = err
		return View{}
	}
	c.offset += n
	return v
}

// Skip advances the offset by n bytes.
func (c *Cursor) Skip(n int) {
	c.offset += n
}

// Offset returns the current offset.
func (c *Cursor) Offset() int {
	return c.offset
}

// Err returns the first error encountered, if any.
func (c *Cursor) Err() error {
	return c.err
}
