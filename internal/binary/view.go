package binary

// View is a non-owning window into a Buffer.
//
// A View resolves its window on each call and fails with ErrBufferReleased
// once the Buffer is closed. Slices returned by Bytes and Clone stay valid
// after Close; slices returned by Borrow do not.
type View struct {
	buf    *Buffer
	Offset int
	Length int
}

// IsZero reports whether v refers to no buffer at all.
func (v View) IsZero() bool {
	return v.buf == nil
}

// Len returns the view length.
func (v View) Len() int {
	return v.Length
}

// Bytes returns the viewed bytes.
//
// For heap buffers the slice aliases the buffer and must be treated as
// read-only; the garbage collector keeps it valid. For releasable buffers,
// whose memory is unmapped on Close, Bytes returns an owned copy so the
// result stays valid after Close.
func (v View) Bytes() ([]byte, error) {
	if v.buf != nil && v.buf.release != nil {
		return v.Clone()
	}
	return v.Borrow()
}

// Borrow returns the viewed bytes without copying. The slice is only valid
// until the buffer is closed and must not be retained past the call that
// borrowed it.
func (v View) Borrow() ([]byte, error) {
	if v.buf == nil {
		return nil, nil
	}
	return v.buf.Slice(v.Offset, v.Length, "view")
}

// Clone returns an owned copy of the viewed bytes.
func (v View) Clone() ([]byte, error) {
	b, err := v.Borrow()
	if err != nil || b == nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// Sub returns the part of v starting at off with length n, clamped to v.
func (v View) Sub(off, n int) View {
	off = min(max(off, 0), v.Length)
	n = min(max(n, 0), v.Length-off)
	return View{buf: v.buf, Offset: v.Offset + off, Length: n}
}
