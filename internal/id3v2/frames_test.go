package id3v2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AliceZed8/mp3-reader/internal/fixture"
	"github.com/AliceZed8/mp3-reader/internal/types"
)

func frameIDs(frames []Frame) []string {
	ids := make([]string, len(frames))
	for i, f := range frames {
		ids[i] = f.ID
	}
	return ids
}

func TestFrames_V3PlainSizes(t *testing.T) {
	data := fixture.Tag{Major: 3, Padding: 32, Frames: []fixture.Frame{
		fixture.TextFrame("TIT2", fixture.Latin1, []byte("Title")),
		{ID: "TXXX", Flags: 0x0040, Payload: make([]byte, 256)},
		fixture.TextFrame("TPE1", fixture.Latin1, []byte("Artist")),
	}}.Bytes()
	buf := newBuffer(data)
	tag, err := ReadTagHeader(buf, 0)
	require.NoError(t, err)

	frames, err := Frames(buf, tag)
	require.NoError(t, err)
	require.Equal(t, []string{"TIT2", "TXXX", "TPE1"}, frameIDs(frames))

	assert.Equal(t, 10, frames[0].Offset)
	assert.Equal(t, uint32(6), frames[0].Size)
	assert.Equal(t, uint32(256), frames[1].Size)
	assert.Equal(t, uint16(0x0040), frames[1].Flags)
	assert.Equal(t, 26+10+256, frames[2].Offset)
	assert.False(t, frames[2].Truncated)

	payload, err := frames[2].Payload.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("\x00Artist"), payload)
}

func TestFrames_V4SynchsafeSizes(t *testing.T) {
	data := fixture.Tag{Major: 4, Frames: []fixture.Frame{
		{ID: "PRIV", Payload: make([]byte, 200)},
		fixture.TextFrame("TALB", fixture.UTF8, []byte("Album")),
	}}.Bytes()
	buf := newBuffer(data)
	tag, err := ReadTagHeader(buf, 0)
	require.NoError(t, err)

	// 200 encoded synchsafe is 0x00 0x00 0x01 0x48
	assert.Equal(t, []byte{0, 0, 1, 0x48}, data[14:18])

	frames, err := Frames(buf, tag)
	require.NoError(t, err)
	require.Equal(t, []string{"PRIV", "TALB"}, frameIDs(frames))
	assert.Equal(t, uint32(200), frames[0].Size)
}

func TestFrames_PlainSizeDecode(t *testing.T) {
	// {0,0,1,0} is 256 as a plain size and 128 as a synchsafe one
	raw := fixture.Concat(
		[]byte("ID3\x03\x00\x00"), []byte{0, 0, 0x02, 0x0A},
		[]byte("TXXX"), []byte{0, 0, 1, 0}, []byte{0, 0}, make([]byte, 256),
	)
	buf := newBuffer(raw)
	tag, err := ReadTagHeader(buf, 0)
	require.NoError(t, err)

	frames, err := Frames(buf, tag)
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Equal(t, uint32(256), frames[0].Size)

	raw[3] = 4
	tag, err = ReadTagHeader(buf, 0)
	require.NoError(t, err)
	frames, _ = Frames(buf, tag)
	require.NotEmpty(t, frames)
	assert.Equal(t, uint32(128), frames[0].Size)
}

func TestFrames_StopsAtPadding(t *testing.T) {
	data := fixture.Tag{Major: 3, Padding: 100, Frames: []fixture.Frame{
		fixture.TextFrame("TIT2", fixture.Latin1, []byte("One")),
	}}.Bytes()
	data = fixture.Concat(data, fixture.MPEGFrame(0xFFFB9064, 417))
	buf := newBuffer(data)
	tag, err := ReadTagHeader(buf, 0)
	require.NoError(t, err)

	frames, err := Frames(buf, tag)
	require.NoError(t, err)
	assert.Equal(t, []string{"TIT2"}, frameIDs(frames))
}

func TestFrames_EmptyTag(t *testing.T) {
	buf := newBuffer(fixture.Tag{Major: 3}.Bytes())
	tag, err := ReadTagHeader(buf, 0)
	require.NoError(t, err)

	frames, err := Frames(buf, tag)
	require.NoError(t, err)
	assert.Empty(t, frames)
}

func TestFrames_TagSizeBeyondBuffer(t *testing.T) {
	data := fixture.Tag{Major: 3, ForceSize: true, DeclaredSize: 100000, Frames: []fixture.Frame{
		fixture.TextFrame("TIT2", fixture.Latin1, []byte("Kept")),
	}}.Bytes()
	buf := newBuffer(data)
	tag, err := ReadTagHeader(buf, 0)
	require.NoError(t, err)

	frames, err := Frames(buf, tag)
	require.ErrorIs(t, err, types.ErrMalformedFrameChain)
	assert.Equal(t, []string{"TIT2"}, frameIDs(frames))
}

func TestFrames_FrameSizeBeyondBuffer(t *testing.T) {
	data := fixture.Tag{Major: 3, ForceSize: true, DeclaredSize: 5000, Frames: []fixture.Frame{
		{ID: "APIC", ForceSize: true, DeclaredSize: 4000, Payload: []byte{0, 'i', 'm', 'g', 0, 3, 0, 1, 2, 3}},
	}}.Bytes()
	buf := newBuffer(data)
	tag, err := ReadTagHeader(buf, 0)
	require.NoError(t, err)

	frames, err := Frames(buf, tag)
	require.ErrorIs(t, err, types.ErrMalformedFrameChain)
	require.Len(t, frames, 1)
	assert.True(t, frames[0].Truncated)
	assert.Equal(t, uint32(4000), frames[0].Size)
	assert.Equal(t, 10, frames[0].Payload.Len())
}

func TestFrames_FrameSizeBeyondTag(t *testing.T) {
	data := fixture.Tag{Major: 3, Frames: []fixture.Frame{
		fixture.TextFrame("TIT2", fixture.Latin1, []byte("One")),
		{ID: "TPE1", ForceSize: true, DeclaredSize: 50, Payload: []byte("\x00Two")},
	}}.Bytes()
	data = fixture.Concat(data, make([]byte, 200))
	buf := newBuffer(data)
	tag, err := ReadTagHeader(buf, 0)
	require.NoError(t, err)

	frames, err := Frames(buf, tag)
	require.ErrorIs(t, err, types.ErrMalformedFrameChain)
	assert.Equal(t, []string{"TIT2", "TPE1"}, frameIDs(frames))
}

func TestFrames_ShortTailInsideTag(t *testing.T) {
	// fewer than 10 bytes left before the tag end is a clean stop
	data := fixture.Tag{Major: 3, Padding: 0, Frames: []fixture.Frame{
		fixture.TextFrame("TIT2", fixture.Latin1, []byte("One")),
		{ID: "JUNK", Payload: nil},
	}}.Bytes()
	data = data[:len(data)-4]
	data[9] -= 4
	data = fixture.Concat(data, make([]byte, 32))
	buf := newBuffer(data)
	tag, err := ReadTagHeader(buf, 0)
	require.NoError(t, err)

	frames, err := Frames(buf, tag)
	require.NoError(t, err)
	assert.Equal(t, []string{"TIT2"}, frameIDs(frames))
}

func TestFrameIterator_StopsAfterEnd(t *testing.T) {
	buf := newBuffer(fixture.Tag{Major: 3, Frames: []fixture.Frame{
		fixture.TextFrame("TIT2", fixture.Latin1, []byte("One")),
	}}.Bytes())
	tag, err := ReadTagHeader(buf, 0)
	require.NoError(t, err)

	it := NewFrameIterator(buf, tag)
	_, ok := it.Next()
	require.True(t, ok)
	_, ok = it.Next()
	require.False(t, ok)
	_, ok = it.Next()
	assert.False(t, ok)
	assert.NoError(t, it.Err())
}

func TestFrames_SecondTagOffset(t *testing.T) {
	first := fixture.Tag{Major: 3, Frames: []fixture.Frame{
		fixture.TextFrame("TIT2", fixture.Latin1, []byte("First")),
	}}.Bytes()
	second := fixture.Tag{Major: 4, Frames: []fixture.Frame{
		fixture.TextFrame("TIT2", fixture.Latin1, []byte("Second")),
	}}.Bytes()
	buf := newBuffer(fixture.Concat(first, make([]byte, 7), second))

	tag, err := ReadTagHeader(buf, len(first)+7)
	require.NoError(t, err)
	frames, err := Frames(buf, tag)
	require.NoError(t, err)
	require.Len(t, frames, 1)

	text, err := DecodeTextFrame(frames[0], TextASCIISubset)
	require.NoError(t, err)
	assert.Equal(t, "Second", text)
}
