package mp3reader_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mp3reader "github.com/AliceZed8/mp3-reader"
	"github.com/AliceZed8/mp3-reader/internal/fixture"
)

// MPEG-1 Layer III, 128 kbps, 44100 Hz, joint stereo
const cbrHeader = 0xFFFB9064

var cover = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}

func audio(frames int) []byte {
	parts := make([][]byte, frames)
	for i := range parts {
		parts[i] = fixture.MPEGFrame(cbrHeader, 417)
	}
	return fixture.Concat(parts...)
}

func tagged() []byte {
	return fixture.Tag{Major: 3, Padding: 128, Frames: []fixture.Frame{
		fixture.TextFrame("TIT2", fixture.Latin1, []byte("Song")),
		fixture.TextFrame("TPE1", fixture.UTF16, fixture.UTF16LE("Band")),
		fixture.TextFrame("TALB", fixture.Latin1, []byte("Record")),
		fixture.TextFrame("TYER", fixture.Latin1, []byte("1987")),
		fixture.TextFrame("TRCK", fixture.Latin1, []byte("2/9")),
		fixture.TextFrame("TCON", fixture.Latin1, []byte("(17)")),
		fixture.PictureFrame(fixture.Latin1, "image/jpeg", 3, []byte("cover\x00"), cover),
	}}.Bytes()
}

func buildMP3() []byte {
	trailer := fixture.ID3v1{Title: "Legacy Song", Artist: "Legacy Band", Year: "1986", Track: 2, Genre: 17}
	return fixture.Concat(tagged(), audio(20), trailer.Bytes())
}

func writeFile(t testing.TB, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.mp3")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestOpen(t *testing.T) {
	path := writeFile(t, buildMP3())

	for _, mode := range []mp3reader.LoadMode{mp3reader.LoadMmap, mp3reader.LoadRead} {
		t.Run(mode.String(), func(t *testing.T) {
			r, err := mp3reader.Open(path, mp3reader.WithLoadMode(mode))
			require.NoError(t, err)
			defer r.Close()

			assert.Equal(t, path, r.Path)
			meta := r.Metadata()
			assert.Equal(t, "Song", meta.Title.Value)
			assert.Equal(t, "Band", meta.Artist.Value)
			assert.Equal(t, "Record", meta.Album.Value)
			assert.Equal(t, 1987, meta.YearNumber())
			num, total := meta.TrackNumber()
			assert.Equal(t, 2, num)
			assert.Equal(t, 9, total)
			assert.Equal(t, "Rock", meta.GenreName())

			require.NotNil(t, meta.Picture)
			assert.Equal(t, "image/jpeg", meta.Picture.MIMEType)
			assert.Equal(t, "cover", meta.Picture.Description)
			img, err := meta.Picture.Data()
			require.NoError(t, err)
			assert.Equal(t, cover, img)

			assert.Empty(t, r.Anomalies())
			require.Len(t, r.Tags(), 1)
		})
	}
}

func TestReader_ID3v1(t *testing.T) {
	r, err := mp3reader.New(buildMP3())
	require.NoError(t, err)
	defer r.Close()

	tag, err := r.ID3v1()
	require.NoError(t, err)
	assert.Equal(t, "Legacy Song", tag.Text(tag.Title))
	assert.Equal(t, "Legacy Band", tag.Text(tag.Artist))
	assert.Equal(t, "1986", tag.Text(tag.Year))
	assert.Equal(t, 2, tag.Track)
	assert.Equal(t, "Rock", tag.Genre())
}

func TestReader_ID3v1Absent(t *testing.T) {
	r, err := mp3reader.New(fixture.Concat(tagged(), audio(2)))
	require.NoError(t, err)

	_, err = r.ID3v1()
	assert.ErrorIs(t, err, mp3reader.ErrSignatureMismatch)

	r, err = mp3reader.New([]byte("short"))
	require.NoError(t, err)
	_, err = r.ID3v1()
	assert.ErrorIs(t, err, mp3reader.ErrBufferTooSmall)
}

func TestReader_FirstFrame(t *testing.T) {
	r, err := mp3reader.New(buildMP3())
	require.NoError(t, err)

	info, err := r.FirstFrameFrom(r.Tags()[0].End())
	require.NoError(t, err)

	assert.Equal(t, len(tagged()), info.Offset)
	assert.Equal(t, uint32(cbrHeader), info.Header)
	assert.Equal(t, "MPEG 1", info.VersionName)
	assert.Equal(t, 3, info.Layer)
	assert.Equal(t, 128, info.Bitrate)
	assert.Equal(t, 44100, info.Frequency)
	assert.Equal(t, "Joint stereo", info.ChannelModeName)
	assert.Equal(t, "none", info.EmphasisName)
	assert.Equal(t, 417, info.FrameSize)
	assert.True(t, info.Original)
	assert.False(t, info.Copyright)
	assert.False(t, info.Protected)
	// 20 frames of 417 bytes at 128 kbps, trailer excluded
	assert.InDelta(t, 20*417*8/128000.0, info.Duration.Seconds(), 0.001)
	assert.Equal(t, "MPEG 1 Layer 3 128kbps 44100Hz Joint stereo", info.String())
}

func TestReader_FirstFrameMatchesInsideTag(t *testing.T) {
	// the UTF-16 byte order mark FF FE followed by 0x42 is a valid
	// MPEG-1 Layer I header
	data := buildMP3()
	r, err := mp3reader.New(data)
	require.NoError(t, err)

	info, err := r.FirstFrame()
	require.NoError(t, err)
	assert.Equal(t, bytes.Index(data, []byte{0xFF, 0xFE}), info.Offset)
	assert.Equal(t, 1, info.Layer)
	assert.Less(t, info.Offset, r.Tags()[0].End())
}

func TestReader_FirstFrameFrom(t *testing.T) {
	r, err := mp3reader.New(buildMP3())
	require.NoError(t, err)

	tags := r.Tags()
	require.Len(t, tags, 1)

	info, err := r.FirstFrameFrom(tags[0].End() + 1)
	require.NoError(t, err)
	assert.Equal(t, tags[0].End()+417, info.Offset)

	r, err = mp3reader.New(buildMP3(), mp3reader.WithFrameSearchStart(tags[0].End()+1))
	require.NoError(t, err)
	info, err = r.FirstFrame()
	require.NoError(t, err)
	assert.Equal(t, tags[0].End()+417, info.Offset)
}

func TestReader_NoFrame(t *testing.T) {
	r, err := mp3reader.New(tagged())
	require.NoError(t, err)

	_, err = r.FirstFrameFrom(r.Tags()[0].End())
	assert.ErrorIs(t, err, mp3reader.ErrNoValidFrame)
}

func TestReader_StrayTagSignature(t *testing.T) {
	second := fixture.Tag{Major: 4, Frames: []fixture.Frame{
		fixture.TextFrame("TIT2", fixture.UTF8, []byte("Spurious")),
	}}.Bytes()
	data := fixture.Concat(tagged(), audio(2), second, audio(2))
	strayOffset := int64(len(tagged()) + 2*417)

	r, err := mp3reader.New(data)
	require.NoError(t, err)
	assert.Equal(t, "Song", r.Metadata().Title.Value)
	anomalies := r.Anomalies()
	require.Len(t, anomalies, 1)
	assert.Equal(t, strayOffset, anomalies[0].Offset)
	assert.Equal(t, "scan", anomalies[0].Stage)

	r, err = mp3reader.New(data, mp3reader.WithScanMode(mp3reader.ScanAllOffsets))
	require.NoError(t, err)
	assert.Equal(t, "Spurious", r.Metadata().Title.Value)
	assert.Equal(t, "Band", r.Metadata().Artist.Value)
	assert.Empty(t, r.Anomalies())
	assert.Len(t, r.Tags(), 2)
}

func TestReader_StrictParsing(t *testing.T) {
	data := fixture.Concat(tagged(), audio(1), []byte("ID3\x03\x00\x00\x00\x00\x00\x00"))

	_, err := mp3reader.New(data, mp3reader.WithStrictParsing())
	var corrupted *mp3reader.CorruptedFileError
	require.ErrorAs(t, err, &corrupted)
	assert.Equal(t, int64(len(tagged())+417), corrupted.Offset)

	path := writeFile(t, data)
	_, err = mp3reader.Open(path, mp3reader.WithStrictParsing())
	require.ErrorAs(t, err, &corrupted)
	assert.Equal(t, path, corrupted.Path)

	r, err := mp3reader.New(buildMP3(), mp3reader.WithStrictParsing())
	require.NoError(t, err)
	assert.Empty(t, r.Anomalies())
}

func TestReader_MalformedChainIsWarning(t *testing.T) {
	data := fixture.Tag{Major: 3, ForceSize: true, DeclaredSize: 1 << 20, Frames: []fixture.Frame{
		fixture.TextFrame("TIT2", fixture.Latin1, []byte("Partial")),
	}}.Bytes()

	r, err := mp3reader.New(data)
	require.NoError(t, err)
	assert.Equal(t, "Partial", r.Metadata().Title.Value)

	anomalies := r.Anomalies()
	require.Len(t, anomalies, 1)
	assert.Equal(t, "frames", anomalies[0].Stage)
	assert.Contains(t, anomalies[0].Message, mp3reader.ErrMalformedFrameChain.Error())
}

func TestReader_TextMode(t *testing.T) {
	data := fixture.Tag{Major: 3, Frames: []fixture.Frame{
		fixture.TextFrame("TIT2", fixture.UTF16, fixture.UTF16LE("Café Noël")),
		fixture.TextFrame("TALB", fixture.Latin1, []byte{'N', 0xFC}),
	}}.Bytes()

	r, err := mp3reader.New(data)
	require.NoError(t, err)
	assert.Equal(t, "Caf Nol", r.Metadata().Title.Value)
	assert.Equal(t, "N\xfc", r.Metadata().Album.Value)

	r, err = mp3reader.New(data, mp3reader.WithTextMode(mp3reader.TextUnicode))
	require.NoError(t, err)
	assert.Equal(t, "Café Noël", r.Metadata().Title.Value)
	assert.Equal(t, "Nü", r.Metadata().Album.Value)
}

func TestReader_MaxPictureSize(t *testing.T) {
	r, err := mp3reader.New(buildMP3(), mp3reader.WithMaxPictureSize(4))
	require.NoError(t, err)

	assert.Nil(t, r.Metadata().Picture)
	anomalies := r.Anomalies()
	require.Len(t, anomalies, 1)
	assert.Equal(t, "picture", anomalies[0].Stage)
	assert.Contains(t, anomalies[0].Message, mp3reader.ErrPictureTooLarge.Error())
}

func TestReader_Close(t *testing.T) {
	path := writeFile(t, buildMP3())
	r, err := mp3reader.Open(path)
	require.NoError(t, err)

	pic := r.Metadata().Picture
	require.NotNil(t, pic)
	owned, err := pic.Clone()
	require.NoError(t, err)
	tag, err := r.ID3v1()
	require.NoError(t, err)

	require.NoError(t, r.Close())

	_, err = pic.Data()
	assert.ErrorIs(t, err, mp3reader.ErrBufferReleased)
	_, err = tag.Title.Bytes()
	assert.ErrorIs(t, err, mp3reader.ErrBufferReleased)
	_, err = r.ID3v1()
	assert.ErrorIs(t, err, mp3reader.ErrBufferReleased)
	_, err = r.FirstFrame()
	assert.ErrorIs(t, err, mp3reader.ErrBufferReleased)
	_, err = r.Probe(context.Background())
	assert.ErrorIs(t, err, mp3reader.ErrBufferReleased)

	assert.Equal(t, cover, owned)
	assert.Equal(t, "Song", r.Metadata().Title.Value, "decoded text stays valid")
}

func TestReader_PictureDataOutlivesClose(t *testing.T) {
	image := bytes.Repeat([]byte{0xAB}, 64*1024)
	copy(image, cover)
	data := fixture.Concat(
		fixture.Tag{Major: 3, Frames: []fixture.Frame{
			fixture.PictureFrame(fixture.Latin1, "image/jpeg", 3, []byte{0}, image),
		}}.Bytes(),
		audio(4),
	)
	path := writeFile(t, data)

	for _, opts := range [][]mp3reader.Option{
		nil,
		{mp3reader.WithLoadMode(mp3reader.LoadRead)},
	} {
		r, err := mp3reader.Open(path, opts...)
		require.NoError(t, err)

		pic := r.Metadata().Picture
		require.NotNil(t, pic)
		got, err := pic.Data()
		require.NoError(t, err)
		require.NoError(t, r.Close())

		// reading after Close must neither fault nor see other content
		assert.Equal(t, byte(0xAB), got[100])
		assert.Equal(t, image, got)
	}
}

func TestReader_Probe(t *testing.T) {
	r, err := mp3reader.New(buildMP3(), mp3reader.WithFrameSearchStart(len(tagged())))
	require.NoError(t, err)

	rep, err := r.Probe(context.Background())
	require.NoError(t, err)

	assert.Equal(t, r.Metadata(), rep.Metadata)
	require.NotNil(t, rep.ID3v1)
	assert.Equal(t, 2, rep.ID3v1.Track)
	require.NotNil(t, rep.Frame)
	assert.Equal(t, 128, rep.Frame.Bitrate)
	assert.Equal(t, 3, rep.Frame.Layer)
	assert.Len(t, rep.Tags, 1)
	assert.Empty(t, rep.Anomalies)
}

func TestReader_ProbeAbsent(t *testing.T) {
	r, err := mp3reader.New([]byte("not an mp3 at all"))
	require.NoError(t, err)

	rep, err := r.Probe(context.Background())
	require.NoError(t, err)

	assert.True(t, rep.Metadata.IsEmpty())
	assert.Nil(t, rep.ID3v1)
	assert.Nil(t, rep.Frame)
	assert.Empty(t, rep.Tags)
}

func TestReader_Logger(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))

	data := fixture.Concat(tagged(), audio(1), []byte("ID3\x03\x00\x00\x00\x00\x00\x00"))
	_, err := mp3reader.New(data, mp3reader.WithLogger(logger))
	require.NoError(t, err)

	assert.Contains(t, out.String(), "stray ID3 signature")
	assert.Contains(t, out.String(), "metadata decoded")
}

func TestOpen_FileNotFound(t *testing.T) {
	_, err := mp3reader.Open(filepath.Join(t.TempDir(), "missing.mp3"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestOpen_EmptyFile(t *testing.T) {
	r, err := mp3reader.Open(writeFile(t, nil))
	require.NoError(t, err)
	defer r.Close()

	assert.True(t, r.Metadata().IsEmpty())
	_, err = r.FirstFrame()
	assert.ErrorIs(t, err, mp3reader.ErrNoValidFrame)
}

func TestVersion(t *testing.T) {
	info := mp3reader.ReadBuildInfo()
	assert.Equal(t, mp3reader.Version, info.Version)
	assert.NotEmpty(t, info.Revision)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.String(), mp3reader.Version)
}

func TestBuildInfo_String(t *testing.T) {
	info := mp3reader.BuildInfo{Version: "1.2.3", Revision: "1a2b3c4d5e6f", Modified: true, GoVersion: "go1.26.0"}
	assert.Equal(t, "1.2.3 (rev 1a2b3c4-dirty, go1.26.0)", info.String())

	info = mp3reader.BuildInfo{Version: "1.2.3", Revision: "unknown", GoVersion: "go1.26.0"}
	assert.Equal(t, "1.2.3 (rev unknown, go1.26.0)", info.String())
}
