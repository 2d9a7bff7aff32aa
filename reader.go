package mp3reader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/AliceZed8/mp3-reader/internal/binary"
	"github.com/AliceZed8/mp3-reader/internal/id3v1"
	"github.com/AliceZed8/mp3-reader/internal/id3v2"
	"github.com/AliceZed8/mp3-reader/internal/loader"
	"github.com/AliceZed8/mp3-reader/internal/metadata"
	"github.com/AliceZed8/mp3-reader/internal/mpeg"
	"github.com/AliceZed8/mp3-reader/internal/registry"
)

// Reader is an opened MP3 file with decoded ID3v2 metadata.
//
// The file content is held in one immutable buffer. Pictures and ID3v1
// fields refer into that buffer instead of copying it; they stop resolving
// once the Reader is closed. Byte slices already obtained from them remain
// valid: memory-mapped content is copied out before it is handed over.
//
// A Reader is safe for concurrent use by multiple goroutines, except that
// Close must not race with other calls.
//
//	r, err := mp3reader.Open("song.mp3")
//	if err != nil {
//		return err
//	}
//	defer r.Close()
type Reader struct {
	// Path to the file, empty for readers created with New
	Path string

	// Size of the content in bytes
	Size int64

	buf       *binary.Buffer
	opts      *openOptions
	tags      []TagHeader
	meta      *Metadata
	anomalies []Warning
}

// Open opens an MP3 file and decodes its ID3v2 metadata.
//
// If the file has stray tag signatures or malformed frames, Open returns a
// Reader with warnings instead of an error. Check Reader.Anomalies for
// details, or use WithStrictParsing to fail instead.
//
// Example:
//
//	r, err := mp3reader.Open("song.mp3")
//	if err != nil {
//		return err
//	}
//	defer r.Close()
//	fmt.Printf("%s - %s\n", r.Metadata().Artist, r.Metadata().Title)
func Open(path string, opts ...Option) (*Reader, error) {
	return OpenContext(context.Background(), path, opts...)
}

// OpenContext opens a file with context support for cancellation.
//
// The context is checked before loading and between tags while the
// metadata is decoded.
func OpenContext(ctx context.Context, path string, opts ...Option) (*Reader, error) {
	o := applyOptions(opts)

	buf, err := loader.Load(ctx, path, o.loadMode)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	o.logger.Debug("file loaded", "path", path, "size", buf.Len(), "mode", o.loadMode.String())

	r, err := newReader(ctx, buf, o)
	if err != nil {
		buf.Close()
		return nil, err
	}
	return r, nil
}

// New decodes metadata from data already in memory. data must not be
// modified while the Reader is in use.
func New(data []byte, opts ...Option) (*Reader, error) {
	return newReader(context.Background(), binary.NewBuffer(data, ""), applyOptions(opts))
}

func newReader(ctx context.Context, buf *binary.Buffer, o *openOptions) (*Reader, error) {
	r := &Reader{
		Path: buf.Path(),
		Size: int64(buf.Len()),
		buf:  buf,
		opts: o,
	}

	log := r.logger()

	var scanWarnings []Warning
	r.tags, scanWarnings = id3v2.Scan(buf, o.scanMode)
	for _, w := range scanWarnings {
		log.Warn("stray ID3 signature", "offset", w.Offset, "detail", w.Message)
	}

	meta, frameWarnings, err := metadata.Aggregate(ctx, buf, r.tags, r.registryOptions())
	if err != nil {
		return nil, err
	}
	for _, w := range frameWarnings {
		if w.Stage == "picture" {
			log.Debug("picture skipped", "offset", w.Offset, "detail", w.Message)
			continue
		}
		log.Warn("malformed frame data", "offset", w.Offset, "detail", w.Message)
	}

	log.Debug("metadata decoded", "tags", len(r.tags), "warnings", len(frameWarnings))

	r.meta = meta
	r.anomalies = append(scanWarnings, frameWarnings...)

	if o.strictParsing && len(r.anomalies) > 0 {
		w := r.anomalies[0]
		return nil, &CorruptedFileError{Path: r.Path, Reason: "strict parsing: " + w.Message, Offset: w.Offset}
	}
	return r, nil
}

func (r *Reader) registryOptions() registry.Options {
	return registry.Options{TextMode: r.opts.textMode, MaxPictureSize: r.opts.maxPictureSize}
}

// Close releases the file content. Pictures and ID3v1 fields obtained from
// the Reader return ErrBufferReleased afterwards.
func (r *Reader) Close() error {
	return r.buf.Close()
}

// Metadata returns the metadata aggregated from every detected ID3v2 tag.
// Fields absent from the file are unset.
func (r *Reader) Metadata() *Metadata {
	return r.meta
}

// Tags returns the ID3v2 tag headers that contributed to Metadata.
func (r *Reader) Tags() []TagHeader {
	return slices.Clone(r.tags)
}

// Anomalies returns the warnings collected while decoding: tag signatures
// found away from offset 0, malformed or truncated frames, and skipped
// pictures.
func (r *Reader) Anomalies() []Warning {
	return slices.Clone(r.anomalies)
}

// ID3v1 returns the ID3v1 trailer. It returns an error wrapping
// ErrSignatureMismatch or ErrBufferTooSmall when the file has none.
func (r *Reader) ID3v1() (*ID3v1Tag, error) {
	if r.buf.Released() {
		return nil, ErrBufferReleased
	}
	return id3v1.Extract(r.buf)
}

// FirstFrame decodes the first valid MPEG audio frame header, scanning
// from the offset set with WithFrameSearchStart. It returns an error
// wrapping ErrNoValidFrame when there is none.
func (r *Reader) FirstFrame() (*FrameInfo, error) {
	return r.FirstFrameFrom(r.opts.frameSearchStart)
}

// FirstFrameFrom decodes the first valid MPEG audio frame header at or
// after offset.
//
// The scan is structural only: header-like bytes inside tag payloads are
// accepted. Pass the end of the first tag to skip it:
//
//	tags := r.Tags()
//	info, err := r.FirstFrameFrom(tags[0].End())
func (r *Reader) FirstFrameFrom(offset int) (*FrameInfo, error) {
	if r.buf.Released() {
		return nil, ErrBufferReleased
	}
	off, h, err := mpeg.Locate(r.buf, offset)
	if err != nil {
		return nil, err
	}

	audioEnd := r.buf.Len()
	if _, err := id3v1.Extract(r.buf); err == nil {
		audioEnd -= id3v1.Size
	}
	info := mpeg.Info(r.buf, off, h, audioEnd)
	return &info, nil
}

// Report is the combined result of Probe. Structures absent from the file
// are nil.
type Report struct {
	Path      string
	Size      int64
	Metadata  *Metadata
	ID3v1     *ID3v1Tag
	Frame     *FrameInfo
	Tags      []TagHeader
	Anomalies []Warning
}

// Probe decodes the ID3v2 metadata, the ID3v1 trailer and the first audio
// frame concurrently over the shared buffer.
//
// Absent structures leave their Report field nil. Other failures, such as
// a canceled context or a closed Reader, are returned as errors.
func (r *Reader) Probe(ctx context.Context) (*Report, error) {
	rep := &Report{
		Path:      r.Path,
		Size:      r.Size,
		Tags:      r.Tags(),
		Anomalies: r.Anomalies(),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		meta, _, err := metadata.Aggregate(ctx, r.buf, r.tags, r.registryOptions())
		if err != nil {
			return fmt.Errorf("metadata: %w", err)
		}
		rep.Metadata = meta
		return nil
	})

	g.Go(func() error {
		tag, err := r.ID3v1()
		if errors.Is(err, ErrSignatureMismatch) || errors.Is(err, ErrBufferTooSmall) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("id3v1: %w", err)
		}
		rep.ID3v1 = tag
		return nil
	})

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		info, err := r.FirstFrame()
		if errors.Is(err, ErrNoValidFrame) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("first frame: %w", err)
		}
		rep.Frame = info
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rep, nil
}

// OpenMany opens multiple files concurrently.
//
// Files are decoded in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths.
//
// If any file fails to open, all successfully opened files are closed
// and an error is returned.
//
// Example:
//
//	readers, err := mp3reader.OpenMany(ctx, paths...)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer func() {
//		for _, r := range readers {
//			r.Close()
//		}
//	}()
func OpenMany(ctx context.Context, paths ...string) ([]*Reader, error) {
	return OpenManyWith(ctx, paths, nil)
}

// OpenManyWith is OpenMany with options applied to every file.
func OpenManyWith(ctx context.Context, paths []string, opts []Option) ([]*Reader, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*Reader, len(paths))
	for i, path := range paths {
		g.Go(func() error {
			r, err := OpenContext(ctx, path, opts...)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, r := range results {
			if r != nil {
				r.Close()
			}
		}
		return nil, err
	}
	return results, nil
}

// logger returns the configured logger with the file path attached.
func (r *Reader) logger() *slog.Logger {
	return r.opts.logger.With("path", r.Path)
}
