package mp3reader

import (
	"log/slog"

	"github.com/AliceZed8/mp3-reader/internal/id3v2"
	"github.com/AliceZed8/mp3-reader/internal/loader"
)

// ScanMode selects how ID3v2 tags are detected.
type ScanMode = id3v2.ScanMode

const (
	// ScanFirstTag accepts only a tag at offset 0 and reports other "ID3"
	// signatures through Reader.Anomalies. This is the default.
	ScanFirstTag = id3v2.ScanFirstTag

	// ScanAllOffsets treats every "ID3" signature in the file as a tag,
	// including coincidental matches inside frames or audio data.
	ScanAllOffsets = id3v2.ScanAllOffsets
)

// TextMode selects how UTF-16 text frames are decoded.
type TextMode = id3v2.TextMode

const (
	// TextASCIISubset keeps only the ASCII characters of UTF-16 text and
	// returns Latin-1 and UTF-8 text byte for byte. This is the default.
	TextASCIISubset = id3v2.TextASCIISubset

	// TextUnicode decodes UTF-16 and Latin-1 text to UTF-8.
	TextUnicode = id3v2.TextUnicode
)

// LoadMode selects how files are brought into memory.
type LoadMode = loader.Mode

const (
	// LoadMmap maps files read-only where supported. This is the default.
	LoadMmap = loader.ModeMmap

	// LoadRead reads the whole file into memory.
	LoadRead = loader.ModeRead
)

// Option configures behavior when opening files.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	r, err := mp3reader.Open("song.mp3",
//	    mp3reader.WithTextMode(mp3reader.TextUnicode),
//	    mp3reader.WithMaxPictureSize(10*1024*1024),
//	)
type Option func(*openOptions)

// openOptions holds configuration for opening files.
type openOptions struct {
	scanMode         ScanMode
	textMode         TextMode
	loadMode         LoadMode
	logger           *slog.Logger
	strictParsing    bool // Fail on any warning
	maxPictureSize   int  // Maximum picture size in bytes (0 = no limit)
	frameSearchStart int  // Offset FirstFrame starts scanning from
}

// defaultOptions returns the default configuration.
func defaultOptions() *openOptions {
	return &openOptions{
		scanMode: ScanFirstTag,
		textMode: TextASCIISubset,
		loadMode: LoadMmap,
		logger:   slog.New(slog.DiscardHandler),
	}
}

func applyOptions(opts []Option) *openOptions {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithScanMode sets how ID3v2 tags are detected.
//
// Example:
//
//	// Reproduce the permissive whole-file scan
//	r, err := mp3reader.Open("song.mp3", mp3reader.WithScanMode(mp3reader.ScanAllOffsets))
func WithScanMode(mode ScanMode) Option {
	return func(o *openOptions) {
		o.scanMode = mode
	}
}

// WithTextMode sets how UTF-16 and Latin-1 text frames are decoded.
//
// The default TextASCIISubset drops every non-ASCII character from UTF-16
// text. TextUnicode performs a full decode.
func WithTextMode(mode TextMode) Option {
	return func(o *openOptions) {
		o.textMode = mode
	}
}

// WithLoadMode sets how the file is loaded. It has no effect on New.
func WithLoadMode(mode LoadMode) Option {
	return func(o *openOptions) {
		o.loadMode = mode
	}
}

// WithLogger sets the logger used for load and decode diagnostics.
//
// By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *openOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithStrictParsing treats any warning as a fatal error.
//
// By default, mp3reader continues when it encounters issues like stray
// tag signatures, malformed frame chains or oversized pictures, returning
// warnings alongside the decoded data.
//
// With strict parsing enabled, any warning makes Open fail with a
// *CorruptedFileError.
//
// Example:
//
//	r, err := mp3reader.Open("song.mp3", mp3reader.WithStrictParsing())
//	// err != nil if ANY issue is encountered
func WithStrictParsing() Option {
	return func(o *openOptions) {
		o.strictParsing = true
	}
}

// WithMaxPictureSize sets a maximum size limit for embedded pictures.
//
// If a picture exceeds this size (in bytes), it is skipped with a warning.
// Default is 0 (no limit).
//
// Example:
//
//	// Limit pictures to 10MB
//	r, err := mp3reader.Open("song.mp3",
//	    mp3reader.WithMaxPictureSize(10*1024*1024),
//	)
func WithMaxPictureSize(bytes int) Option {
	return func(o *openOptions) {
		o.maxPictureSize = bytes
	}
}

// WithFrameSearchStart sets the offset FirstFrame starts scanning from.
// Default is 0, which also finds header-like bytes inside an ID3v2 tag;
// FirstFrameFrom can skip past the tag explicitly.
func WithFrameSearchStart(offset int) Option {
	return func(o *openOptions) {
		o.frameSearchStart = offset
	}
}
