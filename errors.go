package mp3reader

import (
	"github.com/AliceZed8/mp3-reader/internal/metadata"
	"github.com/AliceZed8/mp3-reader/internal/types"
)

// OutOfBoundsError is an alias to types.OutOfBoundsError.
// Re-exporting from internal/types to maintain public API.
type OutOfBoundsError = types.OutOfBoundsError

// CorruptedFileError is an alias to types.CorruptedFileError.
// Re-exporting from internal/types to maintain public API.
type CorruptedFileError = types.CorruptedFileError

// Warning is an alias to types.Warning.
// Re-exporting from internal/types to maintain public API.
type Warning = types.Warning

var (
	// ErrBufferTooSmall reports a buffer shorter than the structure being read.
	ErrBufferTooSmall = types.ErrBufferTooSmall

	// ErrSignatureMismatch reports that a structure is absent.
	ErrSignatureMismatch = types.ErrSignatureMismatch

	// ErrNoValidFrame reports that no valid MPEG audio frame header was found.
	ErrNoValidFrame = types.ErrNoValidFrame

	// ErrMalformedFrameChain reports an ID3v2 frame chain that ran past its
	// tag or the buffer. It only appears inside warnings.
	ErrMalformedFrameChain = types.ErrMalformedFrameChain

	// ErrBufferReleased reports access to borrowed bytes after Close.
	ErrBufferReleased = types.ErrBufferReleased

	// ErrPictureTooLarge reports a picture dropped by WithMaxPictureSize.
	ErrPictureTooLarge = metadata.ErrPictureTooLarge
)
