package mp3reader

import (
	"github.com/AliceZed8/mp3-reader/internal/id3v2"
	"github.com/AliceZed8/mp3-reader/internal/types"
)

// Metadata is an alias to types.Metadata.
// Re-exporting from internal/types to maintain public API.
type Metadata = types.Metadata

// TextField is an alias to types.TextField.
type TextField = types.TextField

// Field is an alias to types.Field.
type Field = types.Field

// Re-export all field constants
const (
	FieldTitle              = types.FieldTitle
	FieldArtist             = types.FieldArtist
	FieldAlbum              = types.FieldAlbum
	FieldYear               = types.FieldYear
	FieldTrack              = types.FieldTrack
	FieldGenre              = types.FieldGenre
	FieldPictureMIMEType    = types.FieldPictureMIMEType
	FieldPictureDescription = types.FieldPictureDescription
)

// ID3v1Tag is an alias to types.ID3v1Tag.
type ID3v1Tag = types.ID3v1Tag

// TagHeader is an alias to id3v2.TagHeader.
type TagHeader = id3v2.TagHeader

// GenreName returns the ID3v1 genre name for a code, or "" when the code
// is not assigned.
func GenreName(code int) string {
	return types.GenreName(code)
}
