package types

import (
	"iter"
	"strconv"
	"strings"
)

// Field names a recognized metadata field.
type Field int

const (
	FieldTitle Field = iota
	FieldArtist
	FieldAlbum
	FieldYear
	FieldTrack
	FieldGenre
	FieldPictureMIMEType
	FieldPictureDescription
)

var fieldNames = [...]string{
	FieldTitle:              "title",
	FieldArtist:             "artist",
	FieldAlbum:              "album",
	FieldYear:               "year",
	FieldTrack:              "track",
	FieldGenre:              "genre",
	FieldPictureMIMEType:    "picture_mime_type",
	FieldPictureDescription: "picture_description",
}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "field(" + strconv.Itoa(int(f)) + ")"
	}
	return fieldNames[f]
}

// TextField is a decoded text value that may be absent.
//
// An absent field has Set == false. A present field may still hold the
// empty string when the source frame carried no text.
type TextField struct {
	Value string
	Set   bool
}

// Text returns a present TextField holding s.
func Text(s string) TextField {
	return TextField{Value: s, Set: true}
}

// Get returns the value and whether it is present.
func (f TextField) Get() (string, bool) {
	return f.Value, f.Set
}

func (f TextField) String() string {
	return f.Value
}

// Metadata is the aggregated result of decoding every ID3v2 tag in a buffer.
//
// Fields absent from the source stay unset. When the same field occurs more
// than once the last occurrence wins.
type Metadata struct {
	Title   TextField
	Artist  TextField
	Album   TextField
	Year    TextField
	Track   TextField
	Genre   TextField
	Picture *Picture
}

// Lookup returns the value of a field and whether it is present.
func (m *Metadata) Lookup(f Field) (string, bool) {
	switch f {
	case FieldTitle:
		return m.Title.Get()
	case FieldArtist:
		return m.Artist.Get()
	case FieldAlbum:
		return m.Album.Get()
	case FieldYear:
		return m.Year.Get()
	case FieldTrack:
		return m.Track.Get()
	case FieldGenre:
		return m.Genre.Get()
	case FieldPictureMIMEType:
		if m.Picture != nil {
			return m.Picture.MIMEType, true
		}
	case FieldPictureDescription:
		if m.Picture != nil {
			return m.Picture.Description, true
		}
	}
	return "", false
}

// All returns an iterator over all present text fields, in Field order.
//
// Example:
//
//	for field, value := range meta.All() {
//		fmt.Printf("%s: %s\n", field, value)
//	}
func (m *Metadata) All() iter.Seq2[Field, string] {
	return func(yield func(Field, string) bool) {
		for f := range Field(len(fieldNames)) {
			v, ok := m.Lookup(f)
			if !ok {
				continue
			}
			if !yield(f, v) {
				return
			}
		}
	}
}

// IsEmpty reports whether no field is present.
func (m *Metadata) IsEmpty() bool {
	for range m.All() {
		return false
	}
	return true
}

// TrackNumber parses the track field in "N" or "N/Total" form.
// Unparseable parts are returned as 0.
func (m *Metadata) TrackNumber() (number, total int) {
	parts := strings.SplitN(strings.TrimSpace(trimNulls(m.Track.Value)), "/", 2)
	number, _ = strconv.Atoi(strings.TrimSpace(parts[0]))
	if len(parts) == 2 {
		total, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
	}
	return number, total
}

// YearNumber extracts a year from "YYYY" or an ISO timestamp such as
// "YYYY-MM-DD". Values outside 1000..9999 are returned as 0.
func (m *Metadata) YearNumber() int {
	text := strings.TrimSpace(trimNulls(m.Year.Value))
	if len(text) < 4 {
		return 0
	}
	year, err := strconv.Atoi(text[:4])
	if err != nil || year < 1000 {
		return 0
	}
	return year
}

// GenreName resolves numeric genre references such as "(17)", "17" or
// "(17)Rock" through the ID3v1 genre table. Free-form genres are returned
// unchanged.
func (m *Metadata) GenreName() string {
	text := strings.TrimSpace(trimNulls(m.Genre.Value))
	ref := text
	if strings.HasPrefix(ref, "(") {
		end := strings.IndexByte(ref, ')')
		if end < 0 {
			return text
		}
		if rest := strings.TrimSpace(ref[end+1:]); rest != "" {
			return rest
		}
		ref = ref[1:end]
	}
	code, err := strconv.Atoi(ref)
	if err != nil {
		return text
	}
	if name := GenreName(code); name != "" {
		return name
	}
	return text
}

func trimNulls(s string) string {
	return strings.TrimRight(s, "\x00")
}
