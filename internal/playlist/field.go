package playlist

import (
	"strconv"
	"strings"

	"github.com/handiism/tunesort/internal/model"
)

// Field identifies a song field that conditions and sort keys can refer to.
type Field int

const (
	FieldUnknown Field = iota
	FieldTitle
	FieldArtist
	FieldAlbum
	FieldGenre
	FieldRating
	FieldDiscNumber
	FieldTrackNumber
	FieldPath
	FieldDateAdded
)

// Kind tells how a field is matched.
type Kind int

const (
	KindNone Kind = iota
	// KindString is a single string value.
	KindString
	// KindInt is an integer value.
	KindInt
	// KindList is a list of strings.
	KindList
)

var fieldNames = map[string]Field{
	"title":       FieldTitle,
	"artist":      FieldArtist,
	"album":       FieldAlbum,
	"genre":       FieldGenre,
	"rating":      FieldRating,
	"discnumber":  FieldDiscNumber,
	"tracknumber": FieldTrackNumber,
	"path":        FieldPath,
	"date_added":  FieldDateAdded,
}

// ParseField returns the field with the given YAML name.
//
// Unrecognized names yield FieldUnknown and false.
func ParseField(name string) (Field, bool) {
	f, ok := fieldNames[name]
	return f, ok
}

// String returns the YAML name of the field.
func (f Field) String() string {
	for name, field := range fieldNames {
		if field == f {
			return name
		}
	}
	return "unknown"
}

// Kind returns how the field is matched.
func (f Field) Kind() Kind {
	switch f {
	case FieldTitle, FieldAlbum, FieldDiscNumber, FieldTrackNumber, FieldPath, FieldDateAdded:
		return KindString
	case FieldRating:
		return KindInt
	case FieldArtist, FieldGenre:
		return KindList
	default:
		return KindNone
	}
}

// Sortable reports whether the field may be used in sort_by.
func (f Field) Sortable() bool {
	switch f {
	case FieldRating, FieldTitle, FieldAlbum, FieldDateAdded:
		return true
	default:
		return false
	}
}

// stringValue returns a KindString field of s.
func (f Field) stringValue(s model.Song) string {
	switch f {
	case FieldTitle:
		return s.Title
	case FieldAlbum:
		return s.Album
	case FieldDiscNumber:
		return s.DiscNumber
	case FieldTrackNumber:
		return s.TrackNumber
	case FieldPath:
		return s.Path
	case FieldDateAdded:
		return s.DateAdded
	default:
		return ""
	}
}

// intValue returns a KindInt field of s.
func (f Field) intValue(s model.Song) int {
	if f == FieldRating {
		return s.Rating
	}
	return 0
}

// listValue returns a KindList field of s.
func (f Field) listValue(s model.Song) []string {
	switch f {
	case FieldArtist:
		return s.Artist
	case FieldGenre:
		return s.Genre
	default:
		return nil
	}
}

// Value renders the field of s for display.
func (f Field) Value(s model.Song) string {
	switch f.Kind() {
	case KindString:
		return f.stringValue(s)
	case KindInt:
		return strconv.Itoa(f.intValue(s))
	case KindList:
		return strings.Join(f.listValue(s), model.ArtistSeparator)
	default:
		return ""
	}
}
